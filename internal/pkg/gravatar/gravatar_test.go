package gravatar

import (
	"strings"
	"testing"
)

func TestURL_Deterministic(t *testing.T) {
	a := URL("dev@example.com")
	b := URL("dev@example.com")
	if a != b {
		t.Fatalf("expected identical URLs, got %q vs %q", a, b)
	}
}

func TestURL_NormalizesCaseAndWhitespace(t *testing.T) {
	if URL("  Dev@Example.COM ") != URL("dev@example.com") {
		t.Fatalf("expected normalization before hashing")
	}
}

func TestURL_Shape(t *testing.T) {
	u := URL("dev@example.com")
	if !strings.HasPrefix(u, "https://www.gravatar.com/avatar/") {
		t.Fatalf("unexpected prefix: %q", u)
	}
	for _, param := range []string{"s=200", "r=pg", "d=mm"} {
		if !strings.Contains(u, param) {
			t.Fatalf("expected %s in %q", param, u)
		}
	}
}
