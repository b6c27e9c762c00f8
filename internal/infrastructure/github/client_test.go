package github

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestListRepositories_PassesThroughBody(t *testing.T) {
	var gotQuery map[string][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"name":"repo-one"},{"name":"repo-two"}]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "id", "secret", nil)
	body, err := c.ListRepositories(context.Background(), "octocat")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	var repos []map[string]any
	if err := json.Unmarshal(body, &repos); err != nil {
		t.Fatalf("body is not the upstream JSON: %v", err)
	}
	if len(repos) != 2 {
		t.Fatalf("expected 2 repos, got %d", len(repos))
	}

	if got := gotQuery["per_page"]; len(got) != 1 || got[0] != "5" {
		t.Fatalf("expected per_page=5, got %v", got)
	}
	if got := gotQuery["sort"]; len(got) != 1 || got[0] != "created" {
		t.Fatalf("expected sort=created, got %v", got)
	}
	if got := gotQuery["client_id"]; len(got) != 1 || got[0] != "id" {
		t.Fatalf("expected client credentials in query, got %v", got)
	}
}

func TestListRepositories_NonSuccessIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"message":"Not Found"}`, http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", "", nil)
	if _, err := c.ListRepositories(context.Background(), "ghost"); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

func TestListRepositories_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close() // refuse connections

	c := NewClient(srv.URL, "", "", nil)
	_, err := c.ListRepositories(context.Background(), "octocat")
	if err == nil || errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected a transport error, got %v", err)
	}
}

func TestListRepositories_EmptyUsername(t *testing.T) {
	c := NewClient("http://unused.invalid", "", "", nil)
	if _, err := c.ListRepositories(context.Background(), "  "); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}
