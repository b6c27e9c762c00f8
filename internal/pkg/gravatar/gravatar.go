// Package gravatar derives a deterministic avatar URL from an email
// address. No network call is made; the URL is a pure function of the
// normalized address.
package gravatar

import (
	"crypto/md5"
	"encoding/hex"
	"net/url"
	"strings"
)

const baseURL = "https://www.gravatar.com/avatar/"

// URL returns the avatar URL for the given email: 200px, pg-rated, with
// the "mystery man" fallback for addresses without a registered image.
func URL(email string) string {
	sum := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(email))))

	q := url.Values{}
	q.Set("s", "200")
	q.Set("r", "pg")
	q.Set("d", "mm")

	return baseURL + hex.EncodeToString(sum[:]) + "?" + q.Encode()
}
