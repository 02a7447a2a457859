// Package avatar builds Gravatar image URLs for account emails.
package avatar

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"
)

const baseURL = "https://www.gravatar.com/avatar/"

// Options control the rendered avatar.
type Options struct {
	Size    int    // pixel size, 1-2048
	Default string // fallback image ("mm", "identicon", ...)
	Rating  string // maximum content rating
}

// DefaultOptions are applied for zero-value fields.
var DefaultOptions = Options{
	Size:    200,
	Default: "mm",
	Rating:  "pg",
}

// URL returns the Gravatar URL for the given email. The email is
// trimmed and lowercased before hashing, per the Gravatar contract.
func URL(email string, opts Options) string {
	if opts.Size <= 0 {
		opts.Size = DefaultOptions.Size
	}
	if opts.Default == "" {
		opts.Default = DefaultOptions.Default
	}
	if opts.Rating == "" {
		opts.Rating = DefaultOptions.Rating
	}

	sum := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(email))))
	hash := hex.EncodeToString(sum[:])

	return fmt.Sprintf("%s%s?s=%d&d=%s&r=%s", baseURL, hash, opts.Size, opts.Default, opts.Rating)
}
