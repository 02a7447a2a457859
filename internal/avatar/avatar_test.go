package avatar

import (
	"strings"
	"testing"
)

func TestURL_NormalizesEmail(t *testing.T) {
	t.Parallel()

	a := URL("A@X.com", Options{})
	b := URL("  a@x.com ", Options{})

	if a != b {
		t.Errorf("email normalization failed: %s != %s", a, b)
	}
}

func TestURL_Defaults(t *testing.T) {
	t.Parallel()

	u := URL("a@x.com", Options{})

	if !strings.HasPrefix(u, "https://www.gravatar.com/avatar/") {
		t.Errorf("unexpected base: %s", u)
	}
	if !strings.HasSuffix(u, "?s=200&d=mm&r=pg") {
		t.Errorf("expected default query params, got: %s", u)
	}
}

func TestURL_CustomOptions(t *testing.T) {
	t.Parallel()

	u := URL("a@x.com", Options{Size: 64, Default: "identicon", Rating: "g"})
	if !strings.HasSuffix(u, "?s=64&d=identicon&r=g") {
		t.Errorf("unexpected query params: %s", u)
	}
}
