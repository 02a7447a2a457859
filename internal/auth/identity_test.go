package auth

import (
	"context"
	"errors"
	"testing"
)

func TestFromContext(t *testing.T) {
	t.Parallel()

	ctx := WithIdentity(context.Background(), Identity{UserID: "u1"})

	id, err := FromContext(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id.UserID != "u1" {
		t.Errorf("expected u1, got %s", id.UserID)
	}
}

func TestFromContext_Unbound(t *testing.T) {
	t.Parallel()

	_, err := FromContext(context.Background())
	if !errors.Is(err, ErrUnauthenticated) {
		t.Errorf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestFromContext_EmptyUserID(t *testing.T) {
	t.Parallel()

	ctx := WithIdentity(context.Background(), Identity{})
	_, err := FromContext(ctx)
	if !errors.Is(err, ErrUnauthenticated) {
		t.Errorf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestRequireOwner(t *testing.T) {
	t.Parallel()

	owner := Identity{UserID: "author-a"}

	if err := RequireOwner(owner, "author-a"); err != nil {
		t.Errorf("owner should be allowed, got %v", err)
	}

	err := RequireOwner(Identity{UserID: "user-b"}, "author-a")
	if !errors.Is(err, ErrForbidden) {
		t.Errorf("non-owner should get ErrForbidden, got %v", err)
	}
}
