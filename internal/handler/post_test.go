package handler_test

import (
	"net/http"
	"testing"

	"github.com/devlink/devlink/internal/model"
)

func createPost(t *testing.T, api *testAPI, tok, text string) *model.Post {
	t.Helper()

	rec := api.do(t, http.MethodPost, "/api/v1/posts", tok, map[string]string{"text": text})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create post: expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var post model.Post
	decodeBody(t, rec, &post)
	if post.ID == "" {
		t.Fatal("created post has no ID")
	}
	return &post
}

func TestPostHandler_Create(t *testing.T) {
	api := newTestAPI(t)
	tok := api.register(t, "alice", "alice@example.com")

	post := createPost(t, api, tok, "hello world")

	if post.Text != "hello world" {
		t.Errorf("expected text to round-trip, got %q", post.Text)
	}
	if post.AuthorName != "alice" {
		t.Errorf("expected author snapshot alice, got %q", post.AuthorName)
	}
	if len(post.Likes) != 0 || len(post.Comments) != 0 {
		t.Error("expected a fresh post to have no likes or comments")
	}
}

func TestPostHandler_Create_RequiresText(t *testing.T) {
	api := newTestAPI(t)
	tok := api.register(t, "alice", "alice@example.com")

	rec := api.do(t, http.MethodPost, "/api/v1/posts", tok, map[string]string{"text": "   "})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected status 422, got %d", rec.Code)
	}
}

func TestPostHandler_RequiresToken(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodPost, "/api/v1/posts", "", map[string]string{"text": "hi"})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", rec.Code)
	}

	rec = api.do(t, http.MethodGet, "/api/v1/posts", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401 on list, got %d", rec.Code)
	}
}

func TestPostHandler_Get_NotFound(t *testing.T) {
	api := newTestAPI(t)
	tok := api.register(t, "alice", "alice@example.com")

	rec := api.do(t, http.MethodGet, "/api/v1/posts/missing", tok, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}
}

func TestPostHandler_LikeFlow(t *testing.T) {
	api := newTestAPI(t)
	alice := api.register(t, "alice", "alice@example.com")
	bob := api.register(t, "bob", "bob@example.com")

	post := createPost(t, api, alice, "like me")

	// Bob likes the post.
	rec := api.do(t, http.MethodPut, "/api/v1/posts/"+post.ID+"/like", bob, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("like: expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var likes []model.Like
	decodeBody(t, rec, &likes)
	if len(likes) != 1 {
		t.Fatalf("expected 1 like, got %d", len(likes))
	}

	// A second like from bob conflicts.
	rec = api.do(t, http.MethodPut, "/api/v1/posts/"+post.ID+"/like", bob, nil)
	if rec.Code != http.StatusConflict {
		t.Fatalf("duplicate like: expected status 409, got %d", rec.Code)
	}

	// Unlike removes it.
	rec = api.do(t, http.MethodPut, "/api/v1/posts/"+post.ID+"/unlike", bob, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("unlike: expected status 200, got %d", rec.Code)
	}
	decodeBody(t, rec, &likes)
	if len(likes) != 0 {
		t.Fatalf("expected 0 likes after unlike, got %d", len(likes))
	}

	// A second unlike conflicts.
	rec = api.do(t, http.MethodPut, "/api/v1/posts/"+post.ID+"/unlike", bob, nil)
	if rec.Code != http.StatusConflict {
		t.Fatalf("duplicate unlike: expected status 409, got %d", rec.Code)
	}
}

func TestPostHandler_Delete_OwnerOnly(t *testing.T) {
	api := newTestAPI(t)
	alice := api.register(t, "alice", "alice@example.com")
	bob := api.register(t, "bob", "bob@example.com")

	post := createPost(t, api, alice, "mine")

	rec := api.do(t, http.MethodDelete, "/api/v1/posts/"+post.ID, bob, nil)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected status 403 for non-owner, got %d", rec.Code)
	}

	rec = api.do(t, http.MethodDelete, "/api/v1/posts/"+post.ID, alice, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected status 204 for owner, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = api.do(t, http.MethodGet, "/api/v1/posts/"+post.ID, alice, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404 after delete, got %d", rec.Code)
	}
}

func TestPostHandler_Comments(t *testing.T) {
	api := newTestAPI(t)
	alice := api.register(t, "alice", "alice@example.com")
	bob := api.register(t, "bob", "bob@example.com")

	post := createPost(t, api, alice, "discuss")

	rec := api.do(t, http.MethodPost, "/api/v1/posts/"+post.ID+"/comments", bob, map[string]string{"text": "first"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("add comment: expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = api.do(t, http.MethodPost, "/api/v1/posts/"+post.ID+"/comments", bob, map[string]string{"text": "second"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("add comment: expected status 201, got %d", rec.Code)
	}

	var comments []model.Comment
	decodeBody(t, rec, &comments)
	if len(comments) != 2 {
		t.Fatalf("expected 2 comments, got %d", len(comments))
	}
	// Newest first.
	if comments[0].Text != "second" || comments[1].Text != "first" {
		t.Errorf("expected newest-first ordering, got %q then %q", comments[0].Text, comments[1].Text)
	}
	if comments[0].AuthorName != "bob" {
		t.Errorf("expected comment author snapshot bob, got %q", comments[0].AuthorName)
	}

	// Only the comment author may remove it; post ownership does not help.
	rec = api.do(t, http.MethodDelete, "/api/v1/posts/"+post.ID+"/comments/"+comments[0].ID, alice, nil)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected status 403 for post author, got %d", rec.Code)
	}

	rec = api.do(t, http.MethodDelete, "/api/v1/posts/"+post.ID+"/comments/"+comments[0].ID, bob, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200 for comment author, got %d: %s", rec.Code, rec.Body.String())
	}
	decodeBody(t, rec, &comments)
	if len(comments) != 1 {
		t.Fatalf("expected 1 comment after delete, got %d", len(comments))
	}

	// Unknown comment ID.
	rec = api.do(t, http.MethodDelete, "/api/v1/posts/"+post.ID+"/comments/missing", bob, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404 for unknown comment, got %d", rec.Code)
	}
}

func TestPostHandler_List_NewestFirst(t *testing.T) {
	api := newTestAPI(t)
	tok := api.register(t, "alice", "alice@example.com")

	createPost(t, api, tok, "older")
	createPost(t, api, tok, "newer")

	rec := api.do(t, http.MethodGet, "/api/v1/posts", tok, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var posts []model.Post
	decodeBody(t, rec, &posts)
	if len(posts) != 2 {
		t.Fatalf("expected 2 posts, got %d", len(posts))
	}
	if posts[0].Text != "newer" {
		t.Errorf("expected newest post first, got %q", posts[0].Text)
	}
}
