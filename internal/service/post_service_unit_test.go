//go:build unit

package service

import (
	"context"
	"errors"
	"testing"

	"go-blog-app/internal/auth"
	"go-blog-app/internal/config"
	"go-blog-app/internal/data"
	"go-blog-app/internal/logger"
)

func testLogger() logger.Logger {
	return logger.New(config.LogConfig{Level: "error", Format: "json"}, nil)
}

// mockPostRepository is a mock implementation of the PostRepository interface.
type mockPostRepository struct {
	posts  map[int64]*data.Post
	nextID int64

	incrementViewsErr    error
	incrementViewsCalled int
	updateStateCalled    int
	deleteCalled         int
	lastImageFile        string
}

var _ PostRepository = (*mockPostRepository)(nil)

func newMockPostRepository() *mockPostRepository {
	return &mockPostRepository{posts: make(map[int64]*data.Post), nextID: 1}
}

func (m *mockPostRepository) Create(ctx context.Context, post *data.Post) (int64, error) {
	id := m.nextID
	m.nextID++
	p := *post
	p.ID = id
	m.posts[id] = &p
	return id, nil
}

func (m *mockPostRepository) GetByID(ctx context.Context, id int64) (*data.Post, error) {
	return m.posts[id], nil
}

func (m *mockPostRepository) GetDetail(ctx context.Context, id int64) (*data.PostDetail, error) {
	post, ok := m.posts[id]
	if !ok {
		return nil, nil
	}
	return &data.PostDetail{Post: *post, AuthorName: "Test Yazar"}, nil
}

func (m *mockPostRepository) IncrementViews(ctx context.Context, id int64) error {
	m.incrementViewsCalled++
	if m.incrementViewsErr != nil {
		return m.incrementViewsErr
	}
	if post, ok := m.posts[id]; ok {
		post.Views++
	}
	return nil
}

func (m *mockPostRepository) ListPublished(ctx context.Context, category string) ([]*data.Post, error) {
	var out []*data.Post
	for id := m.nextID - 1; id >= 1; id-- {
		post, ok := m.posts[id]
		if !ok || post.State != data.StatePublished {
			continue
		}
		if category != "" && post.Category != category {
			continue
		}
		out = append(out, post)
	}
	return out, nil
}

func (m *mockPostRepository) ListPublishedByAuthor(ctx context.Context, authorID int64) ([]*data.Post, error) {
	var out []*data.Post
	for id := m.nextID - 1; id >= 1; id-- {
		if post, ok := m.posts[id]; ok && post.AuthorID == authorID && post.State == data.StatePublished {
			out = append(out, post)
		}
	}
	return out, nil
}

func (m *mockPostRepository) ListPending(ctx context.Context) ([]*data.PostDetail, error) {
	var out []*data.PostDetail
	for id := int64(1); id < m.nextID; id++ {
		if post, ok := m.posts[id]; ok && post.State == data.StatePending {
			out = append(out, &data.PostDetail{Post: *post})
		}
	}
	return out, nil
}

func (m *mockPostRepository) Search(ctx context.Context, keyword string) ([]*data.Post, error) {
	// The real repository matches case-insensitively in SQL; the mock
	// just returns everything published so the service-level empty
	// keyword rule can be observed.
	return m.ListPublished(ctx, "")
}

func (m *mockPostRepository) ListCategories(ctx context.Context) ([]string, error) {
	return nil, nil
}

func (m *mockPostRepository) Update(ctx context.Context, id int64, title, body, category, imageFile string) error {
	post, ok := m.posts[id]
	if !ok {
		return errors.New("no post")
	}
	post.Title, post.Body, post.Category = title, body, category
	m.lastImageFile = imageFile
	if imageFile != "" {
		post.ImageFile = imageFile
	}
	return nil
}

func (m *mockPostRepository) UpdateState(ctx context.Context, id int64, state data.PostState) error {
	m.updateStateCalled++
	post, ok := m.posts[id]
	if !ok {
		return errors.New("no post")
	}
	post.State = state
	return nil
}

func (m *mockPostRepository) Delete(ctx context.Context, id int64) error {
	m.deleteCalled++
	delete(m.posts, id)
	return nil
}

var (
	adminPrincipal  = &auth.Principal{UserID: 1, DisplayName: "Admin", Role: data.RoleAdmin}
	authorPrincipal = &auth.Principal{UserID: 2, DisplayName: "Yazar", Role: data.RoleAuthor}
	readerPrincipal = &auth.Principal{UserID: 3, DisplayName: "Okur", Role: data.RoleReader}
)

func TestPostService_Create_StateByRole(t *testing.T) {
	repo := newMockPostRepository()
	svc := NewPostService(repo, testLogger())
	ctx := context.Background()

	t.Run("author posts start pending", func(t *testing.T) {
		id, err := svc.Create(ctx, authorPrincipal, "Başlık", "İçerik", "Ekonomi", "")
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		if repo.posts[id].State != data.StatePending {
			t.Errorf("expected pending state, got %v", repo.posts[id].State)
		}
	})

	t.Run("admin posts are published immediately", func(t *testing.T) {
		id, err := svc.Create(ctx, adminPrincipal, "Başlık", "İçerik", "Ekonomi", "")
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		if repo.posts[id].State != data.StatePublished {
			t.Errorf("expected published state, got %v", repo.posts[id].State)
		}
	})

	t.Run("reader may not create", func(t *testing.T) {
		_, err := svc.Create(ctx, readerPrincipal, "Başlık", "İçerik", "Ekonomi", "")
		if !errors.Is(err, ErrForbidden) {
			t.Errorf("expected ErrForbidden, got %v", err)
		}
	})

	t.Run("promoted reader may create", func(t *testing.T) {
		promoted := &auth.Principal{UserID: readerPrincipal.UserID, Role: data.RoleAuthor}
		id, err := svc.Create(ctx, promoted, "Başlık", "İçerik", "Ekonomi", "")
		if err != nil {
			t.Fatalf("Create after promotion failed: %v", err)
		}
		if repo.posts[id].State != data.StatePending {
			t.Errorf("expected pending state, got %v", repo.posts[id].State)
		}
	})

	t.Run("empty required fields are rejected", func(t *testing.T) {
		_, err := svc.Create(ctx, authorPrincipal, "", "İçerik", "Ekonomi", "")
		if !errors.Is(err, ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})
}

func TestPostService_Create_PendingInvisible(t *testing.T) {
	repo := newMockPostRepository()
	svc := NewPostService(repo, testLogger())
	ctx := context.Background()

	id, err := svc.Create(ctx, authorPrincipal, "Gizli Yazı", "İçerik", "Ekonomi", "")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	posts, err := svc.ListPublished(ctx, "")
	if err != nil {
		t.Fatalf("ListPublished failed: %v", err)
	}
	if len(posts) != 0 {
		t.Errorf("pending post should not be listed, got %d posts", len(posts))
	}

	if err := svc.Approve(ctx, adminPrincipal, id); err != nil {
		t.Fatalf("Approve failed: %v", err)
	}
	posts, _ = svc.ListPublished(ctx, "")
	if len(posts) != 1 {
		t.Errorf("approved post should be listed, got %d posts", len(posts))
	}
}

func TestPostService_Approve(t *testing.T) {
	repo := newMockPostRepository()
	svc := NewPostService(repo, testLogger())
	ctx := context.Background()

	id, _ := svc.Create(ctx, authorPrincipal, "Başlık", "İçerik", "Ekonomi", "")

	t.Run("only admins approve", func(t *testing.T) {
		if err := svc.Approve(ctx, authorPrincipal, id); !errors.Is(err, ErrForbidden) {
			t.Errorf("expected ErrForbidden, got %v", err)
		}
	})

	t.Run("approve publishes", func(t *testing.T) {
		if err := svc.Approve(ctx, adminPrincipal, id); err != nil {
			t.Fatalf("Approve failed: %v", err)
		}
		if repo.posts[id].State != data.StatePublished {
			t.Errorf("expected published state, got %v", repo.posts[id].State)
		}
	})

	t.Run("approving a published post is a no-op", func(t *testing.T) {
		before := repo.updateStateCalled
		if err := svc.Approve(ctx, adminPrincipal, id); err != nil {
			t.Fatalf("second Approve failed: %v", err)
		}
		if repo.updateStateCalled != before {
			t.Error("expected no state write for an already published post")
		}
	})

	t.Run("missing post is not found", func(t *testing.T) {
		if err := svc.Approve(ctx, adminPrincipal, 999); !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestPostService_Get_ViewCounter(t *testing.T) {
	repo := newMockPostRepository()
	svc := NewPostService(repo, testLogger())
	ctx := context.Background()

	id, _ := svc.Create(ctx, adminPrincipal, "Başlık", "İçerik", "Ekonomi", "")

	t.Run("get increments views", func(t *testing.T) {
		if _, err := svc.Get(ctx, id); err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if repo.posts[id].Views != 1 {
			t.Errorf("expected 1 view, got %d", repo.posts[id].Views)
		}
	})

	t.Run("increment failure does not fail the read", func(t *testing.T) {
		repo.incrementViewsErr = errors.New("counter broken")
		detail, err := svc.Get(ctx, id)
		if err != nil {
			t.Fatalf("Get should survive a counter error, got: %v", err)
		}
		if detail == nil {
			t.Fatal("expected post detail despite counter error")
		}
	})
}

func TestPostService_Update_Ownership(t *testing.T) {
	repo := newMockPostRepository()
	svc := NewPostService(repo, testLogger())
	ctx := context.Background()

	id, _ := svc.Create(ctx, authorPrincipal, "Başlık", "İçerik", "Ekonomi", "resim.jpg")

	otherAuthor := &auth.Principal{UserID: 42, Role: data.RoleAuthor}

	t.Run("non-owner author may not update", func(t *testing.T) {
		err := svc.Update(ctx, otherAuthor, id, "Yeni", "İçerik", "Ekonomi", "")
		if !errors.Is(err, ErrForbidden) {
			t.Errorf("expected ErrForbidden, got %v", err)
		}
	})

	t.Run("non-owner author may not delete", func(t *testing.T) {
		err := svc.Delete(ctx, otherAuthor, id)
		if !errors.Is(err, ErrForbidden) {
			t.Errorf("expected ErrForbidden, got %v", err)
		}
	})

	t.Run("owner update without image keeps the old one", func(t *testing.T) {
		if err := svc.Update(ctx, authorPrincipal, id, "Yeni Başlık", "Yeni içerik", "Ekonomi", ""); err != nil {
			t.Fatalf("Update failed: %v", err)
		}
		if repo.posts[id].ImageFile != "resim.jpg" {
			t.Errorf("expected image to be preserved, got '%s'", repo.posts[id].ImageFile)
		}
	})

	t.Run("supplying an image replaces it", func(t *testing.T) {
		if err := svc.Update(ctx, authorPrincipal, id, "Yeni Başlık", "Yeni içerik", "Ekonomi", "yeni.jpg"); err != nil {
			t.Fatalf("Update failed: %v", err)
		}
		if repo.posts[id].ImageFile != "yeni.jpg" {
			t.Errorf("expected image to be replaced, got '%s'", repo.posts[id].ImageFile)
		}
	})

	t.Run("admin may update another author's post", func(t *testing.T) {
		if err := svc.Update(ctx, adminPrincipal, id, "Admin Düzenledi", "İçerik", "Ekonomi", ""); err != nil {
			t.Fatalf("admin Update failed: %v", err)
		}
	})

	t.Run("admin may delete another author's post", func(t *testing.T) {
		if err := svc.Delete(ctx, adminPrincipal, id); err != nil {
			t.Fatalf("admin Delete failed: %v", err)
		}
		if repo.deleteCalled != 1 {
			t.Error("expected repository delete to be called")
		}
	})
}

func TestPostService_Search_EmptyKeyword(t *testing.T) {
	repo := newMockPostRepository()
	svc := NewPostService(repo, testLogger())
	ctx := context.Background()

	_, _ = svc.Create(ctx, adminPrincipal, "Başlık", "İçerik", "Ekonomi", "")

	posts, err := svc.Search(ctx, "   ")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(posts) != 0 {
		t.Errorf("empty keyword must yield an empty result, got %d posts", len(posts))
	}
}

func TestPostService_Create_SanitizesBody(t *testing.T) {
	repo := newMockPostRepository()
	svc := NewPostService(repo, testLogger())
	ctx := context.Background()

	id, err := svc.Create(ctx, adminPrincipal, "Başlık", `<p>iyi</p><script>alert(1)</script>`, "Ekonomi", "")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	body := repo.posts[id].Body
	if body != "<p>iyi</p>" {
		t.Errorf("expected sanitized body '<p>iyi</p>', got '%s'", body)
	}
}
