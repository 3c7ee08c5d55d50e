//go:build integration

package data

import (
	"context"
	"testing"
)

func TestCommentRepository_ThreadQueries(t *testing.T) {
	db, teardown := setupTestDB(t)
	defer teardown()
	posts := NewPostRepository(db)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	userID := seedUser(t, db, "Okur", "okur@example.com", RoleReader)
	postID := seedPost(t, posts, userID, "Yazı", "Ekonomi", StatePublished)

	first, err := repo.Create(ctx, &Comment{PostID: postID, UserID: userID, Body: "A"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	replyOld, _ := repo.Create(ctx, &Comment{PostID: postID, UserID: userID, Body: "A-yanıt-1", ParentID: &first})
	second, _ := repo.Create(ctx, &Comment{PostID: postID, UserID: userID, Body: "B"})
	replyNew, _ := repo.Create(ctx, &Comment{PostID: postID, UserID: userID, Body: "A-yanıt-2", ParentID: &first})

	t.Run("top-level comments are newest-first", func(t *testing.T) {
		topLevel, err := repo.ListTopLevel(ctx, postID)
		if err != nil {
			t.Fatalf("ListTopLevel failed: %v", err)
		}
		if len(topLevel) != 2 {
			t.Fatalf("expected 2 top-level comments, got %d", len(topLevel))
		}
		if topLevel[0].ID != second || topLevel[1].ID != first {
			t.Errorf("expected order [%d, %d], got [%d, %d]",
				second, first, topLevel[0].ID, topLevel[1].ID)
		}
		if topLevel[0].AuthorName != "Okur" {
			t.Errorf("expected joined author name, got '%s'", topLevel[0].AuthorName)
		}
	})

	t.Run("replies are oldest-first", func(t *testing.T) {
		replies, err := repo.ListReplies(ctx, postID)
		if err != nil {
			t.Fatalf("ListReplies failed: %v", err)
		}
		if len(replies) != 2 {
			t.Fatalf("expected 2 replies, got %d", len(replies))
		}
		if replies[0].ID != replyOld || replies[1].ID != replyNew {
			t.Errorf("expected order [%d, %d], got [%d, %d]",
				replyOld, replyNew, replies[0].ID, replies[1].ID)
		}
	})

	t.Run("count covers the whole thread", func(t *testing.T) {
		count, err := repo.CountForPost(ctx, postID)
		if err != nil {
			t.Fatalf("CountForPost failed: %v", err)
		}
		if count != 4 {
			t.Errorf("expected 4 comments, got %d", count)
		}
	})
}

func TestCommentRepository_LegacyZeroParent(t *testing.T) {
	db, teardown := setupTestDB(t)
	defer teardown()
	posts := NewPostRepository(db)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	userID := seedUser(t, db, "Okur", "okur@example.com", RoleReader)
	postID := seedPost(t, posts, userID, "Yazı", "Ekonomi", StatePublished)

	// Rows imported from the old system carry parent_id = 0 instead of NULL.
	db.MustExec(`PRAGMA foreign_keys = OFF`)
	db.MustExec(`INSERT INTO yorumlar (post_id, user_id, yorum, parent_id) VALUES (?, ?, 'eski', 0)`,
		postID, userID)
	db.MustExec(`PRAGMA foreign_keys = ON`)

	topLevel, err := repo.ListTopLevel(ctx, postID)
	if err != nil {
		t.Fatalf("ListTopLevel failed: %v", err)
	}
	if len(topLevel) != 1 {
		t.Fatalf("expected the legacy row to be top-level, got %d comments", len(topLevel))
	}
	if !topLevel[0].TopLevel() {
		t.Error("expected TopLevel() to treat parent_id = 0 as top-level")
	}

	replies, err := repo.ListReplies(ctx, postID)
	if err != nil {
		t.Fatalf("ListReplies failed: %v", err)
	}
	if len(replies) != 0 {
		t.Errorf("legacy row must not appear among replies, got %d", len(replies))
	}
}

func TestCommentRepository_DeleteWithReplies(t *testing.T) {
	db, teardown := setupTestDB(t)
	defer teardown()
	posts := NewPostRepository(db)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	userID := seedUser(t, db, "Okur", "okur@example.com", RoleReader)
	postID := seedPost(t, posts, userID, "Yazı", "Ekonomi", StatePublished)

	top, _ := repo.Create(ctx, &Comment{PostID: postID, UserID: userID, Body: "üst"})
	reply, _ := repo.Create(ctx, &Comment{PostID: postID, UserID: userID, Body: "yanıt", ParentID: &top})
	other, _ := repo.Create(ctx, &Comment{PostID: postID, UserID: userID, Body: "diğer"})

	t.Run("deleting a reply removes one row", func(t *testing.T) {
		deleted, err := repo.DeleteWithReplies(ctx, reply)
		if err != nil {
			t.Fatalf("DeleteWithReplies failed: %v", err)
		}
		if deleted != 1 {
			t.Errorf("expected 1 deleted row, got %d", deleted)
		}
	})

	t.Run("deleting a parent removes its replies too", func(t *testing.T) {
		_, _ = repo.Create(ctx, &Comment{PostID: postID, UserID: userID, Body: "yanıt 2", ParentID: &top})
		deleted, err := repo.DeleteWithReplies(ctx, top)
		if err != nil {
			t.Fatalf("DeleteWithReplies failed: %v", err)
		}
		if deleted != 2 {
			t.Errorf("expected 2 deleted rows, got %d", deleted)
		}
		remaining, _ := repo.CountForPost(ctx, postID)
		if remaining != 1 {
			t.Errorf("expected only the unrelated comment left, got %d", remaining)
		}
		if c, _ := repo.GetByID(ctx, other); c == nil {
			t.Error("unrelated comment must survive")
		}
	})
}

func TestCommentRepository_UpdateBody(t *testing.T) {
	db, teardown := setupTestDB(t)
	defer teardown()
	posts := NewPostRepository(db)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	userID := seedUser(t, db, "Okur", "okur@example.com", RoleReader)
	postID := seedPost(t, posts, userID, "Yazı", "Ekonomi", StatePublished)
	id, _ := repo.Create(ctx, &Comment{PostID: postID, UserID: userID, Body: "ilk hali"})

	if err := repo.UpdateBody(ctx, id, "yeni hali"); err != nil {
		t.Fatalf("UpdateBody failed: %v", err)
	}
	c, err := repo.GetByID(ctx, id)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if c.Body != "yeni hali" {
		t.Errorf("expected updated body, got '%s'", c.Body)
	}
}
