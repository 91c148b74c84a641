package repositories

import (
	"context"
	"testing"

	"github.com/sociablehq/sociable/backend/internal/models"
	"gorm.io/gorm"
)

func TestCreatePostAssignsID(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormPostRepository(db)
	seedUser(t, db, "u1")

	ctx := context.Background()
	first := &models.Post{UserID: "u1", Content: "first"}
	second := &models.Post{UserID: "u1", Content: "second"}
	if err := repo.CreatePost(ctx, first); err != nil {
		t.Fatalf("CreatePost: %v", err)
	}
	if err := repo.CreatePost(ctx, second); err != nil {
		t.Fatalf("CreatePost: %v", err)
	}
	if first.ID == 0 || second.ID == 0 {
		t.Fatalf("store did not assign IDs: %d, %d", first.ID, second.ID)
	}
	if first.ID == second.ID {
		t.Fatalf("duplicate assigned ID %d", first.ID)
	}
}

func TestAdjustLikesDelta(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormPostRepository(db)
	seedUser(t, db, "u1")

	ctx := context.Background()
	post := &models.Post{UserID: "u1", Content: "likeable"}
	if err := repo.CreatePost(ctx, post); err != nil {
		t.Fatalf("CreatePost: %v", err)
	}

	likes, err := repo.AdjustLikes(ctx, post.ID, 1)
	if err != nil || likes != 1 {
		t.Fatalf("AdjustLikes(+1) = %d, %v; want 1, nil", likes, err)
	}
	likes, err = repo.AdjustLikes(ctx, post.ID, 1)
	if err != nil || likes != 2 {
		t.Fatalf("AdjustLikes(+1) = %d, %v; want 2, nil", likes, err)
	}
	likes, err = repo.AdjustLikes(ctx, post.ID, -1)
	if err != nil || likes != 1 {
		t.Fatalf("AdjustLikes(-1) = %d, %v; want 1, nil", likes, err)
	}
}

func TestAdjustLikesMissingPost(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormPostRepository(db)

	_, err := repo.AdjustLikes(context.Background(), 999, 1)
	if err != gorm.ErrRecordNotFound {
		t.Fatalf("err = %v, want gorm.ErrRecordNotFound", err)
	}
}

func TestDeletePostRemovesComments(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormPostRepository(db)
	commentRepo := NewGormCommentRepository(db)
	seedUser(t, db, "u1")

	ctx := context.Background()
	post := &models.Post{UserID: "u1", Content: "doomed"}
	if err := repo.CreatePost(ctx, post); err != nil {
		t.Fatalf("CreatePost: %v", err)
	}
	if err := commentRepo.CreateComment(ctx, &models.Comment{PostID: post.ID, UserID: "u1", Content: "reply"}); err != nil {
		t.Fatalf("CreateComment: %v", err)
	}

	if err := repo.DeletePost(ctx, post.ID); err != nil {
		t.Fatalf("DeletePost: %v", err)
	}

	if exists, _ := repo.Exists(ctx, post.ID); exists {
		t.Fatal("post survived deletion")
	}
	comments, err := commentRepo.GetCommentsByPostID(ctx, post.ID)
	if err != nil {
		t.Fatalf("GetCommentsByPostID: %v", err)
	}
	if len(comments) != 0 {
		t.Fatalf("%d comments survived post deletion, want 0", len(comments))
	}
}

func TestDeletePostMissing(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormPostRepository(db)

	if err := repo.DeletePost(context.Background(), 12345); err != gorm.ErrRecordNotFound {
		t.Fatalf("err = %v, want gorm.ErrRecordNotFound", err)
	}
}
