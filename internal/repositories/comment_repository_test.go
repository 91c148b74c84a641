package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/sociablehq/sociable/backend/internal/models"
)

func TestGetCommentsByPostIDSortOrder(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormCommentRepository(db)
	postRepo := NewGormPostRepository(db)
	seedUser(t, db, "u1")

	ctx := context.Background()
	post := &models.Post{UserID: "u1", Content: "discussed"}
	if err := postRepo.CreatePost(ctx, post); err != nil {
		t.Fatalf("CreatePost: %v", err)
	}

	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	// Most liked first; equal likes break ties oldest first.
	fixtures := []models.Comment{
		{PostID: post.ID, UserID: "u1", Content: "late, no likes", Likes: 0, CreatedAt: base.Add(2 * time.Hour)},
		{PostID: post.ID, UserID: "u1", Content: "popular", Likes: 5, CreatedAt: base.Add(time.Hour)},
		{PostID: post.ID, UserID: "u1", Content: "early, no likes", Likes: 0, CreatedAt: base},
		{PostID: post.ID, UserID: "u1", Content: "also popular, earlier", Likes: 5, CreatedAt: base},
	}
	for i := range fixtures {
		if err := db.Create(&fixtures[i]).Error; err != nil {
			t.Fatalf("seeding comment: %v", err)
		}
	}

	comments, err := repo.GetCommentsByPostID(ctx, post.ID)
	if err != nil {
		t.Fatalf("GetCommentsByPostID: %v", err)
	}
	want := []string{"also popular, earlier", "popular", "early, no likes", "late, no likes"}
	if len(comments) != len(want) {
		t.Fatalf("got %d comments, want %d", len(comments), len(want))
	}
	for i, content := range want {
		if comments[i].Content != content {
			t.Fatalf("comments[%d] = %q, want %q (full order: %+v)", i, comments[i].Content, content, comments)
		}
	}
}

func TestCommentAdjustLikes(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormCommentRepository(db)
	postRepo := NewGormPostRepository(db)
	seedUser(t, db, "u1")

	ctx := context.Background()
	post := &models.Post{UserID: "u1", Content: "p"}
	if err := postRepo.CreatePost(ctx, post); err != nil {
		t.Fatalf("CreatePost: %v", err)
	}
	comment := &models.Comment{PostID: post.ID, UserID: "u1", Content: "c"}
	if err := repo.CreateComment(ctx, comment); err != nil {
		t.Fatalf("CreateComment: %v", err)
	}

	likes, err := repo.AdjustLikes(ctx, comment.ID, 1)
	if err != nil || likes != 1 {
		t.Fatalf("AdjustLikes(+1) = %d, %v; want 1, nil", likes, err)
	}
	likes, err = repo.AdjustLikes(ctx, comment.ID, -1)
	if err != nil || likes != 0 {
		t.Fatalf("AdjustLikes(-1) = %d, %v; want 0, nil", likes, err)
	}
}
