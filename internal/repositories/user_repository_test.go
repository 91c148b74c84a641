package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/sociablehq/sociable/backend/internal/models"
	"gorm.io/gorm"
)

func TestLikedPostsRoundTrip(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormUserRepository(db)
	seedUser(t, db, "u1")

	set, err := repo.GetLikedPosts("u1")
	if err != nil {
		t.Fatalf("GetLikedPosts: %v", err)
	}
	if len(set) != 0 {
		t.Fatalf("fresh user liked-set = %+v, want empty", set)
	}

	stamp := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	want := []models.LikedPost{{PostID: 42, Timestamp: stamp}, {PostID: 7, Timestamp: stamp.Add(time.Minute)}}
	if err := repo.UpdateLikedPosts("u1", want); err != nil {
		t.Fatalf("UpdateLikedPosts: %v", err)
	}

	set, err = repo.GetLikedPosts("u1")
	if err != nil {
		t.Fatalf("GetLikedPosts after update: %v", err)
	}
	if len(set) != 2 || set[0].PostID != 42 || set[1].PostID != 7 {
		t.Fatalf("liked-set = %+v, want entries for 42 then 7 in order", set)
	}
	if !set[0].Timestamp.Equal(stamp) {
		t.Fatalf("timestamp = %v, want %v", set[0].Timestamp, stamp)
	}
}

func TestUpdateLikedPostsUnknownUser(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormUserRepository(db)

	err := repo.UpdateLikedPosts("missing", []models.LikedPost{})
	if err != gorm.ErrRecordNotFound {
		t.Fatalf("err = %v, want gorm.ErrRecordNotFound", err)
	}
}

func TestDeleteAccountCascades(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormUserRepository(db)
	postRepo := NewGormPostRepository(db)
	commentRepo := NewGormCommentRepository(db)
	seedUser(t, db, "u1")
	seedUser(t, db, "u2")

	ctx := context.Background()
	post := &models.Post{UserID: "u1", Content: "mine"}
	if err := postRepo.CreatePost(ctx, post); err != nil {
		t.Fatalf("CreatePost: %v", err)
	}
	otherPost := &models.Post{UserID: "u2", Content: "theirs"}
	if err := postRepo.CreatePost(ctx, otherPost); err != nil {
		t.Fatalf("CreatePost: %v", err)
	}
	// u2 comments on u1's post; u1 comments on u2's post.
	if err := commentRepo.CreateComment(ctx, &models.Comment{PostID: post.ID, UserID: "u2", Content: "hi"}); err != nil {
		t.Fatalf("CreateComment: %v", err)
	}
	if err := commentRepo.CreateComment(ctx, &models.Comment{PostID: otherPost.ID, UserID: "u1", Content: "hello"}); err != nil {
		t.Fatalf("CreateComment: %v", err)
	}

	if err := repo.DeleteAccount("u1"); err != nil {
		t.Fatalf("DeleteAccount: %v", err)
	}

	if _, err := repo.GetUserByID("u1"); err != gorm.ErrRecordNotFound {
		t.Fatalf("user row survived deletion: err = %v", err)
	}
	if exists, _ := postRepo.Exists(ctx, post.ID); exists {
		t.Fatal("u1's post survived account deletion")
	}
	var commentCount int64
	db.Model(&models.Comment{}).Count(&commentCount)
	if commentCount != 0 {
		t.Fatalf("%d comments survived, want 0 (u1's comments and comments on u1's posts removed)", commentCount)
	}
	if exists, _ := postRepo.Exists(ctx, otherPost.ID); !exists {
		t.Fatal("u2's post was deleted by u1's account deletion")
	}
}
