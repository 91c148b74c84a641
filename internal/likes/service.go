package likes

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/sociablehq/sociable/backend/internal/models"
	"github.com/sociablehq/sociable/backend/pkg/metrics"
)

// TargetKind selects which content store a toggle applies to
type TargetKind string

const (
	TargetPost    TargetKind = "post"
	TargetComment TargetKind = "comment"
)

// LikeableTarget is the capability a content store exposes to the like
// service: a relative counter adjustment and an existence check. Both the
// post and the comment repositories implement it.
type LikeableTarget interface {
	AdjustLikes(ctx context.Context, id int64, delta int64) (int64, error)
	Exists(ctx context.Context, id int64) (bool, error)
}

// UserStore is the slice of the user repository the like service needs
type UserStore interface {
	GetLikedPosts(id string) ([]models.LikedPost, error)
	UpdateLikedPosts(id string, likedPosts []models.LikedPost) error
}

// PartialFailureReport describes a toggle whose liked-set write landed
// but whose counter write did not.
type PartialFailureReport struct {
	UserID     string
	TargetID   int64
	TargetKind TargetKind
	Delta      int64
	Err        error
	At         time.Time
}

// Reconciler receives partial-failure reports for out-of-band repair
type Reconciler interface {
	ReportPartialFailure(ctx context.Context, report PartialFailureReport)
}

// LogReconciler is the default Reconciler: it logs the inconsistency so
// a corrective pass can replay the counter delta later.
type LogReconciler struct{}

// ReportPartialFailure logs the report in a grep-friendly form
func (LogReconciler) ReportPartialFailure(_ context.Context, r PartialFailureReport) {
	log.Printf("[likes/reconcile] PARTIAL FAILURE user=%s target=%s/%d delta=%+d err=%v",
		r.UserID, r.TargetKind, r.TargetID, r.Delta, r.Err)
}

// ToggleRequest carries one like or unlike operation
type ToggleRequest struct {
	UserID     string     `json:"user_id" validate:"required"`
	TargetID   int64      `json:"target_id" validate:"required"`
	TargetKind TargetKind `json:"target_kind" validate:"required,oneof=post comment"`
	Liked      bool       `json:"liked"`
}

// Service reconciles a user's liked-set with a target's like counter.
// Concurrent toggles for the same (user, target) pair are serialized by a
// keyed lock so a double-like cannot double-count.
type Service struct {
	users      UserStore
	targets    map[TargetKind]LikeableTarget
	locks      *keyedMutex
	reconciler Reconciler
	now        func() time.Time
}

// NewService creates a like toggle service over the given stores
func NewService(users UserStore, posts, comments LikeableTarget, reconciler Reconciler) *Service {
	if reconciler == nil {
		reconciler = LogReconciler{}
	}
	return &Service{
		users: users,
		targets: map[TargetKind]LikeableTarget{
			TargetPost:    posts,
			TargetComment: comments,
		},
		locks:      newKeyedMutex(),
		reconciler: reconciler,
		now:        time.Now,
	}
}

// LikedSet returns the user's current liked-set
func (s *Service) LikedSet(_ context.Context, userID string) ([]models.LikedPost, error) {
	return s.users.GetLikedPosts(userID)
}

// Toggle transitions a (user, target) pair to the requested liked state,
// keeping the user's liked-set and the target's counter consistent. It
// returns the target's new counter value on success. callerID is the
// authenticated session identity and must match req.UserID.
func (s *Service) Toggle(ctx context.Context, callerID string, req ToggleRequest) (int64, error) {
	if callerID == "" || callerID != req.UserID {
		metrics.LikeToggles.WithLabelValues(KindNotAuthorized.String()).Inc()
		return 0, &Error{Kind: KindNotAuthorized, Msg: "caller identity does not match user_id"}
	}

	target, ok := s.targets[req.TargetKind]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownTargetKind, req.TargetKind)
	}

	exists, err := target.Exists(ctx, req.TargetID)
	if err != nil {
		metrics.LikeToggles.WithLabelValues(KindStoreWriteFailure.String()).Inc()
		return 0, &Error{Kind: KindStoreWriteFailure, Msg: "target lookup failed", Err: err}
	}
	if !exists {
		return 0, fmt.Errorf("%w: %s/%d", ErrTargetNotFound, req.TargetKind, req.TargetID)
	}

	// Serialize per (user, target) pair. Two concurrent likes for the
	// same pair must resolve to one success and one invalid transition.
	key := lockKey(req.UserID, req.TargetKind, req.TargetID)
	s.locks.Lock(key)
	defer s.locks.Unlock(key)

	counter, err := s.toggleLocked(ctx, target, req)
	if err != nil {
		metrics.LikeToggles.WithLabelValues(KindOf(err).String()).Inc()
		return 0, err
	}
	metrics.LikeToggles.WithLabelValues("success").Inc()
	return counter, nil
}

func (s *Service) toggleLocked(ctx context.Context, target LikeableTarget, req ToggleRequest) (int64, error) {
	likedSet, err := s.users.GetLikedPosts(req.UserID)
	if err != nil {
		return 0, &Error{Kind: KindStoreWriteFailure, Msg: "loading liked-set failed", Err: err}
	}

	contains := false
	for _, lp := range likedSet {
		if lp.PostID == req.TargetID {
			contains = true
			break
		}
	}

	var newSet []models.LikedPost
	var delta int64
	if req.Liked {
		if contains {
			return 0, &Error{Kind: KindInvalidTransition, Msg: "target already liked"}
		}
		newSet = append(append([]models.LikedPost{}, likedSet...), models.LikedPost{
			PostID:    req.TargetID,
			Timestamp: s.now(),
		})
		delta = 1
	} else {
		if !contains {
			return 0, &Error{Kind: KindInvalidTransition, Msg: "target not liked, nothing to remove"}
		}
		newSet = make([]models.LikedPost, 0, len(likedSet))
		// Filter every matching entry, guarding against historical
		// duplicates in the stored collection.
		for _, lp := range likedSet {
			if lp.PostID != req.TargetID {
				newSet = append(newSet, lp)
			}
		}
		delta = -1
	}

	if err := s.users.UpdateLikedPosts(req.UserID, newSet); err != nil {
		return 0, &Error{Kind: KindStoreWriteFailure, Msg: "persisting liked-set failed", Err: err}
	}

	counter, err := target.AdjustLikes(ctx, req.TargetID, delta)
	if err != nil {
		// The liked-set write already landed; the stores are now
		// inconsistent and the reconciler has to repair them.
		metrics.LikePartialFailures.Inc()
		s.reconciler.ReportPartialFailure(ctx, PartialFailureReport{
			UserID:     req.UserID,
			TargetID:   req.TargetID,
			TargetKind: req.TargetKind,
			Delta:      delta,
			Err:        err,
			At:         s.now(),
		})
		return 0, &Error{Kind: KindPartialFailure, Msg: "counter update failed after liked-set write", Err: err}
	}

	return counter, nil
}

func lockKey(userID string, kind TargetKind, targetID int64) string {
	return fmt.Sprintf("%s|%s|%d", userID, kind, targetID)
}
