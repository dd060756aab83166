package services

import (
	"context"
	"errors"
	"testing"

	"github.com/xcessv/beefboard/internal/apperrors"
	"github.com/xcessv/beefboard/internal/models"
)

func TestCreateReviewRecordsActivity(t *testing.T) {
	ctx := context.Background()
	author := testUser(1, "alice")
	f := newFixture(author)

	review, err := f.reviewSvc.CreateReview(ctx, author, &models.CreateReviewRequest{
		Beefery: "Lou's Beef Hut",
		Rating:  9,
		Content: "best in town",
	})
	if err != nil {
		t.Fatalf("CreateReview: %v", err)
	}
	if review.ID.IsZero() {
		t.Fatal("review id not assigned")
	}

	acts := f.activities.byType(models.ActivityNewReview)
	if len(acts) != 1 {
		t.Fatalf("new_review activities = %d, want 1", len(acts))
	}
	if acts[0].Target.ID != review.ID.Hex() {
		t.Fatalf("activity target = %s, want %s", acts[0].Target.ID, review.ID.Hex())
	}
	if acts[0].HasSubject() {
		t.Fatalf("new_review has a subject: %+v", acts[0].Subject)
	}
	if n := len(f.notifications.notifications); n != 0 {
		t.Fatalf("new_review produced notifications: %d", n)
	}
}

func TestSetReviewLikeIsIdempotent(t *testing.T) {
	ctx := context.Background()
	author := testUser(1, "alice")
	liker := testUser(2, "bob")
	f := newFixture(author, liker)
	review := f.seedReview(ctx, author)
	id := review.ID.Hex()

	updated, changed, err := f.reviewSvc.SetReviewLike(ctx, id, liker, true)
	if err != nil || !changed {
		t.Fatalf("first like: changed=%v err=%v", changed, err)
	}
	if !updated.LikedBy(liker.ID) {
		t.Fatal("like not applied")
	}

	if _, changed, err = f.reviewSvc.SetReviewLike(ctx, id, liker, true); err != nil || changed {
		t.Fatalf("repeat like: changed=%v err=%v", changed, err)
	}
	if n := len(f.activities.byType(models.ActivityReviewLike)); n != 1 {
		t.Fatalf("review_like activities = %d, want 1", n)
	}

	notifs := f.notifications.forRecipient(author.ID)
	if len(notifs) != 1 {
		t.Fatalf("author notifications = %d, want 1", len(notifs))
	}

	if _, changed, err = f.reviewSvc.SetReviewLike(ctx, id, liker, false); err != nil || !changed {
		t.Fatalf("unlike: changed=%v err=%v", changed, err)
	}
	if n := len(f.activities.byType(models.ActivityReviewLike)); n != 1 {
		t.Fatalf("unlike fanned out: %d", n)
	}
}

func TestDeleteReviewCascadesEverything(t *testing.T) {
	ctx := context.Background()
	author := testUser(1, "alice")
	commenter := testUser(2, "bob")
	f := newFixture(author, commenter)
	review := f.seedReview(ctx, author)
	id := review.ID.Hex()

	root, err := f.commentSvc.AddComment(ctx, id, commenter, &models.CreateCommentRequest{Text: "root"})
	if err != nil {
		t.Fatalf("AddComment: %v", err)
	}
	if _, err := f.commentSvc.AddComment(ctx, id, commenter, &models.CreateCommentRequest{Text: "reply", ParentID: &root.ID}); err != nil {
		t.Fatalf("AddComment reply: %v", err)
	}
	if _, _, err := f.reviewSvc.SetReviewLike(ctx, id, commenter, true); err != nil {
		t.Fatalf("SetReviewLike: %v", err)
	}

	if err := f.reviewSvc.DeleteReview(ctx, id, author); err != nil {
		t.Fatalf("DeleteReview: %v", err)
	}

	if _, err := f.reviews.GetByID(ctx, id); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("review still present: %v", err)
	}
	if remaining, _ := f.comments.GetByReviewID(ctx, id); len(remaining) != 0 {
		t.Fatalf("comments survived: %d", len(remaining))
	}
	if acts, _, _ := f.activities.List(1, 50); len(acts) != 0 {
		t.Fatalf("activities referencing the review survived: %+v", acts)
	}
	if n := len(f.notifications.forRecipient(author.ID)); n != 0 {
		t.Fatalf("notifications referencing the review survived: %d", n)
	}
}

func TestDeleteReviewAuthorization(t *testing.T) {
	ctx := context.Background()
	author := testUser(1, "alice")
	stranger := testUser(2, "bob")
	admin := testAdmin(3, "root")
	f := newFixture(author, stranger, admin)
	review := f.seedReview(ctx, author)

	if err := f.reviewSvc.DeleteReview(ctx, review.ID.Hex(), stranger); !errors.Is(err, apperrors.ErrAuthorization) {
		t.Fatalf("expected authorization error, got %v", err)
	}
	if err := f.reviewSvc.DeleteReview(ctx, review.ID.Hex(), admin); err != nil {
		t.Fatalf("admin delete failed: %v", err)
	}
}
