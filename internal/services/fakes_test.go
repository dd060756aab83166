package services

import (
	"context"
	"sync"
	"time"

	"github.com/xcessv/beefboard/internal/apperrors"
	"github.com/xcessv/beefboard/internal/models"
	"github.com/xcessv/beefboard/internal/realtime"
	"github.com/xcessv/beefboard/pkg/media"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory repository fakes. They mimic the semantics the real
// implementations get from the databases: like mutations report whether the
// membership set actually changed, missing records map to apperrors.ErrNotFound
// and delete sweeps match weak references the same way the SQL does.

type fakeCommentRepo struct {
	mu       sync.Mutex
	comments []models.Comment

	insertErr error
	deleteErr error
}

func (r *fakeCommentRepo) Insert(ctx context.Context, comment *models.Comment) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.comments = append(r.comments, *comment)
	return nil
}

func (r *fakeCommentRepo) GetByID(ctx context.Context, id string) (*models.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.comments {
		if r.comments[i].ID == id {
			c := r.comments[i]
			return &c, nil
		}
	}
	return nil, apperrors.NotFoundf("comment %s not found", id)
}

func (r *fakeCommentRepo) GetByReviewID(ctx context.Context, reviewID string) ([]models.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Comment
	for i := range r.comments {
		if r.comments[i].ReviewID == reviewID {
			out = append(out, r.comments[i])
		}
	}
	return out, nil
}

func (r *fakeCommentRepo) DeleteByIDs(ctx context.Context, ids []string) (int64, error) {
	if r.deleteErr != nil {
		return 0, r.deleteErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	drop := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}
	var kept []models.Comment
	var deleted int64
	for i := range r.comments {
		if _, ok := drop[r.comments[i].ID]; ok {
			deleted++
			continue
		}
		kept = append(kept, r.comments[i])
	}
	r.comments = kept
	return deleted, nil
}

func (r *fakeCommentRepo) AddLike(ctx context.Context, commentID string, like models.LikeRecord) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.comments {
		if r.comments[i].ID != commentID {
			continue
		}
		if r.comments[i].LikedBy(like.UserID) {
			return false, nil
		}
		r.comments[i].Likes = append(r.comments[i].Likes, like)
		return true, nil
	}
	return false, nil
}

func (r *fakeCommentRepo) RemoveLike(ctx context.Context, commentID string, userID uint) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.comments {
		if r.comments[i].ID != commentID {
			continue
		}
		for j, l := range r.comments[i].Likes {
			if l.UserID == userID {
				r.comments[i].Likes = append(r.comments[i].Likes[:j], r.comments[i].Likes[j+1:]...)
				return true, nil
			}
		}
		return false, nil
	}
	return false, nil
}

type fakeReviewRepo struct {
	mu      sync.Mutex
	reviews map[string]*models.Review

	adjustErr error
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{reviews: make(map[string]*models.Review)}
}

func (r *fakeReviewRepo) Create(ctx context.Context, review *models.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	review.ID = primitive.NewObjectID()
	review.CreatedAt = time.Now().UTC()
	review.UpdatedAt = review.CreatedAt
	if review.Likes == nil {
		review.Likes = []models.LikeRecord{}
	}
	cp := *review
	r.reviews[review.ID.Hex()] = &cp
	return nil
}

func (r *fakeReviewRepo) GetByID(ctx context.Context, id string) (*models.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	review, ok := r.reviews[id]
	if !ok {
		return nil, apperrors.NotFoundf("review %s not found", id)
	}
	cp := *review
	return &cp, nil
}

func (r *fakeReviewRepo) List(ctx context.Context, skip, limit int64) ([]models.Review, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Review
	for _, review := range r.reviews {
		out = append(out, *review)
	}
	return out, int64(len(r.reviews)), nil
}

func (r *fakeReviewRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.reviews[id]; !ok {
		return apperrors.NotFoundf("review %s not found", id)
	}
	delete(r.reviews, id)
	return nil
}

func (r *fakeReviewRepo) AddLike(ctx context.Context, reviewID string, like models.LikeRecord) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	review, ok := r.reviews[reviewID]
	if !ok {
		return false, nil
	}
	if review.LikedBy(like.UserID) {
		return false, nil
	}
	review.Likes = append(review.Likes, like)
	return true, nil
}

func (r *fakeReviewRepo) RemoveLike(ctx context.Context, reviewID string, userID uint) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	review, ok := r.reviews[reviewID]
	if !ok {
		return false, nil
	}
	for j, l := range review.Likes {
		if l.UserID == userID {
			review.Likes = append(review.Likes[:j], review.Likes[j+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeReviewRepo) AdjustCommentsCount(ctx context.Context, reviewID string, delta int64) error {
	if r.adjustErr != nil {
		return r.adjustErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if review, ok := r.reviews[reviewID]; ok {
		review.CommentsCount += delta
	}
	return nil
}

type fakeActivityRepo struct {
	mu         sync.Mutex
	activities []models.Activity
	nextID     uint

	createErr error
}

func (r *fakeActivityRepo) Create(activity *models.Activity) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	activity.ID = r.nextID
	r.activities = append(r.activities, *activity)
	return nil
}

func (r *fakeActivityRepo) List(page, limit int) ([]models.Activity, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Activity, len(r.activities))
	copy(out, r.activities)
	return out, int64(len(out)), nil
}

func (r *fakeActivityRepo) DeleteByTargetIDs(targetIDs []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	drop := make(map[string]struct{}, len(targetIDs))
	for _, id := range targetIDs {
		drop[id] = struct{}{}
	}
	var kept []models.Activity
	for i := range r.activities {
		_, byTarget := drop[r.activities[i].Target.ID]
		_, byParent := drop[r.activities[i].Target.ParentID]
		if byTarget || byParent {
			continue
		}
		kept = append(kept, r.activities[i])
	}
	r.activities = kept
	return nil
}

func (r *fakeActivityRepo) byType(activityType string) []models.Activity {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Activity
	for i := range r.activities {
		if r.activities[i].Type == activityType {
			out = append(out, r.activities[i])
		}
	}
	return out
}

type fakeNotificationRepo struct {
	mu            sync.Mutex
	notifications []models.Notification
	nextID        uint

	createErr      error
	unreadCountErr error
}

func (r *fakeNotificationRepo) Create(notification *models.Notification) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	notification.ID = r.nextID
	notification.CreatedAt = time.Now().UTC()
	r.notifications = append(r.notifications, *notification)
	return nil
}

func (r *fakeNotificationRepo) GetByRecipientID(recipientID uint, page, limit int, typeFilter string) ([]models.Notification, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Notification
	for i := range r.notifications {
		n := r.notifications[i]
		if n.RecipientID != recipientID {
			continue
		}
		if typeFilter != "" && n.Type != typeFilter {
			continue
		}
		out = append(out, n)
	}
	return out, int64(len(out)), nil
}

func (r *fakeNotificationRepo) GetUnreadCount(recipientID uint) (int64, error) {
	if r.unreadCountErr != nil {
		return 0, r.unreadCountErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for i := range r.notifications {
		if r.notifications[i].RecipientID == recipientID && !r.notifications[i].IsRead {
			count++
		}
	}
	return count, nil
}

func (r *fakeNotificationRepo) MarkAsRead(notificationID, recipientID uint) (*models.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.notifications {
		if r.notifications[i].ID == notificationID && r.notifications[i].RecipientID == recipientID {
			r.notifications[i].IsRead = true
			n := r.notifications[i]
			return &n, nil
		}
	}
	return nil, apperrors.NotFoundf("notification %d not found", notificationID)
}

func (r *fakeNotificationRepo) MarkAllAsRead(recipientID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.notifications {
		if r.notifications[i].RecipientID == recipientID {
			r.notifications[i].IsRead = true
		}
	}
	return nil
}

func (r *fakeNotificationRepo) Delete(notificationID, recipientID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.notifications {
		if r.notifications[i].ID == notificationID && r.notifications[i].RecipientID == recipientID {
			r.notifications = append(r.notifications[:i], r.notifications[i+1:]...)
			return nil
		}
	}
	return apperrors.NotFoundf("notification %d not found", notificationID)
}

func (r *fakeNotificationRepo) DeleteAllForRecipient(recipientID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	var kept []models.Notification
	for i := range r.notifications {
		if r.notifications[i].RecipientID != recipientID {
			kept = append(kept, r.notifications[i])
		}
	}
	r.notifications = kept
	return nil
}

func (r *fakeNotificationRepo) DeleteByTargetIDs(targetIDs []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	drop := make(map[string]struct{}, len(targetIDs))
	for _, id := range targetIDs {
		drop[id] = struct{}{}
	}
	var kept []models.Notification
	for i := range r.notifications {
		if _, ok := drop[r.notifications[i].Target.ID]; ok {
			continue
		}
		kept = append(kept, r.notifications[i])
	}
	r.notifications = kept
	return nil
}

func (r *fakeNotificationRepo) forRecipient(recipientID uint) []models.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Notification
	for i := range r.notifications {
		if r.notifications[i].RecipientID == recipientID {
			out = append(out, r.notifications[i])
		}
	}
	return out
}

type fakeNewsRepo struct {
	mu   sync.Mutex
	news map[string]*models.News
}

func newFakeNewsRepo() *fakeNewsRepo {
	return &fakeNewsRepo{news: make(map[string]*models.News)}
}

func (r *fakeNewsRepo) Create(ctx context.Context, news *models.News) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	news.ID = primitive.NewObjectID()
	news.CreatedAt = time.Now().UTC()
	news.UpdatedAt = news.CreatedAt
	if news.Likes == nil {
		news.Likes = []models.LikeRecord{}
	}
	cp := *news
	r.news[news.ID.Hex()] = &cp
	return nil
}

func (r *fakeNewsRepo) GetByID(ctx context.Context, id string) (*models.News, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	news, ok := r.news[id]
	if !ok {
		return nil, apperrors.NotFoundf("news %s not found", id)
	}
	cp := *news
	return &cp, nil
}

func (r *fakeNewsRepo) List(ctx context.Context, skip, limit int64) ([]models.News, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.News
	for _, n := range r.news {
		out = append(out, *n)
	}
	return out, int64(len(r.news)), nil
}

func (r *fakeNewsRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.news[id]; !ok {
		return apperrors.NotFoundf("news %s not found", id)
	}
	delete(r.news, id)
	return nil
}

func (r *fakeNewsRepo) AddLike(ctx context.Context, newsID string, like models.LikeRecord) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	news, ok := r.news[newsID]
	if !ok {
		return false, nil
	}
	if news.LikedBy(like.UserID) {
		return false, nil
	}
	news.Likes = append(news.Likes, like)
	return true, nil
}

func (r *fakeNewsRepo) RemoveLike(ctx context.Context, newsID string, userID uint) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	news, ok := r.news[newsID]
	if !ok {
		return false, nil
	}
	for j, l := range news.Likes {
		if l.UserID == userID {
			news.Likes = append(news.Likes[:j], news.Likes[j+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeNewsRepo) SetPollVote(ctx context.Context, newsID string, optionIndex int, userID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	news, ok := r.news[newsID]
	if !ok || news.Poll == nil {
		return apperrors.NotFoundf("news %s not found", newsID)
	}
	for i := range news.Poll.Options {
		voters := news.Poll.Options[i].Voters
		for j, v := range voters {
			if v == userID {
				news.Poll.Options[i].Voters = append(voters[:j], voters[j+1:]...)
				break
			}
		}
	}
	news.Poll.Options[optionIndex].Voters = append(news.Poll.Options[optionIndex].Voters, userID)
	return nil
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uint]*models.User
}

func newFakeUserRepo(users ...*models.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[uint]*models.User)}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) CreateUser(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetUserByID(id uint) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, apperrors.NotFoundf("user %d not found", id)
	}
	return u, nil
}

func (r *fakeUserRepo) GetUserByEmail(email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, apperrors.NotFoundf("user %s not found", email)
}

func (r *fakeUserRepo) GetUserByFirebaseUID(uid string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.FirebaseUID == uid {
			return u, nil
		}
	}
	return nil, apperrors.NotFoundf("user %s not found", uid)
}

func (r *fakeUserRepo) UpdateUser(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[user.ID] = user
	return nil
}

// fixture wires a full service graph over the fakes, mirroring the wiring in
// the router.
type fixture struct {
	comments      *fakeCommentRepo
	reviews       *fakeReviewRepo
	news          *fakeNewsRepo
	users         *fakeUserRepo
	activities    *fakeActivityRepo
	notifications *fakeNotificationRepo
	hub           *realtime.Hub

	notificationSvc *NotificationService
	activitySvc     *ActivityService
	fanout          *Fanout
	commentSvc      *CommentService
	reviewSvc       *ReviewService
	newsSvc         *NewsService
}

func newFixture(users ...*models.User) *fixture {
	f := &fixture{
		comments:      &fakeCommentRepo{},
		reviews:       newFakeReviewRepo(),
		news:          newFakeNewsRepo(),
		users:         newFakeUserRepo(users...),
		activities:    &fakeActivityRepo{},
		notifications: &fakeNotificationRepo{},
		hub:           realtime.NewHub(),
	}
	f.notificationSvc = NewNotificationService(f.notifications, f.hub)
	f.activitySvc = NewActivityService(f.activities, f.notificationSvc)
	f.fanout = NewFanout(f.activitySvc)
	f.commentSvc = NewCommentService(f.comments, f.reviews, f.notificationSvc, f.activitySvc, f.fanout, media.NoopCleaner{})
	f.reviewSvc = NewReviewService(f.reviews, f.comments, f.notificationSvc, f.activitySvc, f.fanout, media.NoopCleaner{})
	f.newsSvc = NewNewsService(f.news, f.users, f.fanout)
	return f
}

func (f *fixture) seedReview(ctx context.Context, author *models.User) *models.Review {
	review := &models.Review{
		UserID:          author.ID,
		UserDisplayName: author.DisplayName,
		Beefery:         "Lou's Beef Hut",
		Rating:          8.5,
		Content:         "solid beef",
	}
	if err := f.reviews.Create(ctx, review); err != nil {
		panic(err)
	}
	return review
}

func testUser(id uint, name string) *models.User {
	return &models.User{ID: id, DisplayName: name, Email: name + "@example.com", Role: models.RoleUser}
}

func testAdmin(id uint, name string) *models.User {
	u := testUser(id, name)
	u.Role = models.RoleAdmin
	return u
}
