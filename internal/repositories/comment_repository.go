package repositories

import (
	"context"

	"github.com/xcessv/beefboard/internal/apperrors"
	"github.com/xcessv/beefboard/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// CommentRepository defines the interface for comment storage. Like mutations
// are single-document updates; MongoDB's per-document atomicity is the only
// concurrency guarantee relied on here.
type CommentRepository interface {
	Insert(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id string) (*models.Comment, error)
	GetByReviewID(ctx context.Context, reviewID string) ([]models.Comment, error)
	DeleteByIDs(ctx context.Context, ids []string) (int64, error)
	// AddLike appends the like unless the user is already a member; returns
	// whether the set changed.
	AddLike(ctx context.Context, commentID string, like models.LikeRecord) (bool, error)
	// RemoveLike pulls the user's entry; returns whether the set changed.
	RemoveLike(ctx context.Context, commentID string, userID uint) (bool, error)
}

// MongoCommentRepository implements CommentRepository for MongoDB
type MongoCommentRepository struct {
	collection *mongo.Collection
}

func NewMongoCommentRepository(db *mongo.Database) *MongoCommentRepository {
	return &MongoCommentRepository{collection: db.Collection("comments")}
}

func (r *MongoCommentRepository) Insert(ctx context.Context, comment *models.Comment) error {
	_, err := r.collection.InsertOne(ctx, comment)
	return err
}

func (r *MongoCommentRepository) GetByID(ctx context.Context, id string) (*models.Comment, error) {
	var comment models.Comment
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&comment)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperrors.NotFoundf("comment %s not found", id)
		}
		return nil, err
	}
	return &comment, nil
}

func (r *MongoCommentRepository) GetByReviewID(ctx context.Context, reviewID string) ([]models.Comment, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"review_id": reviewID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var comments []models.Comment
	if err = cursor.All(ctx, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

func (r *MongoCommentRepository) DeleteByIDs(ctx context.Context, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res, err := r.collection.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (r *MongoCommentRepository) AddLike(ctx context.Context, commentID string, like models.LikeRecord) (bool, error) {
	// Filter excludes documents already containing the user, so a concurrent
	// double-submit matches zero documents instead of duplicating the entry.
	res, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": commentID, "likes.user_id": bson.M{"$ne": like.UserID}},
		bson.M{"$push": bson.M{"likes": like}},
	)
	if err != nil {
		return false, err
	}
	return res.ModifiedCount > 0, nil
}

func (r *MongoCommentRepository) RemoveLike(ctx context.Context, commentID string, userID uint) (bool, error) {
	res, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": commentID},
		bson.M{"$pull": bson.M{"likes": bson.M{"user_id": userID}}},
	)
	if err != nil {
		return false, err
	}
	return res.ModifiedCount > 0, nil
}
