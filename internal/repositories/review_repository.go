package repositories

import (
	"context"
	"time"

	"github.com/xcessv/beefboard/internal/apperrors"
	"github.com/xcessv/beefboard/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ReviewRepository defines the interface for review (subject) storage.
type ReviewRepository interface {
	Create(ctx context.Context, review *models.Review) error
	GetByID(ctx context.Context, id string) (*models.Review, error)
	List(ctx context.Context, skip, limit int64) ([]models.Review, int64, error)
	Delete(ctx context.Context, id string) error
	AddLike(ctx context.Context, reviewID string, like models.LikeRecord) (bool, error)
	RemoveLike(ctx context.Context, reviewID string, userID uint) (bool, error)
	// AdjustCommentsCount shifts the cached counter by delta (may be negative).
	AdjustCommentsCount(ctx context.Context, reviewID string, delta int64) error
}

// MongoReviewRepository implements ReviewRepository for MongoDB
type MongoReviewRepository struct {
	collection *mongo.Collection
}

func NewMongoReviewRepository(db *mongo.Database) *MongoReviewRepository {
	return &MongoReviewRepository{collection: db.Collection("reviews")}
}

func objectID(id string) (primitive.ObjectID, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, apperrors.Validationf("invalid id format: %s", id)
	}
	return objID, nil
}

func (r *MongoReviewRepository) Create(ctx context.Context, review *models.Review) error {
	review.ID = primitive.NewObjectID()
	review.CreatedAt = time.Now().UTC()
	review.UpdatedAt = review.CreatedAt
	if review.Likes == nil {
		review.Likes = []models.LikeRecord{}
	}
	_, err := r.collection.InsertOne(ctx, review)
	return err
}

func (r *MongoReviewRepository) GetByID(ctx context.Context, id string) (*models.Review, error) {
	objID, err := objectID(id)
	if err != nil {
		return nil, err
	}

	var review models.Review
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&review)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperrors.NotFoundf("review %s not found", id)
		}
		return nil, err
	}
	return &review, nil
}

func (r *MongoReviewRepository) List(ctx context.Context, skip, limit int64) ([]models.Review, int64, error) {
	total, err := r.collection.CountDocuments(ctx, bson.D{})
	if err != nil {
		return nil, 0, err
	}

	findOptions := options.Find().SetSkip(skip).SetLimit(limit).SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.D{}, findOptions)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var reviews []models.Review
	if err = cursor.All(ctx, &reviews); err != nil {
		return nil, 0, err
	}
	return reviews, total, nil
}

func (r *MongoReviewRepository) Delete(ctx context.Context, id string) error {
	objID, err := objectID(id)
	if err != nil {
		return err
	}

	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return apperrors.NotFoundf("review %s not found", id)
	}
	return nil
}

func (r *MongoReviewRepository) AddLike(ctx context.Context, reviewID string, like models.LikeRecord) (bool, error) {
	objID, err := objectID(reviewID)
	if err != nil {
		return false, err
	}

	res, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": objID, "likes.user_id": bson.M{"$ne": like.UserID}},
		bson.M{"$push": bson.M{"likes": like}},
	)
	if err != nil {
		return false, err
	}
	return res.ModifiedCount > 0, nil
}

func (r *MongoReviewRepository) RemoveLike(ctx context.Context, reviewID string, userID uint) (bool, error) {
	objID, err := objectID(reviewID)
	if err != nil {
		return false, err
	}

	res, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": objID},
		bson.M{"$pull": bson.M{"likes": bson.M{"user_id": userID}}},
	)
	if err != nil {
		return false, err
	}
	return res.ModifiedCount > 0, nil
}

func (r *MongoReviewRepository) AdjustCommentsCount(ctx context.Context, reviewID string, delta int64) error {
	objID, err := objectID(reviewID)
	if err != nil {
		return err
	}
	_, err = r.collection.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$inc": bson.M{"comments_count": delta}})
	return err
}
