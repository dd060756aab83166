package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/xcessv/beefboard/internal/apperrors"
	"github.com/xcessv/beefboard/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// NewsRepository defines the interface for news item storage.
type NewsRepository interface {
	Create(ctx context.Context, news *models.News) error
	GetByID(ctx context.Context, id string) (*models.News, error)
	List(ctx context.Context, skip, limit int64) ([]models.News, int64, error)
	Delete(ctx context.Context, id string) error
	AddLike(ctx context.Context, newsID string, like models.LikeRecord) (bool, error)
	RemoveLike(ctx context.Context, newsID string, userID uint) (bool, error)
	// SetPollVote moves the user's vote to optionIndex: the id is pulled from
	// every option's voter list, then added to the chosen one.
	SetPollVote(ctx context.Context, newsID string, optionIndex int, userID uint) error
}

// MongoNewsRepository implements NewsRepository for MongoDB
type MongoNewsRepository struct {
	collection *mongo.Collection
}

func NewMongoNewsRepository(db *mongo.Database) *MongoNewsRepository {
	return &MongoNewsRepository{collection: db.Collection("news")}
}

func (r *MongoNewsRepository) Create(ctx context.Context, news *models.News) error {
	news.ID = primitive.NewObjectID()
	news.CreatedAt = time.Now().UTC()
	news.UpdatedAt = news.CreatedAt
	if news.Likes == nil {
		news.Likes = []models.LikeRecord{}
	}
	_, err := r.collection.InsertOne(ctx, news)
	return err
}

func (r *MongoNewsRepository) GetByID(ctx context.Context, id string) (*models.News, error) {
	objID, err := objectID(id)
	if err != nil {
		return nil, err
	}

	var news models.News
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&news)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperrors.NotFoundf("news %s not found", id)
		}
		return nil, err
	}
	return &news, nil
}

func (r *MongoNewsRepository) List(ctx context.Context, skip, limit int64) ([]models.News, int64, error) {
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

	var items []models.News
	if err = cursor.All(ctx, &items); err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *MongoNewsRepository) Delete(ctx context.Context, id string) error {
	objID, err := objectID(id)
	if err != nil {
		return err
	}

	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return apperrors.NotFoundf("news %s not found", id)
	}
	return nil
}

func (r *MongoNewsRepository) AddLike(ctx context.Context, newsID string, like models.LikeRecord) (bool, error) {
	objID, err := objectID(newsID)
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

func (r *MongoNewsRepository) RemoveLike(ctx context.Context, newsID string, userID uint) (bool, error) {
	objID, err := objectID(newsID)
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

func (r *MongoNewsRepository) SetPollVote(ctx context.Context, newsID string, optionIndex int, userID uint) error {
	objID, err := objectID(newsID)
	if err != nil {
		return err
	}

	// Clear any previous vote across all options, then add the new one.
	_, err = r.collection.UpdateOne(ctx,
		bson.M{"_id": objID},
		bson.M{"$pull": bson.M{"poll.options.$[].voters": userID}},
	)
	if err != nil {
		return err
	}

	field := fmt.Sprintf("poll.options.%d.voters", optionIndex)
	res, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": objID},
		bson.M{"$addToSet": bson.M{field: userID}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return apperrors.NotFoundf("news %s not found", newsID)
	}
	return nil
}
