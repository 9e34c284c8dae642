package storage

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/mnewsapp/mnews-server/internal/models"
)

// CreatePublisher вставляет нового издателя. Имя уникально.
func (s *Storage) CreatePublisher(ctx context.Context, publisher models.Publisher) (string, error) {
	const op = "storage.CreatePublisher"

	res, err := s.Db.Collection(CollPublishers).InsertOne(ctx, publisher)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", fmt.Errorf("%s: %w", op, ErrAlreadyExists)
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("%s: unexpected inserted id type", op)
	}
	return oid.Hex(), nil
}

// ListPublishers возвращает всех издателей.
func (s *Storage) ListPublishers(ctx context.Context) ([]*models.Publisher, error) {
	const op = "storage.ListPublishers"

	cursor, err := s.Db.Collection(CollPublishers).Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	var result []*models.Publisher
	if err = cursor.All(ctx, &result); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// CountArticlesByPublisher считает опубликованные статьи в разрезе
// издателей агрегацией по коллекции articles.
func (s *Storage) CountArticlesByPublisher(ctx context.Context) ([]*models.PublisherStat, error) {
	const op = "storage.CountArticlesByPublisher"

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"status": models.StatusPublished}}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id":   "$publisher.name",
			"count": bson.M{"$sum": 1},
		}}},
		bson.D{{Key: "$sort", Value: bson.M{"count": -1}}},
	}

	cursor, err := s.Db.Collection(CollArticles).Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	var result []*models.PublisherStat
	if err = cursor.All(ctx, &result); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
