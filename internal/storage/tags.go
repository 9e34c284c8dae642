package storage

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mnewsapp/mnews-server/internal/models"
)

// CreateTag вставляет новый тег и возвращает его ID.
func (s *Storage) CreateTag(ctx context.Context, tag models.Tag) (string, error) {
	const op = "storage.CreateTag"

	res, err := s.Db.Collection(CollTags).InsertOne(ctx, tag)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("%s: unexpected inserted id type", op)
	}
	return oid.Hex(), nil
}

// ListTags возвращает все теги.
func (s *Storage) ListTags(ctx context.Context) ([]*models.Tag, error) {
	const op = "storage.ListTags"

	cursor, err := s.Db.Collection(CollTags).Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	var result []*models.Tag
	if err = cursor.All(ctx, &result); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
