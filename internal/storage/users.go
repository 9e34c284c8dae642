package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mnewsapp/mnews-server/internal/models"
)

// CreateUser вставляет нового пользователя, если email ещё не занят.
// При существующем email возвращает ErrAlreadyExists, второй документ
// не создаётся.
func (s *Storage) CreateUser(ctx context.Context, user models.User) (string, error) {
	const op = "storage.CreateUser"

	coll := s.Db.Collection(CollUsers)

	err := coll.FindOne(ctx, bson.M{"email": user.Email}).Err()
	if err == nil {
		return "", fmt.Errorf("%s: %w", op, ErrAlreadyExists)
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	res, err := coll.InsertOne(ctx, user)
	if err != nil {
		// Уникальный индекс по email закрывает гонку двух конкурентных вставок.
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

// FindUserByEmail возвращает пользователя по email.
func (s *Storage) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "storage.FindUserByEmail"

	var user models.User
	err := s.Db.Collection(CollUsers).FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &user, nil
}

// ListUsers возвращает страницу пользователей и их общее количество.
func (s *Storage) ListUsers(ctx context.Context, p models.Pagination) ([]*models.User, int64, error) {
	const op = "storage.ListUsers"

	page, limit := p.Page, p.Limit
	if page < 0 {
		page = 0
	}
	if limit <= 0 {
		limit = models.DefaultPageLimit
	}

	coll := s.Db.Collection(CollUsers)
	total, err := coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	opts := options.Find().
		SetSkip(int64(page) * int64(limit)).
		SetLimit(int64(limit)).
		SetSort(bson.D{{Key: "_id", Value: 1}})
	cursor, err := coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}
	var result []*models.User
	if err = cursor.All(ctx, &result); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}
	return result, total, nil
}

// SetUserRole выставляет роль пользователя и возвращает количество
// изменённых документов.
func (s *Storage) SetUserRole(ctx context.Context, email, role string) (int64, error) {
	const op = "storage.SetUserRole"

	res, err := s.Db.Collection(CollUsers).UpdateOne(ctx,
		bson.M{"email": email},
		bson.M{"$set": bson.M{"role": role}},
	)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return res.MatchedCount, nil
}

// SetUserPremium выставляет или снимает премиум-статус пользователя
// вместе с параметрами подписки.
func (s *Storage) SetUserPremium(ctx context.Context, email string, premium bool, start *time.Time, minutes int) (int64, error) {
	const op = "storage.SetUserPremium"

	res, err := s.Db.Collection(CollUsers).UpdateOne(ctx,
		bson.M{"email": email},
		bson.M{"$set": bson.M{
			"isPremium":           premium,
			"subscriptionStart":   start,
			"subscriptionMinutes": minutes,
		}},
	)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return res.MatchedCount, nil
}
