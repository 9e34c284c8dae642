// Package storage реализует хранилище данных на основе MongoDB
// для приложения mNews. Предоставляет методы создания, чтения,
// обновления, удаления и агрегирования документов шести коллекций:
// users, articles, publishers, tags, reviews, payments.
package storage

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Имена коллекций.
const (
	CollUsers      = "users"
	CollArticles   = "articles"
	CollPublishers = "publishers"
	CollTags       = "tags"
	CollReviews    = "reviews"
	CollPayments   = "payments"
)

// Ошибки уровня хранилища.
var (
	// ErrNotFound документ с таким ключом не найден.
	ErrNotFound = errors.New("document not found")
	// ErrAlreadyExists документ с таким уникальным ключом уже есть.
	ErrAlreadyExists = errors.New("document already exists")
	// ErrInvalidID идентификатор не является корректным ObjectID.
	ErrInvalidID = errors.New("invalid document id")
)

// Storage инкапсулирует соединение с MongoDB и реализует методы
// работы с коллекциями приложения.
type Storage struct {
	Client *mongo.Client
	Db     *mongo.Database
}

// New создаёт подключение к MongoDB и инициализирует уникальные индексы.
func New(ctx context.Context, uri, database string) (*Storage, error) {
	const op = "storage.New"

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s := &Storage{
		Client: client,
		Db:     client.Database(database),
	}
	if err = s.ensureIndexes(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return s, nil
}

// ensureIndexes создаёт уникальные индексы по ключевым полям:
// один пользователь и одна запись об оплате на email, уникальное имя издателя.
func (s *Storage) ensureIndexes(ctx context.Context) error {
	unique := options.Index().SetUnique(true)

	_, err := s.Db.Collection(CollUsers).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: unique,
	})
	if err != nil {
		return err
	}
	_, err = s.Db.Collection(CollPayments).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: unique,
	})
	if err != nil {
		return err
	}
	_, err = s.Db.Collection(CollPublishers).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: unique,
	})
	return err
}

// Close закрывает соединение с базой.
func (s *Storage) Close(ctx context.Context) error {
	return s.Client.Disconnect(ctx)
}
