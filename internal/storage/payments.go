package storage

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mnewsapp/mnews-server/internal/models"
)

// UpsertPayment записывает оплату подписки. На email существует не
// более одного документа: повторная покупка замещает предыдущую.
func (s *Storage) UpsertPayment(ctx context.Context, payment models.Payment) error {
	const op = "storage.UpsertPayment"

	opts := options.Replace().SetUpsert(true)
	_, err := s.Db.Collection(CollPayments).ReplaceOne(ctx,
		bson.M{"email": payment.Email},
		payment,
		opts,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// FindPaymentByEmail возвращает запись об оплате по email плательщика.
func (s *Storage) FindPaymentByEmail(ctx context.Context, email string) (*models.Payment, error) {
	const op = "storage.FindPaymentByEmail"

	var payment models.Payment
	err := s.Db.Collection(CollPayments).FindOne(ctx, bson.M{"email": email}).Decode(&payment)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &payment, nil
}
