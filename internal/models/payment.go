package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Payment представляет запись об оплате подписки в коллекции payments.
// На пользователя существует не более одной записи: повторная покупка
// замещает предыдущую, а не добавляется к ней.
type Payment struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Email     string             `bson:"email" json:"email"`
	Amount    int64              `bson:"amount" json:"amount"`
	StartTime time.Time          `bson:"startTime" json:"startTime"`
	// Minutes длительность купленной подписки в минутах.
	Minutes int `bson:"minutes" json:"minutes"`
}

// DummyPayment используется для приёма данных оплаты из JSON-запроса.
// Email плательщика берётся из проверенного токена, не из тела запроса.
type DummyPayment struct {
	Amount  int64 `json:"amount" validate:"required,gt=0"`
	Minutes int   `json:"minutes" validate:"required,gt=0"`
}

// DummyPaymentIntent параметры создания платёжного намерения у провайдера.
type DummyPaymentIntent struct {
	Amount   int64  `json:"amount" validate:"required,gt=0"`
	Currency string `json:"currency" validate:"required,len=3"`
}
