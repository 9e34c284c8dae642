package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Review представляет отзыв пользователя в коллекции reviews.
type Review struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Author    Author             `bson:"author" json:"author"`
	Text      string             `bson:"text" json:"text"`
	Rating    int                `bson:"rating" json:"rating"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// DummyReview используется для приёма нового отзыва из JSON-запроса.
// Автор берётся из проверенного токена.
type DummyReview struct {
	Text   string `json:"text" validate:"required"`
	Rating int    `json:"rating" validate:"required,gte=1,lte=5"`
}
