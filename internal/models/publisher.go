package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Publisher представляет издателя в коллекции publishers. Имя уникально.
type Publisher struct {
	ID   primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name string             `bson:"name" json:"name"`
	Logo string             `bson:"logo" json:"logo"`
}

// DummyPublisher используется для приёма данных нового издателя из JSON-запроса.
type DummyPublisher struct {
	Name string `json:"name" validate:"required"`
	Logo string `json:"logo" validate:"required"`
}

// PublisherStat издатель с количеством опубликованных статей и долей
// от общего числа публикаций. Результат агрегации по коллекции articles.
type PublisherStat struct {
	Name       string  `bson:"_id" json:"name"`
	Count      int64   `bson:"count" json:"count"`
	Percentage float64 `bson:"-" json:"percentage"`
}
