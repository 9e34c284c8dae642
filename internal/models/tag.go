package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Tag представляет тег в коллекции tags.
type Tag struct {
	ID   primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name string             `bson:"name" json:"name"`
}

// DummyTag используется для приёма нового тега из JSON-запроса.
type DummyTag struct {
	Name string `json:"name" validate:"required"`
}
