package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Статусы статьи. Черновики видны только автору и администратору.
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
)

// Author встроенные данные автора статьи. Email ссылается на
// существующего пользователя по соглашению, без внешнего ключа.
type Author struct {
	Name  string `bson:"name" json:"name"`
	Email string `bson:"email" json:"email"`
}

// ArticlePublisher встроенные данные издателя внутри статьи.
type ArticlePublisher struct {
	Name string `bson:"name" json:"name"`
}

// Article представляет статью в коллекции articles.
type Article struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Title     string             `bson:"title" json:"title"`
	Body      string             `bson:"body" json:"body"`
	Image     string             `bson:"image,omitempty" json:"image,omitempty"`
	Author    Author             `bson:"author" json:"author"`
	Publisher ArticlePublisher   `bson:"publisher" json:"publisher"`
	Tags      []string           `bson:"tags" json:"tags"`
	Status    string             `bson:"status" json:"status"`
	IsPremium bool               `bson:"isPremium" json:"isPremium"`
	Views     int64              `bson:"views" json:"views"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// DummyArticle используется для приёма данных новой статьи из JSON-запроса.
// Автор в запросе игнорируется и всегда берётся из проверенного токена.
type DummyArticle struct {
	Title     string   `json:"title" validate:"required"`
	Body      string   `json:"body" validate:"required"`
	Image     string   `json:"image,omitempty"`
	Publisher string   `json:"publisher" validate:"required"`
	Tags      []string `json:"tags" validate:"required,min=1"`
}

// DummyArticleUpdate допустимые к изменению поля статьи.
// Статус, признак premium, счётчик просмотров и автор сюда не входят:
// они меняются только отдельными админскими операциями.
type DummyArticleUpdate struct {
	Title     *string  `json:"title,omitempty"`
	Body      *string  `json:"body,omitempty"`
	Image     *string  `json:"image,omitempty"`
	Publisher *string  `json:"publisher,omitempty"`
	Tags      []string `json:"tags,omitempty"`
}
