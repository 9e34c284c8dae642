package storage

import (
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mnewsapp/mnews-server/internal/models"
)

// BuildArticleQuery превращает параметры фильтрации и пагинации в
// предикат запроса к коллекции articles и настройки выборки.
//
// Публичные пути всегда видят только опубликованные статьи; выборка
// по автору (включая черновики) задаётся полем AuthorEmail. Фильтры
// складываются по И. Пользовательский ввод экранируется перед
// подстановкой в регулярное выражение.
func BuildArticleQuery(f models.ArticleFilter, p models.Pagination) (bson.M, *options.FindOptions) {
	query := bson.M{}

	if f.AuthorEmail != "" {
		query["author.email"] = f.AuthorEmail
	} else {
		query["status"] = models.StatusPublished
	}
	if f.Search != "" {
		query["title"] = bson.M{"$regex": regexp.QuoteMeta(f.Search), "$options": "i"}
	}
	if f.Publisher != "" {
		query["publisher.name"] = bson.M{"$regex": regexp.QuoteMeta(f.Publisher), "$options": "i"}
	}
	if f.Tag != "" {
		query["tags"] = f.Tag
	}
	if f.PremiumOnly {
		query["isPremium"] = true
	}

	page, limit := p.Page, p.Limit
	if page < 0 {
		page = 0
	}
	if limit <= 0 {
		limit = models.DefaultPageLimit
	}

	opts := options.Find().
		SetSkip(int64(page) * int64(limit)).
		SetLimit(int64(limit)).
		SetSort(bson.D{{Key: "_id", Value: -1}})

	return query, opts
}
