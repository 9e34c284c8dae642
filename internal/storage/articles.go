package storage

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mnewsapp/mnews-server/internal/models"
)

// CreateArticle вставляет новую статью и возвращает её ID.
func (s *Storage) CreateArticle(ctx context.Context, article models.Article) (string, error) {
	const op = "storage.CreateArticle"

	res, err := s.Db.Collection(CollArticles).InsertOne(ctx, article)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("%s: unexpected inserted id type", op)
	}
	return oid.Hex(), nil
}

// ReadArticle возвращает статью по её ID.
func (s *Storage) ReadArticle(ctx context.Context, id string) (*models.Article, error) {
	const op = "storage.ReadArticle"

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidID)
	}

	var article models.Article
	err = s.Db.Collection(CollArticles).FindOne(ctx, bson.M{"_id": oid}).Decode(&article)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &article, nil
}

// IncrementArticleViews атомарно увеличивает счётчик просмотров
// опубликованной статьи и возвращает документ после обновления.
// Черновики под фильтр не попадают и наружу не отдаются. Гонка двух
// конкурентных инкрементов разрешается самой базой.
func (s *Storage) IncrementArticleViews(ctx context.Context, id string) (*models.Article, error) {
	const op = "storage.IncrementArticleViews"

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidID)
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var article models.Article
	err = s.Db.Collection(CollArticles).FindOneAndUpdate(ctx,
		bson.M{"_id": oid, "status": models.StatusPublished},
		bson.M{"$inc": bson.M{"views": 1}},
		opts,
	).Decode(&article)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &article, nil
}

// ListArticles возвращает страницу статей по предикату и общее число
// подходящих документов. Счёт и выборка выполняются двумя запросами,
// чтобы клиент мог построить постраничную навигацию.
func (s *Storage) ListArticles(ctx context.Context, filter models.ArticleFilter, p models.Pagination) ([]*models.Article, int64, error) {
	const op = "storage.ListArticles"

	query, opts := BuildArticleQuery(filter, p)
	coll := s.Db.Collection(CollArticles)

	total, err := coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	cursor, err := coll.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}
	var result []*models.Article
	if err = cursor.All(ctx, &result); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}
	return result, total, nil
}

// UpdateArticle применяет частичное обновление разрешённых полей статьи
// и возвращает количество изменённых документов. Поля вне allow-list
// (статус, isPremium, views, автор) этим путём изменить нельзя.
func (s *Storage) UpdateArticle(ctx context.Context, id string, upd models.DummyArticleUpdate) (int64, error) {
	const op = "storage.UpdateArticle"

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, ErrInvalidID)
	}

	set := bson.M{}
	if upd.Title != nil {
		set["title"] = *upd.Title
	}
	if upd.Body != nil {
		set["body"] = *upd.Body
	}
	if upd.Image != nil {
		set["image"] = *upd.Image
	}
	if upd.Publisher != nil {
		set["publisher"] = models.ArticlePublisher{Name: *upd.Publisher}
	}
	if upd.Tags != nil {
		set["tags"] = upd.Tags
	}
	if len(set) == 0 {
		return 0, nil
	}

	res, err := s.Db.Collection(CollArticles).UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": set},
	)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return res.MatchedCount, nil
}

// SetArticleStatus выставляет статус статьи (draft или published).
func (s *Storage) SetArticleStatus(ctx context.Context, id, status string) (int64, error) {
	const op = "storage.SetArticleStatus"

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, ErrInvalidID)
	}
	res, err := s.Db.Collection(CollArticles).UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"status": status}},
	)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return res.MatchedCount, nil
}

// SetArticlePremium переключает признак premium у статьи.
func (s *Storage) SetArticlePremium(ctx context.Context, id string, premium bool) (int64, error) {
	const op = "storage.SetArticlePremium"

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, ErrInvalidID)
	}
	res, err := s.Db.Collection(CollArticles).UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"isPremium": premium}},
	)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return res.MatchedCount, nil
}

// RemoveArticle удаляет статью по ID и возвращает количество удалённых документов.
func (s *Storage) RemoveArticle(ctx context.Context, id string) (int64, error) {
	const op = "storage.RemoveArticle"

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, ErrInvalidID)
	}
	res, err := s.Db.Collection(CollArticles).DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return res.DeletedCount, nil
}
