package models

// ArticleFilter параметры фильтрации списка статей, уже прошедшие
// разбор и очистку. Пустое значение — фильтр не применяется.
// Фильтры складываются по И: поиск по заголовку, издатель и тег
// сужают выборку одновременно.
type ArticleFilter struct {
	Search      string // подстрока заголовка, без учёта регистра
	Publisher   string // подстрока имени издателя, без учёта регистра
	Tag         string // точное вхождение в множество тегов статьи
	PremiumOnly bool   // только статьи с isPremium == true
	AuthorEmail string // только статьи этого автора (включая черновики)
}

// Pagination нулевая страница и размер страницы списка.
type Pagination struct {
	Page  int
	Limit int
}

// DefaultPageLimit размер страницы, когда клиент не передал limit
// или передал нечисловое значение.
const DefaultPageLimit = 10
