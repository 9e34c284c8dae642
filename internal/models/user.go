// Package models содержит доменные структуры приложения mNews,
// а также вспомогательные типы для приёма данных из JSON-запросов.
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Роли пользователей.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User представляет зарегистрированного пользователя системы.
// Email уникален и служит ключом: повторная регистрация с тем же
// email не создаёт второй документ.
type User struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Email             string             `bson:"email" json:"email"`
	Name              string             `bson:"name" json:"name"`
	Role              string             `bson:"role" json:"role"`
	IsPremium         bool               `bson:"isPremium" json:"isPremium"`
	SubscriptionStart *time.Time         `bson:"subscriptionStart,omitempty" json:"subscriptionStart,omitempty"`
	// SubscriptionMinutes длительность подписки; 0 — подписки нет.
	SubscriptionMinutes int       `bson:"subscriptionMinutes" json:"subscriptionMinutes"`
	CreatedAt           time.Time `bson:"createdAt" json:"createdAt"`
}

// SubscriptionExpired сообщает, истекла ли оплаченная подписка на момент now.
func (u *User) SubscriptionExpired(now time.Time) bool {
	if !u.IsPremium || u.SubscriptionStart == nil {
		return false
	}
	end := u.SubscriptionStart.Add(time.Duration(u.SubscriptionMinutes) * time.Minute)
	return now.After(end)
}

// DummyUser используется для приёма данных регистрации из JSON-запроса.
type DummyUser struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name" validate:"required"`
}

// Identity аутентифицированный субъект, извлечённый из проверенного токена.
// Не сохраняется в базе, живёт в пределах одного запроса.
type Identity struct {
	Email     string
	IssuedAt  time.Time
	ExpiresAt time.Time
}
