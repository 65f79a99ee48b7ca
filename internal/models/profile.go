// Package models содержит доменные структуры столовой: профили сотрудников,
// позиции меню, выбор блюд и сводки для кухни, а также структуры
// для приёма данных из JSON-запросов.
package models

import "time"

// Role роль пользователя в системе.
type Role string

const (
	// RoleEmployee сотрудник, выбирающий блюда.
	RoleEmployee Role = "employee"
	// RoleAdmin администратор, составляющий меню.
	RoleAdmin Role = "admin"
)

// Profile представляет зарегистрированного пользователя.
type Profile struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	FullName     string    `json:"full_name"`
	Role         Role      `json:"role"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// IsAdmin сообщает, что профиль принадлежит администратору.
func (p Profile) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// Identity данные пользователя, извлечённые из проверенного токена.
type Identity struct {
	UserID    string
	Email     string
	Role      Role
	TokenID   string
	ExpiresAt time.Time
}
