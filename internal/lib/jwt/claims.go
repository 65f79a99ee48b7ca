package jwt

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/magabrotheeeer/canteen/internal/models"
)

// CustomClaims данные профиля внутри токена. Subject хранит id профиля, ID хранит jti.
type CustomClaims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// UserID id профиля, которому выдан токен.
func (c *CustomClaims) UserID() string {
	return c.Subject
}

// Identity переводит claims в личность запроса.
func (c *CustomClaims) Identity() models.Identity {
	var expiresAt time.Time
	if c.ExpiresAt != nil {
		expiresAt = c.ExpiresAt.Time
	}
	return models.Identity{
		UserID:    c.Subject,
		Email:     c.Email,
		Role:      models.Role(c.Role),
		TokenID:   c.ID,
		ExpiresAt: expiresAt,
	}
}
