// Package auth содержит регистрацию, вход, выход и проверку токенов доступа.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/magabrotheeeer/canteen/internal/cache"
	"github.com/magabrotheeeer/canteen/internal/lib/jwt"
	"github.com/magabrotheeeer/canteen/internal/lib/password"
	"github.com/magabrotheeeer/canteen/internal/lib/sl"
	"github.com/magabrotheeeer/canteen/internal/models"
	"github.com/magabrotheeeer/canteen/internal/storage/repository"
)

var (
	// ErrInvalidCredentials неизвестный email или неверный пароль.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrTokenRevoked токен отозван через Logout.
	ErrTokenRevoked = errors.New("token revoked")
)

// UserRepository описывает хранилище профилей.
type UserRepository interface {
	CreateProfile(ctx context.Context, p models.Profile) (*models.Profile, error)
	GetProfileByEmail(ctx context.Context, email string) (*models.Profile, error)
	GetProfile(ctx context.Context, id string) (*models.Profile, error)
}

// RevocationStore хранит id отозванных токенов.
type RevocationStore interface {
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	Exists(ctx context.Context, key string) (bool, error)
}

// Session результат успешного входа.
type Session struct {
	Token     string          `json:"token"`
	ExpiresAt time.Time       `json:"expires_at"`
	Profile   *models.Profile `json:"profile"`
}

// Service отвечает за учетные записи и токены.
type Service struct {
	users       UserRepository
	jwtMaker    jwt.Maker
	revoked     RevocationStore
	adminEmails map[string]struct{}
	now         func() time.Time
	log         *slog.Logger
}

// NewService создает Service. Адреса из adminEmails при регистрации получают роль admin.
func NewService(users UserRepository, jwtMaker jwt.Maker, revoked RevocationStore, adminEmails []string, log *slog.Logger) *Service {
	admins := make(map[string]struct{}, len(adminEmails))
	for _, email := range adminEmails {
		if email = normalizeEmail(email); email != "" {
			admins[email] = struct{}{}
		}
	}
	return &Service{
		users:       users,
		jwtMaker:    jwtMaker,
		revoked:     revoked,
		adminEmails: admins,
		now:         time.Now,
		log:         log,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register создает профиль с bcrypt-хешем пароля.
func (s *Service) Register(ctx context.Context, email, fullName, rawPassword string) (*models.Profile, error) {
	const op = "auth.Register"
	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	email = normalizeEmail(email)
	role := models.RoleEmployee
	if _, ok := s.adminEmails[email]; ok {
		role = models.RoleAdmin
	}
	profile, err := s.users.CreateProfile(ctx, models.Profile{
		Email:        email,
		FullName:     strings.TrimSpace(fullName),
		Role:         role,
		PasswordHash: hashed,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return profile, nil
}

// Login проверяет пароль и выпускает токен доступа.
func (s *Service) Login(ctx context.Context, email, rawPassword string) (*Session, error) {
	const op = "auth.Login"
	profile, err := s.users.GetProfileByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := password.CompareHash(profile.PasswordHash, rawPassword); err != nil {
		if errors.Is(err, password.ErrMismatch) {
			return nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	token, claims, err := s.jwtMaker.GenerateToken(profile)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &Session{
		Token:     token,
		ExpiresAt: claims.ExpiresAt.Time,
		Profile:   profile,
	}, nil
}

// Logout отзывает токен до истечения его срока.
func (s *Service) Logout(ctx context.Context, token string) error {
	const op = "auth.Logout"
	claims, err := s.jwtMaker.ParseToken(token)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	ttl := time.Minute
	if claims.ExpiresAt != nil {
		ttl = claims.ExpiresAt.Sub(s.now())
	}
	if ttl <= 0 {
		return nil
	}
	if err := s.revoked.Set(ctx, cache.RevokedKey(claims.ID), true, ttl); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ValidateToken проверяет подпись, срок и отзыв токена.
// Недоступность хранилища отозванных токенов не блокирует запросы.
func (s *Service) ValidateToken(ctx context.Context, token string) (*models.Identity, error) {
	const op = "auth.ValidateToken"
	claims, err := s.jwtMaker.ParseToken(token)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	revoked, err := s.revoked.Exists(ctx, cache.RevokedKey(claims.ID))
	if err != nil {
		s.log.Warn("failed to check token revocation", slog.String("op", op), sl.Err(err))
	}
	if revoked {
		return nil, fmt.Errorf("%s: %w", op, ErrTokenRevoked)
	}
	identity := claims.Identity()
	return &identity, nil
}

// Profile возвращает профиль по id.
func (s *Service) Profile(ctx context.Context, id string) (*models.Profile, error) {
	const op = "auth.Profile"
	profile, err := s.users.GetProfile(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return profile, nil
}
