package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/canteen/internal/models"
)

// CreateProfile сохраняет новый профиль и возвращает его с заполненными ID и датой создания.
func (s *Storage) CreateProfile(ctx context.Context, p models.Profile) (*models.Profile, error) {
	const op = "storage.CreateProfile"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO profiles (email, full_name, role, password_hash)
			  VALUES ($1, $2, $3, $4)
			  RETURNING id, created_at`
	if err := s.DB.QueryRowContext(ctx, query,
		p.Email, p.FullName, string(p.Role), p.PasswordHash).Scan(&p.ID, &p.CreatedAt); err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%s: %w", op, ErrEmailTaken)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &p, nil
}

// GetProfileByEmail возвращает профиль по email.
func (s *Storage) GetProfileByEmail(ctx context.Context, email string) (*models.Profile, error) {
	const op = "storage.GetProfileByEmail"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, email, full_name, role, password_hash, created_at
			  FROM profiles
			  WHERE email = $1`
	return scanProfile(s.DB.QueryRowContext(ctx, query, email), op)
}

// GetProfile возвращает профиль по ID.
func (s *Storage) GetProfile(ctx context.Context, id string) (*models.Profile, error) {
	const op = "storage.GetProfile"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, email, full_name, role, password_hash, created_at
			  FROM profiles
			  WHERE id = $1`
	return scanProfile(s.DB.QueryRowContext(ctx, query, id), op)
}

func scanProfile(row *sql.Row, op string) (*models.Profile, error) {
	p := &models.Profile{}
	if err := row.Scan(&p.ID, &p.Email, &p.FullName, &p.Role, &p.PasswordHash, &p.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}
