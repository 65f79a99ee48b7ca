//go:build integration

package repository

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/magabrotheeeer/canteen/internal/migrations"
)

// TestDataFactory содержит методы для создания тестовых данных
type TestDataFactory struct {
	storage *Storage
}

// NewTestDataFactory создает новую фабрику тестовых данных
func NewTestDataFactory(storage *Storage) *TestDataFactory {
	return &TestDataFactory{storage: storage}
}

// CreateProfile создает тестовый профиль и возвращает его ID
func (f *TestDataFactory) CreateProfile(t *testing.T, email, fullName, role string) string {
	var id string
	err := f.storage.DB.QueryRow(`INSERT INTO profiles (email, full_name, role, password_hash)
		VALUES ($1, $2, $3, 'hash') RETURNING id`,
		email, fullName, role).Scan(&id)
	require.NoError(t, err)
	return id
}

// CreateMenuItem создает тестовую позицию меню и возвращает ее ID
func (f *TestDataFactory) CreateMenuItem(t *testing.T, name, mealType, menuDate string) string {
	var id string
	err := f.storage.DB.QueryRow(`INSERT INTO menu_items (name, meal_type, menu_date)
		VALUES ($1, $2, $3::date) RETURNING id`,
		name, mealType, menuDate).Scan(&id)
	require.NoError(t, err)
	return id
}

// CountSelections возвращает число отметок по позиции меню
func (f *TestDataFactory) CountSelections(t *testing.T, menuItemID string) int {
	var count int
	err := f.storage.DB.QueryRow(`SELECT COUNT(*) FROM meal_selections WHERE menu_item_id = $1`,
		menuItemID).Scan(&count)
	require.NoError(t, err)
	return count
}

// setupTestDatabase создает тестовую БД в контейнере PostgreSQL и применяет миграции
func setupTestDatabase(t *testing.T) (*Storage, func()) {
	ctx := context.Background()
	port := nat.Port("5432/tcp")

	req := testcontainers.ContainerRequest{
		Image:        "postgres:15-alpine",
		ExposedPorts: []string{string(port)},
		Env: map[string]string{
			"POSTGRES_DB":       "testdb",
			"POSTGRES_USER":     "testuser",
			"POSTGRES_PASSWORD": "testpass",
		},
		WaitingFor: wait.ForAll(
			wait.ForListeningPort(port),
			wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
		).WithDeadline(3 * time.Minute),
	}

	postgresContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err, "failed to start container")

	host, err := postgresContainer.Host(ctx)
	require.NoError(t, err)
	mapped, err := postgresContainer.MappedPort(ctx, port)
	require.NoError(t, err, "Failed to get port")

	connStr := fmt.Sprintf("postgres://testuser:testpass@%s:%s/testdb?sslmode=disable", host, mapped.Port())

	var storage *Storage
	for i := 0; i < 10; i++ {
		storage, err = New(connStr)
		if err == nil {
			break
		}
		time.Sleep(time.Second)
	}
	require.NoError(t, err, "Failed to create storage after retries")

	projectRoot, err := filepath.Abs("../../..")
	require.NoError(t, err)
	require.NoError(t, migrations.Run(storage.DB, filepath.Join(projectRoot, "migrations")))

	cleanup := func() {
		if storage != nil && storage.DB != nil {
			_ = storage.DB.Close()
		}
		if postgresContainer != nil {
			_ = postgresContainer.Terminate(ctx)
		}
	}

	return storage, cleanup
}
