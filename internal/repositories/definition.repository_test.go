package repositories

import (
	"collector/config"
	"collector/internal/database"
	"context"
	"testing"
	"time"

	. "collector/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) database.DB {
	t.Helper()

	db, err := database.New(config.Config{DatabaseDbPath: ":memory:"})
	require.NoError(t, err)

	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestDefinitionRepository_UpsertAndGet(t *testing.T) {
	repo := NewDefinition(newTestDB(t))
	ctx := context.Background()

	definition := &Definition{
		ProjectName: "Proj",
		Payload:     `{"wrapper":{"project":"Proj","questions":[{"id":1}]}}`,
	}

	require.NoError(t, repo.Upsert(ctx, definition))

	stored, err := repo.GetByProjectName(ctx, "Proj")
	require.NoError(t, err)
	assert.Equal(t, definition.Payload, stored.Payload)
	assert.Equal(t, PayloadChecksum(definition.Payload), stored.Checksum)
}

func TestDefinitionRepository_UpsertReplaces(t *testing.T) {
	db := newTestDB(t)
	repo := NewDefinition(db)
	ctx := context.Background()

	first := `{"wrapper":{"project":"Proj","questions":[{"id":1}]}}`
	second := `{"wrapper":{"project":"Proj","questions":[{"id":1},{"id":2}]}}`

	require.NoError(t, repo.Upsert(ctx, &Definition{ProjectName: "Proj", Payload: first}))
	require.NoError(t, repo.Upsert(ctx, &Definition{ProjectName: "Proj", Payload: second}))

	// Last write wins, still exactly one row
	var count int64
	require.NoError(t, db.SQL.Model(&Definition{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	stored, err := repo.GetByProjectName(ctx, "Proj")
	require.NoError(t, err)
	assert.Equal(t, second, stored.Payload)
}

func TestDefinitionRepository_UpsertKeepsCreatedAt(t *testing.T) {
	db := newTestDB(t)
	repo := NewDefinition(db)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, &Definition{
		ProjectName: "Proj",
		Payload:     `{"wrapper":{"project":"Proj","questions":[{"id":1}]}}`,
	}))

	// Pin the creation timestamp so an overwrite would be visible
	createdAt := time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC)
	require.NoError(t, db.SQL.Model(&Definition{}).
		Where("project_name = ?", "Proj").
		Update("created_at", createdAt).Error)

	require.NoError(t, repo.Upsert(ctx, &Definition{
		ProjectName: "Proj",
		Payload:     `{"wrapper":{"project":"Proj","questions":[{"id":1},{"id":2}]}}`,
	}))

	stored, err := repo.GetByProjectName(ctx, "Proj")
	require.NoError(t, err)
	assert.True(t, stored.CreatedAt.Equal(createdAt),
		"overwriting a definition must not touch created_at")
	assert.True(t, stored.UpdatedAt.After(createdAt))
}

func TestDefinitionRepository_UpsertEmptyName(t *testing.T) {
	repo := NewDefinition(newTestDB(t))

	err := repo.Upsert(context.Background(), &Definition{Payload: "{}"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "project name is empty")
}

func TestDefinitionRepository_Exists(t *testing.T) {
	repo := NewDefinition(newTestDB(t))
	ctx := context.Background()

	exists, err := repo.Exists(ctx, "Proj")
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, repo.Upsert(ctx, &Definition{
		ProjectName: "Proj",
		Payload:     `{"wrapper":{"project":"Proj","logic":{}}}`,
	}))

	exists, err = repo.Exists(ctx, "Proj")
	require.NoError(t, err)
	assert.True(t, exists)

	// Project names are case-sensitive
	exists, err = repo.Exists(ctx, "proj")
	require.NoError(t, err)
	assert.False(t, exists)
}
