package seed

import (
	"collector/config"
	"collector/internal/database"
	"collector/internal/logger"
	"testing"

	. "collector/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeed_CreatesDemoDefinition(t *testing.T) {
	db, err := database.New(config.Config{DatabaseDbPath: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	log := logger.New("test")
	require.NoError(t, Seed(db.SQL, config.Config{}, log))

	var definition Definition
	require.NoError(t, db.SQL.First(&definition, "project_name = ?", "Demo").Error)
	assert.NotEmpty(t, definition.Payload)

	// Re-seeding upserts instead of failing on the duplicate
	require.NoError(t, Seed(db.SQL, config.Config{}, log))

	var count int64
	require.NoError(t, db.SQL.Model(&Definition{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestSeed_ReturnsErrorOnDeadStore(t *testing.T) {
	db, err := database.New(config.Config{DatabaseDbPath: ":memory:"})
	require.NoError(t, err)

	sqlDB, err := db.SQL.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	err = Seed(db.SQL, config.Config{}, logger.New("test"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to seed definition")
}
