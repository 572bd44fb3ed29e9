package repositories

import (
	"collector/internal/database"
	"collector/internal/logger"
	"collector/internal/services"
	"context"
	"errors"
	"time"

	. "collector/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	DEFINITION_CACHE_EXPIRY = 24 * time.Hour
)

type DefinitionRepository interface {
	Upsert(ctx context.Context, definition *Definition) error
	Exists(ctx context.Context, projectName string) (bool, error)
	GetByProjectName(ctx context.Context, projectName string) (*Definition, error)
}

type definitionRepository struct {
	db  database.DB
	log logger.Logger
}

func NewDefinition(db database.DB) DefinitionRepository {
	return &definitionRepository{
		db:  db,
		log: logger.New("definitionRepository"),
	}
}

func (r *definitionRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := services.GetTransaction(ctx); ok {
		return tx
	}
	return r.db.SQLWithContext(ctx)
}

// Upsert inserts or fully replaces the definition for its project name.
// Last write wins; there is no merge.
func (r *definitionRepository) Upsert(ctx context.Context, definition *Definition) error {
	log := r.log.Function("Upsert")

	if definition.ProjectName == "" {
		return log.Error("project name is empty")
	}

	// Replace the payload but keep the original creation timestamp
	err := r.getDB(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "project_name"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "checksum", "updated_at"}),
	}).Create(definition).Error
	if err != nil {
		return log.Err("failed to upsert definition", err,
			"projectName", definition.ProjectName)
	}

	if err := r.addExistenceToCache(ctx, definition.ProjectName); err != nil {
		log.Warn("failed to cache definition existence",
			"projectName", definition.ProjectName, "error", err)
	}

	return nil
}

// Exists reports whether a definition is stored for the project. The cache is
// advisory: only positive results are cached, and any cache failure falls
// through to the database.
func (r *definitionRepository) Exists(ctx context.Context, projectName string) (bool, error) {
	log := r.log.Function("Exists")

	var cached bool
	found, err := database.NewCacheBuilder(r.db.Cache.Definitions, existenceCacheKey(projectName)).
		WithContext(ctx).
		Get(&cached)
	if err != nil {
		log.Warn("failed to read definition existence from cache",
			"projectName", projectName, "error", err)
	}
	if found && cached {
		return true, nil
	}

	var definition Definition
	err = r.getDB(ctx).
		Select("project_name").
		First(&definition, "project_name = ?", projectName).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, log.Err("failed to check definition existence", err,
			"projectName", projectName)
	}

	if err := r.addExistenceToCache(ctx, projectName); err != nil {
		log.Warn("failed to cache definition existence",
			"projectName", projectName, "error", err)
	}

	return true, nil
}

func (r *definitionRepository) GetByProjectName(
	ctx context.Context,
	projectName string,
) (*Definition, error) {
	log := r.log.Function("GetByProjectName")

	var definition Definition
	if err := r.getDB(ctx).First(&definition, "project_name = ?", projectName).Error; err != nil {
		return nil, log.Err("failed to get definition", err, "projectName", projectName)
	}

	return &definition, nil
}

func (r *definitionRepository) addExistenceToCache(ctx context.Context, projectName string) error {
	return database.NewCacheBuilder(r.db.Cache.Definitions, existenceCacheKey(projectName)).
		WithStruct(true).
		WithTTL(DEFINITION_CACHE_EXPIRY).
		WithContext(ctx).
		Set()
}

func existenceCacheKey(projectName string) string {
	return "definition:exists:" + projectName
}
