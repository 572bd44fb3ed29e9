package app

import (
	"collector/config"
	"collector/internal/database"
	"collector/internal/logger"
	"collector/internal/repositories"
	"collector/internal/services"
	"collector/internal/websockets"

	ingestController "collector/internal/controllers/ingest"
)

type App struct {
	Database  database.DB
	Websocket *websockets.Manager
	Config    config.Config

	// Services
	TransactionService *services.TransactionService

	// Repositories
	DefinitionRepo repositories.DefinitionRepository
	SubmissionRepo repositories.SubmissionRepository

	// Controllers
	IngestController *ingestController.IngestController
}

func New() (*App, error) {
	log := logger.New("app").Function("New")

	config, err := config.InitConfig()
	if err != nil {
		return &App{}, log.Err("failed to initialize config", err)
	}

	db, err := database.New(config)
	if err != nil {
		return &App{}, log.Err("failed to create database", err)
	}

	// Initialize services
	transactionService := services.NewTransactionService(db)

	// Initialize repositories
	definitionRepo := repositories.NewDefinition(db)
	submissionRepo := repositories.NewSubmission(db)

	websocket := websockets.New()

	ingestController := ingestController.New(
		definitionRepo,
		submissionRepo,
		transactionService,
		websocket,
	)

	app := &App{
		Database:           db,
		Config:             config,
		Websocket:          websocket,
		TransactionService: transactionService,
		DefinitionRepo:     definitionRepo,
		SubmissionRepo:     submissionRepo,
		IngestController:   ingestController,
	}

	if err := app.validate(); err != nil {
		return &App{}, log.Err("failed to validate app", err)
	}

	return app, nil
}

func (a *App) validate() error {
	log := logger.New("app").Function("validate")
	if a.Database.SQL == nil {
		return log.ErrMsg("database is nil")
	}

	if a.Config == (config.Config{}) {
		return log.ErrMsg("config is nil")
	}

	nilChecks := []any{
		a.Websocket,
		a.TransactionService,
		a.DefinitionRepo,
		a.SubmissionRepo,
		a.IngestController,
	}

	for _, check := range nilChecks {
		if check == nil {
			return log.ErrMsg("nil check failed")
		}
	}

	return nil
}

func (a *App) Close() (err error) {
	if dbErr := a.Database.Close(); dbErr != nil {
		err = dbErr
	}

	return err
}
