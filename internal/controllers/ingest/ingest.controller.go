package ingestController

import (
	"collector/internal/logger"
	"collector/internal/repositories"
	"collector/internal/services"
	"context"
	"errors"

	. "collector/internal/models"

	"gorm.io/gorm"
)

type Outcome string

const (
	OutcomeDefinitionStored    Outcome = "definition_stored"
	OutcomeSubmissionStored    Outcome = "submission_stored"
	OutcomeSubmissionDuplicate Outcome = "submission_duplicate"
)

var (
	ErrMalformedInput     = errors.New("malformed input")
	ErrMissingProjectName = errors.New("missing project name")
	ErrUnknownProject     = errors.New("unknown project")
)

type Result struct {
	Outcome      Outcome
	ProjectName  string
	SubmissionID string
}

// Notifier receives successful ingest outcomes. Kept as a local interface so
// the controller does not depend on the websocket package.
type Notifier interface {
	NotifyIngest(projectName string, outcome string, submissionID string)
}

type IngestController struct {
	definitionRepo     repositories.DefinitionRepository
	submissionRepo     repositories.SubmissionRepository
	transactionService *services.TransactionService
	notifier           Notifier
	log                logger.Logger
}

func New(
	definitionRepo repositories.DefinitionRepository,
	submissionRepo repositories.SubmissionRepository,
	transactionService *services.TransactionService,
	notifier Notifier,
) *IngestController {
	return &IngestController{
		definitionRepo:     definitionRepo,
		submissionRepo:     submissionRepo,
		transactionService: transactionService,
		notifier:           notifier,
		log:                logger.New("IngestController"),
	}
}

// Ingest classifies one uploaded document and stores it.
//
// Documents carrying a truthy questions or logic field are definitions and
// upsert the template for their project unconditionally; classification wins
// over the referential check, so a definition for a brand-new project never
// hits the unknown-project path. Everything else is a submission, which
// requires its project's definition to exist already and is written at most
// once per unique ID. Replaying a submission is a success, not an error.
func (c *IngestController) Ingest(ctx context.Context, body []byte) (Result, error) {
	log := c.log.Function("Ingest")

	uniqueID, content, err := parseEnvelope(body)
	if err != nil {
		log.Warn("rejected document with malformed envelope", "bodyBytes", len(body))
		return Result{}, err
	}

	projectName, ok := extractProjectName(content)
	if !ok {
		log.Warn("rejected document without project name", "uniqueID", uniqueID)
		return Result{}, ErrMissingProjectName
	}

	if isDefinition(content) {
		return c.ingestDefinition(ctx, projectName, body)
	}

	return c.ingestSubmission(ctx, uniqueID, projectName, body)
}

func (c *IngestController) ingestDefinition(
	ctx context.Context,
	projectName string,
	body []byte,
) (Result, error) {
	log := c.log.Function("ingestDefinition")

	definition := &Definition{
		ProjectName: projectName,
		Payload:     string(body),
	}

	if err := c.definitionRepo.Upsert(ctx, definition); err != nil {
		return Result{}, log.Err("failed to store definition", err,
			"projectName", projectName)
	}

	log.Info("definition stored", "projectName", projectName)
	result := Result{Outcome: OutcomeDefinitionStored, ProjectName: projectName}
	c.notify(result)

	return result, nil
}

func (c *IngestController) ingestSubmission(
	ctx context.Context,
	uniqueID, projectName string,
	body []byte,
) (Result, error) {
	log := c.log.Function("ingestSubmission")

	var outcome Outcome
	err := c.transactionService.Execute(ctx, func(txCtx context.Context) error {
		exists, err := c.definitionRepo.Exists(txCtx, projectName)
		if err != nil {
			return err
		}
		if !exists {
			return ErrUnknownProject
		}

		submission := &Submission{
			ID:          uniqueID,
			ProjectName: projectName,
			Payload:     string(body),
		}

		if err := c.submissionRepo.Create(txCtx, submission); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				// Already durably stored; re-delivery must be side-effect-free.
				outcome = OutcomeSubmissionDuplicate
				return nil
			}
			return err
		}

		outcome = OutcomeSubmissionStored
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrUnknownProject) {
			log.Warn("rejected submission for unknown project",
				"uniqueID", uniqueID, "projectName", projectName)
			return Result{}, ErrUnknownProject
		}
		return Result{}, log.Err("failed to store submission", err,
			"uniqueID", uniqueID, "projectName", projectName)
	}

	log.Info("submission processed",
		"uniqueID", uniqueID, "projectName", projectName, "outcome", outcome)
	result := Result{
		Outcome:      outcome,
		ProjectName:  projectName,
		SubmissionID: uniqueID,
	}
	c.notify(result)

	return result, nil
}

func (c *IngestController) notify(result Result) {
	if c.notifier == nil {
		return
	}
	c.notifier.NotifyIngest(result.ProjectName, string(result.Outcome), result.SubmissionID)
}
