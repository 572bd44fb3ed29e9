package handlers

import (
	"collector/internal/app"
	ingestController "collector/internal/controllers/ingest"
	"collector/internal/logger"
	"errors"

	"github.com/gofiber/fiber/v2"
)

type IngestHandler struct {
	Handler
	controller *ingestController.IngestController
}

func NewIngestHandler(app app.App, router fiber.Router) *IngestHandler {
	log := logger.New("handlers").File("ingest_handler")
	return &IngestHandler{
		controller: app.IngestController,
		Handler: Handler{
			log:    log,
			router: router,
		},
	}
}

func (h *IngestHandler) Register() {
	h.router.Post("/ingest", h.ingest)
}

// ingest maps classifier outcomes onto the status-code contract. Bodies are
// short strings; callers discriminate on the code alone.
func (h *IngestHandler) ingest(c *fiber.Ctx) error {
	log := h.log.Function("ingest")

	result, err := h.controller.Ingest(c.Context(), c.Body())
	if err != nil {
		switch {
		case errors.Is(err, ingestController.ErrMalformedInput):
			return c.Status(fiber.StatusBadRequest).SendString("malformed input")
		case errors.Is(err, ingestController.ErrMissingProjectName):
			return c.Status(fiber.StatusBadRequest).SendString("missing project name")
		case errors.Is(err, ingestController.ErrUnknownProject):
			return c.Status(fiber.StatusPreconditionFailed).SendString("unknown project")
		default:
			log.Er("ingest failed with storage error", err)
			return c.Status(fiber.StatusInternalServerError).SendString("storage error")
		}
	}

	switch result.Outcome {
	case ingestController.OutcomeDefinitionStored:
		return c.SendString("definition stored")
	case ingestController.OutcomeSubmissionStored:
		return c.SendString("submission stored")
	case ingestController.OutcomeSubmissionDuplicate:
		return c.SendString("submission already recorded")
	default:
		log.ErMsg("unexpected ingest outcome", "outcome", result.Outcome)
		return c.Status(fiber.StatusInternalServerError).SendString("storage error")
	}
}
