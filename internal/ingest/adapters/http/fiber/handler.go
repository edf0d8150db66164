package fiber

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"usage-metrics-service/internal/ingest/core/usecase"
)

type StoreRawRecordsUseCase interface {
	StoreUsers(ctx context.Context, in []usecase.RawUserInput) (usecase.BulkResult, error)
	StoreFirms(ctx context.Context, in []usecase.RawFirmInput) (usecase.BulkResult, error)
	StoreEvents(ctx context.Context, in []usecase.RawEventInput) (usecase.BulkResult, error)
}

type IngestHandler struct {
	storeUC  StoreRawRecordsUseCase
	validate *validator.Validate
}

func NewIngestHandler(storeUC StoreRawRecordsUseCase) *IngestHandler {
	return &IngestHandler{
		storeUC:  storeUC,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// CreateUsers godoc
// @Summary Bulk ingest raw users
// @Description Stores raw user rows untouched. Rows already seen are counted as duplicates.
// @Tags Ingest
// @Accept json
// @Produce json
// @Param request body BulkUsersRequest true "Raw users"
// @Success 201 {object} BulkCreateResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /raw/users [post]
func (h *IngestHandler) CreateUsers(c *fiber.Ctx) error {
	var req BulkUsersRequest
	if errResp := h.parse(c, &req); errResp != nil {
		return c.Status(http.StatusBadRequest).JSON(errResp)
	}

	inputs := make([]usecase.RawUserInput, len(req.Users))
	for i, u := range req.Users {
		inputs[i] = usecase.RawUserInput{
			ID:      u.ID,
			Created: u.Created,
			Title:   u.Title,
		}
	}

	res, err := h.storeUC.StoreUsers(c.UserContext(), inputs)
	return respond(c, res, err)
}

// CreateFirms godoc
// @Summary Bulk ingest raw firms
// @Description Stores raw firm rows untouched. Rows already seen are counted as duplicates.
// @Tags Ingest
// @Accept json
// @Produce json
// @Param request body BulkFirmsRequest true "Raw firms"
// @Success 201 {object} BulkCreateResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /raw/firms [post]
func (h *IngestHandler) CreateFirms(c *fiber.Ctx) error {
	var req BulkFirmsRequest
	if errResp := h.parse(c, &req); errResp != nil {
		return c.Status(http.StatusBadRequest).JSON(errResp)
	}

	inputs := make([]usecase.RawFirmInput, len(req.Firms))
	for i, f := range req.Firms {
		inputs[i] = usecase.RawFirmInput{
			ID:             f.ID,
			Created:        f.Created,
			FirmSize:       f.FirmSize,
			ARRInThousands: f.ARRInThousands,
		}
	}

	res, err := h.storeUC.StoreFirms(c.UserContext(), inputs)
	return respond(c, res, err)
}

// CreateEvents godoc
// @Summary Bulk ingest raw events
// @Description Stores raw usage events untouched. Rows already seen are counted as duplicates.
// @Tags Ingest
// @Accept json
// @Produce json
// @Param request body BulkEventsRequest true "Raw events"
// @Success 201 {object} BulkCreateResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /raw/events [post]
func (h *IngestHandler) CreateEvents(c *fiber.Ctx) error {
	var req BulkEventsRequest
	if errResp := h.parse(c, &req); errResp != nil {
		return c.Status(http.StatusBadRequest).JSON(errResp)
	}

	inputs := make([]usecase.RawEventInput, len(req.Events))
	for i, e := range req.Events {
		inputs[i] = usecase.RawEventInput{
			Created:       e.Created,
			FirmID:        e.FirmID,
			UserID:        e.UserID,
			EventType:     e.EventType,
			NumDocs:       e.NumDocs,
			FeedbackScore: e.FeedbackScore,
		}
	}

	res, err := h.storeUC.StoreEvents(c.UserContext(), inputs)
	return respond(c, res, err)
}

func (h *IngestHandler) parse(c *fiber.Ctx, req any) *ErrorResponse {
	if err := c.BodyParser(req); err != nil {
		return &ErrorResponse{Error: "invalid_json"}
	}
	if err := h.validate.Struct(req); err != nil {
		return &ErrorResponse{
			Error:   "invalid_batch",
			Message: err.Error(),
		}
	}
	return nil
}

func respond(c *fiber.Ctx, res usecase.BulkResult, err error) error {
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrEmptyBatch),
			errors.Is(err, usecase.ErrBatchTooLarge):
			return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
				Error:   "invalid_batch",
				Message: err.Error(),
			})
		default:
			return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
				Error: "internal_server_error",
			})
		}
	}

	return c.Status(http.StatusCreated).JSON(BulkCreateResponse{
		Created:    res.Created,
		Duplicates: res.Duplicates,
	})
}
