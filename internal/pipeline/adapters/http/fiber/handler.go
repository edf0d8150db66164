package fiber

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"usage-metrics-service/internal/pipeline/core/domain"
	"usage-metrics-service/internal/pipeline/core/usecase"
)

type RunPipelineUseCase interface {
	Execute(ctx context.Context, in usecase.RunPipelineInput) (*domain.Report, error)
}

type PipelineHandler struct {
	runUC RunPipelineUseCase
}

func NewPipelineHandler(runUC RunPipelineUseCase) *PipelineHandler {
	return &PipelineHandler{runUC: runUC}
}

// RunPipeline godoc
// @Summary Run the metrics pipeline
// @Description Recomputes every derived table from the raw tables. Only one run may be in flight.
// @Tags Pipeline
// @Accept json
// @Produce json
// @Param request body RunPipelineRequest false "Run options"
// @Success 200 {object} RunPipelineResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /pipeline/run [post]
func (h *PipelineHandler) RunPipeline(c *fiber.Ctx) error {
	var req RunPipelineRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
				Error: "invalid_json",
			})
		}
	}

	report, err := h.runUC.Execute(c.UserContext(), usecase.RunPipelineInput{DryRun: req.DryRun})
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrPipelineRunning):
			return c.Status(http.StatusConflict).JSON(ErrorResponse{
				Error:   "pipeline_running",
				Message: err.Error(),
			})
		default:
			return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
				Error: "internal_server_error",
			})
		}
	}

	return c.Status(http.StatusOK).JSON(RunPipelineResponse{
		RunID:       report.RunID,
		GeneratedAt: report.GeneratedAt.UTC().Format(time.RFC3339),
		DryRun:      req.DryRun,
		Stats:       report.Stats,
		RowCounts:   report.Tables.RowCounts(),
	})
}
