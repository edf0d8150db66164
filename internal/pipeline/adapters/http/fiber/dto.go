package fiber

import "usage-metrics-service/internal/pipeline/core/domain"

type RunPipelineRequest struct {
	DryRun bool `json:"dry_run" example:"false"`
}

type RunPipelineResponse struct {
	RunID       string          `json:"run_id" example:"6f1c2b9e-6a43-4f7a-9a57-2f0a0f3c1e11"`
	GeneratedAt string          `json:"generated_at" example:"2024-03-01T00:00:00Z"`
	DryRun      bool            `json:"dry_run"`
	Stats       domain.RunStats `json:"stats"`
	RowCounts   map[string]int  `json:"row_counts"`
}

type ErrorResponse struct {
	Error   string `json:"error" example:"pipeline_running"`
	Message string `json:"message,omitempty" example:"pipeline run already in progress"`
}
