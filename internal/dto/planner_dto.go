package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateSessionRequest struct {
	SiteName string `json:"site_name"`
}

type CreateSessionResponse struct {
	Id       uuid.UUID `json:"id"`
	SiteName string    `json:"site_name"`
}

type SetSiteNameRequest struct {
	SiteName string `json:"site_name" validate:"required"`
}

type ThematicLayerResponse struct {
	Id           string `json:"id"`
	Name         string `json:"name"`
	Kind         string `json:"kind"`
	Bound        bool   `json:"bound"`
	PreviewReady bool   `json:"preview_ready"`
	MimeType     string `json:"mime_type,omitempty"`
}

type WorkItemResponse struct {
	Id                     string  `json:"id"`
	CategoryCode           string  `json:"category_code"`
	MasterWorkCategory     string  `json:"master_work_category"`
	MajorScheduledCategory string  `json:"major_scheduled_category"`
	BeneficiaryType        string  `json:"beneficiary_type"`
	ActivityType           string  `json:"activity_type"`
	WorkType               string  `json:"work_type"`
	PermissibleWork        string  `json:"permissible_work"`
	GAWStatus              string  `json:"gaw_status"`
	SubCategoryId          int     `json:"sub_category_id"`
	Latitude               float64 `json:"latitude"`
	Longitude              float64 `json:"longitude"`
	FeasibilityScore       float64 `json:"feasibility_score"`
	AiReasoning            string  `json:"ai_reasoning"`
	Repaired               bool    `json:"repaired,omitempty"`
}

type SessionResponse struct {
	Id             uuid.UUID                `json:"id"`
	SiteName       string                   `json:"site_name"`
	Layers         []*ThematicLayerResponse `json:"layers"`
	Works          []*WorkItemResponse      `json:"works"`
	SelectedWorkId string                   `json:"selected_work_id,omitempty"`
	Simulated      bool                     `json:"simulated"`
	Analyzing      bool                     `json:"analyzing"`
	CreatedAt      time.Time                `json:"created_at"`
}

type RunAnalysisResponse struct {
	Works     []*WorkItemResponse `json:"works"`
	Simulated bool                `json:"simulated"`
}

type SelectWorkRequest struct {
	WorkId string `json:"work_id" validate:"required"`
}

type SelectionResponse struct {
	SelectedWorkId string            `json:"selected_work_id,omitempty"`
	Work           *WorkItemResponse `json:"work,omitempty"`
}

type ExportReportResponse struct {
	Status string `json:"status"`
}

// LayerEncodeJobMessage rides the in-process bus from upload to the encoder
// worker.
type LayerEncodeJobMessage struct {
	SessionId string `json:"session_id"`
	LayerId   string `json:"layer_id"`
}

// PlannerEventMessage is pushed to websocket clients on lifecycle transitions.
type PlannerEventMessage struct {
	SessionId string `json:"session_id"`
	Event     string `json:"event"` // "layer.encoded" | "analysis.completed"
	LayerId   string `json:"layer_id,omitempty"`
	WorkCount int    `json:"work_count,omitempty"`
	Simulated bool   `json:"simulated,omitempty"`
}
