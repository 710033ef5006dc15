package entity

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrSessionNotFound = errors.New("planning session not found")
	ErrUnknownLayer    = errors.New("unknown thematic layer")
	ErrAnalysisBusy    = errors.New("analysis already in progress")
)

// Thematic layer kinds. Fixed domain vocabulary; the default session carries
// slots for LULC, Slope and Drainage only.
const (
	LayerKindLULC        = "LULC"
	LayerKindSoil        = "Soil"
	LayerKindSlope       = "Slope"
	LayerKindDrainage    = "Drainage"
	LayerKindGroundwater = "Groundwater"
	LayerKindGeology     = "Geology"
	LayerKindCadastral   = "Cadastral"
)

// ThematicLayer is one named map-image slot. Image and PreviewData stay empty
// until an upload lands; PreviewData is filled asynchronously by the encoder
// worker after the upload is stored.
type ThematicLayer struct {
	Id          string
	Name        string
	Kind        string
	Image       []byte
	MimeType    string
	PreviewData string // base64 payload, empty until encoding completes
}

// Bound reports whether an image is attached to this slot.
func (l *ThematicLayer) Bound() bool {
	return len(l.Image) > 0
}

// PlanningSession holds all state for one browser session: the layer slots,
// the current work item list, the selection and the in-flight analysis flag.
type PlanningSession struct {
	Id             uuid.UUID
	SiteName       string
	Layers         []*ThematicLayer
	Works          []*WorkItem
	SelectedWorkId string // empty = no selection; unresolvable ids are allowed
	Simulated      bool   // true when Works came from the fallback generator
	Analyzing      bool
	CreatedAt      time.Time
}

// NewPlanningSession creates a session with the fixed default layer slots.
func NewPlanningSession(siteName string) *PlanningSession {
	return &PlanningSession{
		Id:       uuid.New(),
		SiteName: siteName,
		Layers: []*ThematicLayer{
			{Id: "1", Name: "LULC Map", Kind: LayerKindLULC},
			{Id: "2", Name: "Slope Map", Kind: LayerKindSlope},
			{Id: "3", Name: "Drainage Map", Kind: LayerKindDrainage},
		},
		CreatedAt: time.Now(),
	}
}

// Layer resolves a slot by id.
func (s *PlanningSession) Layer(layerId string) (*ThematicLayer, bool) {
	for _, l := range s.Layers {
		if l.Id == layerId {
			return l, true
		}
	}
	return nil, false
}

// BoundLayers returns the layers carrying an image, in slot order.
func (s *PlanningSession) BoundLayers() []*ThematicLayer {
	bound := make([]*ThematicLayer, 0, len(s.Layers))
	for _, l := range s.Layers {
		if l.Bound() {
			bound = append(bound, l)
		}
	}
	return bound
}

// SelectedWork resolves the current selection against the work list. A
// selection pointing at no current work resolves to nil without error.
func (s *PlanningSession) SelectedWork() *WorkItem {
	if s.SelectedWorkId == "" {
		return nil
	}
	for _, w := range s.Works {
		if w.Id == s.SelectedWorkId {
			return w
		}
	}
	return nil
}
