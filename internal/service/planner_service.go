package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"yuktadhara-be/internal/dto"
	"yuktadhara-be/internal/entity"
	"yuktadhara-be/internal/mapper"
	"yuktadhara-be/internal/pkg/logger"
	"yuktadhara-be/internal/repository/memory"
	"yuktadhara-be/pkg/catalog"
	"yuktadhara-be/pkg/geoai"
)

// IPlannerService is the orchestration boundary for one planning session:
// layer uploads, analysis runs and the selection state all go through here.
type IPlannerService interface {
	CreateSession(ctx context.Context, request *dto.CreateSessionRequest) (*dto.CreateSessionResponse, error)
	GetSession(ctx context.Context, sessionId string) (*dto.SessionResponse, error)
	DeleteSession(ctx context.Context, sessionId string) error
	SetSiteName(ctx context.Context, sessionId, siteName string) error
	SetLayerFile(ctx context.Context, sessionId, layerId string, data []byte, mimeType string) error
	ClearLayer(ctx context.Context, sessionId, layerId string) error
	ListLayers(ctx context.Context, sessionId string) ([]*dto.ThematicLayerResponse, error)
	ListBoundLayers(ctx context.Context, sessionId string) ([]*dto.ThematicLayerResponse, error)
	RunAnalysis(ctx context.Context, sessionId string) (*dto.RunAnalysisResponse, error)
	ListWorks(ctx context.Context, sessionId string) ([]*dto.WorkItemResponse, error)
	SelectWork(ctx context.Context, sessionId, workId string) (*dto.SelectionResponse, error)
	ClearSelection(ctx context.Context, sessionId string) error
	CurrentSelection(ctx context.Context, sessionId string) (*dto.SelectionResponse, error)
	ExportReport(ctx context.Context, sessionId string) (*dto.ExportReportResponse, error)
}

const defaultSiteName = "Kalaburagi GP-1"

type plannerService struct {
	sessionRepo      *memory.SessionRepository
	cat              *catalog.Catalog
	provider         geoai.AnalysisProvider
	publisherService IPublisherService
	notifier         PlannerEventNotifier
	mapper           *mapper.PlannerMapper
	sysLogger        logger.ILogger

	credentialSet   bool
	analysisTimeout time.Duration
	excerptSize     int
}

func NewPlannerService(
	sessionRepo *memory.SessionRepository,
	cat *catalog.Catalog,
	provider geoai.AnalysisProvider,
	publisherService IPublisherService,
	notifier PlannerEventNotifier,
	sysLogger logger.ILogger,
	credentialSet bool,
	analysisTimeout time.Duration,
	excerptSize int,
) IPlannerService {
	if analysisTimeout <= 0 {
		analysisTimeout = 90 * time.Second
	}
	if excerptSize <= 0 {
		excerptSize = geoai.DefaultExcerptSize
	}
	return &plannerService{
		sessionRepo:      sessionRepo,
		cat:              cat,
		provider:         provider,
		publisherService: publisherService,
		notifier:         notifier,
		mapper:           mapper.NewPlannerMapper(),
		sysLogger:        sysLogger,
		credentialSet:    credentialSet,
		analysisTimeout:  analysisTimeout,
		excerptSize:      excerptSize,
	}
}

func (ps *plannerService) CreateSession(ctx context.Context, request *dto.CreateSessionRequest) (*dto.CreateSessionResponse, error) {
	siteName := strings.TrimSpace(request.SiteName)
	if siteName == "" {
		siteName = defaultSiteName
	}

	session := entity.NewPlanningSession(siteName)
	ps.sessionRepo.Save(session)

	ps.sysLogger.Info("Planner", "Session created", map[string]interface{}{
		"session_id": session.Id,
		"site_name":  siteName,
	})

	return &dto.CreateSessionResponse{Id: session.Id, SiteName: siteName}, nil
}

func (ps *plannerService) GetSession(ctx context.Context, sessionId string) (*dto.SessionResponse, error) {
	var res *dto.SessionResponse
	err := ps.sessionRepo.View(sessionId, func(s *entity.PlanningSession) error {
		res = ps.mapper.ToSessionResponse(s)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (ps *plannerService) DeleteSession(ctx context.Context, sessionId string) error {
	ps.sessionRepo.Delete(sessionId)
	return nil
}

func (ps *plannerService) SetSiteName(ctx context.Context, sessionId, siteName string) error {
	return ps.sessionRepo.Update(sessionId, func(s *entity.PlanningSession) error {
		s.SiteName = siteName
		return nil
	})
}

// SetLayerFile stores the uploaded blob and queues the asynchronous base64
// encoding. The preview stays absent until the encoder worker lands.
func (ps *plannerService) SetLayerFile(ctx context.Context, sessionId, layerId string, data []byte, mimeType string) error {
	err := ps.sessionRepo.Update(sessionId, func(s *entity.PlanningSession) error {
		layer, ok := s.Layer(layerId)
		if !ok {
			return entity.ErrUnknownLayer
		}
		layer.Image = data
		layer.MimeType = mimeType
		layer.PreviewData = ""
		return nil
	})
	if err != nil {
		return err
	}

	job, err := json.Marshal(dto.LayerEncodeJobMessage{
		SessionId: sessionId,
		LayerId:   layerId,
	})
	if err != nil {
		return err
	}
	return ps.publisherService.Publish(ctx, job)
}

// ClearLayer resets a slot. Idempotent: clearing an empty slot succeeds.
func (ps *plannerService) ClearLayer(ctx context.Context, sessionId, layerId string) error {
	return ps.sessionRepo.Update(sessionId, func(s *entity.PlanningSession) error {
		layer, ok := s.Layer(layerId)
		if !ok {
			return entity.ErrUnknownLayer
		}
		layer.Image = nil
		layer.MimeType = ""
		layer.PreviewData = ""
		return nil
	})
}

func (ps *plannerService) ListLayers(ctx context.Context, sessionId string) ([]*dto.ThematicLayerResponse, error) {
	var res []*dto.ThematicLayerResponse
	err := ps.sessionRepo.View(sessionId, func(s *entity.PlanningSession) error {
		res = ps.mapper.ToLayerResponses(s.Layers)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (ps *plannerService) ListBoundLayers(ctx context.Context, sessionId string) ([]*dto.ThematicLayerResponse, error) {
	var res []*dto.ThematicLayerResponse
	err := ps.sessionRepo.View(sessionId, func(s *entity.PlanningSession) error {
		res = ps.mapper.ToLayerResponses(s.BoundLayers())
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// RunAnalysis issues one external call and replaces the work list wholesale.
// Missing credential is a hard stop that leaves the work list untouched;
// transport and parse failures substitute the simulated fallback instead.
// At most one analysis per session is in flight, enforced by the Analyzing
// flag under the session lock.
func (ps *plannerService) RunAnalysis(ctx context.Context, sessionId string) (*dto.RunAnalysisResponse, error) {
	if !ps.credentialSet {
		return nil, geoai.ErrMissingCredential
	}

	var siteName string
	var images []geoai.ImagePart
	err := ps.sessionRepo.Update(sessionId, func(s *entity.PlanningSession) error {
		if s.Analyzing {
			return entity.ErrAnalysisBusy
		}
		s.Analyzing = true
		siteName = s.SiteName
		images = geoai.CollectImageParts(s.BoundLayers())
		return nil
	})
	if err != nil {
		return nil, err
	}

	works, simulated := ps.identifyWorks(ctx, sessionId, siteName, images)

	err = ps.sessionRepo.Update(sessionId, func(s *entity.PlanningSession) error {
		s.Analyzing = false
		s.Works = works
		s.Simulated = simulated
		s.SelectedWorkId = ""
		return nil
	})
	if err != nil {
		// Session expired mid-run. The busy flag died with it.
		return nil, err
	}

	if ps.notifier != nil {
		ps.notifier.Notify(dto.PlannerEventMessage{
			SessionId: sessionId,
			Event:     "analysis.completed",
			WorkCount: len(works),
			Simulated: simulated,
		})
	}

	return &dto.RunAnalysisResponse{
		Works:     ps.mapper.ToWorkItemResponses(works),
		Simulated: simulated,
	}, nil
}

// identifyWorks performs the external call plus reconciliation, falling back
// to the deterministic simulated plan on any recoverable failure.
func (ps *plannerService) identifyWorks(ctx context.Context, sessionId, siteName string, images []geoai.ImagePart) ([]*entity.WorkItem, bool) {
	instruction, err := geoai.BuildInstruction(siteName, ps.cat.Excerpt(ps.excerptSize))
	if err != nil {
		ps.sysLogger.Error("Planner", "Failed to build analysis instruction", map[string]interface{}{
			"session_id": sessionId,
			"error":      err.Error(),
		})
		return geoai.SimulatedWorks(), true
	}

	callCtx, cancel := context.WithTimeout(ctx, ps.analysisTimeout)
	defer cancel()

	raw, err := ps.provider.IdentifyWorks(callCtx, images, instruction)
	if err != nil {
		ps.sysLogger.Warn("Planner", "Analysis call failed, substituting simulated plan", map[string]interface{}{
			"session_id": sessionId,
			"error":      err.Error(),
		})
		return geoai.SimulatedWorks(), true
	}

	works, err := geoai.Reconcile(raw, ps.cat, time.Now())
	if err != nil {
		ps.sysLogger.Warn("Planner", "Analysis response unusable, substituting simulated plan", map[string]interface{}{
			"session_id": sessionId,
			"error":      err.Error(),
		})
		return geoai.SimulatedWorks(), true
	}

	return works, false
}

func (ps *plannerService) ListWorks(ctx context.Context, sessionId string) ([]*dto.WorkItemResponse, error) {
	var res []*dto.WorkItemResponse
	err := ps.sessionRepo.View(sessionId, func(s *entity.PlanningSession) error {
		res = ps.mapper.ToWorkItemResponses(s.Works)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// SelectWork records the selection. Ids not present in the current work list
// are allowed; they resolve to no work on read.
func (ps *plannerService) SelectWork(ctx context.Context, sessionId, workId string) (*dto.SelectionResponse, error) {
	err := ps.sessionRepo.Update(sessionId, func(s *entity.PlanningSession) error {
		s.SelectedWorkId = workId
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ps.CurrentSelection(ctx, sessionId)
}

func (ps *plannerService) ClearSelection(ctx context.Context, sessionId string) error {
	return ps.sessionRepo.Update(sessionId, func(s *entity.PlanningSession) error {
		s.SelectedWorkId = ""
		return nil
	})
}

func (ps *plannerService) CurrentSelection(ctx context.Context, sessionId string) (*dto.SelectionResponse, error) {
	var res *dto.SelectionResponse
	err := ps.sessionRepo.View(sessionId, func(s *entity.PlanningSession) error {
		res = &dto.SelectionResponse{
			SelectedWorkId: s.SelectedWorkId,
			Work:           ps.mapper.ToWorkItemResponse(s.SelectedWork()),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// ExportReport is a stub; a real implementation would hand the session to a
// document-generation collaborator.
func (ps *plannerService) ExportReport(ctx context.Context, sessionId string) (*dto.ExportReportResponse, error) {
	if err := ps.sessionRepo.View(sessionId, func(*entity.PlanningSession) error { return nil }); err != nil {
		return nil, err
	}
	return &dto.ExportReportResponse{Status: "not_implemented"}, nil
}
