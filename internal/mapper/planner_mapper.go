package mapper

import (
	"yuktadhara-be/internal/dto"
	"yuktadhara-be/internal/entity"
)

type PlannerMapper struct{}

func NewPlannerMapper() *PlannerMapper {
	return &PlannerMapper{}
}

func (m *PlannerMapper) ToLayerResponse(l *entity.ThematicLayer) *dto.ThematicLayerResponse {
	if l == nil {
		return nil
	}
	return &dto.ThematicLayerResponse{
		Id:           l.Id,
		Name:         l.Name,
		Kind:         l.Kind,
		Bound:        l.Bound(),
		PreviewReady: l.PreviewData != "",
		MimeType:     l.MimeType,
	}
}

func (m *PlannerMapper) ToLayerResponses(layers []*entity.ThematicLayer) []*dto.ThematicLayerResponse {
	out := make([]*dto.ThematicLayerResponse, len(layers))
	for i, l := range layers {
		out[i] = m.ToLayerResponse(l)
	}
	return out
}

func (m *PlannerMapper) ToWorkItemResponse(w *entity.WorkItem) *dto.WorkItemResponse {
	if w == nil {
		return nil
	}
	return &dto.WorkItemResponse{
		Id:                     w.Id,
		CategoryCode:           w.CategoryCode,
		MasterWorkCategory:     w.MasterWorkCategory,
		MajorScheduledCategory: w.MajorScheduledCategory,
		BeneficiaryType:        w.BeneficiaryType,
		ActivityType:           w.ActivityType,
		WorkType:               w.WorkType,
		PermissibleWork:        w.PermissibleWork,
		GAWStatus:              w.GAWStatus,
		SubCategoryId:          w.SubCategoryId,
		Latitude:               w.Latitude,
		Longitude:              w.Longitude,
		FeasibilityScore:       w.FeasibilityScore,
		AiReasoning:            w.AiReasoning,
		Repaired:               w.Repaired,
	}
}

func (m *PlannerMapper) ToWorkItemResponses(works []*entity.WorkItem) []*dto.WorkItemResponse {
	out := make([]*dto.WorkItemResponse, len(works))
	for i, w := range works {
		out[i] = m.ToWorkItemResponse(w)
	}
	return out
}

func (m *PlannerMapper) ToSessionResponse(s *entity.PlanningSession) *dto.SessionResponse {
	if s == nil {
		return nil
	}
	return &dto.SessionResponse{
		Id:             s.Id,
		SiteName:       s.SiteName,
		Layers:         m.ToLayerResponses(s.Layers),
		Works:          m.ToWorkItemResponses(s.Works),
		SelectedWorkId: s.SelectedWorkId,
		Simulated:      s.Simulated,
		Analyzing:      s.Analyzing,
		CreatedAt:      s.CreatedAt,
	}
}
