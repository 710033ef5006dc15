package geoai

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"yuktadhara-be/internal/entity"
	"yuktadhara-be/pkg/catalog"
)

// Classification defaults applied to every reconciled work item.
const (
	defaultMasterWorkCategory     = "RURAL INFRASTRUCTURE"
	defaultMajorScheduledCategory = "Natural Resource Management"
	defaultBeneficiaryType        = "Community"
	defaultActivityType           = "New Work"
)

// workCandidate mirrors the schema the model is instructed to emit. The
// category_code the model returns is ignored; classification comes from the
// catalog match.
type workCandidate struct {
	WorkType         string  `json:"work_type"`
	PermissibleWork  string  `json:"permissible_work"`
	SubCategoryId    int     `json:"sub_category_id"`
	Latitude         float64 `json:"latitude"`
	Longitude        float64 `json:"longitude"`
	FeasibilityScore float64 `json:"feasibility_score"`
	AiReasoning      string  `json:"ai_reasoning"`
}

// Reconcile parses the raw model answer and produces the canonical work item
// list. Candidates with an unknown sub-category id inherit the catalog's
// first entry instead of being dropped; such items carry Repaired=true.
// Numeric fields pass through verbatim: the score is nominally 0-100 but is
// not clamped here, matching the upstream contract's accepted looseness.
func Reconcile(raw string, cat *catalog.Catalog, now time.Time) ([]*entity.WorkItem, error) {
	cleaned := stripMarkdownFences([]byte(raw))

	var candidates []workCandidate
	if err := json.Unmarshal(cleaned, &candidates); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	works := make([]*entity.WorkItem, 0, len(candidates))
	for i, cand := range candidates {
		ref, found := cat.Lookup(cand.SubCategoryId)
		if !found {
			ref = cat.First()
		}

		works = append(works, &entity.WorkItem{
			Id:                     fmt.Sprintf("ai-work-%d-%d", i, now.UnixMilli()),
			CategoryCode:           ref.CategoryCode,
			MasterWorkCategory:     defaultMasterWorkCategory,
			MajorScheduledCategory: defaultMajorScheduledCategory,
			BeneficiaryType:        defaultBeneficiaryType,
			ActivityType:           defaultActivityType,
			WorkType:               cand.WorkType,
			PermissibleWork:        cand.PermissibleWork,
			GAWStatus:              ref.GAWStatus,
			SubCategoryId:          cand.SubCategoryId,
			Latitude:               cand.Latitude,
			Longitude:              cand.Longitude,
			FeasibilityScore:       cand.FeasibilityScore,
			AiReasoning:            cand.AiReasoning,
			Repaired:               !found,
		})
	}

	return works, nil
}

// stripMarkdownFences cleans a ```json ... ``` wrapper the model sometimes
// puts around its answer despite the JSON response mime type.
func stripMarkdownFences(b []byte) []byte {
	b = bytes.TrimSpace(b)
	b = bytes.TrimPrefix(b, []byte("```json"))
	b = bytes.TrimPrefix(b, []byte("```"))
	b = bytes.TrimSuffix(b, []byte("```"))
	return bytes.TrimSpace(b)
}
