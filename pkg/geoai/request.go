package geoai

import (
	"encoding/base64"
	"encoding/json"
	"fmt"

	"yuktadhara-be/internal/entity"
	"yuktadhara-be/pkg/catalog"
)

// DefaultExcerptSize bounds the permissible works context sent to the model.
// Sending a subset saves tokens; unknown ids coming back are soft-repaired
// by the reconciler, so the bound is safe.
const DefaultExcerptSize = 15

// CollectImageParts gathers the encoded payloads of the bound layers in slot
// order, one part per bound layer. A layer whose async preview encoding has
// not landed yet is encoded here from the stored blob rather than omitted.
func CollectImageParts(layers []*entity.ThematicLayer) []ImagePart {
	parts := make([]ImagePart, 0, len(layers))
	for _, l := range layers {
		if !l.Bound() {
			continue
		}
		data := l.PreviewData
		if data == "" {
			data = base64.StdEncoding.EncodeToString(l.Image)
		}
		parts = append(parts, ImagePart{
			MimeType: l.MimeType,
			Data:     data,
		})
	}
	return parts
}

// BuildInstruction renders the instruction block: site name, the bounded
// permissible-works excerpt and the required output schema. Pure; the caller
// supplies the excerpt so the prompt size stays under its control.
func BuildInstruction(siteName string, excerpt []catalog.WorkDefinition) (string, error) {
	excerptJson, err := json.Marshal(excerpt)
	if err != nil {
		return "", err
	}

	prompt := fmt.Sprintf(`You are an ADVANCED GEO-SPATIAL ARTIFICIAL INTELLIGENCE SYSTEM specialized in Watershed Planning and NRM.

TASK:
Analyze the provided thematic maps (LULC, Slope, Drainage, Soil, etc.) for Gram Panchayat: %s.
Using your reasoning of hydrology, topography, and soil science, IDENTIFY suitable locations for Rural Infrastructure works.

MANDATORY RULES:
1. Select ONLY from the provided permissible works list.
2. Feasibility Score must be based on scientific suitability (Slope + Soil + Drainage).
3. Output strictly valid JSON.
4. You must generate at least 5 distinct works.
5. Coordinates (lat/lng) should be hypothetical but plausible within the region of Northern Karnataka (approx Lat 17.3, Lng 76.8) if precise geo-referencing isn't possible from the image alone. Spread them out.

PERMISSIBLE WORKS REFERENCE:
%s

OUTPUT SCHEMA (JSON Array):
[
  {
    "category_code": "String",
    "work_type": "String",
    "permissible_work": "String (Exact match from reference)",
    "sub_category_id": Number,
    "latitude": Number,
    "longitude": Number,
    "feasibility_score": Number (0-100),
    "ai_reasoning": "String (Detailed hydro-geological justification)"
  }
]`, siteName, string(excerptJson))

	return prompt, nil
}
