package geoai

import (
	"encoding/base64"
	"strings"
	"testing"

	"yuktadhara-be/internal/entity"
	"yuktadhara-be/pkg/catalog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildInstruction(t *testing.T) {
	cat := catalog.Default()
	prompt, err := BuildInstruction("Kalaburagi GP-1", cat.Excerpt(DefaultExcerptSize))
	require.NoError(t, err)

	assert.Contains(t, prompt, "Kalaburagi GP-1")
	assert.Contains(t, prompt, "PERMISSIBLE WORKS REFERENCE")
	assert.Contains(t, prompt, "Exact match from reference")
	assert.Contains(t, prompt, "sub_category_id")
	// the excerpt rides along as JSON
	assert.Contains(t, prompt, `"Construction of Gabion Check Dam for Community"`)
}

func TestBuildInstructionBoundsExcerpt(t *testing.T) {
	cat := catalog.Default()
	excerpt := cat.Excerpt(2)

	prompt, err := BuildInstruction("Test GP", excerpt)
	require.NoError(t, err)

	// entries past the bound must not leak into the prompt
	assert.Contains(t, prompt, "Construction of Earthen Gully Plugs for Individuals")
	assert.NotContains(t, prompt, "Construction of Earthen Spur for Community")
}

func TestCollectImageParts(t *testing.T) {
	layers := []*entity.ThematicLayer{
		{Id: "1", Name: "LULC Map", Kind: entity.LayerKindLULC, Image: []byte{1}, MimeType: "image/png", PreviewData: "bGF5ZXIx"},
		{Id: "2", Name: "Slope Map", Kind: entity.LayerKindSlope},
		{Id: "3", Name: "Drainage Map", Kind: entity.LayerKindDrainage, Image: []byte{2}, MimeType: "image/jpeg", PreviewData: "bGF5ZXIz"},
	}

	parts := CollectImageParts(layers)
	require.Len(t, parts, 2)
	assert.Equal(t, "image/png", parts[0].MimeType)
	assert.Equal(t, "bGF5ZXIx", parts[0].Data)
	assert.Equal(t, "image/jpeg", parts[1].MimeType)
}

func TestCollectImagePartsEncodesPendingLayer(t *testing.T) {
	// Image stored but the async encode has not landed: the part is encoded
	// from the blob so the bound layer still reaches the model.
	blob := []byte("fake-png-bytes")
	layers := []*entity.ThematicLayer{
		{Id: "1", Name: "LULC Map", Kind: entity.LayerKindLULC, Image: blob, MimeType: "image/png"},
	}

	parts := CollectImageParts(layers)
	require.Len(t, parts, 1)
	assert.Equal(t, base64.StdEncoding.EncodeToString(blob), parts[0].Data)
}

func TestCollectImagePartsKeepsSlotOrder(t *testing.T) {
	layers := []*entity.ThematicLayer{
		{Id: "1", Name: "LULC Map", Image: []byte{1}, MimeType: "image/png", PreviewData: "a"},
		{Id: "2", Name: "Slope Map", Image: []byte{2}, MimeType: "image/png", PreviewData: "b"},
		{Id: "3", Name: "Drainage Map", Image: []byte{3}, MimeType: "image/png", PreviewData: "c"},
	}

	parts := CollectImageParts(layers)
	got := make([]string, len(parts))
	for i, p := range parts {
		got[i] = p.Data
	}
	assert.Equal(t, "a,b,c", strings.Join(got, ","))
}
