package geoai

import (
	"errors"
	"testing"
	"time"

	"yuktadhara-be/pkg/catalog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReconcileEmptyArray(t *testing.T) {
	works, err := Reconcile("[]", catalog.Default(), time.Now())
	require.NoError(t, err)
	assert.Empty(t, works)
}

func TestReconcileMalformedInput(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"not json", "the model refused"},
		{"object not array", `{"work_type": "Ponds"}`},
		{"truncated", `[{"work_type": "Ponds"`},
		{"empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Reconcile(tt.raw, catalog.Default(), time.Now())
			assert.True(t, errors.Is(err, ErrMalformedResponse), "want ErrMalformedResponse, got %v", err)
		})
	}
}

func TestReconcileKnownCatalogEntry(t *testing.T) {
	raw := `[{
		"work_type": "Check Dams",
		"permissible_work": "Construction of Gabion Check Dam for Community",
		"sub_category_id": 2105,
		"latitude": 17.345,
		"longitude": 76.855,
		"feasibility_score": 92,
		"ai_reasoning": "Valley pinch point."
	}]`

	works, err := Reconcile(raw, catalog.Default(), time.Now())
	require.NoError(t, err)
	require.Len(t, works, 1)

	w := works[0]
	assert.Equal(t, "A", w.CategoryCode)
	assert.Equal(t, "GAW", w.GAWStatus)
	assert.Equal(t, 2105, w.SubCategoryId)
	assert.Equal(t, 92.0, w.FeasibilityScore)
	assert.Equal(t, 17.345, w.Latitude)
	assert.Equal(t, 76.855, w.Longitude)
	assert.False(t, w.Repaired)
}

func TestReconcileUnknownIdInheritsFirstEntry(t *testing.T) {
	cat := catalog.Default()
	raw := `[{
		"work_type": "Ponds",
		"permissible_work": "Some unlisted work",
		"sub_category_id": 424242,
		"latitude": 17.3,
		"longitude": 76.8,
		"feasibility_score": 50,
		"ai_reasoning": "n/a"
	}]`

	works, err := Reconcile(raw, cat, time.Now())
	require.NoError(t, err)
	require.Len(t, works, 1)

	first := cat.First()
	assert.Equal(t, first.CategoryCode, works[0].CategoryCode)
	assert.Equal(t, first.GAWStatus, works[0].GAWStatus)
	assert.True(t, works[0].Repaired)
	// the candidate's own id and text survive the repair
	assert.Equal(t, 424242, works[0].SubCategoryId)
	assert.Equal(t, "Ponds", works[0].WorkType)
}

func TestReconcileOrderAndDistinctIds(t *testing.T) {
	raw := `[
		{"work_type": "Check Dams", "sub_category_id": 2105, "feasibility_score": 90},
		{"work_type": "Ponds", "sub_category_id": 2076, "feasibility_score": 80},
		{"work_type": "Plantation", "sub_category_id": 9054, "feasibility_score": 70},
		{"work_type": "Trenches", "sub_category_id": 2115, "feasibility_score": 60}
	]`

	works, err := Reconcile(raw, catalog.Default(), time.Now())
	require.NoError(t, err)
	require.Len(t, works, 4)

	seen := map[string]bool{}
	for _, w := range works {
		assert.False(t, seen[w.Id], "duplicate id %s", w.Id)
		seen[w.Id] = true
	}

	wantOrder := []string{"Check Dams", "Ponds", "Plantation", "Trenches"}
	for i, w := range works {
		assert.Equal(t, wantOrder[i], w.WorkType)
	}
}

func TestReconcileScorePassesThroughUnclamped(t *testing.T) {
	// The upstream contract bounds the score to 0-100 but reconciliation does
	// not enforce it; out-of-range values survive untouched.
	raw := `[{"work_type": "Ponds", "sub_category_id": 2076, "feasibility_score": 140}]`

	works, err := Reconcile(raw, catalog.Default(), time.Now())
	require.NoError(t, err)
	assert.Equal(t, 140.0, works[0].FeasibilityScore)
}

func TestReconcileStripsMarkdownFences(t *testing.T) {
	raw := "```json\n[{\"work_type\": \"Ponds\", \"sub_category_id\": 2076}]\n```"

	works, err := Reconcile(raw, catalog.Default(), time.Now())
	require.NoError(t, err)
	require.Len(t, works, 1)
	assert.Equal(t, "Ponds", works[0].WorkType)
}

func TestSimulatedWorksDeterministic(t *testing.T) {
	a := SimulatedWorks()
	b := SimulatedWorks()

	require.Equal(t, len(a), len(b))
	assert.GreaterOrEqual(t, len(a), 3)

	for i := range a {
		assert.Equal(t, *a[i], *b[i])
	}
}

func TestSimulatedWorksCoverage(t *testing.T) {
	works := SimulatedWorks()

	types := map[string]bool{}
	statuses := map[string]bool{}
	for _, w := range works {
		types[w.WorkType] = true
		statuses[w.GAWStatus] = true
	}

	assert.GreaterOrEqual(t, len(types), 2, "fallback should span at least two work types")
	assert.True(t, statuses["GAW"] && statuses["Non-GAW"], "fallback should span both GAW statuses")
}
