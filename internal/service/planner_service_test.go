package service

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"yuktadhara-be/internal/dto"
	"yuktadhara-be/internal/entity"
	"yuktadhara-be/internal/repository/memory"
	"yuktadhara-be/pkg/catalog"
	"yuktadhara-be/pkg/geoai"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProvider struct {
	calls    atomic.Int64
	response string
	err      error

	entered chan struct{} // closed-once signal that a call started, optional
	release chan struct{} // blocks the call until closed, optional
}

func (p *fakeProvider) IdentifyWorks(ctx context.Context, images []geoai.ImagePart, instruction string, options ...geoai.Option) (string, error) {
	p.calls.Add(1)
	if p.entered != nil {
		p.entered <- struct{}{}
	}
	if p.release != nil {
		<-p.release
	}
	return p.response, p.err
}

type fakePublisher struct {
	published [][]byte
}

func (p *fakePublisher) Publish(ctx context.Context, payload []byte) error {
	p.published = append(p.published, payload)
	return nil
}

type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }

func newTestService(provider geoai.AnalysisProvider, credentialSet bool) (IPlannerService, *memory.SessionRepository, *fakePublisher) {
	repo := memory.NewSessionRepository(time.Hour)
	pub := &fakePublisher{}
	svc := NewPlannerService(repo, catalog.Default(), provider, pub, nil, nopLogger{}, credentialSet, 5*time.Second, 0)
	return svc, repo, pub
}

func createSession(t *testing.T, svc IPlannerService) string {
	t.Helper()
	res, err := svc.CreateSession(context.Background(), &dto.CreateSessionRequest{SiteName: "Test GP"})
	require.NoError(t, err)
	return res.Id.String()
}

func TestSetLayerFilePublishesEncodeJob(t *testing.T) {
	svc, _, pub := newTestService(&fakeProvider{response: "[]"}, true)
	id := createSession(t, svc)

	err := svc.SetLayerFile(context.Background(), id, "1", []byte{0x89, 0x50}, "image/png")
	require.NoError(t, err)
	assert.Len(t, pub.published, 1)

	layers, err := svc.ListBoundLayers(context.Background(), id)
	require.NoError(t, err)
	require.Len(t, layers, 1)
	assert.Equal(t, "1", layers[0].Id)
	assert.False(t, layers[0].PreviewReady, "preview must stay absent until the encoder lands")
}

func TestSetLayerFileUnknownSlot(t *testing.T) {
	svc, _, _ := newTestService(&fakeProvider{response: "[]"}, true)
	id := createSession(t, svc)

	err := svc.SetLayerFile(context.Background(), id, "42", []byte{1}, "image/png")
	assert.ErrorIs(t, err, entity.ErrUnknownLayer)
}

func TestClearLayerExcludesFromBoundList(t *testing.T) {
	svc, _, _ := newTestService(&fakeProvider{response: "[]"}, true)
	id := createSession(t, svc)

	require.NoError(t, svc.SetLayerFile(context.Background(), id, "1", []byte{1}, "image/png"))
	require.NoError(t, svc.SetLayerFile(context.Background(), id, "2", []byte{2}, "image/png"))

	require.NoError(t, svc.ClearLayer(context.Background(), id, "1"))

	layers, err := svc.ListBoundLayers(context.Background(), id)
	require.NoError(t, err)
	require.Len(t, layers, 1)
	assert.Equal(t, "2", layers[0].Id)

	// clearing again is a no-op, not an error
	assert.NoError(t, svc.ClearLayer(context.Background(), id, "1"))
}

func TestRunAnalysisMissingCredential(t *testing.T) {
	provider := &fakeProvider{response: "[]"}
	svc, repo, _ := newTestService(provider, false)
	id := createSession(t, svc)

	// pre-existing works must survive the hard stop
	require.NoError(t, repo.Update(id, func(s *entity.PlanningSession) error {
		s.Works = geoai.SimulatedWorks()
		return nil
	}))

	_, err := svc.RunAnalysis(context.Background(), id)
	assert.ErrorIs(t, err, geoai.ErrMissingCredential)
	assert.Equal(t, int64(0), provider.calls.Load(), "no outbound call without credential")

	works, err := svc.ListWorks(context.Background(), id)
	require.NoError(t, err)
	assert.Len(t, works, len(geoai.SimulatedWorks()), "work list must stay unchanged")
}

func TestRunAnalysisSuccess(t *testing.T) {
	provider := &fakeProvider{response: `[
		{"work_type": "Check Dams", "permissible_work": "Construction of Gabion Check Dam for Community",
		 "sub_category_id": 2105, "latitude": 17.345, "longitude": 76.855,
		 "feasibility_score": 92, "ai_reasoning": "Pinch point."}
	]`}
	svc, _, _ := newTestService(provider, true)
	id := createSession(t, svc)

	res, err := svc.RunAnalysis(context.Background(), id)
	require.NoError(t, err)
	assert.False(t, res.Simulated)
	require.Len(t, res.Works, 1)
	assert.Equal(t, "GAW", res.Works[0].GAWStatus)
	assert.Equal(t, "A", res.Works[0].CategoryCode)
	assert.Equal(t, 92.0, res.Works[0].FeasibilityScore)
}

func TestRunAnalysisFallsBackOnProviderError(t *testing.T) {
	provider := &fakeProvider{err: errors.New("transport down")}
	svc, _, _ := newTestService(provider, true)
	id := createSession(t, svc)

	res, err := svc.RunAnalysis(context.Background(), id)
	require.NoError(t, err)
	assert.True(t, res.Simulated)
	assert.Len(t, res.Works, len(geoai.SimulatedWorks()))
}

func TestRunAnalysisFallsBackOnMalformedResponse(t *testing.T) {
	provider := &fakeProvider{response: "I am sorry, I cannot do that."}
	svc, _, _ := newTestService(provider, true)
	id := createSession(t, svc)

	res, err := svc.RunAnalysis(context.Background(), id)
	require.NoError(t, err)
	assert.True(t, res.Simulated)
}

func TestRunAnalysisRejectsConcurrentTrigger(t *testing.T) {
	provider := &fakeProvider{
		response: "[]",
		entered:  make(chan struct{}, 1),
		release:  make(chan struct{}),
	}
	svc, _, _ := newTestService(provider, true)
	id := createSession(t, svc)

	done := make(chan error, 1)
	go func() {
		_, err := svc.RunAnalysis(context.Background(), id)
		done <- err
	}()

	<-provider.entered // first call is in flight

	_, err := svc.RunAnalysis(context.Background(), id)
	assert.ErrorIs(t, err, entity.ErrAnalysisBusy)
	assert.Equal(t, int64(1), provider.calls.Load(), "busy trigger must not issue a second call")

	close(provider.release)
	require.NoError(t, <-done)

	// flag released after completion
	_, err = svc.RunAnalysis(context.Background(), id)
	assert.NoError(t, err)
}

func TestRunAnalysisClearsSelection(t *testing.T) {
	provider := &fakeProvider{response: "[]"}
	svc, _, _ := newTestService(provider, true)
	id := createSession(t, svc)

	_, err := svc.SelectWork(context.Background(), id, "sim-1")
	require.NoError(t, err)

	_, err = svc.RunAnalysis(context.Background(), id)
	require.NoError(t, err)

	sel, err := svc.CurrentSelection(context.Background(), id)
	require.NoError(t, err)
	assert.Empty(t, sel.SelectedWorkId)
}

func TestSelectionResolvesAgainstWorkList(t *testing.T) {
	provider := &fakeProvider{err: errors.New("down")}
	svc, _, _ := newTestService(provider, true)
	id := createSession(t, svc)

	_, err := svc.RunAnalysis(context.Background(), id) // simulated works
	require.NoError(t, err)

	sel, err := svc.SelectWork(context.Background(), id, "sim-2")
	require.NoError(t, err)
	require.NotNil(t, sel.Work)
	assert.Equal(t, "Ponds", sel.Work.WorkType)

	// unknown id is permitted; it just resolves to nothing
	sel, err = svc.SelectWork(context.Background(), id, "ghost")
	require.NoError(t, err)
	assert.Equal(t, "ghost", sel.SelectedWorkId)
	assert.Nil(t, sel.Work)

	require.NoError(t, svc.ClearSelection(context.Background(), id))
	sel, err = svc.CurrentSelection(context.Background(), id)
	require.NoError(t, err)
	assert.Empty(t, sel.SelectedWorkId)
}

func TestExportReportStub(t *testing.T) {
	svc, _, _ := newTestService(&fakeProvider{response: "[]"}, true)
	id := createSession(t, svc)

	res, err := svc.ExportReport(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "not_implemented", res.Status)
}
