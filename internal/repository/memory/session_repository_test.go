package memory

import (
	"testing"
	"time"

	"yuktadhara-be/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionRoundTrip(t *testing.T) {
	repo := NewSessionRepository(time.Hour)

	session := entity.NewPlanningSession("Kalaburagi GP-1")
	repo.Save(session)

	got, found := repo.Get(session.Id.String())
	require.True(t, found)
	assert.Equal(t, "Kalaburagi GP-1", got.SiteName)
	assert.Len(t, got.Layers, 3)

	repo.Delete(session.Id.String())
	_, found = repo.Get(session.Id.String())
	assert.False(t, found)
}

func TestUpdateMutatesStoredSession(t *testing.T) {
	repo := NewSessionRepository(time.Hour)
	session := entity.NewPlanningSession("GP")
	repo.Save(session)

	err := repo.Update(session.Id.String(), func(s *entity.PlanningSession) error {
		s.SiteName = "Renamed GP"
		return nil
	})
	require.NoError(t, err)

	got, _ := repo.Get(session.Id.String())
	assert.Equal(t, "Renamed GP", got.SiteName)
}

func TestViewMissingSession(t *testing.T) {
	repo := NewSessionRepository(time.Hour)

	err := repo.View("nope", func(s *entity.PlanningSession) error { return nil })
	assert.ErrorIs(t, err, entity.ErrSessionNotFound)
}

// Exercises concurrent readers and writers on one session; run with -race.
func TestViewAndUpdateAreMutuallyExclusive(t *testing.T) {
	repo := NewSessionRepository(time.Hour)
	session := entity.NewPlanningSession("GP")
	repo.Save(session)
	id := session.Id.String()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 500; i++ {
			_ = repo.Update(id, func(s *entity.PlanningSession) error {
				l, _ := s.Layer("1")
				l.PreviewData = "payload"
				s.Works = []*entity.WorkItem{{Id: "w1"}}
				return nil
			})
		}
	}()

	for i := 0; i < 500; i++ {
		err := repo.View(id, func(s *entity.PlanningSession) error {
			l, _ := s.Layer("1")
			_ = l.PreviewData
			for _, w := range s.Works {
				_ = w.Id
			}
			return nil
		})
		require.NoError(t, err)
	}
	<-done
}

func TestUpdateMissingSession(t *testing.T) {
	repo := NewSessionRepository(time.Hour)

	err := repo.Update("nope", func(s *entity.PlanningSession) error { return nil })
	assert.ErrorIs(t, err, entity.ErrSessionNotFound)
}
