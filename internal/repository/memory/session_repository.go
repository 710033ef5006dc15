package memory

import (
	"sync"
	"time"

	"yuktadhara-be/internal/entity"

	gocache "github.com/patrickmn/go-cache"
)

// SessionRepository holds planning sessions in process memory. Nothing is
// persisted; a session silently expires after its TTL.
type SessionRepository struct {
	cache *gocache.Cache

	// mu serializes mutations of stored sessions. Sessions are kept as
	// pointers, so the busy-flag test-and-set and per-layer preview writes
	// stay atomic with respect to each other.
	mu sync.Mutex
}

func NewSessionRepository(ttl time.Duration) *SessionRepository {
	if ttl <= 0 {
		ttl = 1 * time.Hour
	}
	c := gocache.New(ttl, 10*time.Minute)
	return &SessionRepository{cache: c}
}

func (r *SessionRepository) Save(session *entity.PlanningSession) {
	r.cache.Set(session.Id.String(), session, gocache.DefaultExpiration)
}

// Get returns the live session pointer without locking. Callers that read
// state which Update may mutate concurrently must use View instead.
func (r *SessionRepository) Get(sessionID string) (*entity.PlanningSession, bool) {
	if x, found := r.cache.Get(sessionID); found {
		return x.(*entity.PlanningSession), true
	}
	return nil, false
}

func (r *SessionRepository) Delete(sessionID string) {
	r.cache.Delete(sessionID)
}

// View runs fn against the stored session under the repository lock. All
// reads of live session state go through here: Update hands the same pointer
// to writers, so an unlocked dereference races with them. fn must not retain
// the session or anything reachable from it past its return.
func (r *SessionRepository) View(sessionID string, fn func(*entity.PlanningSession) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, found := r.Get(sessionID)
	if !found {
		return entity.ErrSessionNotFound
	}
	return fn(session)
}

// Update applies fn to the stored session under the repository lock and
// refreshes its TTL. Returns ErrSessionNotFound if the session expired.
func (r *SessionRepository) Update(sessionID string, fn func(*entity.PlanningSession) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, found := r.Get(sessionID)
	if !found {
		return entity.ErrSessionNotFound
	}
	if err := fn(session); err != nil {
		return err
	}
	r.Save(session)
	return nil
}
