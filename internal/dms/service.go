package dms

import "sync"

// Service is the fallback-aware data source: every operation first tries the
// remote service and, once a qualifying failure has been seen, serves the
// rest of the session from the in-memory workflow store.
type Service struct {
	remote  Remote
	store   Store
	logger  Logger
	clock   Clock
	sleeper Sleeper
	idgen   IDGenerator

	mu      sync.Mutex
	mode    Mode
	actorID int64
}

// NewService creates a Service with the provided dependencies.
// forceMock starts the service already fallen back, so the remote service is
// never contacted (the build-time/config override of the fallback policy).
func NewService(remote Remote, store Store, logger Logger, clock Clock, sleeper Sleeper, idgen IDGenerator, forceMock bool) *Service {
	mode := ModeLive
	if forceMock {
		mode = ModeFallenBack
	}
	return &Service{
		remote:  remote,
		store:   store,
		logger:  logger,
		clock:   clock,
		sleeper: sleeper,
		idgen:   idgen,
		mode:    mode,
	}
}

// SetActor records the authenticated user on whose behalf simulated-store
// mutations are attributed. Zero means the seeded admin.
func (s *Service) SetActor(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.actorID = userID
}

func (s *Service) actor() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.actorID
}
