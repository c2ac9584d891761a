package scheduler

import (
	"sync"
	"time"

	"github.com/korjavin/fridgechef/pkg/logger"
	"github.com/korjavin/fridgechef/pkg/state"
	"github.com/korjavin/fridgechef/pkg/storage"
)

const (
	DefaultSweepInterval = time.Minute
	DefaultGCInterval    = 10 * time.Minute
)

// Service provides housekeeping for sessions and storage
type Service struct {
	store         *storage.Store
	sessions      *state.Manager
	logger        *logger.Logger
	sweepInterval time.Duration
	gcInterval    time.Duration
	stopChan      chan struct{}
	stopOnce      sync.Once
	wg            sync.WaitGroup
}

// New creates a new scheduler service. Zero intervals take the defaults.
func New(store *storage.Store, sessions *state.Manager, sweepInterval, gcInterval time.Duration) *Service {
	if sweepInterval <= 0 {
		sweepInterval = DefaultSweepInterval
	}
	if gcInterval <= 0 {
		gcInterval = DefaultGCInterval
	}
	return &Service{
		store:         store,
		sessions:      sessions,
		logger:        logger.New("scheduler"),
		sweepInterval: sweepInterval,
		gcInterval:    gcInterval,
		stopChan:      make(chan struct{}),
	}
}

// Start starts the scheduler
func (s *Service) Start() {
	s.logger.Info("Starting housekeeping: sessions every %v, storage GC every %v", s.sweepInterval, s.gcInterval)

	s.wg.Add(2)
	go s.run(s.sweepInterval, s.sweepSessions)
	go s.run(s.gcInterval, s.collectGarbage)
}

// Stop stops the scheduler and waits for running jobs to finish
func (s *Service) Stop() {
	s.stopOnce.Do(func() {
		s.logger.Info("Stopping housekeeping")
		close(s.stopChan)
	})
	s.wg.Wait()
}

func (s *Service) run(interval time.Duration, job func()) {
	defer s.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			job()
		case <-s.stopChan:
			return
		}
	}
}

// sweepSessions drops sessions that have been idle past their ttl
func (s *Service) sweepSessions() {
	if n := s.sessions.Sweep(); n > 0 {
		s.logger.Debug("Dropped %d idle sessions", n)
	}
}

// collectGarbage runs one value log GC pass on the store
func (s *Service) collectGarbage() {
	if err := s.store.RunGC(); err != nil {
		s.logger.Error("Storage GC failed: %v", err)
	}
}
