package scheduler

import (
	"context"
	"stash/internal/providers"
	"stash/internal/scheduler/interfaces"
	"stash/internal/services"
	"stash/internal/storage"
	"stash/internal/structures"
	"sync"
	"time"

	"github.com/roylee0704/gron"
)

const defaultSweepTimeout = 30 * time.Second

type Scheduler struct {
	config      *structures.Config
	logger      providers.Logger
	metrics     providers.MetricsProviderInterface
	store       storage.KeyValueStore
	fileManager *storage.FileManager
	caps        services.BudgetCapServiceInterface
	sessions    services.SessionServiceInterface
	cron        *gron.Cron
	opsMu       sync.Mutex
}

func (s *Scheduler) Init() {
	s.cron = gron.New()

	s.cron.AddFunc(gron.Every(s.config.Persistence.SaveInterval), func() {
		if !s.store.Dirty() {
			return
		}
		if err := s.Persist(); err == nil {
			s.logger.Debugf(providers.TypeApp, "Persisted state to file %s", s.config.Persistence.FilePath)
		}
	})

	s.cron.AddFunc(gron.Every(s.config.Sweep.Interval), s.Sweep)

	s.cron.Start()
}

func (s *Scheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

func (s *Scheduler) Restore() error {
	if err := s.fileManager.LoadFromFile(s.config.Persistence.FilePath); err != nil {
		return err
	}
	s.logger.Infof(providers.TypeApp, "Restored %d entries from %s", s.store.Len(), s.config.Persistence.FilePath)
	s.updateGauges()
	return nil
}

func (s *Scheduler) Persist() error {
	s.opsMu.Lock()
	defer s.opsMu.Unlock()

	start := time.Now()
	err := s.fileManager.SaveToFile(s.config.Persistence.FilePath)
	s.metrics.ObservePersistenceDuration(time.Since(start))
	if err != nil {
		s.logger.Errorf(providers.TypeApp, "Error while persisting data: %s", err)
		return err
	}
	return nil
}

// Sweep drops expired budget caps and reverts expired sessions.
func (s *Scheduler) Sweep() {
	s.opsMu.Lock()
	defer s.opsMu.Unlock()

	timeout := s.config.Backend.Timeout
	if timeout <= 0 {
		timeout = defaultSweepTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	caps := s.caps.ClearExpiredBudgetCaps()
	reverted := s.sessions.ExpireSessions(ctx)
	if caps > 0 || reverted > 0 {
		s.logger.Infof(providers.TypeApp, "Sweep removed %d budget caps, reverted %d sessions", caps, reverted)
	}
	s.updateGauges()
}

func (s *Scheduler) updateGauges() {
	for namespace, count := range storage.CountByNamespace(s.store) {
		s.metrics.SetStoreEntries(namespace, count)
	}
}

func NewScheduler(
	config *structures.Config,
	logger providers.Logger,
	metrics providers.MetricsProviderInterface,
	store storage.KeyValueStore,
	fileManager *storage.FileManager,
	caps services.BudgetCapServiceInterface,
	sessions services.SessionServiceInterface,
) interfaces.SchedulerInterface {
	return &Scheduler{
		config:      config,
		logger:      logger,
		metrics:     metrics,
		store:       store,
		fileManager: fileManager,
		caps:        caps,
		sessions:    sessions,
	}
}
