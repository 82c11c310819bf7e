package notify

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-minutes/internal/domain/entities"
	"github.com/johnquangdev/meeting-minutes/internal/infrastructure/cache"
)

// TaskLister fetches the tracker's current tasks
type TaskLister interface {
	All(ctx context.Context) ([]entities.Task, error)
}

// Sweeper periodically runs missing-field detection over tracker tasks.
// A task is alerted at most once per alert TTL.
type Sweeper struct {
	tasks    TaskLister
	svc      Service
	store    cache.Store
	interval time.Duration
	alertTTL time.Duration
	logger   *zap.Logger

	mu       sync.Mutex
	running  bool
	stopChan chan struct{}
	wg       sync.WaitGroup
}

// NewSweeper creates a sweeper; it does nothing until Start is called
func NewSweeper(tasks TaskLister, svc Service, store cache.Store, interval, alertTTL time.Duration, logger *zap.Logger) *Sweeper {
	return &Sweeper{
		tasks:    tasks,
		svc:      svc,
		store:    store,
		interval: interval,
		alertTTL: alertTTL,
		logger:   logger,
	}
}

func alertedKey(taskID string) string {
	return "alerted:" + taskID
}

// Start launches the background loop
func (s *Sweeper) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return fmt.Errorf("sweeper already running")
	}
	if s.interval <= 0 {
		return fmt.Errorf("sweeper interval must be positive")
	}

	s.running = true
	s.stopChan = make(chan struct{})

	if s.logger != nil {
		s.logger.Info("🚀 Starting missing-field sweeper", zap.Duration("interval", s.interval))
	}

	s.wg.Add(1)
	go s.loop(ctx)
	return nil
}

// Stop signals the loop and waits for the current sweep to finish
func (s *Sweeper) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return fmt.Errorf("sweeper not running")
	}

	close(s.stopChan)
	s.wg.Wait()
	s.running = false

	if s.logger != nil {
		s.logger.Info("✅ Missing-field sweeper stopped")
	}
	return nil
}

func (s *Sweeper) loop(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := s.Sweep(ctx)
			if err != nil {
				if s.logger != nil {
					s.logger.Error("❌ Sweep failed", zap.Error(err))
				}
				continue
			}
			if n > 0 && s.logger != nil {
				s.logger.Info("sweep alerted tasks", zap.Int("count", n))
			}
		}
	}
}

// Sweep runs one detection pass and returns how many tasks were alerted
func (s *Sweeper) Sweep(ctx context.Context) (int, error) {
	all, err := s.tasks.All(ctx)
	if err != nil {
		return 0, err
	}

	fresh := make([]entities.Task, 0, len(all))
	for _, t := range all {
		if len(t.MissingFields()) == 0 {
			continue
		}
		_, seen, err := s.store.Get(ctx, alertedKey(taskRef(t)))
		if err != nil {
			if s.logger != nil {
				s.logger.Warn("alert dedupe read failed", zap.String("task", taskRef(t)), zap.Error(err))
			}
		}
		if seen {
			continue
		}
		fresh = append(fresh, t)
	}
	if len(fresh) == 0 {
		return 0, nil
	}

	detections, err := s.svc.DetectMissingFields(ctx, fresh)
	if err != nil {
		return 0, err
	}
	for _, d := range detections {
		if err := s.store.Set(ctx, alertedKey(d.TaskID), time.Now().UTC().Format(time.RFC3339), s.alertTTL); err != nil && s.logger != nil {
			s.logger.Warn("alert dedupe write failed", zap.String("task", d.TaskID), zap.Error(err))
		}
	}
	return len(detections), nil
}
