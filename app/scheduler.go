package app

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"viralfeed/domain"
)

// Scheduler drives the two decoupled schedules: feed aggregation and the
// posting pipeline. One worker per schedule; the item store is the only
// synchronization point between them. Overlapping external invocations are
// an accepted operational constraint, not solved here.
type Scheduler struct {
	aggregate func(context.Context)
	process   func(context.Context) error

	mu                sync.Mutex
	aggregateInterval time.Duration
	processInterval   time.Duration
	lastAggregate     time.Time
	lastProcess       time.Time
	ctx               context.Context
	cancel            context.CancelFunc
	tickerStopChan    chan struct{}
	started           bool
	done              sync.WaitGroup
}

func NewScheduler(aggregate func(context.Context), process func(context.Context) error,
	aggregateEvery, processEvery time.Duration) *Scheduler {
	return &Scheduler{
		aggregate:         aggregate,
		process:           process,
		aggregateInterval: aggregateEvery,
		processInterval:   processEvery,
	}
}

var _ domain.Runner = (*Scheduler)(nil)

func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return errors.New("scheduler already started")
	}
	s.ctx, s.cancel = context.WithCancel(ctx)
	s.tickerStopChan = make(chan struct{})
	s.done.Add(2)
	go s.loop(s.currentAggregateInterval, s.runAggregate)
	go s.loop(s.currentProcessInterval, s.runProcess)
	s.started = true
	return nil
}

func (s *Scheduler) Stop() error {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return nil
	}
	cancel := s.cancel
	s.started = false
	s.mu.Unlock()

	cancel()
	s.done.Wait()
	return nil
}

func (s *Scheduler) SetAggregateInterval(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.aggregateInterval = d
	s.restartTickersLocked()
}

func (s *Scheduler) SetProcessInterval(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.processInterval = d
	s.restartTickersLocked()
}

// restartTickersLocked signals both loops to rebuild their tickers by
// closing the old stop channel and replacing it.
func (s *Scheduler) restartTickersLocked() {
	if !s.started {
		return
	}
	close(s.tickerStopChan)
	s.tickerStopChan = make(chan struct{})
}

func (s *Scheduler) Status() domain.RunnerStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.RunnerStatus{
		AggregateInterval: s.aggregateInterval,
		ProcessInterval:   s.processInterval,
		LastAggregate:     s.lastAggregate,
		LastProcess:       s.lastProcess,
	}
}

func (s *Scheduler) loop(interval func() time.Duration, run func(context.Context)) {
	defer s.done.Done()
	for {
		s.mu.Lock()
		stopCh := s.tickerStopChan
		s.mu.Unlock()

		ticker := time.NewTicker(interval())
		select {
		case <-s.ctx.Done():
			ticker.Stop()
			return
		case <-stopCh:
			ticker.Stop()
			continue
		case <-ticker.C:
			ticker.Stop()
		}
		run(s.ctx)
	}
}

func (s *Scheduler) currentAggregateInterval() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.aggregateInterval
}

func (s *Scheduler) currentProcessInterval() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.processInterval
}

func (s *Scheduler) runAggregate(ctx context.Context) {
	s.aggregate(ctx)
	s.mu.Lock()
	s.lastAggregate = time.Now().UTC()
	s.mu.Unlock()
}

func (s *Scheduler) runProcess(ctx context.Context) {
	if err := s.process(ctx); err != nil {
		// the item stays unprocessed and is retried on a later tick
		log.Printf("scheduler: processing run failed: %v", err)
	}
	s.mu.Lock()
	s.lastProcess = time.Now().UTC()
	s.mu.Unlock()
}
