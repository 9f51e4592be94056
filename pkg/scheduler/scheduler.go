package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/mazhu/website/pkg/logger"
)

var (
	ErrEmptyName     = errors.New("scheduler: empty task name")
	ErrDuplicateName = errors.New("scheduler: duplicate task name")
	ErrInvalidSpec   = errors.New("scheduler: invalid schedule")
)

// Task is periodic work. The context is cancelled when the scheduler stops.
type Task func(ctx context.Context) error

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithLogger sets the logger used for task outcomes.
func WithLogger(l *slog.Logger) Option {
	return func(s *Scheduler) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithLocation evaluates schedules in loc instead of UTC.
func WithLocation(loc *time.Location) Option {
	return func(s *Scheduler) {
		if loc != nil {
			s.location = loc
		}
	}
}

// WithTaskTimeout bounds each task run. Zero means no bound.
func WithTaskTimeout(d time.Duration) Option {
	return func(s *Scheduler) {
		s.timeout = d
	}
}

// Scheduler runs named tasks on cron schedules. A task never overlaps
// with itself; a run due while the previous one is active is skipped.
type Scheduler struct {
	cron     *cron.Cron
	logger   *slog.Logger
	location *time.Location
	ctx      context.Context
	cancel   context.CancelFunc
	names    map[string]cron.EntryID
	timeout  time.Duration
	mu       sync.Mutex
}

// New creates a stopped Scheduler.
func New(opts ...Option) *Scheduler {
	s := &Scheduler{
		logger:   logger.NewNope(),
		location: time.UTC,
		names:    make(map[string]cron.EntryID),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.ctx, s.cancel = context.WithCancel(context.Background())
	s.cron = cron.New(
		cron.WithLocation(s.location),
		cron.WithParser(cron.NewParser(cron.Minute|cron.Hour|cron.Dom|cron.Month|cron.Dow|cron.Descriptor)),
		cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
	)
	return s
}

// Add registers task under name. spec is a five-field cron expression
// or a descriptor such as "@every 1m" or "@daily".
func (s *Scheduler) Add(name, spec string, task Task) error {
	if name == "" {
		return ErrEmptyName
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.names[name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateName, name)
	}

	id, err := s.cron.AddFunc(spec, func() { s.run(name, task) })
	if err != nil {
		return errors.Join(fmt.Errorf("%w: %s %q", ErrInvalidSpec, name, spec), err)
	}
	s.names[name] = id
	return nil
}

// Next returns the next activation of the named task, or false.
func (s *Scheduler) Next(name string) (time.Time, bool) {
	s.mu.Lock()
	id, ok := s.names[name]
	s.mu.Unlock()
	if !ok {
		return time.Time{}, false
	}

	next := s.cron.Entry(id).Next
	return next, !next.IsZero()
}

// Tasks returns the number of registered tasks.
func (s *Scheduler) Tasks() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.names)
}

// run executes task once with panic recovery and outcome logging.
func (s *Scheduler) run(name string, task Task) {
	ctx := s.ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			s.logger.ErrorContext(ctx, "scheduled task panicked",
				slog.String("task", name), slog.Any("panic", r))
		}
	}()

	if err := task(ctx); err != nil {
		s.logger.ErrorContext(ctx, "scheduled task failed",
			slog.String("task", name), slog.Any("error", err), slog.Duration("duration", time.Since(start)))
		return
	}
	s.logger.DebugContext(ctx, "scheduled task completed",
		slog.String("task", name), slog.Duration("duration", time.Since(start)))
}

// Start begins running tasks in the background.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop stops scheduling, cancels running tasks and waits for them to
// return or for ctx to end.
func (s *Scheduler) Stop(ctx context.Context) error {
	done := s.cron.Stop()
	s.cancel()

	select {
	case <-done.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// StartFunc adapts Start to a startup hook.
//
//	website.WithStartupHook(sched.StartFunc())
func (s *Scheduler) StartFunc() func(context.Context) error {
	return func(context.Context) error {
		s.Start()
		return nil
	}
}

// StopFunc adapts Stop to a shutdown hook.
func (s *Scheduler) StopFunc() func(context.Context) error {
	return s.Stop
}
