package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/m04kA/SMC-TurfBookingService/internal/domain"
)

const lifecycleJobName = "booking-lifecycle"

// LifecycleJob завершает бронирования, дата которых уже прошла
type LifecycleJob struct {
	completer    BookingCompleter
	timeProvider TimeProvider
	logger       Logger
}

func NewLifecycleJob(completer BookingCompleter, loc *time.Location, logger Logger) *LifecycleJob {
	return &LifecycleJob{
		completer:    completer,
		timeProvider: &RealTimeProvider{Location: loc},
		logger:       logger,
	}
}

// Run один проход: все advance_paid/fully_paid с датой раньше сегодняшней становятся completed
func (j *LifecycleJob) Run(ctx context.Context) (int64, error) {
	today := domain.Today(j.timeProvider.Now())

	n, err := j.completer.CompletePast(ctx, today)
	if err != nil {
		j.logger.Error("LifecycleJob: failed to complete bookings before %s: %v", today, err)
		return 0, err
	}

	j.logger.Info("LifecycleJob: completed %d bookings before %s", n, today)
	return n, nil
}

// Scheduler периодически запускает LifecycleJob
type Scheduler struct {
	scheduler gocron.Scheduler
	logger    Logger
}

// NewScheduler регистрирует задачу с интервалом interval; первый запуск сразу после Start
func NewScheduler(ctx context.Context, job *LifecycleJob, interval time.Duration, logger Logger) (*Scheduler, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("jobs: interval must be positive, got %s", interval)
	}

	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("jobs: failed to create scheduler: %w", err)
	}

	_, err = s.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func(ctx context.Context) {
			_, _ = job.Run(ctx)
		}, ctx),
		gocron.WithName(lifecycleJobName),
		gocron.WithStartAt(gocron.WithStartImmediately()),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		_ = s.Shutdown()
		return nil, fmt.Errorf("jobs: failed to register %s: %w", lifecycleJobName, err)
	}

	return &Scheduler{scheduler: s, logger: logger}, nil
}

// Start запускает планировщик в фоне
func (s *Scheduler) Start() {
	s.scheduler.Start()
	s.logger.Info("Scheduler: started with %d job(s)", len(s.scheduler.Jobs()))
}

// Shutdown останавливает планировщик и ждет завершения текущих задач
func (s *Scheduler) Shutdown() error {
	if err := s.scheduler.Shutdown(); err != nil {
		s.logger.Error("Scheduler: shutdown failed: %v", err)
		return err
	}
	s.logger.Info("Scheduler: stopped")
	return nil
}
