package jobs

import (
	"context"
	"log/slog"
	"time"

	"cargo/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// DefaultExpirationSchedule runs the sweep once a minute.
const DefaultExpirationSchedule = "@every 1m"

type expireHandler interface {
	Handle(ctx context.Context, cmd commands.ExpireStaleCargoCommand) (int, error)
}

// CargoExpirationJob moves CREATED cargo that nobody took within ttl to EXPIRED.
type CargoExpirationJob struct {
	handler   expireHandler
	schedule  string
	ttl       time.Duration
	batchSize int
	timeout   time.Duration
	cron      *cron.Cron
	logger    *slog.Logger
}

func NewCargoExpirationJob(
	handler expireHandler,
	schedule string,
	ttl time.Duration,
	batchSize int,
	timeout time.Duration,
	logger *slog.Logger,
) *CargoExpirationJob {
	if schedule == "" {
		schedule = DefaultExpirationSchedule
	}

	return &CargoExpirationJob{
		handler:   handler,
		schedule:  schedule,
		ttl:       ttl,
		batchSize: batchSize,
		timeout:   timeout,
		cron:      cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:    logger.With("component", "cargo_expiration_job"),
	}
}

func (j *CargoExpirationJob) Start() error {
	if _, err := commands.NewExpireStaleCargoCommand(j.ttl, j.batchSize); err != nil {
		return err
	}

	if _, err := j.cron.AddFunc(j.schedule, j.Run); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Cargo expiration job started",
		"schedule", j.schedule,
		"ttl", j.ttl.String(),
	)
	return nil
}

// Run performs one sweep. Start schedules it; tests call it directly.
func (j *CargoExpirationJob) Run() {
	ctx := context.Background()
	if j.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, j.timeout)
		defer cancel()
	}

	cmd, err := commands.NewExpireStaleCargoCommand(j.ttl, j.batchSize)
	if err != nil {
		j.logger.ErrorContext(ctx, "Cargo expiration job misconfigured", "error", err)
		return
	}

	expired, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "Cargo expiration job failed", "error", err)
		return
	}

	if expired > 0 {
		j.logger.InfoContext(ctx, "Expired stale cargo", "count", expired)
	}
}

// Stop waits for a running sweep to finish.
func (j *CargoExpirationJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Cargo expiration job stopped")
}
