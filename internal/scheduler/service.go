package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"github.com/validateme/outreach/internal/config"
)

// digestTimeout bounds a single scheduled digest run
const digestTimeout = 10 * time.Minute

// Job is a unit of scheduled work
type Job interface {
	Run(ctx context.Context) error
}

// Service handles scheduling of digest runs
type Service struct {
	config *config.Config
	job    Job
	cron   *cron.Cron
}

// NewService creates a new scheduler service
func NewService(cfg *config.Config, job Job) *Service {
	return &Service{
		config: cfg,
		job:    job,
		cron:   cron.New(cron.WithSeconds()),
	}
}

// Start registers the digest schedule and starts the cron runner
func (s *Service) Start() error {
	if s.config.DigestSchedule == "" {
		return fmt.Errorf("no digest schedule configured")
	}

	_, err := s.cron.AddFunc(s.config.DigestSchedule, s.runJob)
	if err != nil {
		return fmt.Errorf("invalid DIGEST_SCHEDULE %q: %w", s.config.DigestSchedule, err)
	}

	s.cron.Start()
	logrus.Infof("Scheduler started with digest schedule %q", s.config.DigestSchedule)
	return nil
}

func (s *Service) runJob() {
	logrus.Info("Starting scheduled digest run")

	ctx, cancel := context.WithTimeout(context.Background(), digestTimeout)
	defer cancel()

	if err := s.job.Run(ctx); err != nil {
		logrus.Errorf("Scheduled digest run failed: %v", err)
	}
}

// Stop stops the scheduler and waits for a running digest to finish
func (s *Service) Stop() {
	if s.cron != nil {
		<-s.cron.Stop().Done()
		logrus.Info("Scheduler stopped")
	}
}
