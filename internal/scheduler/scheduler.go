package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/Jakababa94/mandazi-metrics/internal/config"
	"github.com/Jakababa94/mandazi-metrics/internal/repository/sheets"
	"github.com/Jakababa94/mandazi-metrics/internal/service/metrics"
	"github.com/Jakababa94/mandazi-metrics/pkg/clients/notify"
)

const dateLayout = "2006-01-02"

// Scheduler runs the end-of-day financial report job.
type Scheduler struct {
	cron     *cron.Cron
	metrics  *metrics.Service
	exporter sheets.Exporter // nil when sheets export is not configured
	notifier notify.Client   // nil when the webhook is not configured
	cfg      config.ReportingConfig
	location *time.Location
	logger   *zap.Logger
}

// NewScheduler creates a new scheduler instance. exporter and notifier may
// be nil; the job skips whichever is absent.
func NewScheduler(cfg config.ReportingConfig, metricsSvc *metrics.Service, exporter sheets.Exporter, notifier notify.Client, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	location, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logger.Warn("unknown timezone, falling back to local", zap.String("timezone", cfg.Timezone), zap.Error(err))
		location = time.Local
	}

	return &Scheduler{
		cron:     cron.New(cron.WithLocation(location)),
		metrics:  metricsSvc,
		exporter: exporter,
		notifier: notifier,
		cfg:      cfg,
		location: location,
		logger:   logger,
	}
}

// Start registers the daily report job and starts the cron loop.
func (s *Scheduler) Start() {
	s.logger.Info("starting scheduler", zap.String("schedule", s.cfg.CronSchedule))

	if _, err := s.cron.AddFunc(s.cfg.CronSchedule, s.runDailyReport); err != nil {
		s.logger.Error("failed to schedule daily report", zap.Error(err))
	}

	s.cron.Start()
}

// Stop stops the scheduler.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	s.cron.Stop()
}

func (s *Scheduler) runDailyReport() {
	s.logger.Info("generating daily report")
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	date := time.Now().In(s.location).Format(dateLayout)
	report, err := s.metrics.DayReport(ctx, date)
	if err != nil {
		s.logger.Error("failed to generate daily report", zap.Error(err))
		return
	}

	if s.exporter != nil {
		if err := s.exporter.AppendDailyReport(ctx, *report); err != nil {
			s.logger.Error("failed to export daily report", zap.Error(err))
		}
	}

	if s.notifier != nil {
		if err := s.notifier.SendDailyReport(ctx, *report); err != nil {
			s.logger.Error("failed to send daily report", zap.Error(err))
		} else {
			s.logger.Info("daily report sent", zap.String("date", date))
		}
	}
}
