package faqcatalog

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/yanqian/faq-chatbot/internal/domain/faq"
)

const reloadTimeout = 30 * time.Second

// ReloadScheduler periodically refreshes a cached catalog.
type ReloadScheduler struct {
	cron     *cron.Cron
	reloader faq.Reloader
	schedule string
	logger   *slog.Logger
}

// NewReloadScheduler constructs a scheduler. An empty schedule disables it.
func NewReloadScheduler(reloader faq.Reloader, schedule string, logger *slog.Logger) *ReloadScheduler {
	return &ReloadScheduler{
		cron:     cron.New(),
		reloader: reloader,
		schedule: strings.TrimSpace(schedule),
		logger:   logger.With("component", "faqcatalog.scheduler"),
	}
}

// Start registers the reload job and starts the cron runner.
func (s *ReloadScheduler) Start() error {
	if s.schedule == "" {
		return nil
	}
	if _, err := s.cron.AddFunc(s.schedule, s.reload); err != nil {
		return err
	}
	s.cron.Start()
	s.logger.Info("faq catalog reload scheduled", "schedule", s.schedule)
	return nil
}

// Stop halts the runner and waits for a running reload to finish.
func (s *ReloadScheduler) Stop() {
	<-s.cron.Stop().Done()
}

func (s *ReloadScheduler) reload() {
	ctx, cancel := context.WithTimeout(context.Background(), reloadTimeout)
	defer cancel()
	n, err := s.reloader.Reload(ctx)
	switch {
	case errors.Is(err, faq.ErrEmptyReload):
		s.logger.Warn("scheduled faq catalog reload returned no entries", "entries", n)
	case err != nil:
		s.logger.Error("scheduled faq catalog reload failed", "error", err)
	default:
		s.logger.Debug("scheduled faq catalog reload complete", "entries", n)
	}
}
