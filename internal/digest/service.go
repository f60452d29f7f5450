package digest

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/validateme/outreach/internal/models"
	"github.com/validateme/outreach/internal/notifications"
)

// Searcher runs a ranked search and reports channel failures
type Searcher interface {
	SearchReport(ctx context.Context, keywords string) models.SearchOutcome
}

// Service builds digests for a fixed keyword list and hands them to notifications
type Service struct {
	searcher            Searcher
	notificationService notifications.NotificationInterface
	keywords            []string
}

// NewService creates a new digest service
func NewService(searcher Searcher, notificationService notifications.NotificationInterface, keywords []string) *Service {
	return &Service{
		searcher:            searcher,
		notificationService: notificationService,
		keywords:            keywords,
	}
}

// Build runs one search per keyword, in order
func (s *Service) Build(ctx context.Context) *models.Digest {
	digest := &models.Digest{GeneratedAt: time.Now().UTC()}

	for _, keywords := range s.keywords {
		outcome := s.searcher.SearchReport(ctx, keywords)
		digest.Sections = append(digest.Sections, models.DigestSection{
			Keywords: keywords,
			Results:  outcome.Results,
			Failures: outcome.Failures,
		})
	}

	return digest
}

// Run builds a digest and sends it
func (s *Service) Run(ctx context.Context) error {
	start := time.Now()
	logrus.Infof("Starting digest run for %d keyword searches", len(s.keywords))

	digest := s.Build(ctx)

	if err := s.notificationService.SendDigest(digest); err != nil {
		return fmt.Errorf("failed to send digest: %w", err)
	}

	logrus.Infof("Digest run completed in %v with %d posts", time.Since(start), digest.TotalResults())
	return nil
}
