package search

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/validateme/outreach/internal/config"
	"github.com/validateme/outreach/internal/models"
	"github.com/validateme/outreach/internal/sources"
)

const (
	// MaxResults caps the merged result list regardless of channel count
	MaxResults = 20

	// channelDelay is the pause between consecutive channel queries
	channelDelay = 1 * time.Second
)

// Service runs keyword searches across the configured channels one at a time
// and ranks the merged results by engagement.
type Service struct {
	source   sources.Source
	channels []string
	limit    int
	delay    time.Duration
	sleep    func(time.Duration)
	metrics  *Metrics
	mu       sync.RWMutex
}

// Metrics holds search metrics
type Metrics struct {
	TotalSearches   int            `json:"total_searches"`
	EmptySearches   int            `json:"empty_searches"`
	TotalOutages    int            `json:"total_outages"`
	LastRun         time.Time      `json:"last_run"`
	LastRunDuration string         `json:"last_run_duration"`
	ChannelMetrics  map[string]int `json:"channel_metrics"`
	ErrorCount      int            `json:"error_count"`
	LastFailures    []string       `json:"last_failures,omitempty"`
}

// NewService creates a new search service
func NewService(cfg *config.Config, source sources.Source) *Service {
	channels := make([]string, len(cfg.Channels))
	copy(channels, cfg.Channels)

	return &Service{
		source:   source,
		channels: channels,
		limit:    cfg.ResultsPerChannel,
		delay:    channelDelay,
		sleep:    time.Sleep,
		metrics: &Metrics{
			ChannelMetrics: make(map[string]int),
		},
	}
}

// Channels returns the channels searched, in query order
func (s *Service) Channels() []string {
	return append([]string(nil), s.channels...)
}

// Search returns at most MaxResults records, highest engagement first.
// Channel failures never surface here; they only shorten the list.
func (s *Service) Search(ctx context.Context, keywords string) []models.Result {
	return s.SearchReport(ctx, keywords).Results
}

// SearchReport performs the search and also reports which channels failed
func (s *Service) SearchReport(ctx context.Context, keywords string) models.SearchOutcome {
	start := time.Now()
	logrus.Infof("Searching %d channels for '%s'", len(s.channels), keywords)

	outcome := models.SearchOutcome{
		Keywords:          keywords,
		ChannelsAttempted: len(s.channels),
	}

	var collected []models.Result
	perChannel := make(map[string]int)

	for i, channel := range s.channels {
		results, err := s.source.SearchChannel(ctx, channel, keywords, s.limit)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"source":  s.source.GetName(),
				"channel": channel,
			}).Errorf("Error searching channel: %v", err)
			outcome.Failures = append(outcome.Failures, models.ChannelFailure{
				Channel: channel,
				Reason:  err.Error(),
			})
		} else {
			logrus.Debugf("Found %d results in %s", len(results), channel)
			perChannel[channel] = len(results)
			collected = append(collected, results...)
		}

		if i < len(s.channels)-1 {
			s.sleep(s.delay)
		}
	}

	outcome.Results = rank(collected)

	if outcome.TotalOutage() {
		logrus.Warnf("All %d channels failed for '%s'; returning no results", outcome.ChannelsAttempted, keywords)
	}

	s.updateMetrics(outcome, perChannel, time.Since(start))

	logrus.Infof("Search for '%s' completed in %v with %d results", keywords, time.Since(start), len(outcome.Results))
	return outcome
}

// rank orders results by engagement score, keeping collection order for ties,
// and truncates to MaxResults.
func rank(results []models.Result) []models.Result {
	ranked := make([]models.Result, len(results))
	copy(ranked, results)

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].EngagementScore > ranked[j].EngagementScore
	})

	if len(ranked) > MaxResults {
		ranked = ranked[:MaxResults]
	}
	return ranked
}

func (s *Service) updateMetrics(outcome models.SearchOutcome, perChannel map[string]int, duration time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.metrics.TotalSearches++
	if len(outcome.Results) == 0 {
		s.metrics.EmptySearches++
	}
	if outcome.TotalOutage() {
		s.metrics.TotalOutages++
	}

	s.metrics.LastRun = time.Now()
	s.metrics.LastRunDuration = duration.String()
	s.metrics.ChannelMetrics = perChannel
	s.metrics.ErrorCount = len(outcome.Failures)

	s.metrics.LastFailures = nil
	for _, failure := range outcome.Failures {
		s.metrics.LastFailures = append(s.metrics.LastFailures, failure.Channel+": "+failure.Reason)
	}
}

// GetMetrics returns current metrics as JSON
func (s *Service) GetMetrics() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, _ := json.MarshalIndent(s.metrics, "", "  ")
	return string(data)
}
