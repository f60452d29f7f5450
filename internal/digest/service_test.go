package digest

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/validateme/outreach/internal/models"
)

// MockSearcher is a mock implementation of the Searcher interface
type MockSearcher struct {
	mock.Mock
}

func (m *MockSearcher) SearchReport(ctx context.Context, keywords string) models.SearchOutcome {
	args := m.Called(keywords)
	return args.Get(0).(models.SearchOutcome)
}

// MockNotificationService is a mock implementation of the notification service
type MockNotificationService struct {
	mock.Mock
}

func (m *MockNotificationService) SendDigest(digest *models.Digest) error {
	args := m.Called(digest)
	return args.Error(0)
}

func TestService_Run(t *testing.T) {
	searcher := &MockSearcher{}
	searcher.On("SearchReport", "validation").Return(models.SearchOutcome{
		Keywords: "validation",
		Results:  []models.Result{{Title: "a", EngagementScore: 3}, {Title: "b", EngagementScore: 1}},
	})
	searcher.On("SearchReport", "beta signups").Return(models.SearchOutcome{
		Keywords: "beta signups",
		Failures: []models.ChannelFailure{{Channel: "SaaS", Reason: "timeout"}},
	})

	notifier := &MockNotificationService{}
	notifier.On("SendDigest", mock.MatchedBy(func(d *models.Digest) bool {
		return len(d.Sections) == 2 &&
			d.Sections[0].Keywords == "validation" &&
			len(d.Sections[0].Results) == 2 &&
			d.Sections[1].Keywords == "beta signups" &&
			len(d.Sections[1].Failures) == 1 &&
			d.TotalResults() == 2 &&
			!d.GeneratedAt.IsZero()
	})).Return(nil)

	service := NewService(searcher, notifier, []string{"validation", "beta signups"})
	require.NoError(t, service.Run(context.Background()))

	searcher.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestService_Run_NotificationFailure(t *testing.T) {
	searcher := &MockSearcher{}
	searcher.On("SearchReport", "validation").Return(models.SearchOutcome{Keywords: "validation"})

	notifier := &MockNotificationService{}
	notifier.On("SendDigest", mock.Anything).Return(errors.New("notification errors: Teams: boom"))

	err := NewService(searcher, notifier, []string{"validation"}).Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to send digest")
}

func TestService_Build(t *testing.T) {
	searcher := &MockSearcher{}
	searcher.On("SearchReport", "x").Return(models.SearchOutcome{Keywords: "x", Results: []models.Result{{Title: "t"}}})

	digest := NewService(searcher, &MockNotificationService{}, []string{"x"}).Build(context.Background())
	require.Len(t, digest.Sections, 1)
	assert.Equal(t, "t", digest.Sections[0].Results[0].Title)
}
