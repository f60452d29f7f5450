package sources

import (
	"context"
	"strings"

	"github.com/validateme/outreach/internal/models"
)

// MockSource serves canned posts so the app can run without network access
type MockSource struct {
	posts []models.Result
}

// NewMockSource creates a source backed by the built-in sample posts
func NewMockSource() *MockSource {
	return &MockSource{posts: samplePosts}
}

func (m *MockSource) GetName() string {
	return "mock"
}

// SearchChannel returns the sample posts that belong to channel, ignoring keywords
func (m *MockSource) SearchChannel(ctx context.Context, channel, keywords string, limit int) ([]models.Result, error) {
	var results []models.Result
	for _, post := range m.posts {
		if !strings.EqualFold(post.Channel, channel) {
			continue
		}
		if len(results) >= limit {
			break
		}
		results = append(results, post)
	}
	return results, nil
}

var samplePosts = []models.Result{
	{
		AuthorHandle:    "startup_founder_23",
		Title:           "Struggling to validate my SaaS idea - how do I find early users?",
		Snippet:         "I have been working on a project management tool for remote teams but I am having trouble finding people to validate it with. I do not have an audience yet and cold outreach is not working...",
		Channel:         "SaaS",
		EngagementScore: 47,
		ReplyCount:      23,
		CreatedDate:     "2026-01-28",
		Permalink:       "https://reddit.com/r/SaaS/mock1",
	},
	{
		AuthorHandle:    "indie_dev_2024",
		Title:           "Built an MVP but got zero sign-ups. What am I doing wrong?",
		Snippet:         "Spent 3 months building my app, launched it last week on Product Hunt and got 200 upvotes but literally zero beta sign-ups. Is my idea just bad? Should I pivot or keep going?",
		Channel:         "startups",
		EngagementScore: 112,
		ReplyCount:      67,
		CreatedDate:     "2026-01-25",
		Permalink:       "https://reddit.com/r/startups/mock2",
	},
	{
		AuthorHandle:    "ponziedd",
		Title:           "How long should I spend validating my startup idea?",
		Snippet:         "I launched an app 2.5 weeks ago and got no beta signups. Should I keep trying to validate or just move on? How do you know when to quit vs when to persevere?",
		Channel:         "Entrepreneur",
		EngagementScore: 89,
		ReplyCount:      45,
		CreatedDate:     "2026-01-22",
		Permalink:       "https://reddit.com/r/Entrepreneur/mock3",
	},
	{
		AuthorHandle:    "tech_founder_99",
		Title:           "Need advice: No audience, no users, how to validate?",
		Snippet:         "I am a solo technical founder with an idea for a B2B tool. Problem is I have zero followers, no email list, no Twitter presence. How do people validate ideas when starting from scratch?",
		Channel:         "SaaS",
		EngagementScore: 156,
		ReplyCount:      92,
		CreatedDate:     "2026-01-20",
		Permalink:       "https://reddit.com/r/SaaS/mock4",
	},
	{
		AuthorHandle:    "confused_builder",
		Title:           "Validation feels impossible - am I approaching this wrong?",
		Snippet:         "Every article says to validate before building, but how do you validate when nobody wants to talk to you? I have tried posting in communities, DMing people, nothing works. What am I missing?",
		Channel:         "startups",
		EngagementScore: 203,
		ReplyCount:      134,
		CreatedDate:     "2026-01-18",
		Permalink:       "https://reddit.com/r/startups/mock5",
	},
}
