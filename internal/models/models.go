package models

import "time"

// RemovedAuthor is the handle reported for posts whose author account is gone
const RemovedAuthor = "[deleted]"

// Result represents one matched post, normalized across channels
type Result struct {
	AuthorHandle    string `json:"username"`
	Title           string `json:"title"`
	Snippet         string `json:"snippet"`
	Channel         string `json:"subreddit"`
	EngagementScore int    `json:"score"`
	ReplyCount      int    `json:"num_comments"`
	CreatedDate     string `json:"created_utc"` // YYYY-MM-DD
	Permalink       string `json:"url"`
}

// DraftRequest carries the post fields a draft is generated from
type DraftRequest struct {
	AuthorHandle string `json:"username"`
	Title        string `json:"title"`
	Snippet      string `json:"snippet"`
}

// ChannelFailure records why a channel contributed no results
type ChannelFailure struct {
	Channel string `json:"channel"`
	Reason  string `json:"reason"`
}

// SearchOutcome is a ranked search plus the channels that failed along the way
type SearchOutcome struct {
	Keywords          string           `json:"keywords"`
	Results           []Result         `json:"results"`
	Failures          []ChannelFailure `json:"failures,omitempty"`
	ChannelsAttempted int              `json:"channels_attempted"`
}

// TotalOutage reports whether every attempted channel failed
func (o SearchOutcome) TotalOutage() bool {
	return o.ChannelsAttempted > 0 && len(o.Failures) == o.ChannelsAttempted
}

// Digest is a scheduled summary of searches for the configured keywords
type Digest struct {
	GeneratedAt time.Time       `json:"generated_at"`
	Sections    []DigestSection `json:"sections"`
}

// DigestSection holds the outcome for a single keyword search
type DigestSection struct {
	Keywords string           `json:"keywords"`
	Results  []Result         `json:"results"`
	Failures []ChannelFailure `json:"failures,omitempty"`
}

// TotalResults counts results across all sections
func (d *Digest) TotalResults() int {
	total := 0
	for _, section := range d.Sections {
		total += len(section.Results)
	}
	return total
}
