package notifications

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
	"github.com/validateme/outreach/internal/config"
	"github.com/validateme/outreach/internal/models"
	"gopkg.in/gomail.v2"
)

// maxListed is how many posts per keyword a digest shows
const maxListed = 10

// Service delivers digests through Teams and email
type Service struct {
	config *config.Config
	client *resty.Client
	send   func(m *gomail.Message) error
}

// Ensure Service implements NotificationInterface
var _ NotificationInterface = (*Service)(nil)

// TeamsMessage represents a Microsoft Teams message
type TeamsMessage struct {
	Type     string         `json:"@type"`
	Context  string         `json:"@context"`
	Title    string         `json:"title"`
	Text     string         `json:"text"`
	Sections []TeamsSection `json:"sections,omitempty"`
}

type TeamsSection struct {
	ActivityTitle    string      `json:"activityTitle,omitempty"`
	ActivitySubtitle string      `json:"activitySubtitle,omitempty"`
	ActivityText     string      `json:"activityText,omitempty"`
	Facts            []TeamsFact `json:"facts,omitempty"`
	Markdown         bool        `json:"markdown,omitempty"`
}

type TeamsFact struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// NewService creates a new notification service
func NewService(cfg *config.Config) *Service {
	s := &Service{
		config: cfg,
		client: resty.New().SetTimeout(30 * time.Second),
	}
	s.send = s.dialAndSend
	return s
}

// SendDigest sends a digest via every configured channel
func (s *Service) SendDigest(digest *models.Digest) error {
	var errors []string

	if s.config.TeamsWebhookURL != "" {
		if err := s.sendToTeams(digest); err != nil {
			logrus.Errorf("Failed to send Teams notification: %v", err)
			errors = append(errors, fmt.Sprintf("Teams: %v", err))
		} else {
			logrus.Info("Successfully sent digest to Teams")
		}
	}

	if s.config.NotificationEmail != "" {
		if err := s.sendEmail(digest); err != nil {
			logrus.Errorf("Failed to send email notification: %v", err)
			errors = append(errors, fmt.Sprintf("Email: %v", err))
		} else {
			logrus.Info("Successfully sent digest via email")
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("notification errors: %s", strings.Join(errors, "; "))
	}

	return nil
}

func (s *Service) sendToTeams(digest *models.Digest) error {
	message := buildTeamsMessage(digest)

	resp, err := s.client.R().
		SetHeader("Content-Type", "application/json").
		SetBody(message).
		Post(s.config.TeamsWebhookURL)

	if err != nil {
		return fmt.Errorf("failed to send Teams message: %w", err)
	}

	if resp.StatusCode() != 200 {
		return fmt.Errorf("Teams webhook returned status %d: %s", resp.StatusCode(), string(resp.Body()))
	}

	return nil
}

func buildTeamsMessage(digest *models.Digest) *TeamsMessage {
	message := &TeamsMessage{
		Type:    "MessageCard",
		Context: "https://schema.org/extensions",
		Title:   "ValidateMe Outreach Digest",
		Text: fmt.Sprintf("Found %d posts across %d searches",
			digest.TotalResults(), len(digest.Sections)),
	}

	for _, section := range digest.Sections {
		facts := []TeamsFact{
			{Name: "Posts", Value: fmt.Sprintf("%d", len(section.Results))},
			{Name: "Generated", Value: digest.GeneratedAt.Format("2006-01-02 15:04:05 UTC")},
		}
		for _, failure := range section.Failures {
			facts = append(facts, TeamsFact{Name: "Failed r/" + failure.Channel, Value: failure.Reason})
		}

		var lines []string
		for i, result := range section.Results {
			if i >= 5 {
				break
			}
			lines = append(lines, fmt.Sprintf("**[%s](%s)** - u/%s in r/%s (%d points)",
				result.Title, result.Permalink, result.AuthorHandle, result.Channel, result.EngagementScore))
		}

		message.Sections = append(message.Sections, TeamsSection{
			ActivityTitle: fmt.Sprintf("\"%s\"", section.Keywords),
			ActivityText:  strings.Join(lines, "\n\n"),
			Facts:         facts,
			Markdown:      true,
		})
	}

	return message
}

func (s *Service) sendEmail(digest *models.Digest) error {
	subject := fmt.Sprintf("ValidateMe Outreach Digest (%d posts)", digest.TotalResults())

	htmlBody, err := buildEmailHTML(digest)
	if err != nil {
		return fmt.Errorf("failed to build email HTML: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.config.SMTPUsername)
	m.SetHeader("To", s.config.NotificationEmail)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", BuildText(digest))
	m.AddAlternative("text/html", htmlBody)

	if err := s.send(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

func (s *Service) dialAndSend(m *gomail.Message) error {
	d := gomail.NewDialer(s.config.SMTPHost, s.config.SMTPPort, s.config.SMTPUsername, s.config.SMTPPassword)
	return d.DialAndSend(m)
}

const emailTemplate = `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>ValidateMe Outreach Digest</title>
    <style>
        body { font-family: Arial, sans-serif; margin: 20px; }
        .header { background-color: #ff4500; color: white; padding: 20px; border-radius: 5px; }
        .post { border-left: 4px solid #ff4500; padding: 10px; margin: 10px 0; background-color: #fafafa; }
        .post-title { font-weight: bold; margin-bottom: 5px; }
        .post-meta { color: #666; font-size: 0.9em; }
        .failure { color: #d13438; }
    </style>
</head>
<body>
    <div class="header">
        <h1>ValidateMe Outreach Digest</h1>
        <p>Generated on {{.GeneratedAt.Format "January 2, 2006 at 3:04 PM UTC"}}</p>
    </div>

    {{range .Sections}}
    <h2>&ldquo;{{.Keywords}}&rdquo; ({{len .Results}} posts)</h2>
    {{range .Failures}}
        <p class="failure">r/{{.Channel}} unavailable: {{.Reason}}</p>
    {{end}}
    {{range $index, $post := .Results}}
        {{if lt $index 10}}
        <div class="post">
            <div class="post-title">
                <a href="{{$post.Permalink}}" target="_blank">{{$post.Title}}</a>
            </div>
            <div class="post-meta">
                u/{{$post.AuthorHandle}} in r/{{$post.Channel}} | {{$post.CreatedDate}} | {{$post.EngagementScore}} points | {{$post.ReplyCount}} comments
            </div>
            {{if $post.Snippet}}<p>{{$post.Snippet}}</p>{{end}}
        </div>
        {{end}}
    {{end}}
    {{end}}

    <hr>
    <p><small>This digest was generated automatically by ValidateMe.</small></p>
</body>
</html>
`

func buildEmailHTML(digest *models.Digest) (string, error) {
	t, err := template.New("email").Parse(emailTemplate)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, digest); err != nil {
		return "", err
	}

	return buf.String(), nil
}

// BuildText renders a digest as plain text
func BuildText(digest *models.Digest) string {
	var text strings.Builder

	text.WriteString("ValidateMe Outreach Digest\n")
	text.WriteString(fmt.Sprintf("Generated: %s\n", digest.GeneratedAt.Format("2006-01-02 15:04:05 UTC")))
	text.WriteString(fmt.Sprintf("Total Posts: %d\n", digest.TotalResults()))

	for _, section := range digest.Sections {
		heading := fmt.Sprintf("\"%s\" (%d posts)", section.Keywords, len(section.Results))
		text.WriteString("\n" + heading + "\n")
		text.WriteString(strings.Repeat("=", len(heading)) + "\n")

		for _, failure := range section.Failures {
			text.WriteString(fmt.Sprintf("r/%s unavailable: %s\n", failure.Channel, failure.Reason))
		}

		for i, result := range section.Results {
			if i >= maxListed {
				break
			}
			text.WriteString(fmt.Sprintf("\n%d. %s\n", i+1, result.Title))
			text.WriteString(fmt.Sprintf("   u/%s | r/%s | %s | %d points | %d comments\n",
				result.AuthorHandle, result.Channel, result.CreatedDate, result.EngagementScore, result.ReplyCount))
			text.WriteString(fmt.Sprintf("   URL: %s\n", result.Permalink))
		}
	}

	text.WriteString("\n---\nThis digest was generated automatically by ValidateMe.\n")

	return text.String()
}
