package drafts

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/validateme/outreach/internal/models"
)

// Temperature is the sampling temperature used for every draft request
const Temperature = 0.7

// Completer turns a prompt into generated text
type Completer interface {
	Complete(ctx context.Context, model string, temperature float64, prompt string) (string, error)
}

// Generator produces outreach message drafts for a single post
type Generator struct {
	completer Completer
	model     string
}

// NewGenerator creates a new draft generator
func NewGenerator(completer Completer, model string) *Generator {
	return &Generator{
		completer: completer,
		model:     model,
	}
}

// Generate asks the model for three drafts referencing the post and returns
// its text unmodified. Model failures are returned to the caller as-is.
func (g *Generator) Generate(ctx context.Context, author, title, snippet string) (string, error) {
	prompt := BuildPrompt(author, title, snippet)

	logrus.Debugf("Requesting drafts for u/%s from %s", author, g.model)
	text, err := g.completer.Complete(ctx, g.model, Temperature, prompt)
	if err != nil {
		return "", fmt.Errorf("draft generation failed: %w", err)
	}

	return text, nil
}

// GenerateFor is Generate for a DraftRequest
func (g *Generator) GenerateFor(ctx context.Context, req models.DraftRequest) (string, error) {
	return g.Generate(ctx, req.AuthorHandle, req.Title, req.Snippet)
}

const promptTemplate = `You are helping someone reach out to a Reddit user who posted about their struggles. Write 3 different personalized DM templates.

Reddit Post:
- Username: u/%s
- Title: %s
- Content: %s

Write 3 short DM templates (2-3 sentences each) that:
- Reference SPECIFIC details from their post (don't use placeholders like [Name] or [struggle])
- Sound like a peer reaching out, not a salesperson
- Ask a genuine curious question about their situation
- Are conversational and friendly
- Start naturally (Hi, Hey, or just jump in)
- Keep under 50 words each

DO NOT use placeholders. Use actual details from the post.

Format:
Template 1:
[your message here]

Template 2:
[your message here]

Template 3:
[your message here]`

// BuildPrompt embeds the post fields verbatim into the drafting instruction
func BuildPrompt(author, title, snippet string) string {
	return fmt.Sprintf(promptTemplate, author, title, snippet)
}
