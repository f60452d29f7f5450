package sources

import (
	"context"

	"github.com/validateme/outreach/internal/models"
)

// Source interface defines the contract for searchable post sources
type Source interface {
	GetName() string
	SearchChannel(ctx context.Context, channel, keywords string, limit int) ([]models.Result, error)
}
