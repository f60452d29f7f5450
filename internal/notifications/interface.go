package notifications

import "github.com/validateme/outreach/internal/models"

// NotificationInterface defines the contract for digest delivery
type NotificationInterface interface {
	SendDigest(digest *models.Digest) error
}
