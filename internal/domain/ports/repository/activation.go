package repository

import (
	"context"

	"subscription-activation-bot/internal/domain/model"
)

// ActivationRepository persists one ActivationRecord per sender identifier.
type ActivationRepository interface {
	// Save overwrites any existing record for senderID.
	Save(ctx context.Context, senderID string, rec *model.ActivationRecord) error
	// Find returns domain.ErrNotFound when the sender has no record.
	Find(ctx context.Context, senderID string) (*model.ActivationRecord, error)
}
