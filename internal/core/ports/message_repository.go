package ports

import (
	"context"

	"github.com/devcollab/devcollab-api/internal/core/domain"
)

// MessageRepository defines persistence for direct messages.
type MessageRepository interface {
	// List returns all messages newest-first with sender and receiver resolved.
	List(ctx context.Context) ([]domain.Message, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
	CountsByMonth(ctx context.Context) ([]domain.MonthBucket, error)
}
