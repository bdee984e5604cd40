package ports

import (
	"context"

	"github.com/devcollab/devcollab-api/internal/core/domain"
)

// ProjectRepository defines persistence for projects.
type ProjectRepository interface {
	// List returns all projects with the owner reference resolved.
	List(ctx context.Context) ([]domain.Project, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
	CountsByMonth(ctx context.Context) ([]domain.MonthBucket, error)
}
