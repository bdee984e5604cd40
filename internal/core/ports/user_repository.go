package ports

import (
	"context"

	"github.com/devcollab/devcollab-api/internal/core/domain"
)

// UserRepository defines persistence for platform accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Delete(ctx context.Context, id string) error
	SetRole(ctx context.Context, id, role string) (*domain.User, error)
	Count(ctx context.Context) (int64, error)
	CountByRole(ctx context.Context, role string) (int64, error)
	CountsByMonth(ctx context.Context) ([]domain.MonthBucket, error)
	RoleDistribution(ctx context.Context) ([]domain.RoleCount, error)
}
