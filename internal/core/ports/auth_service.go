package ports

import (
	"context"

	"github.com/devcollab/devcollab-api/internal/core/domain"
)

type AuthService interface {
	Register(ctx context.Context, email, password, username, name string) (string, *domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	CurrentUser(ctx context.Context, userID string) (*domain.User, error)
}
