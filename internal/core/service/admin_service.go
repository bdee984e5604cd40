package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/devcollab/devcollab-api/internal/core/domain"
	"github.com/devcollab/devcollab-api/internal/core/ports"
)

// AdminService backs the admin console: listings, hard deletes, role changes,
// and the reporting aggregations.
type AdminService struct {
	users    ports.UserRepository
	projects ports.ProjectRepository
	messages ports.MessageRepository
	log      zerolog.Logger
}

func NewAdminService(
	users ports.UserRepository,
	projects ports.ProjectRepository,
	messages ports.MessageRepository,
	log zerolog.Logger,
) *AdminService {
	return &AdminService{users: users, projects: projects, messages: messages, log: log}
}

func (s *AdminService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}

// DeleteUser removes the account. Projects and messages referencing it are
// left in place (no cascade).
func (s *AdminService) DeleteUser(ctx context.Context, id string) error {
	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("user_id", id).Msg("user deleted")
	return nil
}

// SetUserRole promotes or demotes an account. Role values outside the
// enumerated set are rejected before any lookup.
func (s *AdminService) SetUserRole(ctx context.Context, id, role string) (*domain.User, error) {
	if !domain.ValidRole(role) {
		return nil, domain.ErrInvalidRole
	}

	user, err := s.users.SetRole(ctx, id, role)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("user_id", id).Str("role", role).Msg("user role updated")
	return user, nil
}

func (s *AdminService) ListProjects(ctx context.Context) ([]domain.Project, error) {
	return s.projects.List(ctx)
}

func (s *AdminService) DeleteProject(ctx context.Context, id string) error {
	if err := s.projects.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("project_id", id).Msg("project deleted")
	return nil
}

func (s *AdminService) ListMessages(ctx context.Context) ([]domain.Message, error) {
	return s.messages.List(ctx)
}

func (s *AdminService) DeleteMessage(ctx context.Context, id string) error {
	if err := s.messages.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("message_id", id).Msg("message deleted")
	return nil
}

// Stats returns the dashboard headline counters.
func (s *AdminService) Stats(ctx context.Context) (*domain.Stats, error) {
	totalUsers, err := s.users.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}
	totalProjects, err := s.projects.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count projects: %w", err)
	}
	totalMessages, err := s.messages.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count messages: %w", err)
	}
	adminUsers, err := s.users.CountByRole(ctx, domain.RoleAdmin)
	if err != nil {
		return nil, fmt.Errorf("count admins: %w", err)
	}

	return &domain.Stats{
		TotalUsers:    totalUsers,
		TotalProjects: totalProjects,
		TotalMessages: totalMessages,
		AdminUsers:    adminUsers,
	}, nil
}

func (s *AdminService) UsersByMonth(ctx context.Context) ([]domain.MonthBucket, error) {
	return s.users.CountsByMonth(ctx)
}

func (s *AdminService) ProjectsByMonth(ctx context.Context) ([]domain.MonthBucket, error) {
	return s.projects.CountsByMonth(ctx)
}

func (s *AdminService) MessagesByMonth(ctx context.Context) ([]domain.MonthBucket, error) {
	return s.messages.CountsByMonth(ctx)
}

func (s *AdminService) RoleDistribution(ctx context.Context) ([]domain.RoleCount, error) {
	return s.users.RoleDistribution(ctx)
}

// Charts fetches all four aggregations and reshapes them for the dashboard:
// month buckets become {"month":"YYYY-MM", "<metric>":count} points, role
// counts become {name, value} pairs. Empty months are omitted.
func (s *AdminService) Charts(ctx context.Context) (*ports.ChartsPayload, error) {
	users, err := s.users.CountsByMonth(ctx)
	if err != nil {
		return nil, fmt.Errorf("users chart: %w", err)
	}
	projects, err := s.projects.CountsByMonth(ctx)
	if err != nil {
		return nil, fmt.Errorf("projects chart: %w", err)
	}
	messages, err := s.messages.CountsByMonth(ctx)
	if err != nil {
		return nil, fmt.Errorf("messages chart: %w", err)
	}
	roles, err := s.users.RoleDistribution(ctx)
	if err != nil {
		return nil, fmt.Errorf("roles chart: %w", err)
	}

	rolesChart := make([]ports.NameValue, 0, len(roles))
	for _, r := range roles {
		rolesChart = append(rolesChart, ports.NameValue{Name: r.Role, Value: r.Count})
	}

	return &ports.ChartsPayload{
		UsersChart:    toMetricPoints(users, "users"),
		ProjectsChart: toMetricPoints(projects, "projects"),
		MessagesChart: toMetricPoints(messages, "messages"),
		RolesChart:    rolesChart,
	}, nil
}

func toMetricPoints(buckets []domain.MonthBucket, metric string) []ports.MetricPoint {
	points := make([]ports.MetricPoint, 0, len(buckets))
	for _, b := range buckets {
		points = append(points, ports.MetricPoint{
			Month:  fmt.Sprintf("%d-%02d", b.Year, b.Month),
			Metric: metric,
			Count:  b.Count,
		})
	}
	return points
}
