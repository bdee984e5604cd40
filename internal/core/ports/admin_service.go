package ports

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/devcollab/devcollab-api/internal/core/domain"
)

// AdminService covers every operation reachable from the admin console.
type AdminService interface {
	ListUsers(ctx context.Context) ([]domain.User, error)
	DeleteUser(ctx context.Context, id string) error
	SetUserRole(ctx context.Context, id, role string) (*domain.User, error)

	ListProjects(ctx context.Context) ([]domain.Project, error)
	DeleteProject(ctx context.Context, id string) error

	ListMessages(ctx context.Context) ([]domain.Message, error)
	DeleteMessage(ctx context.Context, id string) error

	Stats(ctx context.Context) (*domain.Stats, error)
	UsersByMonth(ctx context.Context) ([]domain.MonthBucket, error)
	ProjectsByMonth(ctx context.Context) ([]domain.MonthBucket, error)
	MessagesByMonth(ctx context.Context) ([]domain.MonthBucket, error)
	RoleDistribution(ctx context.Context) ([]domain.RoleCount, error)
	Charts(ctx context.Context) (*ChartsPayload, error)
}

// MetricPoint is one month bucket reshaped for the chart consumer: the count
// is serialized under the metric name, e.g. {"month":"2024-01","users":3}.
type MetricPoint struct {
	Month  string
	Metric string
	Count  int64
}

func (p MetricPoint) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any{
		"month":  p.Month,
		p.Metric: p.Count,
	})
}

func (p *MetricPoint) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for k, v := range raw {
		if k == "month" {
			p.Month, _ = v.(string)
			continue
		}
		n, ok := v.(float64)
		if !ok {
			return fmt.Errorf("metric %q: expected number, got %T", k, v)
		}
		p.Metric = k
		p.Count = int64(n)
	}
	return nil
}

// NameValue is a pie-chart slice.
type NameValue struct {
	Name  string `json:"name"`
	Value int64  `json:"value"`
}

// ChartsPayload is the combined dashboard payload served by GET /admin/charts.
type ChartsPayload struct {
	UsersChart    []MetricPoint `json:"usersChart"`
	ProjectsChart []MetricPoint `json:"projectsChart"`
	MessagesChart []MetricPoint `json:"messagesChart"`
	RolesChart    []NameValue   `json:"rolesChart"`
}
