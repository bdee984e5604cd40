package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/devcollab/devcollab-api/internal/core/domain"
)

type stubProjectRepo struct {
	projects    []*domain.Project
	deleteCalls int
}

func (r *stubProjectRepo) List(_ context.Context) ([]domain.Project, error) {
	out := make([]domain.Project, 0, len(r.projects))
	for _, p := range r.projects {
		out = append(out, *p)
	}
	return out, nil
}

func (r *stubProjectRepo) Delete(_ context.Context, id string) error {
	r.deleteCalls++
	for i, p := range r.projects {
		if p.ID == id {
			r.projects = append(r.projects[:i], r.projects[i+1:]...)
			return nil
		}
	}
	return domain.ErrProjectNotFound
}

func (r *stubProjectRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.projects)), nil
}

func (r *stubProjectRepo) CountsByMonth(_ context.Context) ([]domain.MonthBucket, error) {
	return bucketByMonth(r.projects, func(p *domain.Project) time.Time { return p.CreatedAt }), nil
}

type stubMessageRepo struct {
	messages    []*domain.Message
	deleteCalls int
}

func (r *stubMessageRepo) List(_ context.Context) ([]domain.Message, error) {
	out := make([]domain.Message, 0, len(r.messages))
	for _, m := range r.messages {
		out = append(out, *m)
	}
	return out, nil
}

func (r *stubMessageRepo) Delete(_ context.Context, id string) error {
	r.deleteCalls++
	for i, m := range r.messages {
		if m.ID == id {
			r.messages = append(r.messages[:i], r.messages[i+1:]...)
			return nil
		}
	}
	return domain.ErrMessageNotFound
}

func (r *stubMessageRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.messages)), nil
}

func (r *stubMessageRepo) CountsByMonth(_ context.Context) ([]domain.MonthBucket, error) {
	return bucketByMonth(r.messages, func(m *domain.Message) time.Time { return m.CreatedAt }), nil
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 12, 0, 0, 0, time.UTC)
}

func seededAdminService() (*AdminService, *stubUserRepo, *stubProjectRepo, *stubMessageRepo) {
	users := newStubUserRepo()
	users.users = []*domain.User{
		{ID: "u1", Email: "a@x.com", Username: "a", Role: domain.RoleAdmin, CreatedAt: date(2024, 1, 5)},
		{ID: "u2", Email: "b@x.com", Username: "b", Role: domain.RoleUser, CreatedAt: date(2024, 1, 12)},
		{ID: "u3", Email: "c@x.com", Username: "c", Role: domain.RoleUser, CreatedAt: date(2024, 1, 20)},
		{ID: "u4", Email: "d@x.com", Username: "d", Role: domain.RoleUser, CreatedAt: date(2024, 2, 2)},
		{ID: "u5", Email: "e@x.com", Username: "e", Role: domain.RoleUser, CreatedAt: date(2024, 2, 28)},
	}
	projects := &stubProjectRepo{projects: []*domain.Project{
		{ID: "p1", Name: "one", CreatedBy: "u2", CreatedAt: date(2024, 1, 15)},
		{ID: "p2", Name: "two", CreatedBy: "u3", CreatedAt: date(2024, 3, 1)},
	}}
	messages := &stubMessageRepo{messages: []*domain.Message{
		{ID: "m1", SenderID: "u2", ReceiverID: "u3", Content: "hi", CreatedAt: date(2024, 2, 10)},
	}}
	svc := NewAdminService(users, projects, messages, zerolog.Nop())
	return svc, users, projects, messages
}

func TestAdminService_Stats(t *testing.T) {
	svc, users, projects, messages := seededAdminService()

	stats, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}

	if stats.TotalUsers != int64(len(users.users)) {
		t.Fatalf("total users = %d, want %d", stats.TotalUsers, len(users.users))
	}
	if stats.TotalProjects != int64(len(projects.projects)) {
		t.Fatalf("total projects = %d, want %d", stats.TotalProjects, len(projects.projects))
	}
	if stats.TotalMessages != int64(len(messages.messages)) {
		t.Fatalf("total messages = %d, want %d", stats.TotalMessages, len(messages.messages))
	}
	if stats.AdminUsers != 1 {
		t.Fatalf("admin users = %d, want 1", stats.AdminUsers)
	}
}

func TestAdminService_SetUserRole_InvalidRole(t *testing.T) {
	svc, users, _, _ := seededAdminService()

	for _, role := range []string{"superadmin", "", "Admin", "root"} {
		if _, err := svc.SetUserRole(context.Background(), "u2", role); !errors.Is(err, domain.ErrInvalidRole) {
			t.Fatalf("role %q: expected ErrInvalidRole, got %v", role, err)
		}
	}
	if users.setRoleCalls != 0 {
		t.Fatalf("repository mutated on invalid role: %d calls", users.setRoleCalls)
	}
}

func TestAdminService_SetUserRole_Success(t *testing.T) {
	svc, _, _, _ := seededAdminService()

	user, err := svc.SetUserRole(context.Background(), "u2", domain.RoleAdmin)
	if err != nil {
		t.Fatalf("set role failed: %v", err)
	}
	if user.Role != domain.RoleAdmin {
		t.Fatalf("role = %q, want admin", user.Role)
	}
}

func TestAdminService_SetUserRole_NotFound(t *testing.T) {
	svc, _, _, _ := seededAdminService()

	if _, err := svc.SetUserRole(context.Background(), "missing", domain.RoleUser); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestAdminService_DeleteUser_NotFound(t *testing.T) {
	svc, users, _, _ := seededAdminService()
	before := len(users.users)

	if err := svc.DeleteUser(context.Background(), "missing"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	if len(users.users) != before {
		t.Fatalf("collection changed on failed delete")
	}
}

func TestAdminService_DeleteUser_NoCascade(t *testing.T) {
	svc, users, projects, messages := seededAdminService()

	if err := svc.DeleteUser(context.Background(), "u2"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if len(users.users) != 4 {
		t.Fatalf("expected 4 users left, got %d", len(users.users))
	}
	// Orphaned records stay in place.
	if len(projects.projects) != 2 || len(messages.messages) != 1 {
		t.Fatalf("delete cascaded: %d projects, %d messages", len(projects.projects), len(messages.messages))
	}
}

func TestAdminService_UsersByMonth(t *testing.T) {
	svc, _, _, _ := seededAdminService()

	buckets, err := svc.UsersByMonth(context.Background())
	if err != nil {
		t.Fatalf("users by month failed: %v", err)
	}

	want := []domain.MonthBucket{
		{Year: 2024, Month: 1, Count: 3},
		{Year: 2024, Month: 2, Count: 2},
	}
	if len(buckets) != len(want) {
		t.Fatalf("got %d buckets, want %d: %+v", len(buckets), len(want), buckets)
	}
	for i := range want {
		if buckets[i] != want[i] {
			t.Fatalf("bucket[%d] = %+v, want %+v", i, buckets[i], want[i])
		}
	}
}

func TestAdminService_Charts(t *testing.T) {
	svc, _, _, _ := seededAdminService()
	ctx := context.Background()

	payload, err := svc.Charts(ctx)
	if err != nil {
		t.Fatalf("charts failed: %v", err)
	}

	// Combined payload agrees with the per-resource aggregations.
	usersByMonth, _ := svc.UsersByMonth(ctx)
	if len(payload.UsersChart) != len(usersByMonth) {
		t.Fatalf("users chart has %d points, aggregation has %d buckets", len(payload.UsersChart), len(usersByMonth))
	}
	for i, b := range usersByMonth {
		if payload.UsersChart[i].Count != b.Count {
			t.Fatalf("users chart point %d count = %d, want %d", i, payload.UsersChart[i].Count, b.Count)
		}
	}

	// Labels are YYYY-MM with zero-padded months, strictly ascending.
	if payload.UsersChart[0].Month != "2024-01" || payload.UsersChart[1].Month != "2024-02" {
		t.Fatalf("unexpected month labels: %+v", payload.UsersChart)
	}
	for i := 1; i < len(payload.UsersChart); i++ {
		if payload.UsersChart[i-1].Month >= payload.UsersChart[i].Month {
			t.Fatalf("labels not ascending: %+v", payload.UsersChart)
		}
	}

	// Each point serializes the count under the metric name.
	raw, err := json.Marshal(payload.UsersChart[0])
	if err != nil {
		t.Fatalf("marshal point: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal point: %v", err)
	}
	if decoded["month"] != "2024-01" || decoded["users"] != float64(3) {
		t.Fatalf("unexpected point payload: %s", raw)
	}

	// Roles reshaped into {name, value} pairs.
	if len(payload.RolesChart) != 2 {
		t.Fatalf("expected 2 role slices, got %+v", payload.RolesChart)
	}
	byName := map[string]int64{}
	for _, nv := range payload.RolesChart {
		byName[nv.Name] = nv.Value
	}
	if byName[domain.RoleAdmin] != 1 || byName[domain.RoleUser] != 4 {
		t.Fatalf("unexpected role distribution: %+v", payload.RolesChart)
	}

	// Projects have a gap month (no February): the bucket is omitted, not
	// zero-filled.
	if len(payload.ProjectsChart) != 2 {
		t.Fatalf("expected 2 project points, got %+v", payload.ProjectsChart)
	}
	if payload.ProjectsChart[0].Month != "2024-01" || payload.ProjectsChart[1].Month != "2024-03" {
		t.Fatalf("unexpected project labels: %+v", payload.ProjectsChart)
	}
}

func TestAdminService_ListMessages(t *testing.T) {
	svc, _, _, _ := seededAdminService()

	messages, err := svc.ListMessages(context.Background())
	if err != nil {
		t.Fatalf("list messages failed: %v", err)
	}
	if len(messages) != 1 || messages[0].Content != "hi" {
		t.Fatalf("unexpected messages: %+v", messages)
	}
}
