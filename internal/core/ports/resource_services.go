package ports

import (
	"context"

	"github.com/tasktrack/webapp/internal/core/domain"
)

// ProjectService proxies the project CRUD endpoints.
type ProjectService interface {
	List(ctx context.Context, sess Session) ([]domain.Project, error)
	Create(ctx context.Context, sess Session, input domain.ProjectInput) (*domain.Project, error)
	Update(ctx context.Context, sess Session, id int64, input domain.ProjectInput) (*domain.Project, error)
	Delete(ctx context.Context, sess Session, id int64) error
}

// TaskService proxies the task endpoints, including the status-only patch
// and the export download.
type TaskService interface {
	List(ctx context.Context, sess Session) ([]domain.Task, error)
	Create(ctx context.Context, sess Session, input domain.TaskInput) (*domain.Task, error)
	Update(ctx context.Context, sess Session, id int64, input domain.TaskInput) (*domain.Task, error)
	UpdateStatus(ctx context.Context, sess Session, id int64, status domain.TaskStatus) (*domain.Task, error)
	Delete(ctx context.Context, sess Session, id int64) error
	// Export returns the raw export payload and the dated filename to
	// serve it under.
	Export(ctx context.Context, sess Session) ([]byte, string, error)
}

// ActivityService proxies the admin-only activity log listing.
type ActivityService interface {
	List(ctx context.Context, sess Session) ([]domain.ActivityLog, error)
}

// DashboardService aggregates the dashboard statistics from the project
// and task listings.
type DashboardService interface {
	Load(ctx context.Context, sess Session) (*domain.DashboardStats, error)
}
