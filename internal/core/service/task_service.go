package service

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/tasktrack/webapp/internal/core/domain"
	"github.com/tasktrack/webapp/internal/core/ports"
	"github.com/tasktrack/webapp/internal/gateway"
)

// TaskService proxies task operations to the external API.
type TaskService struct {
	gw  *gateway.Gateway
	now func() time.Time
}

func NewTaskService(gw *gateway.Gateway) *TaskService {
	return &TaskService{gw: gw, now: time.Now}
}

func (s *TaskService) List(ctx context.Context, sess ports.Session) ([]domain.Task, error) {
	return gateway.List[domain.Task](ctx, s.gw, sess, gateway.Request{
		Method: http.MethodGet,
		Path:   "/tasks/",
	})
}

func (s *TaskService) Create(ctx context.Context, sess ports.Session, input domain.TaskInput) (*domain.Task, error) {
	var task domain.Task
	err := s.gw.Do(ctx, sess, gateway.Request{
		Method: http.MethodPost,
		Path:   "/tasks/",
		Body:   input,
	}, &task)
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (s *TaskService) Update(ctx context.Context, sess ports.Session, id int64, input domain.TaskInput) (*domain.Task, error) {
	var task domain.Task
	err := s.gw.Do(ctx, sess, gateway.Request{
		Method: http.MethodPut,
		Path:   fmt.Sprintf("/tasks/%d/", id),
		Body:   input,
	}, &task)
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// UpdateStatus patches only the workflow state, the one mutation
// contributors are allowed.
func (s *TaskService) UpdateStatus(ctx context.Context, sess ports.Session, id int64, status domain.TaskStatus) (*domain.Task, error) {
	var task domain.Task
	err := s.gw.Do(ctx, sess, gateway.Request{
		Method: http.MethodPatch,
		Path:   fmt.Sprintf("/tasks/%d/", id),
		Body:   map[string]domain.TaskStatus{"status": status},
	}, &task)
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (s *TaskService) Delete(ctx context.Context, sess ports.Session, id int64) error {
	return s.gw.Do(ctx, sess, gateway.Request{
		Method: http.MethodDelete,
		Path:   fmt.Sprintf("/tasks/%d/", id),
	}, nil)
}

// Export downloads the raw export payload and names it with today's date,
// e.g. tasks_export_2026-08-31.json.
func (s *TaskService) Export(ctx context.Context, sess ports.Session) ([]byte, string, error) {
	body, err := s.gw.DoRaw(ctx, sess, gateway.Request{
		Method: http.MethodGet,
		Path:   "/tasks/export/",
	})
	if err != nil {
		return nil, "", err
	}
	name := fmt.Sprintf("tasks_export_%s.json", s.now().UTC().Format("2006-01-02"))
	return body, name, nil
}
