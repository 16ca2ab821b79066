package service

import (
	"context"
	"sync"
	"time"

	"github.com/tasktrack/webapp/internal/core/domain"
	"github.com/tasktrack/webapp/internal/core/ports"
)

// DashboardService derives the dashboard statistics from the project and
// task listings, fetched in parallel. Completion order between the two
// calls is irrelevant; each failure has already produced its own
// notification inside the gateway.
type DashboardService struct {
	projects ports.ProjectService
	tasks    ports.TaskService
	now      func() time.Time
}

func NewDashboardService(projects ports.ProjectService, tasks ports.TaskService) *DashboardService {
	return &DashboardService{projects: projects, tasks: tasks, now: time.Now}
}

func (s *DashboardService) Load(ctx context.Context, sess ports.Session) (*domain.DashboardStats, error) {
	var (
		wg       sync.WaitGroup
		projects []domain.Project
		tasks    []domain.Task
		pErr     error
		tErr     error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		projects, pErr = s.projects.List(ctx, sess)
	}()
	go func() {
		defer wg.Done()
		tasks, tErr = s.tasks.List(ctx, sess)
	}()
	wg.Wait()

	if pErr != nil {
		return nil, pErr
	}
	if tErr != nil {
		return nil, tErr
	}

	now := s.now()
	stats := &domain.DashboardStats{
		TotalProjects: len(projects),
		TotalTasks:    len(tasks),
	}
	for i := range tasks {
		switch tasks[i].Status {
		case domain.StatusTodo:
			stats.TodoTasks++
		case domain.StatusInProgress:
			stats.InProgressTasks++
		case domain.StatusDone:
			stats.DoneTasks++
		}
		if tasks[i].IsOverdue(now) {
			stats.OverdueTasks++
		}
	}
	return stats, nil
}
