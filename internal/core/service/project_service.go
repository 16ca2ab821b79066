package service

import (
	"context"
	"fmt"
	"net/http"

	"github.com/tasktrack/webapp/internal/core/domain"
	"github.com/tasktrack/webapp/internal/core/ports"
	"github.com/tasktrack/webapp/internal/gateway"
)

// ProjectService proxies project CRUD to the external API. Authorization
// is enforced server-side; this layer only shapes requests.
type ProjectService struct {
	gw *gateway.Gateway
}

func NewProjectService(gw *gateway.Gateway) *ProjectService {
	return &ProjectService{gw: gw}
}

func (s *ProjectService) List(ctx context.Context, sess ports.Session) ([]domain.Project, error) {
	return gateway.List[domain.Project](ctx, s.gw, sess, gateway.Request{
		Method: http.MethodGet,
		Path:   "/projects/",
	})
}

func (s *ProjectService) Create(ctx context.Context, sess ports.Session, input domain.ProjectInput) (*domain.Project, error) {
	var project domain.Project
	err := s.gw.Do(ctx, sess, gateway.Request{
		Method: http.MethodPost,
		Path:   "/projects/",
		Body:   input,
	}, &project)
	if err != nil {
		return nil, err
	}
	return &project, nil
}

func (s *ProjectService) Update(ctx context.Context, sess ports.Session, id int64, input domain.ProjectInput) (*domain.Project, error) {
	var project domain.Project
	err := s.gw.Do(ctx, sess, gateway.Request{
		Method: http.MethodPut,
		Path:   fmt.Sprintf("/projects/%d/", id),
		Body:   input,
	}, &project)
	if err != nil {
		return nil, err
	}
	return &project, nil
}

func (s *ProjectService) Delete(ctx context.Context, sess ports.Session, id int64) error {
	return s.gw.Do(ctx, sess, gateway.Request{
		Method: http.MethodDelete,
		Path:   fmt.Sprintf("/projects/%d/", id),
	}, nil)
}
