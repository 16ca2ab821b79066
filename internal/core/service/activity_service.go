package service

import (
	"context"
	"net/http"

	"github.com/tasktrack/webapp/internal/core/domain"
	"github.com/tasktrack/webapp/internal/core/ports"
	"github.com/tasktrack/webapp/internal/gateway"
)

// ActivityService lists the task audit trail. The screen is admin-gated by
// the route guard; the API enforces the same rule independently.
type ActivityService struct {
	gw *gateway.Gateway
}

func NewActivityService(gw *gateway.Gateway) *ActivityService {
	return &ActivityService{gw: gw}
}

func (s *ActivityService) List(ctx context.Context, sess ports.Session) ([]domain.ActivityLog, error) {
	return gateway.List[domain.ActivityLog](ctx, s.gw, sess, gateway.Request{
		Method: http.MethodGet,
		Path:   "/activity-logs/",
	})
}
