package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/Astemirdum/library-catalog/library/internal/model"
	"github.com/Astemirdum/library-catalog/library/internal/repository"
	"github.com/Astemirdum/library-catalog/pkg/kafka"
)

type EventPublisher interface {
	Publish(ctx context.Context, event kafka.EventLifecycle) error
}

type Service struct {
	log      *zap.Logger
	repo     repository.Repository
	events   EventPublisher
	pageSize int
	now      func() time.Time
}

type Option func(*Service)

func WithPublisher(p EventPublisher) Option {
	return func(s *Service) {
		if p != nil {
			s.events = p
		}
	}
}

func WithPageSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.pageSize = size
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func NewService(repo repository.Repository, log *zap.Logger, opts ...Option) *Service {
	s := &Service{
		log:      log.Named("service"),
		repo:     repo,
		events:   kafka.NopPublisher(),
		pageSize: model.DefaultPageSize,
		now:      func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// timestamp is the service clock truncated to the precision Postgres stores.
func (s *Service) timestamp() time.Time {
	return s.now().Truncate(time.Microsecond)
}
