package subscription

import (
	"context"

	"github.com/subhub/subscription-hub/internal/stats"
	"github.com/subhub/subscription-hub/internal/store"
)

// Service defines the subscription operations exposed to handlers.
type Service interface {
	Create(context.Context, CreateParams) (store.Subscription, error)
	GetByID(context.Context, int) (store.Subscription, error)
	List(context.Context, ListFilter) ([]store.Subscription, error)
	Update(context.Context, int, UpdateParams) (store.Subscription, error)
	Delete(context.Context, int) error
	Summary(context.Context) (stats.Summary, error)
}

type service struct {
	repo *Repository
}

// NewService creates a Service backed by the provided repository.
func NewService(repo *Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, params CreateParams) (store.Subscription, error) {
	return s.repo.Create(ctx, params)
}

func (s *service) GetByID(ctx context.Context, id int) (store.Subscription, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter ListFilter) ([]store.Subscription, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id int, params UpdateParams) (store.Subscription, error) {
	return s.repo.Update(ctx, id, params)
}

func (s *service) Delete(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}

func (s *service) Summary(ctx context.Context) (stats.Summary, error) {
	return s.repo.Summary(ctx)
}
