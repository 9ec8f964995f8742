package payment

import "context"

// Service defines the payment operations exposed to handlers.
type Service interface {
	Create(context.Context, CreateParams) (View, error)
	GetByID(context.Context, int) (View, error)
	List(context.Context, ListFilter) ([]View, error)
	Update(context.Context, int, UpdateParams) (View, error)
	Delete(context.Context, int) error
}

type service struct {
	repo *Repository
}

// NewService creates a Service backed by the provided repository.
func NewService(repo *Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, params CreateParams) (View, error) {
	return s.repo.Create(ctx, params)
}

func (s *service) GetByID(ctx context.Context, id int) (View, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter ListFilter) ([]View, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id int, params UpdateParams) (View, error) {
	return s.repo.Update(ctx, id, params)
}

func (s *service) Delete(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}
