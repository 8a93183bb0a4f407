package cut

import (
	"context"

	"recortes/internal/domain"
	"recortes/internal/repository"
)

// CutRepository is the persistence surface the service needs. Satisfied
// by repository.CutRepository and by test mocks.
type CutRepository interface {
	Create(ctx context.Context, cut *domain.Cut) error
	GetByIDForUser(ctx context.Context, id, userID int64) (*domain.Cut, error)
	List(ctx context.Context, f repository.CutFilter) ([]domain.Cut, int64, error)
	Update(ctx context.Context, cut *domain.Cut) error
	Delete(ctx context.Context, id, userID int64) error
}
