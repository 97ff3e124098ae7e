package obra

import (
	"context"
	"time"
)

// Repository defines the contract for obra data storage.
type Repository interface {
	Create(ctx context.Context, in Input) (Obra, error)
	CreateBatch(ctx context.Context, ins []Input) ([]Obra, error)
	List(ctx context.Context) ([]Obra, error)
	GetByID(ctx context.Context, id int64) (Obra, error)
	Update(ctx context.Context, id int64, in Input) (Obra, error)
	Delete(ctx context.Context, id int64) error
	// ListCreatedBetween returns obras whose created_at falls inside the
	// inclusive range. A nil bound leaves that side unbounded.
	ListCreatedBetween(ctx context.Context, from, to *time.Time) ([]Obra, error)
}
