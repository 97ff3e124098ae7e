package obra

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepo is an in-memory Repository. It backs the service when no
// database is configured and gives tests a store with no infrastructure.
type MemoryRepo struct {
	// Clock overrides the timestamp source when set.
	Clock func() time.Time

	mu     sync.RWMutex
	obras  map[int64]Obra
	nextID int64
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{obras: make(map[int64]Obra)}
}

func (r *MemoryRepo) now() time.Time {
	if r.Clock != nil {
		return r.Clock().UTC()
	}
	return time.Now().UTC()
}

func (r *MemoryRepo) Create(_ context.Context, in Input) (Obra, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.create(in), nil
}

func (r *MemoryRepo) CreateBatch(_ context.Context, ins []Input) ([]Obra, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Obra, 0, len(ins))
	for _, in := range ins {
		out = append(out, r.create(in))
	}
	return out, nil
}

// create assumes the write lock is held.
func (r *MemoryRepo) create(in Input) Obra {
	r.nextID++
	now := r.now()
	o := Obra{
		ID:        r.nextID,
		Titulo:    in.Titulo,
		Editora:   in.Editora,
		Foto:      in.Foto,
		Autores:   append([]string(nil), in.Autores...),
		CreatedAt: now,
		UpdatedAt: now,
	}
	r.obras[o.ID] = o
	return o
}

func (r *MemoryRepo) List(ctx context.Context) ([]Obra, error) {
	return r.ListCreatedBetween(ctx, nil, nil)
}

func (r *MemoryRepo) GetByID(_ context.Context, id int64) (Obra, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	o, ok := r.obras[id]
	if !ok {
		return Obra{}, ErrNotFound
	}
	return o, nil
}

func (r *MemoryRepo) Update(_ context.Context, id int64, in Input) (Obra, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	o, ok := r.obras[id]
	if !ok {
		return Obra{}, ErrNotFound
	}

	o.Titulo = in.Titulo
	o.Editora = in.Editora
	o.Foto = in.Foto
	o.Autores = append([]string(nil), in.Autores...)
	o.UpdatedAt = r.now()
	r.obras[id] = o
	return o, nil
}

func (r *MemoryRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.obras[id]; !ok {
		return ErrNotFound
	}
	delete(r.obras, id)
	return nil
}

func (r *MemoryRepo) ListCreatedBetween(_ context.Context, from, to *time.Time) ([]Obra, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []Obra
	for _, o := range r.obras {
		if from != nil && o.CreatedAt.Before(*from) {
			continue
		}
		if to != nil && o.CreatedAt.After(*to) {
			continue
		}
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
