package obra

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const obraColumns = "id, titulo, editora, foto, autores, created_at, updated_at"

type PostgresRepo struct {
	db      *pgxpool.Pool
	timeout time.Duration
}

func NewPostgresRepo(db *pgxpool.Pool, timeout time.Duration) *PostgresRepo {
	return &PostgresRepo{db: db, timeout: timeout}
}

func (r *PostgresRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

const insertObraSQL = `
	INSERT INTO obras (titulo, editora, foto, autores, created_at, updated_at)
	VALUES ($1, $2, $3, $4, NOW(), NOW())
	RETURNING ` + obraColumns

func (r *PostgresRepo) Create(ctx context.Context, in Input) (Obra, error) {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	row := r.db.QueryRow(timeoutCtx, insertObraSQL, in.Titulo, in.Editora, in.Foto, in.Autores)
	return scanObra(row)
}

// CreateBatch inserts all inputs in one round trip. Rows are assigned ids in
// input order.
func (r *PostgresRepo) CreateBatch(ctx context.Context, ins []Input) ([]Obra, error) {
	if len(ins) == 0 {
		return nil, nil
	}

	batch := &pgx.Batch{}
	for _, in := range ins {
		batch.Queue(insertObraSQL, in.Titulo, in.Editora, in.Foto, in.Autores)
	}

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	br := r.db.SendBatch(timeoutCtx, batch)
	defer br.Close()

	out := make([]Obra, 0, len(ins))
	for i := range ins {
		o, err := scanObra(br.QueryRow())
		if err != nil {
			return nil, fmt.Errorf("batch item %d: %w", i, err)
		}
		out = append(out, o)
	}
	return out, nil
}

func (r *PostgresRepo) List(ctx context.Context) ([]Obra, error) {
	return r.ListCreatedBetween(ctx, nil, nil)
}

func (r *PostgresRepo) GetByID(ctx context.Context, id int64) (Obra, error) {
	const query = `SELECT ` + obraColumns + ` FROM obras WHERE id = $1`

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	o, err := scanObra(r.db.QueryRow(timeoutCtx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Obra{}, ErrNotFound
		}
		return Obra{}, err
	}
	return o, nil
}

func (r *PostgresRepo) Update(ctx context.Context, id int64, in Input) (Obra, error) {
	const query = `
		UPDATE obras
		SET titulo = $1, editora = $2, foto = $3, autores = $4, updated_at = NOW()
		WHERE id = $5
		RETURNING ` + obraColumns

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	o, err := scanObra(r.db.QueryRow(timeoutCtx, query, in.Titulo, in.Editora, in.Foto, in.Autores, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Obra{}, ErrNotFound
		}
		return Obra{}, err
	}
	return o, nil
}

func (r *PostgresRepo) Delete(ctx context.Context, id int64) error {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	tag, err := r.db.Exec(timeoutCtx, `DELETE FROM obras WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepo) ListCreatedBetween(ctx context.Context, from, to *time.Time) ([]Obra, error) {
	clauses := []string{"1=1"}
	args := []any{}
	argn := 1

	if from != nil {
		clauses = append(clauses, fmt.Sprintf("created_at >= $%d", argn))
		args = append(args, *from)
		argn++
	}
	if to != nil {
		clauses = append(clauses, fmt.Sprintf("created_at <= $%d", argn))
		args = append(args, *to)
		argn++
	}

	query := fmt.Sprintf(`SELECT %s FROM obras WHERE %s ORDER BY id`,
		obraColumns, strings.Join(clauses, " AND "))

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	rows, err := r.db.Query(timeoutCtx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Obra
	for rows.Next() {
		o, err := scanObra(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func scanObra(row pgx.Row) (Obra, error) {
	var o Obra
	err := row.Scan(&o.ID, &o.Titulo, &o.Editora, &o.Foto, &o.Autores, &o.CreatedAt, &o.UpdatedAt)
	return o, err
}
