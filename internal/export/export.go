package export

import (
	"context"
	"encoding/csv"
	"io"
	"strconv"
	"strings"
	"time"

	"obrasapi/internal/obra"
)

var csvHeader = []string{"id", "titulo", "editora", "foto", "autores", "created_at", "updated_at"}

// Service produces the downloadable obras file.
type Service struct {
	repo obra.Repository
}

func NewService(repo obra.Repository) *Service {
	return &Service{repo: repo}
}

// Export returns obras created inside the inclusive range. A nil bound
// leaves that side open.
func (s *Service) Export(ctx context.Context, from, to *time.Time) ([]obra.Obra, error) {
	return s.repo.ListCreatedBetween(ctx, from, to)
}

// WriteCSV renders obras in the export layout: one row per obra, autores
// joined with ";", timestamps RFC 3339 in UTC.
func WriteCSV(w io.Writer, obras []obra.Obra) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}

	for _, o := range obras {
		row := []string{
			strconv.FormatInt(o.ID, 10),
			o.Titulo,
			o.Editora,
			o.Foto,
			strings.Join(o.Autores, ";"),
			o.CreatedAt.UTC().Format(time.RFC3339),
			o.UpdatedAt.UTC().Format(time.RFC3339),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
