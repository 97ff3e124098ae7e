package ingest

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"obrasapi/internal/obra"
)

var requiredColumns = []string{"titulo", "editora", "foto", "autores"}

// Service turns an uploaded CSV file into obras.
type Service struct {
	repo obra.Repository
}

func NewService(repo obra.Repository) *Service {
	return &Service{repo: repo}
}

// Run parses the CSV, validates each row with the same checks as single
// create, persists the valid rows in one batch, and reports the rest.
// The header row must name the required columns; order does not matter and
// unknown columns are ignored. Returns ErrMalformed when the file itself is
// unusable, in which case nothing is stored.
func (s *Service) Run(ctx context.Context, file io.Reader) (*Report, error) {
	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: missing header row", ErrMalformed)
	}

	columns, err := indexColumns(header)
	if err != nil {
		return nil, err
	}

	report := &Report{}
	var inputs []obra.Input

	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				report.RowsRead++
				report.Failed++
				report.Errors = append(report.Errors, RowError{Line: pe.Line, Reason: "unreadable row"})
				continue
			}
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}

		report.RowsRead++

		in, err := rowToInput(record, columns)
		if err == nil {
			err = obra.ValidateInput(in)
		}
		if err != nil {
			report.Failed++
			report.Errors = append(report.Errors, RowError{Line: line, Reason: err.Error()})
			continue
		}

		inputs = append(inputs, in)
	}

	if len(inputs) > 0 {
		created, err := s.repo.CreateBatch(ctx, inputs)
		if err != nil {
			return nil, err
		}
		report.Obras = created
		report.Created = len(created)
	}
	if report.Obras == nil {
		report.Obras = []obra.Obra{}
	}

	return report, nil
}

func indexColumns(header []string) (map[string]int, error) {
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}

	var missing []string
	for _, name := range requiredColumns {
		if _, ok := columns[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing columns %s", ErrMalformed, strings.Join(missing, ", "))
	}
	return columns, nil
}

func rowToInput(record []string, columns map[string]int) (obra.Input, error) {
	cell := func(name string) (string, error) {
		i := columns[name]
		if i >= len(record) {
			return "", fmt.Errorf("row is missing the %s column", name)
		}
		return strings.TrimSpace(record[i]), nil
	}

	var in obra.Input
	var err error
	if in.Titulo, err = cell("titulo"); err != nil {
		return obra.Input{}, err
	}
	if in.Editora, err = cell("editora"); err != nil {
		return obra.Input{}, err
	}
	if in.Foto, err = cell("foto"); err != nil {
		return obra.Input{}, err
	}
	raw, err := cell("autores")
	if err != nil {
		return obra.Input{}, err
	}
	in.Autores = splitAutores(raw)
	return in, nil
}

// splitAutores accepts either a semicolon-separated list ("A; B") or a
// bracketed quoted list ("['A', 'B']"), the form legacy exports used.
func splitAutores(raw string) []string {
	sep := ";"
	if strings.HasPrefix(raw, "[") && strings.HasSuffix(raw, "]") {
		raw = raw[1 : len(raw)-1]
		sep = ","
	}

	var autores []string
	for _, part := range strings.Split(raw, sep) {
		part = strings.Trim(strings.TrimSpace(part), `'"`)
		if part != "" {
			autores = append(autores, part)
		}
	}
	return autores
}
