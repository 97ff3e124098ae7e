package obra

import (
	"errors"
	"time"
)

// ErrNotFound is returned when an obra is not found.
var ErrNotFound = errors.New("obra not found")

// Obra represents a published work (a book-like record).
type Obra struct {
	ID        int64     `json:"id"`
	Titulo    string    `json:"titulo"`
	Editora   string    `json:"editora"`
	Foto      string    `json:"foto"`
	Autores   []string  `json:"autores"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Input carries the client-mutable fields of an obra. It is the request
// body for create and update, and the per-row shape of a bulk upload.
type Input struct {
	Titulo  string   `json:"titulo" validate:"required"`
	Editora string   `json:"editora" validate:"required"`
	Foto    string   `json:"foto" validate:"required,url"`
	Autores []string `json:"autores" validate:"required,min=1,dive,required"`
}
