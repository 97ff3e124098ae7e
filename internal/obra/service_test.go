package obra

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validInput() Input {
	return Input{
		Titulo:  "Harry Potter",
		Editora: "Rocco",
		Foto:    "https://i.imgur.com/UH3IPXw.jpg",
		Autores: []string{"JK Rowling"},
	}
}

func TestService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("echoes input and assigns id", func(t *testing.T) {
		s := NewService(NewMemoryRepo())

		created, err := s.Create(ctx, validInput())
		require.NoError(t, err)

		assert.Equal(t, int64(1), created.ID)
		assert.Equal(t, "Harry Potter", created.Titulo)
		assert.Equal(t, "Rocco", created.Editora)
		assert.Equal(t, "https://i.imgur.com/UH3IPXw.jpg", created.Foto)
		assert.Equal(t, []string{"JK Rowling"}, created.Autores)
		assert.False(t, created.CreatedAt.IsZero())
	})

	t.Run("ids are unique", func(t *testing.T) {
		s := NewService(NewMemoryRepo())

		seen := map[int64]bool{}
		for i := 0; i < 5; i++ {
			created, err := s.Create(ctx, validInput())
			require.NoError(t, err)
			assert.False(t, seen[created.ID], "id %d assigned twice", created.ID)
			seen[created.ID] = true
		}
	})

	t.Run("empty titulo persists nothing", func(t *testing.T) {
		repo := NewMemoryRepo()
		s := NewService(repo)

		in := validInput()
		in.Titulo = ""
		_, err := s.Create(ctx, in)

		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "titulo", verr.Fields[0].Field)

		obras, err := repo.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, obras)
	})

	t.Run("rejects empty autores", func(t *testing.T) {
		s := NewService(NewMemoryRepo())

		in := validInput()
		in.Autores = nil
		_, err := s.Create(ctx, in)

		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
	})

	t.Run("rejects non-url foto", func(t *testing.T) {
		s := NewService(NewMemoryRepo())

		in := validInput()
		in.Foto = "not a url"
		_, err := s.Create(ctx, in)

		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "foto", verr.Fields[0].Field)
	})
}

func TestService_List(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepo()
	s := NewService(repo)

	const n = 4
	for i := 0; i < n; i++ {
		in := validInput()
		in.Titulo = fmt.Sprintf("Obra %d", i+1)
		_, err := s.Create(ctx, in)
		require.NoError(t, err)
	}

	obras, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, obras, n)
	for i, o := range obras {
		assert.Equal(t, fmt.Sprintf("Obra %d", i+1), o.Titulo)
	}
}

func TestService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("overwrites mutable fields only", func(t *testing.T) {
		repo := NewMemoryRepo()
		s := NewService(repo)

		created, err := s.Create(ctx, validInput())
		require.NoError(t, err)

		in := validInput()
		in.Titulo = "Harry Potter and the Chamber of Secrets"
		updated, err := s.Update(ctx, created.ID, in)
		require.NoError(t, err)

		assert.Equal(t, created.ID, updated.ID)
		assert.Equal(t, "Harry Potter and the Chamber of Secrets", updated.Titulo)
		assert.Equal(t, created.CreatedAt, updated.CreatedAt)

		got, err := repo.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, updated, got)
	})

	t.Run("unknown id changes nothing", func(t *testing.T) {
		repo := NewMemoryRepo()
		s := NewService(repo)

		created, err := s.Create(ctx, validInput())
		require.NoError(t, err)

		_, err = s.Update(ctx, 99, validInput())
		assert.ErrorIs(t, err, ErrNotFound)

		got, err := repo.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created, got)
	})

	t.Run("invalid input is rejected before the store", func(t *testing.T) {
		repo := NewMemoryRepo()
		s := NewService(repo)

		created, err := s.Create(ctx, validInput())
		require.NoError(t, err)

		bad := validInput()
		bad.Editora = ""
		_, err = s.Update(ctx, created.ID, bad)

		var verr *ValidationError
		require.ErrorAs(t, err, &verr)

		got, err := repo.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created, got)
	})
}

func TestService_Delete(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepo()
	s := NewService(repo)

	created, err := s.Create(ctx, validInput())
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, created.ID))

	obras, err := s.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, obras)

	assert.ErrorIs(t, s.Delete(ctx, created.ID), ErrNotFound)
}
