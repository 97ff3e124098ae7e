package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"obrasapi/internal/obra"
	"obrasapi/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRouting_ObraLifecycle(t *testing.T) {
	router := newRouter(obra.NewMemoryRepo(), nil)

	do := func(r *http.Request) testutil.RecordResponse {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, r)
		return testutil.RecordHTTPResponse(w)
	}

	// create
	resp := do(testutil.NewRequest(http.MethodPost, "/obras", testutil.TestInput))
	require.Equal(t, http.StatusCreated, resp.Code)
	require.Equal(t, float64(1), resp.Data()["id"])

	// list shows it
	resp = do(testutil.NewRequest(http.MethodGet, "/obras", nil))
	require.Equal(t, http.StatusOK, resp.Code)
	require.Len(t, resp.DataList(), 1)

	// update by id
	updated := map[string]any{
		"titulo":  "Harry Potter and the Chamber of Secrets",
		"editora": "Rocco",
		"foto":    "https://i.imgur.com/UH3IPXw.jpg",
		"autores": []string{"JK Rowling"},
	}
	resp = do(testutil.NewRequest(http.MethodPut, "/obras/1", updated))
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "Harry Potter and the Chamber of Secrets", resp.Data()["titulo"])

	// list reflects the update
	resp = do(testutil.NewRequest(http.MethodGet, "/obras", nil))
	require.Equal(t, http.StatusOK, resp.Code)
	first, ok := resp.DataList()[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Harry Potter and the Chamber of Secrets", first["titulo"])

	// export as csv
	w := httptest.NewRecorder()
	router.ServeHTTP(w, testutil.NewRequest(http.MethodGet, "/file-obras", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Harry Potter and the Chamber of Secrets")

	// delete
	resp = do(testutil.NewRequest(http.MethodDelete, "/obras/1", nil))
	require.Equal(t, http.StatusNoContent, resp.Code)

	resp = do(testutil.NewRequest(http.MethodGet, "/obras", nil))
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Empty(t, resp.DataList())

	// deleting again is a 404
	resp = do(testutil.NewRequest(http.MethodDelete, "/obras/1", nil))
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestRouting_BulkUpload(t *testing.T) {
	router := newRouter(obra.NewMemoryRepo(), nil)

	csvFile := "titulo,editora,foto,autores\n" +
		"Harry Potter,Rocco,https://i.imgur.com/UH3IPXw.jpg,JK Rowling\n" +
		"O Hobbit,HarperCollins,https://example.com/hobbit.jpg,JRR Tolkien\n"

	w := httptest.NewRecorder()
	router.ServeHTTP(w, testutil.NewUploadRequest("/upload-obras", "file", "obras.csv", csvFile))
	resp := testutil.RecordHTTPResponse(w)
	require.Equal(t, http.StatusCreated, resp.Code)
	assert.Equal(t, float64(2), resp.Data()["created"])

	w = httptest.NewRecorder()
	router.ServeHTTP(w, testutil.NewRequest(http.MethodGet, "/obras", nil))
	resp = testutil.RecordHTTPResponse(w)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Len(t, resp.DataList(), 2)
}

func TestRouting_Health(t *testing.T) {
	router := newRouter(obra.NewMemoryRepo(), nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	// readyz has no pool to ping on the in-memory store
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
