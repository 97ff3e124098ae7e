package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
)

// TestInput is a canonical valid obra payload for tests.
var TestInput = map[string]any{
	"titulo":  "Harry Potter",
	"editora": "Rocco",
	"foto":    "https://i.imgur.com/UH3IPXw.jpg",
	"autores": []string{"JK Rowling"},
}

// NewRequest creates a new HTTP request for testing. A non-nil body is
// JSON-encoded.
func NewRequest(method, path string, body interface{}) *http.Request {
	var bodyBytes []byte
	if body != nil {
		bodyBytes, _ = json.Marshal(body)
	}
	var r *http.Request
	if bodyBytes != nil {
		r = httptest.NewRequest(method, path, bytes.NewReader(bodyBytes))
		r.Header.Set("Content-Type", "application/json")
	} else {
		r = httptest.NewRequest(method, path, nil)
	}
	return r
}

// NewUploadRequest creates a multipart request carrying content as a file
// under the given form field.
func NewUploadRequest(path, field, filename, content string) *http.Request {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, _ := mw.CreateFormFile(field, filename)
	_, _ = io.WriteString(fw, content)
	_ = mw.Close()

	r := httptest.NewRequest(http.MethodPost, path, &buf)
	r.Header.Set("Content-Type", mw.FormDataContentType())
	return r
}

// RecordResponse holds a decoded HTTP response for testing.
type RecordResponse struct {
	Code   int
	Header http.Header
	Body   map[string]interface{}
}

// RecordHTTPResponse decodes the recorded response body as JSON.
func RecordHTTPResponse(w *httptest.ResponseRecorder) RecordResponse {
	result := w.Result()
	defer result.Body.Close()

	bodyBytes, _ := io.ReadAll(result.Body)

	var bodyMap map[string]interface{}
	if len(bodyBytes) > 0 {
		json.NewDecoder(bytes.NewReader(bodyBytes)).Decode(&bodyMap)
	}

	return RecordResponse{
		Code:   result.StatusCode,
		Header: result.Header,
		Body:   bodyMap,
	}
}

// Data returns the "data" object of the response envelope, if any.
func (r RecordResponse) Data() map[string]interface{} {
	if d, ok := r.Body["data"].(map[string]interface{}); ok {
		return d
	}
	return nil
}

// DataList returns the "data" array of the response envelope, if any.
func (r RecordResponse) DataList() []interface{} {
	if d, ok := r.Body["data"].([]interface{}); ok {
		return d
	}
	return nil
}
