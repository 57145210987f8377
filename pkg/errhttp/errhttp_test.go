package errhttp

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	grocerydomain "github.com/ghuser/pricetrack/services/grocery/domain"
)

func TestWriteError_StatusCodes(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"ErrItemNotFound", grocerydomain.ErrItemNotFound, http.StatusNotFound},
		{"ErrItemAlreadyExists", grocerydomain.ErrItemAlreadyExists, http.StatusConflict},
		{"ErrNothingToUndo", grocerydomain.ErrNothingToUndo, http.StatusConflict},
		{"ErrInvalidItemName", grocerydomain.ErrInvalidItemName, http.StatusUnprocessableEntity},
		{"ErrInvalidStoreName", grocerydomain.ErrInvalidStoreName, http.StatusUnprocessableEntity},
		{"ErrInvalidPrice", grocerydomain.ErrInvalidPrice, http.StatusUnprocessableEntity},
		{"ErrInvalidWindow", grocerydomain.ErrInvalidWindow, http.StatusBadRequest},
		{"wrapped ErrItemNotFound", fmt.Errorf("update price: %w", grocerydomain.ErrItemNotFound), http.StatusNotFound},
		{"wrapped ErrInvalidPrice", fmt.Errorf("%w: must be greater than zero", grocerydomain.ErrInvalidPrice), http.StatusUnprocessableEntity},
		{"persistence failure", grocerydomain.ErrPersistence, http.StatusInternalServerError},
		{"unknown error", errors.New("something unexpected"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			WriteError(w, tt.err, false)

			if w.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d", tt.wantStatus, w.Code)
			}
		})
	}
}

func TestWriteError_JSONBody(t *testing.T) {
	w := httptest.NewRecorder()
	WriteError(w, fmt.Errorf("delete: %w", grocerydomain.ErrItemNotFound), true)

	if ct := w.Header().Get("Content-Type"); ct != "application/json; charset=utf-8" {
		t.Fatalf("unexpected Content-Type %q", ct)
	}
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("response body is not valid JSON: %v", err)
	}
	if body["error"] != "delete: item not found" {
		t.Fatalf("unexpected error message %q", body["error"])
	}
}

func TestWriteError_HidesInternalDetails(t *testing.T) {
	w := httptest.NewRecorder()
	WriteError(w, errors.New("dial tcp 10.0.0.5:6379: connect: connection refused"), true)

	var body map[string]string
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	if body["error"] != http.StatusText(http.StatusInternalServerError) {
		t.Fatalf("expected generic message, got %q", body["error"])
	}
}
