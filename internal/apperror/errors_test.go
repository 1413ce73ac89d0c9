package apperror

import (
	"errors"
	"fmt"
	"testing"
)

func TestWrappedKindsMatchSentinels(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind error
	}{
		{"invalid input", InvalidInput("chat must not be blank"), ErrInvalidInput},
		{"not found", NotFound("project"), ErrNotFound},
		{"storage", Storage(errors.New("connection refused")), ErrStorage},
		{"model unavailable", ModelUnavailable(errors.New("quota exhausted")), ErrModelUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !errors.Is(tt.err, tt.kind) {
				t.Errorf("errors.Is(%v, %v) = false, want true", tt.err, tt.kind)
			}
		})
	}
}

func TestKindsAreDistinct(t *testing.T) {
	err := ModelUnavailable(fmt.Errorf("status 429"))
	if errors.Is(err, ErrInvalidInput) || errors.Is(err, ErrNotFound) || errors.Is(err, ErrStorage) {
		t.Errorf("model unavailable error matched an unrelated kind")
	}
}

func TestStorageNil(t *testing.T) {
	if Storage(nil) != nil {
		t.Error("Storage(nil) should be nil")
	}
}
