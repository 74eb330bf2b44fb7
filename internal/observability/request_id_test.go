package observability

import (
	"context"
	"testing"

	"github.com/google/uuid"
)

func TestNewRequestIDReturnsUUID(t *testing.T) {
	id := NewRequestID()
	if id == "" {
		t.Fatal("expected non-empty request id")
	}

	if _, err := uuid.Parse(id); err != nil {
		t.Fatalf("expected valid UUID, got %q: %v", id, err)
	}
}

func TestRequestIDContextRoundTrip(t *testing.T) {
	ctx := context.Background()
	want := "abc-123"

	ctx = ContextWithRequestID(ctx, want)
	got := RequestIDFromContext(ctx)

	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestRequestIDFromContextWhenMissingOrWrongType(t *testing.T) {
	t.Run("missing", func(t *testing.T) {
		got := RequestIDFromContext(context.Background())
		if got != "" {
			t.Fatalf("expected empty string, got %q", got)
		}
	})

	t.Run("wrong type", func(t *testing.T) {
		ctx := context.WithValue(context.Background(), RequestIDKey, 42)
		got := RequestIDFromContext(ctx)
		if got != "" {
			t.Fatalf("expected empty string, got %q", got)
		}
	})
}

func TestParseRequestID(t *testing.T) {
	tests := []struct {
		raw    string
		want   string
		wantOK bool
	}{
		{raw: "", wantOK: false},
		{raw: "abc-123", wantOK: false},
		{raw: "7c9e6679-7425-40de-944b-e07fc1f90ae7", want: "7c9e6679-7425-40de-944b-e07fc1f90ae7", wantOK: true},
		{raw: "{7C9E6679-7425-40DE-944B-E07FC1F90AE7}", want: "7c9e6679-7425-40de-944b-e07fc1f90ae7", wantOK: true},
	}

	for _, tc := range tests {
		t.Run(tc.raw, func(t *testing.T) {
			got, ok := ParseRequestID(tc.raw)
			if ok != tc.wantOK || got != tc.want {
				t.Fatalf("ParseRequestID(%q) = %q, %t; want %q, %t", tc.raw, got, ok, tc.want, tc.wantOK)
			}
		})
	}
}
