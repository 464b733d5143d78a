package model

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

// TestProjectUnmarshalJSON tests decoding of created_at in the forms backends send.
func TestProjectUnmarshalJSON(t *testing.T) {
	t.Parallel()

	want := time.Date(2024, 1, 15, 10, 30, 0, 123456000, time.UTC)

	testCases := []struct {
		name      string
		createdAt string
		expected  time.Time
	}{
		{"RFC3339 with offset", `"2024-01-15T10:30:00.123456+00:00"`, want},
		{"RFC3339 UTC", `"2024-01-15T10:30:00.123456Z"`, want},
		{"no zone", `"2024-01-15T10:30:00.123456"`, want},
		{"space separated with short offset", `"2024-01-15 10:30:00.123456+00"`, want},
		{"space separated without zone", `"2024-01-15 10:30:00"`, time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)},
		{"date only", `"2024-01-15"`, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)},
		{"null", `null`, time.Time{}},
		{"empty", `""`, time.Time{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			data := []byte(`{"id":"p1","domain":"example.com","created_at":` + tc.createdAt + `}`)
			var p Project
			if err := json.Unmarshal(data, &p); err != nil {
				t.Fatalf("Unmarshal() error = %v", err)
			}
			if p.ID != "p1" || p.Domain != "example.com" {
				t.Errorf("got id %q domain %q", p.ID, p.Domain)
			}
			if !p.CreatedAt.Equal(tc.expected) {
				t.Errorf("CreatedAt = %v, expected %v", p.CreatedAt, tc.expected)
			}
		})
	}

	t.Run("missing created_at", func(t *testing.T) {
		t.Parallel()

		var p Project
		if err := json.Unmarshal([]byte(`{"id":"p1","domain":"example.com"}`), &p); err != nil {
			t.Fatalf("Unmarshal() error = %v", err)
		}
		if !p.CreatedAt.IsZero() {
			t.Errorf("CreatedAt = %v, expected zero", p.CreatedAt)
		}
	})

	t.Run("garbage timestamp is malformed", func(t *testing.T) {
		t.Parallel()

		var p Project
		err := json.Unmarshal([]byte(`{"id":"p1","domain":"example.com","created_at":"yesterday"}`), &p)
		if !errors.Is(err, ErrMalformed) {
			t.Errorf("Unmarshal() error = %v, expected ErrMalformed", err)
		}
	})

	t.Run("encoding round trips", func(t *testing.T) {
		t.Parallel()

		in := Project{ID: "p1", Domain: "example.com", UserID: "u", CreatedAt: want}
		data, err := json.Marshal(in)
		if err != nil {
			t.Fatalf("Marshal() error = %v", err)
		}
		var out Project
		if err := json.Unmarshal(data, &out); err != nil {
			t.Fatalf("Unmarshal() error = %v", err)
		}
		if out.ID != in.ID || out.UserID != in.UserID || !out.CreatedAt.Equal(in.CreatedAt) {
			t.Errorf("got %+v, expected %+v", out, in)
		}
	})
}
