package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestNewDate_Normalizes(t *testing.T) {
	d := NewDate(2025, time.February, 31)
	if d != NewDate(2025, time.March, 3) {
		t.Fatalf("expected 2025-03-03, got %s", d)
	}
}

func TestDate_Arithmetic(t *testing.T) {
	base := NewDate(2025, time.March, 31)
	tests := []struct {
		name string
		got  Date
		want string
	}{
		{"add days", base.Add(1), "2025-04-01"},
		{"subtract days", base.Add(-31), "2025-02-28"},
		{"subtract one month", base.AddMonth(-1), "2025-03-03"},
		{"subtract three months", base.AddMonth(-3), "2024-12-31"},
		{"subtract one year", base.AddYear(-1), "2024-03-31"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got.String() != tt.want {
				t.Fatalf("got %s, want %s", tt.got, tt.want)
			}
		})
	}
}

func TestDate_Compare(t *testing.T) {
	a := NewDate(2025, time.January, 1)
	b := a.Add(1)
	if !a.Before(b) || !b.After(a) {
		t.Fatal("expected a before b")
	}
	if a.Compare(b) != -1 || b.Compare(a) != 1 || a.Compare(a) != 0 {
		t.Fatal("unexpected Compare results")
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"2025-07-01", "2025-07-01", false},
		{"2025-7-1", "2025-07-01", false},
		{"2025-07-01T00:00:00.000Z", "2025-07-01", false},
		{"yesterday", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			d, err := ParseDate(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseDate(%q) error = %v, wantErr = %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && d.String() != tt.want {
				t.Fatalf("got %s, want %s", d, tt.want)
			}
		})
	}
}

func TestDate_JSON(t *testing.T) {
	d := NewDate(2024, time.January, 5)
	data, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `"2024-01-05"` {
		t.Fatalf("unexpected JSON: %s", data)
	}

	var got Date
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got != d {
		t.Fatalf("got %s, want %s", got, d)
	}

	if err := json.Unmarshal([]byte(`12`), &got); err == nil {
		t.Fatal("expected error for non-string date")
	}
}
