package money

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		amount   string
		currency string
		want     string
	}{
		{"3.19", "USD", "$3.19"},
		{"3.195", "USD", "$3.20"},
		{"1234.5", "USD", "$1,234.50"},
		{"0", "USD", "$0.00"},
		{"-0.5", "USD", "-$0.50"},
		{"3.19", "", "$3.19"},
		{"2.5", "XYZ", "2.50 XYZ"},
	}
	for _, tt := range tests {
		t.Run(tt.currency+" "+tt.amount, func(t *testing.T) {
			got := Format(decimal.RequireFromString(tt.amount), tt.currency)
			if got != tt.want {
				t.Errorf("Format(%s, %q) = %q, want %q", tt.amount, tt.currency, got, tt.want)
			}
		})
	}
}

func TestSignedFormat(t *testing.T) {
	if got := SignedFormat(decimal.RequireFromString("0.30"), "USD"); got != "+$0.30" {
		t.Errorf("got %q", got)
	}
	if got := SignedFormat(decimal.RequireFromString("-0.30"), "USD"); got != "-$0.30" {
		t.Errorf("got %q", got)
	}
	if got := SignedFormat(decimal.Zero, "USD"); got != "$0.00" {
		t.Errorf("got %q", got)
	}
}

func TestPercent(t *testing.T) {
	p := decimal.RequireFromString("9.5522")
	if got := Percent(p, 0); got != "10%" {
		t.Errorf("Percent(0) = %q", got)
	}
	if got := Percent(p, 1); got != "9.6%" {
		t.Errorf("Percent(1) = %q", got)
	}
}
