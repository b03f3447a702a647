package timespec

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	tests := map[string]float64{
		"90":         90,
		"12.5":       12.5,
		"10:30":      630,
		"1:02:03.5":  3723.5,
		"00:01:00":   60,
		"0:00":       0,
		" 600 ":      600,
		"01:02:03":   3723,
		"10:30.250":  630.25,
		"02:00:00.5": 7200.5,
	}
	for in, want := range tests {
		t.Run(in, func(t *testing.T) {
			got, err := Parse(in)
			if err != nil {
				t.Fatalf("Parse(%q): %v", in, err)
			}
			if got != want {
				t.Fatalf("Parse(%q) = %v, want %v", in, got, want)
			}
		})
	}
}

func TestParseRejectsMalformed(t *testing.T) {
	for _, in := range []string{"", "abc", "1:2:3:4", "1:xx", "xx:30", "xx:01:30", "::", "1:"} {
		t.Run(in, func(t *testing.T) {
			_, err := Parse(in)
			var perr *ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("Parse(%q) err = %v, want *ParseError", in, err)
			}
		})
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{30, "00:00:30"},
		{630, "00:10:30"},
		{3723, "01:02:03"},
		{30.5, "00:00:30.500"},
		{-5, "00:00:00"},
		{0, "00:00:00"},
		// a rounded-up fraction must carry into the next second/minute
		{59.9996, "00:01:00"},
		{3599.9999, "01:00:00"},
		{0.0004, "00:00:00"},
	}
	for _, tt := range tests {
		if got := Format(tt.in); got != tt.want {
			t.Fatalf("Format(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestWindow(t *testing.T) {
	d, err := Window("00:01:00", "00:01:30")
	if err != nil {
		t.Fatalf("Window: %v", err)
	}
	if d != 30 {
		t.Fatalf("Window = %v, want 30", d)
	}

	if _, err := Window("00:01:30", "00:01:00"); err == nil {
		t.Fatal("expected error for non-positive window")
	}
	if _, err := Window("00:01:00", "00:01:00"); err == nil {
		t.Fatal("expected error for zero window")
	}
	if _, err := Window("bogus", "00:01:00"); err == nil {
		t.Fatal("expected parse error for bad start")
	}
}
