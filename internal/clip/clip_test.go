package clip

import (
	"errors"
	"testing"

	"github.com/clipset/clipset/internal/timespec"
)

func TestRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     Request
		wantErr bool
	}{
		{"start plus end", Request{Input: "in.mkv", Start: "00:01:00", End: "00:01:30"}, false},
		{"start plus duration", Request{Input: "in.mkv", Start: "10", Duration: "30"}, false},
		{"missing input", Request{Start: "10", Duration: "30"}, true},
		{"missing start", Request{Input: "in.mkv", End: "00:01:30"}, true},
		{"missing end and duration", Request{Input: "in.mkv", Start: "10"}, true},
		{"both end and duration", Request{Input: "in.mkv", Start: "10", End: "40", Duration: "30"}, true},
		{"end before start", Request{Input: "in.mkv", Start: "00:01:30", End: "00:01:00"}, true},
		{"end equals start", Request{Input: "in.mkv", Start: "60", End: "60"}, true},
		{"zero duration", Request{Input: "in.mkv", Start: "10", Duration: "0"}, true},
		{"malformed start", Request{Input: "in.mkv", Start: "1:2:3:4", Duration: "30"}, true},
		{"malformed duration", Request{Input: "in.mkv", Start: "10", Duration: "abc"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() err = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestRequestValidateErrorTypes(t *testing.T) {
	var verr ValidationError
	if err := (Request{Input: "in.mkv", Start: "10"}).Validate(); !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	var perr *timespec.ParseError
	if err := (Request{Input: "in.mkv", Start: "abc", Duration: "30"}).Validate(); !errors.As(err, &perr) {
		t.Fatalf("expected ParseError, got %v", err)
	}
	if err := (Request{Input: "in.mkv", Start: "00:01:30", End: "00:01:00"}).Validate(); !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError for non-positive window, got %v", err)
	}
}

func TestValidateLang(t *testing.T) {
	got, err := ValidateLang(" ITA ")
	if err != nil {
		t.Fatalf("ValidateLang: %v", err)
	}
	if got != "ita" {
		t.Fatalf("ValidateLang = %q, want %q", got, "ita")
	}

	if _, err := ValidateLang("not-a-language-tag!"); err == nil {
		t.Fatal("expected error for invalid tag")
	}
}
