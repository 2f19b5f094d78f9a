package errors

import (
	"math"
	"strings"
	"testing"
)

func TestValidateKey(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantCode Code
	}{
		{"valid simple", "div-0", ""},
		{"valid uuid", "6f1c2a9e-8d4b-4c1a-9e7f-0a1b2c3d4e5f", ""},
		{"valid unicode", "카드-1", ""},

		{"empty", "", ErrCodeMissingKey},
		{"too long", strings.Repeat("k", MaxKeyLength+1), ErrCodeInvalidKey},
		{"null byte", "foo\x00bar", ErrCodeInvalidKey},
		{"newline", "foo\nbar", ErrCodeInvalidKey},
		{"leading space", " foo", ErrCodeInvalidKey},
		{"trailing tab", "foo\t", ErrCodeInvalidKey},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateKey(tt.input)
			if got := GetCode(err); got != tt.wantCode {
				t.Errorf("ValidateKey(%q) code = %q, want %q (err: %v)", tt.input, got, tt.wantCode, err)
			}
		})
	}
}

func TestValidateSpan(t *testing.T) {
	tests := []struct {
		name    string
		span    int
		wantErr bool
	}{
		{"unspecified", 0, false},
		{"one", 1, false},
		{"wide", 12, false},
		{"negative", -1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSpan("box", tt.span)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateSpan(%d) error = %v, wantErr %v", tt.span, err, tt.wantErr)
			}
		})
	}
}

func TestValidateHeight(t *testing.T) {
	tests := []struct {
		name    string
		height  float64
		wantErr bool
	}{
		{"zero", 0, false},
		{"positive", 120.5, false},
		{"negative", -3, true},
		{"nan", math.NaN(), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateHeight("box", tt.height)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateHeight(%v) error = %v, wantErr %v", tt.height, err, tt.wantErr)
			}
		})
	}
}
