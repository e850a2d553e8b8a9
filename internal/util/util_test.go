package util

import "testing"

func TestNormalizeEmail(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  string
	}{
		{input: "a@x.com", want: "a@x.com"},
		{input: "A@X.com ", want: "a@x.com"},
		{input: "\t User@Example.COM\n", want: "user@example.com"},
		{input: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			if got := NormalizeEmail(tt.input); got != tt.want {
				t.Errorf("NormalizeEmail(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input  string
		want   int64
		wantOK bool
	}{
		{input: "1", want: 1, wantOK: true},
		{input: "9223372036854775807", want: 9223372036854775807, wantOK: true},
		{input: "0", wantOK: false},
		{input: "-4", wantOK: false},
		{input: "abc", wantOK: false},
		{input: "1.5", wantOK: false},
		{input: "", wantOK: false},
		{input: "9223372036854775808", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			got, ok := ParseID(tt.input)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("ParseID(%q) = (%d, %v), want (%d, %v)", tt.input, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}
