// Copyright (c) 2026 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "testing"

func TestParseChoice(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Choice
		ok    bool
	}{
		{"yes", "yes", ChoiceYes, true},
		{"no", "no", ChoiceNo, true},
		{"empty", "", "", false},
		{"uppercase yes", "Yes", "", false},
		{"uppercase no", "NO", "", false},
		{"padded", " yes", "", false},
		{"unrelated", "maybe", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseChoice(tt.input)
			if ok != tt.ok {
				t.Errorf("ParseChoice(%q) ok = %v, want %v", tt.input, ok, tt.ok)
			}
			if got != tt.want {
				t.Errorf("ParseChoice(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
