package models

import "testing"

func TestParseRoleType(t *testing.T) {
	tests := []struct {
		input   string
		want    RoleType
		wantErr bool
	}{
		{"student", RoleStudent, false},
		{"instructor", RoleInstructor, false},
		{"admin", RoleAdmin, false},
		{"Student", "", true},
		{"superuser", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := ParseRoleType(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseRoleType(%q): expected error, got %q", tt.input, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseRoleType(%q): unexpected error %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseRoleType(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestParseDifficultyLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    DifficultyLevel
		wantErr bool
	}{
		{"Beginner", DifficultyBeginner, false},
		{"Intermediate", DifficultyIntermediate, false},
		{"Advanced", DifficultyAdvanced, false},
		{"beginner", "", true},
		{"Expert", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := ParseDifficultyLevel(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseDifficultyLevel(%q): expected error, got %q", tt.input, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseDifficultyLevel(%q): unexpected error %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseDifficultyLevel(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
