package dto

import "testing"

func TestEnrollmentProgressFraction(t *testing.T) {
	tests := []struct {
		name      string
		total     int
		completed int
		want      float64
	}{
		{"no lessons", 0, 0, 0},
		{"nothing done", 10, 0, 0},
		{"halfway", 10, 5, 0.5},
		{"all done", 4, 4, 1},
		{"single lesson done", 3, 1, 1.0 / 3.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := EnrollmentProgress{TotalLessons: tt.total, CompletedLessons: tt.completed}
			if got := p.Fraction(); got != tt.want {
				t.Fatalf("Fraction() = %v, want %v", got, tt.want)
			}
		})
	}
}
