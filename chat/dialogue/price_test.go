package dialogue

import (
	"math"
	"testing"
)

func TestExtractPriceRange(t *testing.T) {
	inf := math.Inf(1)
	tests := []struct {
		name string
		in   string
		min  float64
		max  float64
	}{
		{"upper bound with thousands separator", "até 50.000", 0, 50000},
		{"range form", "entre 30.000 e 60.000", 30000, 60000},
		{"range with de/a", "de 20.000 a 45.000", 20000, 45000},
		{"lower bound with mil suffix", "acima de 10 mil", 10000, inf},
		{"lower bound plain", "acima de 25.000", 25000, inf},
		{"maximo marker", "máximo 80.000", 0, 80000},
		{"minimo marker", "mínimo 15.000", 15000, inf},
		{"bare mil defaults to lower bound", "uns 30 mil", 30000, inf},
		{"bare k with upper marker", "no maximo uns 40k", 0, 40000},
		{"upper bound with mil suffix", "até 50 mil", 0, 50000},
		{"currency prefix", "entre R$ 30.000 e R$ 60.000", 30000, 60000},
		{"decimal comma", "até 49999,99", 0, 49999.99},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractPriceRange(tt.in)
			if !ok {
				t.Fatalf("ExtractPriceRange(%q) did not match", tt.in)
			}
			if got.Min != tt.min {
				t.Fatalf("ExtractPriceRange(%q).Min = %v, want %v", tt.in, got.Min, tt.min)
			}
			if math.IsInf(tt.max, 1) {
				if !math.IsInf(got.Max, 1) {
					t.Fatalf("ExtractPriceRange(%q).Max = %v, want +Inf", tt.in, got.Max)
				}
			} else if got.Max != tt.max {
				t.Fatalf("ExtractPriceRange(%q).Max = %v, want %v", tt.in, got.Max, tt.max)
			}
		})
	}
}

func TestExtractPriceRangeNoMatch(t *testing.T) {
	for _, in := range []string{"", "qualquer coisa", "caro", "muito barato"} {
		if _, ok := ExtractPriceRange(in); ok {
			t.Fatalf("ExtractPriceRange(%q) matched, want no match", in)
		}
	}
}
