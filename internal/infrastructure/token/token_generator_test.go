package token

import (
	"encoding/hex"
	"testing"
)

func TestGenerator_Generate(t *testing.T) {
	generator := NewGenerator()

	value, err := generator.Generate()
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if len(value) != 64 {
		t.Errorf("token length = %d, want 64 hex characters", len(value))
	}

	if _, err := hex.DecodeString(value); err != nil {
		t.Errorf("token is not valid hex: %v", err)
	}
}

func TestGenerator_Generate_Uniqueness(t *testing.T) {
	generator := NewGenerator()

	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		value, err := generator.Generate()
		if err != nil {
			t.Fatalf("Generate() error = %v", err)
		}
		if seen[value] {
			t.Fatalf("duplicate token generated: %s", value)
		}
		seen[value] = true
	}
}

func BenchmarkGenerator_Generate(b *testing.B) {
	generator := NewGenerator()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = generator.Generate()
	}
}
