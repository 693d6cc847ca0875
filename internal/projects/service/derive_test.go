package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(t *testing.T, s string) time.Time {
	t.Helper()
	ts, err := time.Parse("2006-01-02", s)
	if err != nil {
		t.Fatalf("bad test date %q: %v", s, err)
	}
	return ts
}

func TestComputeDuration(t *testing.T) {
	cases := []struct {
		name  string
		start string
		end   string
		want  int
	}{
		{"same day clamps to one", "2024-01-01", "2024-01-01", 1},
		{"two months", "2024-01-01", "2024-03-01", 2},
		{"inverted range clamps to one", "2024-01-01", "2023-12-01", 1},
		{"single day rounds up", "2024-01-01", "2024-01-02", 1},
		{"thirty one days rounds up", "2024-01-01", "2024-02-01", 2},
		{"one year", "2024-01-01", "2025-01-01", 13},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ComputeDuration(date(t, tc.start), date(t, tc.end))
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestNormalizeTechnologies(t *testing.T) {
	t.Run("emits canonical order regardless of flag order", func(t *testing.T) {
		got := NormalizeTechnologies(map[string]bool{
			TechReactJS: true,
			TechNodeJS:  true,
		})
		assert.Equal(t, []string{"Node.js", "React.js"}, got)
	})

	t.Run("all selected", func(t *testing.T) {
		got := NormalizeTechnologies(map[string]bool{
			TechTypeScript: true,
			TechReactJS:    true,
			TechNextJS:     true,
			TechNodeJS:     true,
		})
		assert.Equal(t, []string{"Node.js", "Next.js", "React.js", "TypeScript"}, got)
	})

	t.Run("false flags and unknown keys are ignored", func(t *testing.T) {
		got := NormalizeTechnologies(map[string]bool{
			TechNodeJS: false,
			"Rust":     true,
		})
		assert.Empty(t, got)
	})

	t.Run("nil flags", func(t *testing.T) {
		assert.Empty(t, NormalizeTechnologies(nil))
	})
}

func TestIsUploadedImage(t *testing.T) {
	assert.True(t, IsUploadedImage("/uploads/abc.jpg"))
	assert.False(t, IsUploadedImage("/img/demo-image-1.jpg"))
	assert.False(t, IsUploadedImage(""))
}

func TestRandChooser(t *testing.T) {
	c := NewRandChooser()

	t.Run("draws from the pool", func(t *testing.T) {
		for i := 0; i < 50; i++ {
			assert.Contains(t, DemoImages, c.Choose(DemoImages))
		}
	})

	t.Run("empty pool", func(t *testing.T) {
		assert.Equal(t, "", c.Choose(nil))
	})
}
