package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasPrefixIgnoreCase(t *testing.T) {
	assert.True(t, HasPrefixIgnoreCase("Math.floor", "math."))
	assert.True(t, HasPrefixIgnoreCase("div", "DI"))
	assert.True(t, HasPrefixIgnoreCase("div", ""))
	assert.False(t, HasPrefixIgnoreCase("di", "div"))
}

func TestCountLinesAndColumn(t *testing.T) {
	testCases := []struct {
		text         string
		line, column int
	}{
		{"", 0, 0},
		{"abc", 0, 3},
		{"ab\n", 1, 0},
		{"body {\n  disp", 1, 6},
		{"a\nb\nhéllo", 2, 5},
	}
	for _, tc := range testCases {
		line, column := CountLinesAndColumn(tc.text)
		assert.Equal(t, tc.line, line, "%q", tc.text)
		assert.Equal(t, tc.column, column, "%q", tc.text)
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "exact", Truncate("exact", 5))
	assert.Equal(t, "Ancho…", Truncate("Anchor element", 6))
	assert.Equal(t, "…", Truncate("abc", 1))
	assert.Equal(t, "abc", Truncate("abc", 0))
	assert.Equal(t, "hé…", Truncate("héllo", 3))
}

func TestFormatWithCommas(t *testing.T) {
	testCases := map[int]string{
		0:        "0",
		999:      "999",
		1000:     "1,000",
		65536:    "65,536",
		1234567:  "1,234,567",
		-999:     "-999",
		-1234:    "-1,234",
		-1000000: "-1,000,000",
	}
	for n, want := range testCases {
		assert.Equal(t, want, FormatWithCommas(n), "%d", n)
	}
}
