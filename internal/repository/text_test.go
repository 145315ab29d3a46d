package repository

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestPgText(t *testing.T) {
	tests := map[string]struct {
		in   string
		want string
	}{
		"plain":        {"SynthWave AI", "SynthWave AI"},
		"nul":          {"Synth\x00Wave", "SynthWave"},
		"invalid utf8": {"Synth\xffWave", "Synth�Wave"},
		"both":         {"\x00\xfe\xff", "�"},
		"whitespace":   {"  ", "  "},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			got := pgText(tc.in)
			assert.Equal(t, tc.want, got)
			assert.True(t, utf8.ValidString(got))
			assert.NotContains(t, got, "\x00")
		})
	}
}
