package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/archstr/internal/unorm"
)

func TestNormalizeCommands(t *testing.T) {
	tests := []struct {
		name  string
		fn    func([]byte) ([]byte, error)
		input string
		want  string
	}{
		{"nfc composes", unorm.ToFormC, "Cafe\u0301", "Caf\u00e9"},
		{"nfc keeps ascii", unorm.ToFormC, "plain", "plain"},
		{"nfd decomposes", unorm.ToFormD, "Caf\u00e9", "Cafe\u0301"},
		{"nfc replaces invalid", unorm.ToFormC, "a\xffb", "a\ufffdb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetFlags(t)
			path := writeInput(t, tt.input)
			out, err := captureOutput(t, func() error {
				return runNormalize([]string{path}, tt.fn)
			})
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestVersionCommand(t *testing.T) {
	out, err := captureOutput(t, func() error {
		versionCmd.Run(versionCmd, nil)
		return nil
	})
	require.NoError(t, err)
	assertContains(t, out, []string{"strconvctl dev", "commit: none"})
}
