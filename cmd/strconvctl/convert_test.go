package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/archstr/pkg/types"
)

func TestConvertCommand(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		from       string
		to         string
		bestEffort bool
		strict     bool
		nfd        bool
		want       string
		wantErr    bool
	}{
		{
			name:  "latin1 to utf8",
			input: "caf\xe9",
			from:  "ISO-8859-1",
			to:    "UTF-8",
			want:  "café",
		},
		{
			name:  "utf8 to latin1",
			input: "café",
			from:  "UTF-8",
			to:    "ISO-8859-1",
			want:  "caf\xe9",
		},
		{
			name:  "cp437 box drawing",
			input: "\xc9\xcd\xbb",
			from:  "CP437",
			to:    "UTF-8",
			want:  "╔═╗",
		},
		{
			name:  "lossy without strict",
			input: "a中",
			from:  "UTF-8",
			to:    "ISO-8859-1",
			want:  "a?",
		},
		{
			name:    "lossy with strict",
			input:   "a中",
			from:    "UTF-8",
			to:      "ISO-8859-1",
			strict:  true,
			wantErr: true,
		},
		{
			name:    "unsupported charset",
			input:   "abc",
			from:    "X-NO-SUCH-CHARSET",
			to:      "UTF-8",
			wantErr: true,
		},
		{
			name:       "unsupported charset best effort",
			input:      "abc",
			from:       "X-NO-SUCH-CHARSET",
			to:         "UTF-8",
			bestEffort: true,
			want:       "abc",
		},
		{
			name:  "utf8 composed on read",
			input: "e\u0301",
			from:  "UTF-8",
			to:    "UTF-8",
			want:  "\u00e9",
		},
		{
			name:  "utf8 decomposed with nfd",
			input: "\u00e9",
			from:  "UTF-8",
			to:    "UTF-8",
			nfd:   true,
			want:  "e\u0301",
		},
		{
			name:  "utf16be to utf8",
			input: "\x00h\x00i\x4e\x2d",
			from:  "UTF-16BE",
			to:    "UTF-8",
			want:  "hi中",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetFlags(t)
			convertFrom = tt.from
			convertTo = tt.to
			convertBestEffort = tt.bestEffort
			convertStrict = tt.strict
			convertNFD = tt.nfd

			path := writeInput(t, tt.input)
			out, err := captureOutput(t, func() error {
				return runConvert([]string{path})
			})
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestConvertStrictErrorIsLossy(t *testing.T) {
	resetFlags(t)
	convertFrom, convertTo, convertStrict = "UTF-8", "US-ASCII", true

	path := writeInput(t, "é")
	_, err := captureOutput(t, func() error {
		return runConvert([]string{path})
	})
	require.Error(t, err)
	assert.True(t, types.IsLossy(err))
}

func TestConvertToFile(t *testing.T) {
	resetFlags(t)
	convertFrom, convertTo = "KOI8-R", "UTF-8"
	convertOutput = filepath.Join(t.TempDir(), "out.txt")

	path := writeInput(t, "\xf0\xd2\xc9\xd7\xc5\xd4")
	out, err := captureOutput(t, func() error {
		return runConvert([]string{path})
	})
	require.NoError(t, err)
	assert.Empty(t, out)

	got, err := os.ReadFile(convertOutput)
	require.NoError(t, err)
	assert.Equal(t, "Привет", string(got))
}

func TestConvertMissingFile(t *testing.T) {
	resetFlags(t)
	err := runConvert([]string{filepath.Join(t.TempDir(), "missing")})
	assert.Error(t, err)
}
