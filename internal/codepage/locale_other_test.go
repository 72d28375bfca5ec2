//go:build !windows

package codepage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCurrentFromEnv(t *testing.T) {
	t.Setenv("LC_ALL", "")
	t.Setenv("LC_CTYPE", "ru_RU.KOI8-R")
	t.Setenv("LANG", "en_US.UTF-8")

	l := Current()
	assert.Equal(t, "KOI8-R", l.Charset)
	assert.Equal(t, uint32(20866), l.ACP)
	assert.Equal(t, l.ACP, l.OEMCP)
	assert.False(t, l.NeedsOEMConversion())

	t.Setenv("LC_ALL", "C")
	assert.Equal(t, "US-ASCII", Current().Charset)
}
