package schema

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestClipKeepsRuneBoundaries(t *testing.T) {
	long := strings.Repeat("é", 130)
	assert.Equal(t, strings.Repeat("é", 117)+"...", clip(long, 120))
	assert.Equal(t, "short", clip("short", 120))

	err := &ParseError{Stmt: long, Msg: "boom"}
	assert.True(t, utf8.ValidString(err.Error()))
}
