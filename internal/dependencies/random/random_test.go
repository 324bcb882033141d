package random

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStringUsesAlphabet(t *testing.T) {
	r := New()
	s := r.String(64, "ab")

	assert.Len(t, s, 64)
	assert.Empty(t, strings.Trim(s, "ab"))
}

func TestStringDegenerateInputs(t *testing.T) {
	r := New()
	assert.Empty(t, r.String(0, "abc"))
	assert.Empty(t, r.String(5, ""))
}

func TestStringsDiffer(t *testing.T) {
	r := New()
	assert.NotEqual(t, r.String(32, "abcdefghijklmnopqrstuvwxyz"), r.String(32, "abcdefghijklmnopqrstuvwxyz"))
}
