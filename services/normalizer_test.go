package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeTermID_CanonicalPassthrough(t *testing.T) {
	assert.Equal(t, "HP:0001166", NormalizeTermID("HP:0001166"))
	assert.Equal(t, "HP:0000001", NormalizeTermID("HP:0000001"))
}

func TestNormalizeTermID_NumericShorthand(t *testing.T) {
	// A full 7-digit numeric string just gets the prefix
	assert.Equal(t, "HP:0001166", NormalizeTermID("0001166"))

	// Shorter numeric strings are left-padded to 7 digits
	assert.Equal(t, "HP:0000001", NormalizeTermID("1"))
	assert.Equal(t, "HP:0001166", NormalizeTermID("1166"))
}

func TestNormalizeTermID_Idempotent(t *testing.T) {
	inputs := []string{"HP:0001166", "1166", "0001166", "abnormality", ""}
	for _, input := range inputs {
		once := NormalizeTermID(input)
		assert.Equal(t, once, NormalizeTermID(once), "normalize must be idempotent for %q", input)
	}
}

func TestNormalizeTermID_MalformedPassthrough(t *testing.T) {
	// Anything that is neither canonical nor numeric passes through
	// unchanged and is left for the source to reject.
	assert.Equal(t, "arachnodactyly", NormalizeTermID("arachnodactyly"))
	assert.Equal(t, "HP:12", NormalizeTermID("HP:12"))
	assert.Equal(t, "GO:0001166", NormalizeTermID("GO:0001166"))
	assert.Equal(t, "", NormalizeTermID(""))
}

func TestNormalizeTermID_TrimsWhitespace(t *testing.T) {
	assert.Equal(t, "HP:0001166", NormalizeTermID("  HP:0001166 "))
	assert.Equal(t, "HP:0001166", NormalizeTermID(" 0001166"))
}

func TestIsWellFormedTermID(t *testing.T) {
	assert.True(t, IsWellFormedTermID("HP:0001166"))
	assert.True(t, IsWellFormedTermID("0001166"))

	assert.False(t, IsWellFormedTermID("1166"))
	assert.False(t, IsWellFormedTermID("HP:1166"))
	assert.False(t, IsWellFormedTermID("HP:00011660"))
	assert.False(t, IsWellFormedTermID("hp:0001166"))
	assert.False(t, IsWellFormedTermID(""))
	assert.False(t, IsWellFormedTermID(" HP:0001166"))
}
