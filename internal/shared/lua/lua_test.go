package lua

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsIdentifier(t *testing.T) {
	assert.True(t, IsIdentifier("Part"))
	assert.True(t, IsIdentifier("_x1"))
	assert.False(t, IsIdentifier("1Part"))
	assert.False(t, IsIdentifier("My Part"))
	assert.False(t, IsIdentifier("end"))
	assert.False(t, IsIdentifier(""))
}

func TestIsReserved_关键字与环境名(t *testing.T) {
	for _, s := range []string{"local", "return", "game", "Instance", "script", "child"} {
		assert.True(t, IsReserved(s), s)
	}
	assert.False(t, IsReserved("Part"))
}

func TestIndex_非法段加引号(t *testing.T) {
	assert.Equal(t, ".Model", Index("Model"))
	assert.Equal(t, `["2nd Floor"]`, Index("2nd Floor"))
	assert.Equal(t, `["then"]`, Index("then"))
}

func TestQuote_转义(t *testing.T) {
	assert.Equal(t, `"a\"b\\c\n"`, Quote("a\"b\\c\n"))
	assert.Equal(t, `"\0001"`, Quote("\x001"))
	assert.Equal(t, `"\0x"`, Quote("\x00x"))
	assert.Equal(t, `"\195\169"`, Quote("é"))
}
