package sensitive

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewWordFromList(t *testing.T) {
	w := NewWordFromList([]string{"palavrão", "golpe"})

	pass, word := w.Validate("isso é um golpe financeiro")
	assert.Equal(t, false, pass)
	assert.Equal(t, "golpe", word)

	pass, _ = w.Validate("notícia comum do dia")
	assert.Equal(t, true, pass)

	str := w.Replace("isso é um golpe", '*')
	assert.Equal(t, "isso é um *****", str)
}
