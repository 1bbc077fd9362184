package textnorm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFold(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Agrícola", "agricola"},
		{"  ÁVILA  ", "avila"},
		{"Logística Mediterránea", "logistica mediterranea"},
		{"Ñandú", "nandu"},
		{"B50123456", "b50123456"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Fold(tt.in), tt.in)
	}
}

func TestContains(t *testing.T) {
	assert.True(t, Contains("", "cualquier cosa"))
	assert.True(t, Contains("energia", "Energía Solar"))
	assert.True(t, Contains("B501", "Otra", "B50123456"))
	assert.False(t, Contains("textil", "Logística", "Agro"))
	assert.False(t, Contains("algo"))
}
