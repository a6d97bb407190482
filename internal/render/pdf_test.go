package render

import (
	"bytes"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatMoney(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"0", "$ 0"},
		{"5", "$ 5"},
		{"1500", "$ 1,500"},
		{"1234567", "$ 1,234,567"},
		{"-980", "-$ 980"},
		{"1500.49", "$ 1,500"},
		{"1500.5", "$ 1,501"},
	}
	for _, c := range cases {
		d, err := decimal.NewFromString(c.in)
		require.NoError(t, err)
		assert.Equal(t, c.want, formatMoney(d), "input %s", c.in)
	}
}

func TestWritePDF(t *testing.T) {
	grid, _ := testGrid(t)

	var buf bytes.Buffer
	require.NoError(t, WritePDF(&buf, grid))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
	assert.Greater(t, buf.Len(), 1000)
}
