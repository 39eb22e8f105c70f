package money

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToCents(t *testing.T) {
	cases := []struct {
		in   float64
		want Cents
	}{
		{0, 0},
		{2.5, 250},
		{4.5, 450},
		{0.1, 10},
		{50, 5000},
		{9.99, 999},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, ToCents(c.in), "ToCents(%v)", c.in)
	}
}

func TestRoundTrip(t *testing.T) {
	// Every representable two-decimal Euro amount survives the round
	// trip through cents exactly.
	for cents := Cents(0); cents <= 10000; cents++ {
		require.Equal(t, cents, ToCents(cents.Euros()))
	}
}

func TestArithmetic(t *testing.T) {
	assert.Equal(t, Cents(950), Cents(500).Add(450))
	assert.Equal(t, Cents(500), Cents(250).MulQty(2))
	assert.Equal(t, Cents(0), Cents(250).MulQty(0))
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "9,50 €", Cents(950).Format())
	assert.Equal(t, "0,00 €", Cents(0).Format())
	assert.Equal(t, "1.234,00 €", Cents(123400).Format())
}

func TestJSONBoundary(t *testing.T) {
	t.Run("marshals as two-decimal number", func(t *testing.T) {
		data, err := json.Marshal(Cents(250))
		require.NoError(t, err)
		assert.Equal(t, "2.50", string(data))
	})

	t.Run("unmarshals numbers and strings", func(t *testing.T) {
		var c Cents
		require.NoError(t, json.Unmarshal([]byte("2.50"), &c))
		assert.Equal(t, Cents(250), c)
		require.NoError(t, json.Unmarshal([]byte(`"4.50"`), &c))
		assert.Equal(t, Cents(450), c)
	})

	t.Run("round trip", func(t *testing.T) {
		for _, cents := range []Cents{0, 1, 10, 99, 250, 999, 5000} {
			data, err := json.Marshal(cents)
			require.NoError(t, err)
			var back Cents
			require.NoError(t, json.Unmarshal(data, &back))
			assert.Equal(t, cents, back)
		}
	})
}
