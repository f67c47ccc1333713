package exchange

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustRate(t *testing.T, g *Graph, from, to string, rate float64) {
	t.Helper()
	require.NoError(t, g.AddRate(from, to, decimal.NewFromFloat(rate)))
}

func TestConvertSameCurrency(t *testing.T) {
	g := NewGraph()

	// Holds even for a currency the graph has never seen.
	got, ok := g.Convert("RON", "RON", decimal.NewFromInt(42))
	assert.True(t, ok)
	assert.True(t, decimal.NewFromInt(42).Equal(got))

	mustRate(t, g, "RON", "EUR", 0.2)
	got, ok = g.Convert("EUR", "EUR", decimal.NewFromFloat(3.5))
	assert.True(t, ok)
	assert.True(t, decimal.NewFromFloat(3.5).Equal(got))
}

func TestConvertDirectAndReciprocal(t *testing.T) {
	g := NewGraph()
	mustRate(t, g, "EUR", "USD", 1.25)

	got, ok := g.Convert("EUR", "USD", decimal.NewFromInt(100))
	require.True(t, ok)
	assert.True(t, decimal.NewFromInt(125).Equal(got))

	got, ok = g.Convert("USD", "EUR", decimal.NewFromInt(1))
	require.True(t, ok)
	assert.InDelta(t, 0.8, got.InexactFloat64(), 1e-9)
}

func TestConvertChainedRates(t *testing.T) {
	g := NewGraph()
	mustRate(t, g, "A", "B", 2)
	mustRate(t, g, "B", "C", 3)
	mustRate(t, g, "C", "D", 5)

	// No direct A->D edge: the amount is the product along the chain.
	got, ok := g.Convert("A", "D", decimal.NewFromInt(10))
	require.True(t, ok)
	assert.True(t, decimal.NewFromInt(300).Equal(got))
}

func TestConvertFirstDiscoveredPathWins(t *testing.T) {
	g := NewGraph()
	mustRate(t, g, "A", "B", 2)
	mustRate(t, g, "A", "C", 10)
	mustRate(t, g, "C", "D", 10)
	mustRate(t, g, "B", "D", 3)

	// B was inserted before C, so DFS resolves A->B->D even though A->C->D
	// yields a larger amount.
	got, ok := g.Convert("A", "D", decimal.NewFromInt(1))
	require.True(t, ok)
	assert.True(t, decimal.NewFromInt(6).Equal(got))
}

func TestConvertUnreachable(t *testing.T) {
	g := NewGraph()
	mustRate(t, g, "EUR", "USD", 1.2)
	mustRate(t, g, "JPY", "KRW", 9.1)

	got, ok := g.Convert("EUR", "KRW", decimal.NewFromInt(50))
	assert.False(t, ok)
	assert.True(t, decimal.NewFromInt(-1).Equal(got))

	// Unknown starting currency.
	got, ok = g.Convert("GBP", "USD", decimal.NewFromInt(50))
	assert.False(t, ok)
	assert.True(t, decimal.NewFromInt(-1).Equal(got))
}

func TestAddRateRejectsZero(t *testing.T) {
	g := NewGraph()
	err := g.AddRate("EUR", "USD", decimal.Zero)
	require.Error(t, err)

	// No edge was installed in either direction.
	_, ok := g.Convert("EUR", "USD", decimal.NewFromInt(1))
	assert.False(t, ok)
	_, ok = g.Convert("USD", "EUR", decimal.NewFromInt(1))
	assert.False(t, ok)
}

func TestConvertDoesNotRetainVisitedState(t *testing.T) {
	g := NewGraph()
	mustRate(t, g, "A", "B", 2)
	mustRate(t, g, "B", "C", 4)

	for i := 0; i < 3; i++ {
		got, ok := g.Convert("A", "C", decimal.NewFromInt(1))
		require.True(t, ok)
		assert.True(t, decimal.NewFromInt(8).Equal(got))
	}
}
