package exchange

import (
	"fmt"

	"github.com/shopspring/decimal"
)

type edge struct {
	currency string
	rate     decimal.Decimal
}

// Graph holds pairwise exchange rates as an undirected weighted graph.
// Currency codes are opaque, case-sensitive identifiers. Neighbors are kept
// in insertion order and conversion resolves the first path discovered by
// depth-first search, not the shortest or best-rate path; downstream
// settlement math is defined relative to that exact resolved amount.
type Graph struct {
	adjacency map[string][]edge
}

func NewGraph() *Graph {
	return &Graph{adjacency: make(map[string][]edge)}
}

// AddRate inserts the edge from -> to at the given rate plus the reciprocal
// edge to -> from at 1/rate. A zero rate is rejected without mutating the
// graph so the caller can skip it and keep loading the remaining rates.
func (g *Graph) AddRate(from, to string, rate decimal.Decimal) error {
	if rate.IsZero() {
		return fmt.Errorf("rate from %s to %s must be non-zero", from, to)
	}

	reciprocal := decimal.NewFromInt(1).Div(rate)
	g.adjacency[from] = append(g.adjacency[from], edge{currency: to, rate: rate})
	g.adjacency[to] = append(g.adjacency[to], edge{currency: from, rate: reciprocal})
	return nil
}

var unreachable = decimal.NewFromInt(-1)

// Convert returns the equivalent of amount in the target currency, or
// (-1, false) when no chain of known rates connects the two currencies.
// Converting a currency to itself never touches the graph.
func (g *Graph) Convert(from, to string, amount decimal.Decimal) (decimal.Decimal, bool) {
	if from == to {
		return amount, true
	}
	if len(g.adjacency[from]) == 0 {
		return unreachable, false
	}

	visited := map[string]bool{from: true}
	return g.convertDFS(from, to, amount, visited)
}

func (g *Graph) convertDFS(from, to string, amount decimal.Decimal, visited map[string]bool) (decimal.Decimal, bool) {
	for _, e := range g.adjacency[from] {
		if e.currency == to {
			return amount.Mul(e.rate), true
		}
	}

	for _, e := range g.adjacency[from] {
		if visited[e.currency] {
			continue
		}
		visited[e.currency] = true
		if converted, ok := g.convertDFS(e.currency, to, amount.Mul(e.rate), visited); ok {
			return converted, true
		}
	}

	return unreachable, false
}
