package quantum

import (
	"testing"

	"github.com/lgbarn/quantum-chess-go/internal/chess"
)

func BenchmarkSplitMeasure(b *testing.B) {
	a3, c3 := chess.MustSquare("a3"), chess.MustSquare("c3")
	for i := 0; i < b.N; i++ {
		g := NewGame(WithSeed(int64(i + 1)))
		if _, err := g.Split("wNb1", a3, c3); err != nil {
			b.Fatal(err)
		}
		if _, err := g.Measure("wNb1"); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkCheckStatus(b *testing.B) {
	g, err := NewGameFromFEN("4k3/8/8/8/8/8/8/R3K3 b - - 0 1")
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		g.CheckStatus(chess.Black)
	}
}

func BenchmarkOccupancy(b *testing.B) {
	g := NewGame()
	if _, err := g.Split("wNb1", chess.MustSquare("a3"), chess.MustSquare("c3")); err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		g.Occupancy()
	}
}
