package hashing

import (
	"math"
	"sync"

	"github.com/lgbarn/quantum-chess-go/internal/chess"
	"github.com/lgbarn/quantum-chess-go/internal/quantum"
)

const numSquares = chess.BoardSize * chess.BoardSize

var (
	zobristOnce sync.Once

	zobristPieces [2][chess.NumPieceValues][numSquares]uint64
	zobristSide   uint64
)

// splitmix64 step; fixed seed so hashes are stable across runs.
func initZobrist() {
	zobristOnce.Do(func() {
		seed := uint64(0x9E3779B97F4A7C15)
		next := func() uint64 {
			seed += 0x9E3779B97F4A7C15
			z := seed
			z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
			z = (z ^ (z >> 27)) * 0x94D049BB133111EB
			return z ^ (z >> 31)
		}
		for colour := 0; colour < 2; colour++ {
			for kind := chess.Pawn; kind <= chess.King; kind++ {
				for sq := 0; sq < numSquares; sq++ {
					zobristPieces[colour][kind][sq] = next()
				}
			}
		}
		zobristSide = next()
	})
}

// mix scrambles a weight into a piece-square key so that the same square
// held with different probabilities hashes differently.
func mix(key uint64, weight float64) uint64 {
	w := uint64(math.Round(weight * 1e9))
	z := key ^ (w * 0xBF58476D1CE4E5B9)
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}

// GenerateZobristHash hashes the classical placement and side to move.
func GenerateZobristHash(board *chess.Board) uint64 {
	initZobrist()
	var hash uint64
	for i := 0; i < numSquares; i++ {
		p := board.Get(chess.SquareFromIndex(i))
		if !chess.IsPiece(p) {
			continue
		}
		hash ^= zobristPieces[chess.ExtractColour(p)][chess.ExtractPiece(p)][i]
	}
	if board.ToMove == chess.White {
		hash ^= zobristSide
	}
	return hash
}

// StateHash hashes every branch of every piece with its weight, plus the
// side to move. Piece ids and labels do not contribute, so two games that
// reach the same distribution by different splits hash alike.
func StateHash(pieces []quantum.QuantumPiece, toMove chess.Colour) uint64 {
	initZobrist()
	var hash uint64
	for _, p := range pieces {
		for _, b := range p.Branches {
			key := zobristPieces[p.Owner][p.Kind][b.Square.Index()]
			if p.Definite() {
				hash ^= key
			} else {
				hash ^= mix(key, b.Weight)
			}
		}
	}
	if toMove == chess.White {
		hash ^= zobristSide
	}
	return hash
}

// LedgerHash hashes the entanglement records in order.
func LedgerHash(records []quantum.Record) uint64 {
	var hash uint64
	multiplier := uint64(31)
	for _, rec := range records {
		for _, c := range rec.String() {
			hash = hash*multiplier + uint64(c)
		}
		hash = hash*multiplier + '|'
	}
	return hash
}

// HashCode is a cheap positional checksum used as a secondary comparison.
type HashCode uint64

// WeakHash sums piece-square products of the classical placement.
func WeakHash(board *chess.Board) HashCode {
	var code HashCode
	for i := 0; i < numSquares; i++ {
		p := board.Get(chess.SquareFromIndex(i))
		if chess.IsPiece(p) {
			code += HashCode(p) * HashCode(i+1) * 0x9E3779B1
		}
	}
	return code
}
