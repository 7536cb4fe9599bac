package core

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// queueSource returns queued values in order and n-1 once the queue is empty.
// Answering n-1 leaves the Fisher-Yates shuffle a no-op.
type queueSource struct {
	values []int
}

func (q *queueSource) Intn(n int) int {
	if len(q.values) == 0 {
		return n - 1
	}
	v := q.values[0]
	q.values = q.values[1:]
	return v % n
}

func TestNewBagIsPermutation(t *testing.T) {
	for seed := int64(0); seed < 50; seed++ {
		bag := NewBag(rand.New(rand.NewSource(seed)))
		require.Len(t, bag, 7)
		assert.ElementsMatch(t, AllPieceTypes[:], []PieceType(bag), "seed %d", seed)
	}
}

func TestNewBagIdentityShuffle(t *testing.T) {
	bag := NewBag(&queueSource{})
	assert.Equal(t, Bag{PieceI, PieceO, PieceT, PieceS, PieceZ, PieceJ, PieceL}, bag)
}

func TestNewBagSwapsWithDrawnIndex(t *testing.T) {
	// First draw is for i=6: swap positions 6 and 0.
	bag := NewBag(&queueSource{values: []int{0}})
	assert.Equal(t, PieceL, bag[0])
	assert.Equal(t, PieceI, bag[6])
}

func TestDrawFromEmptyRefills(t *testing.T) {
	piece, rest := Draw(nil, &queueSource{})
	assert.Equal(t, PieceI, piece)
	assert.Len(t, rest, 6)
}

func TestDrawDoesNotMutateInput(t *testing.T) {
	bag := Bag{PieceT, PieceS, PieceZ}
	piece, rest := Draw(bag, &queueSource{})

	assert.Equal(t, PieceT, piece)
	assert.Equal(t, Bag{PieceS, PieceZ}, rest)
	assert.Equal(t, Bag{PieceT, PieceS, PieceZ}, bag)

	rest[0] = PieceO
	assert.Equal(t, PieceS, bag[1], "result must not alias the input")
}

func TestBagFairness(t *testing.T) {
	src := rand.New(rand.NewSource(7))
	var bag Bag
	for cycle := range 5 {
		var drawn []PieceType
		for range 7 {
			var p PieceType
			p, bag = Draw(bag, src)
			drawn = append(drawn, p)
		}
		assert.ElementsMatch(t, AllPieceTypes[:], drawn, "cycle %d", cycle)
		assert.Empty(t, bag)
	}
}

func TestSpawn(t *testing.T) {
	tests := []struct {
		piece PieceType
		x     int
	}{
		{PieceI, 3},
		{PieceO, 4},
		{PieceT, 4},
		{PieceS, 4},
		{PieceZ, 4},
		{PieceJ, 4},
		{PieceL, 4},
	}

	for _, tt := range tests {
		t.Run(tt.piece.String(), func(t *testing.T) {
			p := Spawn(tt.piece)
			if p.X != tt.x || p.Y != 0 || p.Rotation != 0 || p.Type != tt.piece {
				t.Errorf("Spawn(%v) = %+v, expected X=%d Y=0 Rotation=0", tt.piece, p, tt.x)
			}
			if Collides(p, NewBoard()) {
				t.Errorf("Spawn(%v) collides on an empty board", tt.piece)
			}
		})
	}
}
