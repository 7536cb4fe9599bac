package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/vovakirdan/tui-tetris/internal/storage"
)

type StoreSuite struct {
	suite.Suite
	store *Store
	ctx   context.Context
}

func TestStoreSuite(t *testing.T) {
	suite.Run(t, new(StoreSuite))
}

func (s *StoreSuite) SetupTest() {
	s.store = New()
	s.ctx = context.Background()
}

func (s *StoreSuite) save(player string, score, level int) storage.Entry {
	e, err := s.store.Save(s.ctx, storage.Entry{Player: player, Score: score, Level: level})
	s.Require().NoError(err)
	return e
}

func (s *StoreSuite) TestSaveAssignsIDs() {
	a := s.save("ann", 10, 1)
	b := s.save("", -3, 0)

	s.Equal(int64(1), a.ID)
	s.Equal(int64(2), b.ID)
	s.Equal(storage.DefaultPlayer, b.Player)
	s.Equal(0, b.Score)
	s.Equal(1, b.Level)
}

func (s *StoreSuite) TestTopOrderingAndLimit() {
	s.save("a", 100, 1)
	s.save("b", 300, 2)
	s.save("c", 100, 3)

	top, err := s.store.Top(s.ctx, 2)
	s.Require().NoError(err)
	s.Require().Len(top, 2)
	s.Equal("B", top[0].Player)
	s.Equal("C", top[1].Player)

	// Callers get a copy.
	top[0].Score = 0
	high, _ := s.store.HighScore(s.ctx)
	s.Equal(300, high)
}

func (s *StoreSuite) TestRank() {
	s.save("alice", 500, 2)
	s.save("bob", 900, 3)
	s.save("alice", 200, 1)

	rank, err := s.store.Rank(s.ctx, "Alice")
	s.Require().NoError(err)
	s.Equal(2, rank)

	rank, err = s.store.Rank(s.ctx, "nobody")
	s.Require().NoError(err)
	s.Equal(0, rank)
}

func (s *StoreSuite) TestCapacityDropsWorst() {
	s.store = New(WithCapacity(2))
	s.save("a", 100, 1)
	s.save("b", 300, 1)
	s.save("c", 200, 1)

	s.Equal(2, s.store.Len())
	rank, _ := s.store.Rank(s.ctx, "a")
	s.Equal(0, rank)
}

func (s *StoreSuite) TestClear() {
	s.save("a", 100, 1)
	s.Require().NoError(s.store.Clear(s.ctx))

	s.Equal(0, s.store.Len())
	high, err := s.store.HighScore(s.ctx)
	s.Require().NoError(err)
	s.Equal(0, high)
}

func (s *StoreSuite) TestConcurrentSaves() {
	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = s.store.Save(s.ctx, storage.Entry{Player: "p", Score: i, Level: 1})
		}()
	}
	wg.Wait()

	s.Equal(50, s.store.Len())
	top, _ := s.store.Top(s.ctx, 1)
	s.Equal(49, top[0].Score)
}
