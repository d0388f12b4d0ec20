package session

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/flooyd/gameserver/internal/model"
)

type RegistrySuite struct {
	suite.Suite
	registry *Registry
}

func TestRegistrySuite(t *testing.T) {
	suite.Run(t, new(RegistrySuite))
}

func (s *RegistrySuite) SetupTest() {
	s.registry = NewRegistry()
}

func (s *RegistrySuite) TestAddAndFind() {
	s.registry.Add(model.Session{ID: "p1", Name: "alice", X: 1, Y: 2})

	sess, ok := s.registry.Find("p1")
	s.Require().True(ok)
	s.Equal("alice", sess.Name)
	s.Equal(1.0, sess.X)
	s.Equal(2.0, sess.Y)
}

func (s *RegistrySuite) TestFindUnknownID() {
	_, ok := s.registry.Find("missing")
	s.False(ok)
}

func (s *RegistrySuite) TestRemove() {
	s.registry.Add(model.Session{ID: "p1", Name: "alice"})
	s.registry.Remove("p1")

	_, ok := s.registry.Find("p1")
	s.False(ok)
	s.Equal(0, s.registry.Len())
}

func (s *RegistrySuite) TestRemoveUnknownIDIsNoop() {
	s.registry.Add(model.Session{ID: "p1", Name: "alice"})
	s.registry.Remove("missing")
	s.Equal(1, s.registry.Len())
}

func (s *RegistrySuite) TestUpdatePosition() {
	s.registry.Add(model.Session{ID: "p1", Name: "alice"})

	ok := s.registry.UpdatePosition("p1", 10, 20)
	s.True(ok)

	sess, _ := s.registry.Find("p1")
	s.Equal(10.0, sess.X)
	s.Equal(20.0, sess.Y)
}

func (s *RegistrySuite) TestUpdatePositionLastWriteWins() {
	s.registry.Add(model.Session{ID: "p1", Name: "alice"})

	s.registry.UpdatePosition("p1", 1, 1)
	s.registry.UpdatePosition("p1", 2, 2)
	s.registry.UpdatePosition("p1", 3, 4)

	sess, _ := s.registry.Find("p1")
	s.Equal(3.0, sess.X)
	s.Equal(4.0, sess.Y)
}

func (s *RegistrySuite) TestUpdatePositionUnknownIDIsIgnored() {
	ok := s.registry.UpdatePosition("missing", 10, 20)
	s.False(ok)
	s.Equal(0, s.registry.Len())
}

func (s *RegistrySuite) TestAllReturnsSnapshot() {
	s.registry.Add(model.Session{ID: "p1", Name: "alice"})
	s.registry.Add(model.Session{ID: "p2", Name: "bob"})

	all := s.registry.All()
	s.Len(all, 2)

	// Mutating the snapshot must not touch the registry
	all[0].X = 999
	sess, _ := s.registry.Find(all[0].ID)
	s.Equal(0.0, sess.X)
}

func (s *RegistrySuite) TestFindReturnsCopy() {
	s.registry.Add(model.Session{ID: "p1", Name: "alice"})

	sess, _ := s.registry.Find("p1")
	sess.X = 999

	again, _ := s.registry.Find("p1")
	s.Equal(0.0, again.X)
}
