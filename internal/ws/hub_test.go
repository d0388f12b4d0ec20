package ws

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/flooyd/gameserver/internal/testutil"
)

type HubSuite struct {
	suite.Suite
	hub *Hub
}

func TestHubSuite(t *testing.T) {
	suite.Run(t, new(HubSuite))
}

func (s *HubSuite) SetupTest() {
	s.hub = NewHub(testutil.NopLogger())
	go s.hub.Run()
}

func (s *HubSuite) TearDownTest() {
	s.hub.Close()
}

func (s *HubSuite) newClient(id string) *Client {
	c := &Client{
		id:          id,
		hub:         s.hub,
		send:        make(chan []byte, sendBufferSize),
		connectedAt: time.Now(),
	}
	s.hub.Register(c)
	s.Require().Eventually(func() bool {
		s.hub.mu.RLock()
		defer s.hub.mu.RUnlock()
		return s.hub.clients[c]
	}, time.Second, time.Millisecond)
	return c
}

func (s *HubSuite) receive(c *Client) Envelope {
	select {
	case msg := <-c.send:
		var env Envelope
		s.Require().NoError(json.Unmarshal(msg, &env))
		return env
	case <-time.After(time.Second):
		s.Require().FailNow("no message received")
		return Envelope{}
	}
}

func (s *HubSuite) assertNoMessage(c *Client) {
	select {
	case msg := <-c.send:
		s.Require().FailNowf("unexpected message", "got %s", msg)
	case <-time.After(50 * time.Millisecond):
	}
}

func (s *HubSuite) TestSendToReachesOnlyTarget() {
	a := s.newClient("a")
	b := s.newClient("b")

	s.hub.SendTo(a, "Registered", nil)

	env := s.receive(a)
	s.Equal("Registered", env.Event)
	s.Empty(env.Data)
	s.assertNoMessage(b)
}

func (s *HubSuite) TestBroadcastOthersExcludesOrigin() {
	a := s.newClient("a")
	b := s.newClient("b")
	c := s.newClient("c")

	s.hub.BroadcastOthers(a, "OtherPlayerMove", map[string]float64{"x": 1})

	s.Equal("OtherPlayerMove", s.receive(b).Event)
	s.Equal("OtherPlayerMove", s.receive(c).Event)
	s.assertNoMessage(a)
}

func (s *HubSuite) TestBroadcastAllIncludesEveryoneWithIdenticalFrames() {
	a := s.newClient("a")
	b := s.newClient("b")

	s.hub.BroadcastAll("TodoCreated", map[string]string{"id": "t1", "author": "alice"})

	var frameA, frameB []byte
	select {
	case frameA = <-a.send:
	case <-time.After(time.Second):
		s.Require().FailNow("a received nothing")
	}
	select {
	case frameB = <-b.send:
	case <-time.After(time.Second):
		s.Require().FailNow("b received nothing")
	}

	// The actor and every other client converge on the same bytes
	s.Equal(frameA, frameB)
}

func (s *HubSuite) TestSendToUnregisteredClientIsDropped() {
	a := s.newClient("a")
	s.hub.Unregister(a)
	s.Require().Eventually(func() bool {
		return s.hub.ClientCount() == 0
	}, time.Second, time.Millisecond)

	// Must not panic on the closed send channel
	s.hub.SendTo(a, "Registered", nil)
}

func (s *HubSuite) TestFullBufferDropsInsteadOfBlocking() {
	a := s.newClient("a")
	slow := s.newClient("slow")
	// Fill the slow client's buffer
	for i := 0; i < sendBufferSize; i++ {
		s.hub.SendTo(slow, "Todos", nil)
	}

	done := make(chan struct{})
	go func() {
		s.hub.BroadcastAll("TodoCreated", nil)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		s.Require().FailNow("broadcast blocked on a slow client")
	}
	s.Equal("TodoCreated", s.receive(a).Event)
}
