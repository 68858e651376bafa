package models

import (
	"errors"
	"fmt"
)

var (
	ErrIncorrectField = errors.New("form item must be name=value")
	ErrDuplicatePair  = errors.New("connection pair listed in more than one list")
)

// Connection is one record of the friend-request workflow.
type Connection struct {
	ID     string `json:"_id,omitempty"`
	From   string `json:"from"`
	To     string `json:"to"`
	Status string `json:"status,omitempty"`
}

// Pair is the unordered identity of the two parties of a connection.
type Pair struct {
	A, B string
}

// Pair returns the parties ordered so that {u1,u2} and {u2,u1} compare equal.
func (c Connection) Pair() Pair {
	if c.From <= c.To {
		return Pair{A: c.From, B: c.To}
	}
	return Pair{A: c.To, B: c.From}
}

// Notifications is the three-list connection snapshot returned by the server.
//   - Friends: accepted connections.
//   - Accept:  requests awaiting this user's decision.
//   - Request: requests this user sent, awaiting the other party.
type Notifications struct {
	Friends []Connection `json:"friends"`
	Accept  []Connection `json:"accept"`
	Request []Connection `json:"request"`
}

// EmptyNotifications returns a snapshot with three empty, non-nil lists.
func EmptyNotifications() Notifications {
	return Notifications{
		Friends: []Connection{},
		Accept:  []Connection{},
		Request: []Connection{},
	}
}

// Clone returns a deep copy with nil lists normalized to empty ones.
func (n Notifications) Clone() Notifications {
	return Notifications{
		Friends: append([]Connection{}, n.Friends...),
		Accept:  append([]Connection{}, n.Accept...),
		Request: append([]Connection{}, n.Request...),
	}
}

// Validate reports ErrDuplicatePair when a pair appears in more than one
// of the three lists. Repeats inside a single list are left to the server.
func (n Notifications) Validate() error {
	seen := make(map[Pair]string)
	lists := []struct {
		name  string
		items []Connection
	}{
		{"friends", n.Friends},
		{"accept", n.Accept},
		{"request", n.Request},
	}
	for _, l := range lists {
		for _, c := range l.items {
			p := c.Pair()
			if prev, ok := seen[p]; ok && prev != l.name {
				return fmt.Errorf("%w: %s/%s in %s and %s", ErrDuplicatePair, p.A, p.B, prev, l.name)
			}
			seen[p] = l.name
		}
	}
	return nil
}

// PairStatus is the client-side view of a connection pair's lifecycle.
type PairStatus string

const (
	PairNone      PairStatus = "none"
	PairRequested PairStatus = "requested"
	PairPending   PairStatus = "pending"
	PairFriends   PairStatus = "friends"
)

// StatusOf locates the pair {me, other} in the snapshot. PairRequested means
// me is waiting for other; PairPending means other is waiting for me.
func (n Notifications) StatusOf(me, other string) PairStatus {
	p := Connection{From: me, To: other}.Pair()
	for _, c := range n.Friends {
		if c.Pair() == p {
			return PairFriends
		}
	}
	for _, c := range n.Accept {
		if c.Pair() == p {
			return PairPending
		}
	}
	for _, c := range n.Request {
		if c.Pair() == p {
			return PairRequested
		}
	}
	return PairNone
}

func (c Connection) String() string {
	s := c.From + " -> " + c.To
	if c.Status != "" {
		s += " (" + c.Status + ")"
	}
	return s
}
