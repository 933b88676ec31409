// Package session manages connected clients: their auth state, outbound
// message queue, and the list structure the engine iterates every tick to
// fan out deltas. Ported from the teacher's server.Client/ClientData/
// ClientList doubly-linked list.
package session

import "github.com/brineforge/arena-server/internal/world"

// Client is an actor the Hub (internal/engine) manages.
type Client interface {
	// Data allows the Client to be added to a double-linked list.
	Data() *ClientData

	// Send enqueues an outbound message for delivery on the client's own
	// write goroutine.
	Send(msg interface{})

	// Close releases the client's transport resources. Always called by
	// the hub goroutine, never by the client itself.
	Close()
}

// ClientData is the data every Client must carry, mirroring the teacher's
// ClientData but swapping its single Player for the banner/auth/mode triple
// since a connection here may be a spectator with no banner at all.
type ClientData struct {
	Auth   Auth
	Banner world.BannerID
	Mode   ClientMode

	// Superuser mirrors god auth onto placement/economy checks.
	Superuser bool

	// CastleID is the one castle this connection placed, 0 before placement.
	CastleID world.EntityID

	// Ready is the Waiting-stage ready flag (ReadyState frames).
	Ready bool

	// KillSelf marks the session for teardown at the end of the current
	// command dispatch (spec §7's ProtocolViolation policy).
	KillSelf bool

	Previous Client
	Next     Client
}

// ClientList is a doubly-linked list of Clients, iterable as:
//
//	for c := list.First; c != nil; c = c.Data().Next {}
//
// or, to remove every iterated item:
//
//	for c := list.First; c != nil; c = list.Remove(c) {}
type ClientList struct {
	First Client
	Last  Client
	Len   int
}

func (list *ClientList) Add(client Client) {
	data := client.Data()
	if data.Previous != nil || data.Next != nil {
		panic("already added")
	}

	if list.First == nil {
		list.First = client
	} else if list.Last == nil {
		panic("invalid state")
	} else {
		list.Last.Data().Next = client
		data.Previous = list.Last
	}

	list.Last = client
	list.Len++
}

func (list *ClientList) Remove(client Client) (next Client) {
	data := client.Data()

	if data.Previous != nil {
		data.Previous.Data().Next = data.Next
	} else if list.First == client {
		list.First = data.Next
	} else {
		panic("already removed")
	}

	if data.Next != nil {
		data.Next.Data().Previous = data.Previous
	} else if list.Last == client {
		list.Last = data.Previous
	} else {
		panic("already removed")
	}

	list.Len--
	next = data.Next
	data.Next = nil
	data.Previous = nil
	return
}

// Broadcast sends msg to every client currently in the list.
func (list *ClientList) Broadcast(msg interface{}) {
	for c := list.First; c != nil; c = c.Data().Next {
		c.Send(msg)
	}
}
