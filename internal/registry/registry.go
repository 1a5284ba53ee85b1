// Package registry is the session directory (spec.md component D): every
// live room, keyed and reverse-keyed so a socket or player id resolves to
// its room in O(1). It is the same shape of map-of-maps as
// backend/hub.go's Hub.clients/users/games/lobbies, but pulled out of the
// Hub into its own package because this server's Runtime composes it with
// the orchestrator rather than inlining it into one giant struct.
package registry

import (
	"sync"

	"github.com/korjavin/gomoku-arena/internal/match"
)

// Registry holds every live room plus the reverse lookups needed to
// resolve a player id or socket id back to its room. All access is
// synchronized by a single mutex: rooms are written by the Runtime's
// single-goroutine event loop, socket bindings are written by the socket
// hub's connection goroutines, and reads (e.g. from HTTP health/status
// handlers) happen from yet other goroutines.
type Registry struct {
	mu sync.RWMutex

	rooms        map[string]*match.Room
	playerToRoom map[string]string
	socketToRoom map[string]string
	socketToUser map[string]string
}

// New constructs an empty Registry.
func New() *Registry {
	return &Registry{
		rooms:        make(map[string]*match.Room),
		playerToRoom: make(map[string]string),
		socketToRoom: make(map[string]string),
		socketToUser: make(map[string]string),
	}
}

// Put inserts or replaces a room and (re)indexes every player it holds.
func (r *Registry) Put(room *match.Room) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rooms[room.ID] = room
	for _, p := range room.Game.Players {
		r.playerToRoom[p.ID] = room.ID
	}
}

// Room looks up a room by id.
func (r *Registry) Room(id string) (*match.Room, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	room, ok := r.rooms[id]
	return room, ok
}

// RoomExists reports whether a room code is already in use — the
// collision check match.GenerateUniqueRoomCode needs.
func (r *Registry) RoomExists(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.rooms[id]
	return ok
}

// RoomForPlayer resolves a player id to its room.
func (r *Registry) RoomForPlayer(playerID string) (*match.Room, bool) {
	r.mu.RLock()
	roomID, ok := r.playerToRoom[playerID]
	r.mu.RUnlock()
	if !ok {
		return nil, false
	}
	return r.Room(roomID)
}

// RoomForSocket resolves a socket id to its room.
func (r *Registry) RoomForSocket(socketID string) (*match.Room, bool) {
	r.mu.RLock()
	roomID, ok := r.socketToRoom[socketID]
	r.mu.RUnlock()
	if !ok {
		return nil, false
	}
	return r.Room(roomID)
}

// BindSocket associates a socket id (and the user id it authenticates as)
// with a room, used when a websocket connection attaches to a player
// already seated via HTTP quick-start.
func (r *Registry) BindSocket(socketID, userID, roomID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.socketToRoom[socketID] = roomID
	r.socketToUser[socketID] = userID
}

// UnbindSocket removes a socket's bindings without touching the room or
// player records — the player may reconnect with a new socket id later.
func (r *Registry) UnbindSocket(socketID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.socketToRoom, socketID)
	delete(r.socketToUser, socketID)
}

// UnindexPlayer removes a single player's reverse lookup without touching
// the room or any other player in it, for callers that drop one seat from
// a room without removing the room as a whole.
func (r *Registry) UnindexPlayer(playerID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.playerToRoom, playerID)
}

// UserForSocket resolves a socket id to the player id it authenticates.
func (r *Registry) UserForSocket(socketID string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	userID, ok := r.socketToUser[socketID]
	return userID, ok
}

// Remove deletes a room and every reverse-lookup entry pointing at it.
func (r *Registry) Remove(roomID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	room, ok := r.rooms[roomID]
	if !ok {
		return
	}
	for _, p := range room.Game.Players {
		if r.playerToRoom[p.ID] == roomID {
			delete(r.playerToRoom, p.ID)
		}
	}
	for sock, rid := range r.socketToRoom {
		if rid == roomID {
			delete(r.socketToRoom, sock)
			delete(r.socketToUser, sock)
		}
	}
	delete(r.rooms, roomID)
}

// Snapshot returns every currently-registered room, for the reaper sweep.
// The slice is a shallow copy of the
// pointers, safe to range over without holding the lock.
func (r *Registry) Snapshot() []*match.Room {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*match.Room, 0, len(r.rooms))
	for _, room := range r.rooms {
		out = append(out, room)
	}
	return out
}

// Len reports the live room count.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rooms)
}
