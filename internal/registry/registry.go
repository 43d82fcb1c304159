package registry

import (
	"sort"
	"sync"

	"github.com/teamseven/codeconnect/internal/domain"
)

// room holds the registry-side state of one collaboration room: who is in it
// and the output of the most recently completed execution. The shared buffer
// itself is never stored server-side; it lives only in transit and in each
// client's local editor.
type room struct {
	participants map[string]struct{}
	lastOutput   string
	hasOutput    bool
}

// Registry is the process-wide table of rooms and the single source of truth
// for membership and cached output. Rooms are created lazily on first use and
// never evicted, so an empty room keeps its cached output for future joiners.
// Every lookup on a missing room degrades to a safe no-op: membership changes
// legitimately race with concurrent disconnects.
type Registry struct {
	mu    sync.RWMutex
	rooms map[string]*room
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{rooms: make(map[string]*room)}
}

// ensure returns the room for id, creating it if absent. Callers hold mu.
func (r *Registry) ensure(id string) *room {
	rm, ok := r.rooms[id]
	if !ok {
		rm = &room{participants: make(map[string]struct{})}
		r.rooms[id] = rm
	}
	return rm
}

// AddParticipant inserts name into the room's participant set, creating the
// room if needed, and returns the resulting roster. Joining twice under the
// same name collapses to a single entry.
func (r *Registry) AddParticipant(roomID, name string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	rm := r.ensure(roomID)
	rm.participants[name] = struct{}{}
	return rosterLocked(rm)
}

// RemoveParticipant removes name from the room and returns the resulting
// roster. Removing from an unknown room or an absent name is a no-op; the
// room itself is retained even when its last participant leaves.
func (r *Registry) RemoveParticipant(roomID, name string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	rm, ok := r.rooms[roomID]
	if !ok {
		return nil
	}
	delete(rm.participants, name)
	return rosterLocked(rm)
}

// Participants returns the room's roster, or nil for an unknown room.
func (r *Registry) Participants(roomID string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rm, ok := r.rooms[roomID]
	if !ok {
		return nil
	}
	return rosterLocked(rm)
}

// Has reports whether roomID exists in the registry.
func (r *Registry) Has(roomID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.rooms[roomID]
	return ok
}

// SetOutput overwrites the room's cached execution output. No-op if the room
// no longer exists.
func (r *Registry) SetOutput(roomID, output string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rm, ok := r.rooms[roomID]
	if !ok {
		return
	}
	rm.lastOutput = output
	rm.hasOutput = true
}

// LastOutput returns the room's cached output. The second result is false if
// the room is unknown or nothing has executed in it yet.
func (r *Registry) LastOutput(roomID string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rm, ok := r.rooms[roomID]
	if !ok || !rm.hasOutput {
		return "", false
	}
	return rm.lastOutput, true
}

// Rooms returns a summary of every room, including empty ones.
func (r *Registry) Rooms() []domain.Room {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rooms := make([]domain.Room, 0, len(r.rooms))
	for id, rm := range r.rooms {
		rooms = append(rooms, domain.Room{
			ID:               id,
			ParticipantCount: len(rm.participants),
			HasOutput:        rm.hasOutput,
		})
	}
	sort.Slice(rooms, func(i, j int) bool { return rooms[i].ID < rooms[j].ID })
	return rooms
}

// Info returns a summary of one room, or nil if not found.
func (r *Registry) Info(roomID string) *domain.Room {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rm, ok := r.rooms[roomID]
	if !ok {
		return nil
	}
	return &domain.Room{
		ID:               roomID,
		ParticipantCount: len(rm.participants),
		HasOutput:        rm.hasOutput,
	}
}

// rosterLocked builds a sorted name list. Callers hold mu.
func rosterLocked(rm *room) []string {
	users := make([]string, 0, len(rm.participants))
	for name := range rm.participants {
		users = append(users, name)
	}
	sort.Strings(users)
	return users
}
