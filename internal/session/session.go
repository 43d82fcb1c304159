package session

import (
	"context"
	"log"

	"github.com/teamseven/codeconnect/internal/domain"
	"github.com/teamseven/codeconnect/internal/hub"
	"github.com/teamseven/codeconnect/internal/registry"
)

// Runner dispatches a code execution whose result comes back to the room via
// broadcast. Run has no return value: failures surface as error-shaped
// codeResponse frames, never as session errors.
type Runner interface {
	Run(ctx context.Context, roomID, code, language, version string)
}

// Session is the server-side state machine for one transport connection:
// Idle (no room) or Joined (attached to exactly one room). All handlers are
// invoked from the connection's single read loop, so the state fields need no
// locking; cross-session state lives in the registry and hub, which guard
// themselves.
type Session struct {
	id     string
	reg    *registry.Registry
	hub    *hub.Hub
	runner Runner
	client hub.Client

	currentRoom string
	currentName string
}

// New creates an Idle session for the given transport client. id is used only
// for logging.
func New(id string, reg *registry.Registry, h *hub.Hub, runner Runner, client hub.Client) *Session {
	return &Session{id: id, reg: reg, hub: h, runner: runner, client: client}
}

// Room returns the id of the room this session is joined to, or "".
func (s *Session) Room() string { return s.currentRoom }

// Name returns the display name this session last joined under, or "".
func (s *Session) Name() string { return s.currentName }

// HandleJoin attaches the session to roomID under name. A join while already
// joined supersedes the previous join: the leave side effects for the old
// room run first, as a single transition. After joining, the new room's full
// roster is broadcast, and if the room has cached execution output it is
// replayed to this connection only, so a late joiner sees the last run
// without re-triggering execution for everyone.
func (s *Session) HandleJoin(roomID, name string) {
	if roomID == "" || name == "" {
		return
	}
	if s.currentRoom != "" {
		s.leave()
	}

	s.currentRoom = roomID
	s.currentName = name
	s.hub.Subscribe(roomID, s.client)
	users := s.reg.AddParticipant(roomID, name)
	s.broadcastMembers(roomID, users)
	log.Printf("session %s: %s joined room %s", s.id, name, roomID)

	if output, ok := s.reg.LastOutput(roomID); ok {
		resp := domain.RunResponse{
			Event: domain.EvtCodeResponse,
			Run:   domain.RunResult{Output: output},
		}
		if data, err := domain.Encode(resp); err == nil {
			s.client.Send(data)
		}
	}
}

// HandleCodeChange relays the new buffer contents to every other session in
// the room. The sender already has the authoritative local copy and is
// excluded. Ignored while Idle.
func (s *Session) HandleCodeChange(code string) {
	if s.currentRoom == "" {
		return
	}
	msg := domain.CodeUpdate{Event: domain.EvtCodeUpdate, Code: code}
	if data, err := domain.Encode(msg); err == nil {
		s.hub.BroadcastExcept(s.currentRoom, data, s.client)
	}
}

// HandleTyping relays a typing notification to every other session in the
// room. Purely transient; nothing is retained. Ignored while Idle.
func (s *Session) HandleTyping() {
	if s.currentRoom == "" {
		return
	}
	msg := domain.Typing{Event: domain.EvtUserTyping, UserName: s.currentName}
	if data, err := domain.Encode(msg); err == nil {
		s.hub.BroadcastExcept(s.currentRoom, data, s.client)
	}
}

// HandleLanguageChange broadcasts the room's new language to everyone
// including the sender, so all views stay in lockstep. Ignored while Idle.
func (s *Session) HandleLanguageChange(language string) {
	if s.currentRoom == "" {
		return
	}
	msg := domain.LanguageUpdate{Event: domain.EvtLanguageUpdate, Language: language}
	if data, err := domain.Encode(msg); err == nil {
		s.hub.Broadcast(s.currentRoom, data)
	}
}

// HandleCompile delegates an execution request for the current room. The
// delegate runs on its own goroutine: the external call is the only
// suspension point in the core and must not stall the read loop. Ignored
// while Idle.
func (s *Session) HandleCompile(code, language, version string) {
	if s.currentRoom == "" {
		return
	}
	roomID := s.currentRoom
	go s.runner.Run(context.Background(), roomID, code, language, version)
}

// HandleLeave detaches the session from its room and returns it to Idle.
// Ignored while Idle.
func (s *Session) HandleLeave() {
	if s.currentRoom == "" {
		return
	}
	s.leave()
}

// Disconnect runs the leave transition if Joined. The caller discards the
// session afterwards; leaveRoom and disconnect share the same cleanup.
func (s *Session) Disconnect() {
	if s.currentRoom != "" {
		s.leave()
	}
	log.Printf("session %s: disconnected", s.id)
}

// leave removes the session's participant entry, unsubscribes the transport,
// and broadcasts the updated roster to the remaining members. The broadcast
// fires even when the room ends up empty; the room itself is retained by the
// registry.
func (s *Session) leave() {
	roomID, name := s.currentRoom, s.currentName
	s.currentRoom, s.currentName = "", ""

	users := s.reg.RemoveParticipant(roomID, name)
	s.hub.Unsubscribe(roomID, s.client)
	s.broadcastMembers(roomID, users)
	log.Printf("session %s: %s left room %s", s.id, name, roomID)
}

func (s *Session) broadcastMembers(roomID string, users []string) {
	if users == nil {
		users = []string{}
	}
	msg := domain.Members{Event: domain.EvtUserJoined, Users: users}
	if data, err := domain.Encode(msg); err == nil {
		s.hub.Broadcast(roomID, data)
	}
}
