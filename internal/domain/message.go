package domain

import "encoding/json"

// Inbound event names.
const (
	EvtJoin           = "join"
	EvtCodeChange     = "codeChange"
	EvtTyping         = "typing"
	EvtLanguageChange = "languageChange"
	EvtLeaveRoom      = "leaveRoom"
	EvtCompileCode    = "compileCode"
)

// Outbound event names.
const (
	EvtUserJoined     = "userJoined"
	EvtCodeUpdate     = "codeUpdate"
	EvtUserTyping     = "userTyping"
	EvtLanguageUpdate = "languageUpdate"
	EvtCodeResponse   = "codeResponse"
	EvtError          = "error"
)

// Message is an inbound client event. Fields are populated per event.
type Message struct {
	Event    string `json:"event"`
	RoomID   string `json:"roomId,omitempty"`
	UserName string `json:"userName,omitempty"`
	Code     string `json:"code,omitempty"`
	Language string `json:"language,omitempty"`
	Version  string `json:"version,omitempty"`
}

// Members carries a room's full membership roster. The full roster is re-sent
// on every join and leave rather than a delta.
type Members struct {
	Event string   `json:"event"`
	Users []string `json:"users"`
}

// CodeUpdate carries the latest buffer contents to everyone but the editor.
type CodeUpdate struct {
	Event string `json:"event"`
	Code  string `json:"code"`
}

// Typing names a participant currently typing.
type Typing struct {
	Event    string `json:"event"`
	UserName string `json:"userName"`
}

// LanguageUpdate announces the room's selected language.
type LanguageUpdate struct {
	Event    string `json:"event"`
	Language string `json:"language"`
}

// RunResult mirrors the run section of the execution provider's response.
type RunResult struct {
	Stdout string `json:"stdout,omitempty"`
	Stderr string `json:"stderr,omitempty"`
	Output string `json:"output"`
	Code   int    `json:"code,omitempty"`
}

// RunResponse is the codeResponse frame fanned out after an execution, and the
// cached-output replay sent to a late joiner.
type RunResponse struct {
	Event    string    `json:"event"`
	Language string    `json:"language,omitempty"`
	Version  string    `json:"version,omitempty"`
	Run      RunResult `json:"run"`
}

// ErrorMessage reports a protocol error to the client.
type ErrorMessage struct {
	Event   string `json:"event"`
	Message string `json:"message"`
}

// Encode serializes a value to JSON bytes.
func Encode(v any) ([]byte, error) {
	return json.Marshal(v)
}

// DecodeMessage deserializes JSON bytes into a Message.
func DecodeMessage(data []byte) (Message, error) {
	var m Message
	err := json.Unmarshal(data, &m)
	return m, err
}
