package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/teamseven/codeconnect/internal/domain"
	"github.com/teamseven/codeconnect/internal/hub"
	"github.com/teamseven/codeconnect/internal/registry"
	"github.com/teamseven/codeconnect/internal/runner"
	"github.com/teamseven/codeconnect/internal/testutil"
)

func TestHealth(t *testing.T) {
	t.Parallel()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	Health()(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	var body map[string]string
	json.NewDecoder(w.Body).Decode(&body)
	if body["status"] != "ok" {
		t.Errorf("expected ok, got %s", body["status"])
	}
}

func TestListRooms(t *testing.T) {
	t.Parallel()
	reg := registry.New()
	reg.AddParticipant("abc123", "alice")

	req := httptest.NewRequest(http.MethodGet, "/api/rooms", nil)
	w := httptest.NewRecorder()
	ListRooms(reg)(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	var rooms []domain.Room
	json.NewDecoder(w.Body).Decode(&rooms)
	if len(rooms) != 1 || rooms[0].ID != "abc123" || rooms[0].ParticipantCount != 1 {
		t.Errorf("unexpected rooms: %+v", rooms)
	}
}

func TestRoomInfoNotFound(t *testing.T) {
	t.Parallel()
	reg := registry.New()

	req := httptest.NewRequest(http.MethodGet, "/api/rooms/nonexistent", nil)
	w := httptest.NewRecorder()
	RoomInfo(reg, testutil.NewMockStore(), 20)(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestRoomInfoFound(t *testing.T) {
	t.Parallel()
	reg := registry.New()
	reg.AddParticipant("abc123", "alice")
	reg.SetOutput("abc123", "hi\n")

	req := httptest.NewRequest(http.MethodGet, "/api/rooms/abc123", nil)
	w := httptest.NewRecorder()
	RoomInfo(reg, testutil.NewMockStore(), 20)(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var room domain.Room
	json.NewDecoder(w.Body).Decode(&room)
	if room.ID != "abc123" || room.ParticipantCount != 1 || !room.HasOutput {
		t.Errorf("unexpected room: %+v", room)
	}
}

func TestRoomRuns(t *testing.T) {
	t.Parallel()
	reg := registry.New()
	reg.AddParticipant("abc123", "alice")
	s := testutil.NewMockStore()
	s.Save(domain.RunRecord{Room: "abc123", Language: "python", Version: "3.10.0", Output: "hi\n", OK: true})

	req := httptest.NewRequest(http.MethodGet, "/api/rooms/abc123/runs", nil)
	w := httptest.NewRecorder()
	RoomInfo(reg, s, 20)(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var runs []domain.RunRecord
	json.NewDecoder(w.Body).Decode(&runs)
	if len(runs) != 1 || runs[0].Output != "hi\n" {
		t.Errorf("unexpected runs: %+v", runs)
	}
}

func TestRoomRunsEmpty(t *testing.T) {
	t.Parallel()
	reg := registry.New()
	reg.AddParticipant("abc123", "alice")

	req := httptest.NewRequest(http.MethodGet, "/api/rooms/abc123/runs", nil)
	w := httptest.NewRecorder()
	RoomInfo(reg, testutil.NewMockStore(), 20)(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if body := strings.TrimSpace(w.Body.String()); body != "[]" {
		t.Errorf("expected empty array, got %s", body)
	}
}

func TestRoomUnknownSubresource(t *testing.T) {
	t.Parallel()
	reg := registry.New()
	reg.AddParticipant("abc123", "alice")

	req := httptest.NewRequest(http.MethodGet, "/api/rooms/abc123/bogus", nil)
	w := httptest.NewRecorder()
	RoomInfo(reg, testutil.NewMockStore(), 20)(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestWSUpgradeAndJoin(t *testing.T) {
	t.Parallel()
	reg := registry.New()
	h := hub.New()
	provider := &testutil.MockProvider{
		Resp: runner.ExecResponse{Run: domain.RunResult{Output: "hi\n"}},
	}
	r := runner.New(reg, h, provider, testutil.NewMockStore(), time.Second)

	server := httptest.NewServer(ServeWS(reg, h, r))
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	conn.WriteMessage(websocket.TextMessage, []byte(`{"event":"join","roomId":"abc123","userName":"alice"}`))

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var msg map[string]any
	json.Unmarshal(data, &msg)
	if msg["event"] != "userJoined" {
		t.Errorf("expected userJoined, got %v", msg["event"])
	}

	// An execution round-trips through the delegate and back over the socket.
	conn.WriteMessage(websocket.TextMessage, []byte(`{"event":"compileCode","roomId":"abc123","code":"print(1)","language":"python","version":""}`))
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	for i := 0; i < 5; i++ {
		_, data, err := conn.ReadMessage()
		if err != nil {
			t.Fatalf("read: %v", err)
		}
		var resp map[string]any
		json.Unmarshal(data, &resp)
		if resp["event"] == "codeResponse" {
			run := resp["run"].(map[string]any)
			if run["output"] != "hi\n" {
				t.Errorf("expected output hi, got %v", run["output"])
			}
			return
		}
	}
	t.Fatal("never received codeResponse")
}
