package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/teamseven/codeconnect/internal/domain"
	"github.com/teamseven/codeconnect/internal/registry"
	"github.com/teamseven/codeconnect/internal/store"
)

// Health returns a simple health check handler.
func Health() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}
}

// ListRooms returns all rooms with participant counts, empty rooms included.
func ListRooms(reg *registry.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(reg.Rooms())
	}
}

// RoomInfo returns details about a specific room, and under
// /api/rooms/{id}/runs the room's recent execution history.
func RoomInfo(reg *registry.Registry, s store.Store, historyLimit int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Path is /api/rooms/{id} or /api/rooms/{id}/runs.
		rest := strings.TrimPrefix(r.URL.Path, "/api/rooms/")
		id, sub, _ := strings.Cut(rest, "/")
		if id == "" {
			http.Error(w, `{"error":"room id required"}`, http.StatusBadRequest)
			return
		}

		info := reg.Info(id)
		if info == nil {
			http.Error(w, `{"error":"room not found"}`, http.StatusNotFound)
			return
		}

		switch sub {
		case "":
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(info)
		case "runs":
			if s == nil {
				http.Error(w, `{"error":"run history disabled"}`, http.StatusNotFound)
				return
			}
			recs, err := s.Recent(id, historyLimit)
			if err != nil {
				http.Error(w, `{"error":"run history unavailable"}`, http.StatusInternalServerError)
				return
			}
			if recs == nil {
				recs = []domain.RunRecord{}
			}
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(recs)
		default:
			http.Error(w, `{"error":"not found"}`, http.StatusNotFound)
		}
	}
}
