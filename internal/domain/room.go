package domain

import "time"

// Room summarizes a collaboration room for the HTTP API.
type Room struct {
	ID               string `json:"id"`
	ParticipantCount int    `json:"participant_count"`
	HasOutput        bool   `json:"has_output"`
}

// RunRecord is one persisted code execution.
type RunRecord struct {
	Room      string    `json:"room"`
	Language  string    `json:"language"`
	Version   string    `json:"version"`
	Output    string    `json:"output"`
	OK        bool      `json:"ok"`
	CreatedAt time.Time `json:"created_at"`
}
