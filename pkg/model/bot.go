package model

import "time"

// Bot is a meeting bot dispatched into a call.
type Bot struct {
	UUID            string          `json:"uuid" validate:"required,uuid"`
	Name            string          `json:"bot_name" validate:"required"`
	MeetingURL      string          `json:"meeting_url" validate:"required"`
	Platform        MeetingPlatform `json:"meeting_platform" validate:"required,oneof=zoom teams google_meet"`
	Status          BotStatus       `json:"status" validate:"required,oneof=queued joining in_call recording processing completed failed cancelled"`
	TeamID          int             `json:"team_id" validate:"gte=0"`
	DurationSeconds int             `json:"duration_seconds" validate:"gte=0"`
	ErrorMessage    string          `json:"error_message,omitempty"`
	Artifacts       []BotArtifact   `json:"artifacts" validate:"dive"`
	CreatedAt       time.Time       `json:"created_at" validate:"required"`
	EndedAt         *time.Time      `json:"ended_at,omitempty"`
}

// BotArtifact is an output produced by a bot after its meeting ended.
type BotArtifact struct {
	Type      ArtifactType `json:"type" validate:"required,oneof=transcription recording chat"`
	URL       string       `json:"url" validate:"omitempty,url"`
	CreatedAt time.Time    `json:"created_at"`
}

// HasArtifact reports whether the bot produced an artifact of the given type.
func (b Bot) HasArtifact(t ArtifactType) bool {
	for _, a := range b.Artifacts {
		if a.Type == t {
			return true
		}
	}
	return false
}

// Artifact returns the first artifact of the given type, or nil.
func (b Bot) Artifact(t ArtifactType) *BotArtifact {
	for i := range b.Artifacts {
		if b.Artifacts[i].Type == t {
			return &b.Artifacts[i]
		}
	}
	return nil
}

// Duration returns the recorded call length.
func (b Bot) Duration() time.Duration {
	return time.Duration(b.DurationSeconds) * time.Second
}
