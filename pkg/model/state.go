package model

// BotStatus is the lifecycle status of a meeting bot as reported by the backend.
type BotStatus string

const (
	BotStatusQueued     BotStatus = "queued"
	BotStatusJoining    BotStatus = "joining"
	BotStatusInCall     BotStatus = "in_call"
	BotStatusRecording  BotStatus = "recording"
	BotStatusProcessing BotStatus = "processing"
	BotStatusCompleted  BotStatus = "completed"
	BotStatusFailed     BotStatus = "failed"
	BotStatusCancelled  BotStatus = "cancelled"
)

// BotStatuses lists every bot status in display order.
var BotStatuses = []BotStatus{
	BotStatusQueued, BotStatusJoining, BotStatusInCall, BotStatusRecording,
	BotStatusProcessing, BotStatusCompleted, BotStatusFailed, BotStatusCancelled,
}

// String returns the string representation of the bot status.
func (s BotStatus) String() string {
	return string(s)
}

// IsTerminal returns true if the bot will not change status again.
func (s BotStatus) IsTerminal() bool {
	switch s {
	case BotStatusCompleted, BotStatusFailed, BotStatusCancelled:
		return true
	}
	return false
}

// IsActive returns true while the bot is connected to a meeting.
func (s BotStatus) IsActive() bool {
	switch s {
	case BotStatusJoining, BotStatusInCall, BotStatusRecording:
		return true
	}
	return false
}

// MeetingPlatform identifies the conferencing product a bot joins.
type MeetingPlatform string

const (
	PlatformZoom       MeetingPlatform = "zoom"
	PlatformTeams      MeetingPlatform = "teams"
	PlatformGoogleMeet MeetingPlatform = "google_meet"
)

// MeetingPlatforms lists every supported platform in display order.
var MeetingPlatforms = []MeetingPlatform{PlatformZoom, PlatformTeams, PlatformGoogleMeet}

// Label returns the human-readable platform name.
func (p MeetingPlatform) Label() string {
	switch p {
	case PlatformZoom:
		return "Zoom"
	case PlatformTeams:
		return "Microsoft Teams"
	case PlatformGoogleMeet:
		return "Google Meet"
	}
	return string(p)
}

// TicketStatus is the workflow state of a support ticket.
type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "open"
	TicketStatusInProgress TicketStatus = "in_progress"
	TicketStatusResolved   TicketStatus = "resolved"
	TicketStatusClosed     TicketStatus = "closed"
)

// TicketStatuses lists every ticket status in display order.
var TicketStatuses = []TicketStatus{TicketStatusOpen, TicketStatusInProgress, TicketStatusResolved, TicketStatusClosed}

// ArtifactType names the kind of output a bot produced.
type ArtifactType string

const (
	ArtifactTranscription ArtifactType = "transcription"
	ArtifactRecording     ArtifactType = "recording"
	ArtifactChat          ArtifactType = "chat"
)
