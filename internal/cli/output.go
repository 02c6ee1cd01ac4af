package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	w      io.Writer
}

// NewOutput creates a new Output formatter
func NewOutput(format string, w io.Writer) *Output {
	return &Output{format: format, w: w}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		_, _ = fmt.Fprintln(o.w, string(data))
	} else {
		_, _ = fmt.Fprintln(o.w, msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case CreateRoomResult:
		o.printCreateRoomResult(v)
	case JoinRoomResult:
		o.printJoinRoomResult(v)
	case RoomState:
		o.printRoomState(v)
	case Question:
		o.printQuestion(v)
	case StartResult:
		o.printStartResult(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		o.printJSON(data)
	}
}

// Player response type (matches API)
type Player struct {
	ID   string `json:"player_id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

// Question response type
type Question struct {
	ID             string `json:"question_id"`
	Text           string `json:"text"`
	Type           string `json:"type"`
	TargetPlayerID string `json:"player_id,omitempty"`
	AdminInjected  bool   `json:"admin_injected"`
}

// RoomState response type
type RoomState struct {
	RoomID           string    `json:"room_id"`
	RoomCode         string    `json:"room_code"`
	GameMode         string    `json:"game_mode"`
	Status           string    `json:"status"`
	Players          []Player  `json:"players"`
	CurrentPlayer    *Player   `json:"current_player"`
	CurrentQuestion  *Question `json:"current_question"`
	CurrentTurnIndex int       `json:"current_turn_index"`
	PendingQuestions int       `json:"pending_admin_questions"`
	CreatedAt        time.Time `json:"created_at"`
	LastActivityAt   time.Time `json:"last_activity_at"`
	Version          uint64    `json:"version"`
}

// CreateRoomResult response type
type CreateRoomResult struct {
	RoomID        string    `json:"room_id"`
	RoomCode      string    `json:"room_code"`
	AdminToken    string    `json:"admin_token"`
	AdminPlayerID string    `json:"admin_player_id"`
	State         RoomState `json:"state"`
}

// JoinRoomResult response type
type JoinRoomResult struct {
	RoomID   string    `json:"room_id"`
	RoomCode string    `json:"room_code"`
	PlayerID string    `json:"player_id"`
	State    RoomState `json:"state"`
}

// StartResult response type
type StartResult struct {
	Started bool `json:"started"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
	Rooms  int    `json:"rooms"`
}

func (o *Output) printCreateRoomResult(r CreateRoomResult) {
	_, _ = fmt.Fprintf(o.w, "Room created: %s (id %s)\n", r.RoomCode, r.RoomID)
	_, _ = fmt.Fprintf(o.w, "Admin player: %s\n", r.AdminPlayerID)
	_, _ = fmt.Fprintln(o.w, "Admin token saved to session file")
	_, _ = fmt.Fprintln(o.w)
	o.printRoomState(r.State)
}

func (o *Output) printJoinRoomResult(r JoinRoomResult) {
	_, _ = fmt.Fprintf(o.w, "Joined room %s as %s\n", r.RoomCode, r.PlayerID)
	_, _ = fmt.Fprintln(o.w)
	o.printRoomState(r.State)
}

func (o *Output) printRoomState(s RoomState) {
	_, _ = fmt.Fprintf(o.w, "Room: %s\n", s.RoomCode)
	_, _ = fmt.Fprintf(o.w, "Status: %s\n", s.Status)
	_, _ = fmt.Fprintf(o.w, "Mode: %s\n", s.GameMode)
	_, _ = fmt.Fprintf(o.w, "Turn: %d\n", s.CurrentTurnIndex)
	if s.PendingQuestions > 0 {
		_, _ = fmt.Fprintf(o.w, "Queued questions: %d\n", s.PendingQuestions)
	}

	_, _ = fmt.Fprintf(o.w, "Players (%d):\n", len(s.Players))
	for _, p := range s.Players {
		marker := "  "
		if s.CurrentPlayer != nil && s.CurrentPlayer.ID == p.ID {
			marker = "> "
		}
		_, _ = fmt.Fprintf(o.w, "  %s%s (%s) - %s\n", marker, p.Name, p.ID, strings.ToLower(p.Role))
	}

	if s.CurrentQuestion != nil {
		_, _ = fmt.Fprintln(o.w)
		o.printQuestion(*s.CurrentQuestion)
	}
}

func (o *Output) printQuestion(q Question) {
	source := ""
	if q.AdminInjected {
		source = " [admin]"
	}
	_, _ = fmt.Fprintf(o.w, "%s%s: %s\n", q.Type, source, q.Text)
	if q.TargetPlayerID != "" {
		_, _ = fmt.Fprintf(o.w, "For: %s\n", q.TargetPlayerID)
	}
}

func (o *Output) printStartResult(r StartResult) {
	if r.Started {
		_, _ = fmt.Fprintln(o.w, "Game started")
	} else {
		_, _ = fmt.Fprintln(o.w, "Game already running")
	}
}

func (o *Output) printHealthResult(h HealthResult) {
	_, _ = fmt.Fprintf(o.w, "Status: %s\n", h.Status)
	_, _ = fmt.Fprintf(o.w, "Rooms: %d\n", h.Rooms)
}
