package session

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mcoot/truthdare-go/internal/dependencies/clock"
	"github.com/mcoot/truthdare-go/internal/model"
	"github.com/mcoot/truthdare-go/internal/services/ids"
	"github.com/mcoot/truthdare-go/internal/services/question"
	"github.com/mcoot/truthdare-go/internal/services/registry"
)

// MinPlayersToStart is the smallest room that can start a game
const MinPlayersToStart = 2

// CreatedRoom is the result of creating a room. AdminToken must only be
// returned to the creator.
type CreatedRoom struct {
	Snapshot    model.RoomSnapshot
	AdminToken  string
	AdminPlayer model.Player
}

// Orchestrator runs the game's state transitions and notifies the
// broadcaster after every successful mutation
type Orchestrator struct {
	registry    *registry.Registry
	selector    *question.Selector
	broadcaster Broadcaster
	ids         ids.Generator
	clock       clock.Clock
	logger      *slog.Logger
}

// OrchestratorInterface is the set of operations transports call
type OrchestratorInterface interface {
	CreateRoom(ctx context.Context, mode model.GameMode, creatorName string) (*CreatedRoom, error)
	JoinRoom(ctx context.Context, code model.RoomCode, name string) (model.Player, model.RoomSnapshot, error)
	LeaveRoom(ctx context.Context, code model.RoomCode, playerID model.PlayerID) error
	RoomState(ctx context.Context, code model.RoomCode) (model.RoomSnapshot, error)
	StartGame(ctx context.Context, roomID model.RoomID, adminToken string) (bool, error)
	NextQuestion(ctx context.Context, roomID model.RoomID, preferred model.QuestionType) (*model.Question, error)
	AdvanceTurn(ctx context.Context, roomID model.RoomID) (model.RoomSnapshot, error)
	ForceNextTurn(ctx context.Context, roomID model.RoomID, adminToken string) (model.RoomSnapshot, error)
	ChangeMode(ctx context.Context, roomID model.RoomID, adminToken string, mode model.GameMode) (model.RoomSnapshot, error)
	InjectQuestion(ctx context.Context, roomID model.RoomID, adminToken string, req InjectRequest) (*model.Question, error)
}

// Ensure Orchestrator implements OrchestratorInterface
var _ OrchestratorInterface = (*Orchestrator)(nil)

// New creates an Orchestrator
func New(
	registry *registry.Registry,
	selector *question.Selector,
	broadcaster Broadcaster,
	ids ids.Generator,
	clock clock.Clock,
	logger *slog.Logger,
) *Orchestrator {
	return &Orchestrator{
		registry:    registry,
		selector:    selector,
		broadcaster: broadcaster,
		ids:         ids,
		clock:       clock,
		logger:      logger.With(slog.String("component", "session")),
	}
}

// CreateRoom creates a room with the creator as its admin
func (o *Orchestrator) CreateRoom(ctx context.Context, mode model.GameMode, creatorName string) (*CreatedRoom, error) {
	room, admin, err := o.registry.CreateRoom(ctx, mode, creatorName)
	if err != nil {
		return nil, err
	}

	room.Lock()
	created := &CreatedRoom{
		Snapshot:    room.Snapshot(),
		AdminToken:  room.AdminToken(),
		AdminPlayer: admin,
	}
	room.Unlock()

	o.emit(ctx, room, created.Snapshot, model.EventRoomCreated, model.RoomCreatedPayload{
		RoomID:        created.Snapshot.ID,
		RoomCode:      created.Snapshot.Code,
		AdminPlayerID: admin.ID,
	})
	return created, nil
}

// JoinRoom adds a player to a waiting room
func (o *Orchestrator) JoinRoom(ctx context.Context, code model.RoomCode, name string) (model.Player, model.RoomSnapshot, error) {
	player, change, err := o.registry.AddPlayer(ctx, code, name)
	if err != nil {
		return model.Player{}, model.RoomSnapshot{}, err
	}

	o.emit(ctx, change.Room, change.Snapshot, model.EventPlayerJoined, model.PlayerJoinedPayload{Player: player.Summary()})
	return player, change.Snapshot, nil
}

// LeaveRoom removes a player. The room is torn down when it empties.
func (o *Orchestrator) LeaveRoom(ctx context.Context, code model.RoomCode, playerID model.PlayerID) error {
	removed, change, err := o.registry.RemovePlayer(ctx, code, playerID)
	if err != nil {
		return err
	}
	if !removed {
		return fmt.Errorf("%w: %s", model.ErrPlayerNotFound, playerID)
	}

	payload := model.PlayerLeftPayload{PlayerID: playerID}
	if !change.TornDown {
		o.emit(ctx, change.Room, change.Snapshot, model.EventPlayerLeft, payload)
		return nil
	}

	change.Room.DeliverClosed(func() {
		o.broadcaster.BroadcastEvent(ctx, code, o.event(code, model.EventPlayerLeft, payload))
		o.broadcaster.RoomClosed(ctx, change.Snapshot)
	})
	return nil
}

// RoomState returns the current snapshot of the room
func (o *Orchestrator) RoomState(ctx context.Context, code model.RoomCode) (model.RoomSnapshot, error) {
	return o.registry.SnapshotByCode(ctx, code)
}

// StartGame moves the room to ACTIVE. Returns false if it already was.
func (o *Orchestrator) StartGame(ctx context.Context, roomID model.RoomID, adminToken string) (bool, error) {
	var started bool
	var room *model.Room
	var snap model.RoomSnapshot
	err := o.registry.UpdateByID(ctx, roomID, func(r *model.Room) error {
		room = r
		if !room.IsAdminTokenValid(adminToken) {
			return model.ErrInvalidAdminToken
		}
		if len(room.Players) < MinPlayersToStart {
			return model.ErrInsufficientPlayers
		}
		started = room.Start()
		snap = room.Snapshot()
		return nil
	})
	if err != nil {
		return false, err
	}
	if !started {
		return false, nil
	}

	o.logger.Info("game started",
		slog.String("room_code", string(snap.Code)),
		slog.Int("player_count", len(snap.Players)),
	)
	o.emit(ctx, room, snap, model.EventGameStarted, turnPayload(snap))
	return true, nil
}

// NextQuestion draws a question for the current player and records it as
// the room's current question
func (o *Orchestrator) NextQuestion(ctx context.Context, roomID model.RoomID, preferred model.QuestionType) (*model.Question, error) {
	if preferred != "" && !preferred.Valid() {
		return nil, fmt.Errorf("%w: %q", model.ErrInvalidQuestionType, string(preferred))
	}

	var room *model.Room
	err := o.registry.UpdateByID(ctx, roomID, func(r *model.Room) error {
		if err := requirePlayable(r); err != nil {
			return err
		}
		room = r
		return nil
	})
	if err != nil {
		return nil, err
	}

	// The selector takes the room lock only around the admin queue
	q, tier, err := o.selector.Select(ctx, room, preferred)
	if err != nil {
		return nil, err
	}

	var snap model.RoomSnapshot
	err = o.registry.UpdateByID(ctx, roomID, func(r *model.Room) error {
		r.SetCurrentQuestion(q)
		snap = r.Snapshot()
		return nil
	})
	if err != nil {
		return nil, err
	}

	o.logger.Debug("question drawn",
		slog.String("room_code", string(snap.Code)),
		slog.String("tier", string(tier)),
		slog.String("type", string(q.Type)),
	)
	o.emit(ctx, room, snap, model.EventQuestionSent, model.QuestionPayload{Question: *q})
	return q, nil
}

// AdvanceTurn moves the turn to the next player
func (o *Orchestrator) AdvanceTurn(ctx context.Context, roomID model.RoomID) (model.RoomSnapshot, error) {
	return o.advance(ctx, roomID, nil)
}

// ForceNextTurn is AdvanceTurn restricted to the room admin
func (o *Orchestrator) ForceNextTurn(ctx context.Context, roomID model.RoomID, adminToken string) (model.RoomSnapshot, error) {
	return o.advance(ctx, roomID, &adminToken)
}

func (o *Orchestrator) advance(ctx context.Context, roomID model.RoomID, adminToken *string) (model.RoomSnapshot, error) {
	var room *model.Room
	var snap model.RoomSnapshot
	err := o.registry.UpdateByID(ctx, roomID, func(r *model.Room) error {
		room = r
		if adminToken != nil && !room.IsAdminTokenValid(*adminToken) {
			return model.ErrInvalidAdminToken
		}
		if err := requirePlayable(room); err != nil {
			return err
		}
		room.NextTurn()
		snap = room.Snapshot()
		return nil
	})
	if err != nil {
		return model.RoomSnapshot{}, err
	}

	o.emit(ctx, room, snap, model.EventNextTurn, turnPayload(snap))
	return snap, nil
}

// ChangeMode sets the mode used by subsequent draws. The current question
// is left as is.
func (o *Orchestrator) ChangeMode(ctx context.Context, roomID model.RoomID, adminToken string, mode model.GameMode) (model.RoomSnapshot, error) {
	var room *model.Room
	var snap model.RoomSnapshot
	err := o.registry.UpdateByID(ctx, roomID, func(r *model.Room) error {
		room = r
		if !room.IsAdminTokenValid(adminToken) {
			return model.ErrInvalidAdminToken
		}
		if !mode.Valid() {
			return fmt.Errorf("%w: %q", model.ErrInvalidGameMode, string(mode))
		}
		room.SetMode(mode)
		snap = room.Snapshot()
		return nil
	})
	if err != nil {
		return model.RoomSnapshot{}, err
	}

	o.logger.Info("game mode changed",
		slog.String("room_code", string(snap.Code)),
		slog.String("game_mode", string(mode)),
	)
	o.emit(ctx, room, snap, model.EventGameModeChanged, model.GameModeChangedPayload{GameMode: mode})
	return snap, nil
}

// InjectRequest describes an admin question
type InjectRequest struct {
	Text   string
	Type   model.QuestionType
	Target model.PlayerID // Empty means the current player
}

// InjectQuestion queues an admin question. In an active room it also
// becomes the current question straight away.
func (o *Orchestrator) InjectQuestion(ctx context.Context, roomID model.RoomID, adminToken string, req InjectRequest) (*model.Question, error) {
	text := strings.TrimSpace(req.Text)

	var q *model.Question
	var room *model.Room
	var snap model.RoomSnapshot
	err := o.registry.UpdateByID(ctx, roomID, func(r *model.Room) error {
		room = r
		if !room.IsAdminTokenValid(adminToken) {
			return model.ErrInvalidAdminToken
		}
		if text == "" {
			return model.ErrBlankQuestion
		}
		if !req.Type.Valid() {
			return fmt.Errorf("%w: %q", model.ErrInvalidQuestionType, string(req.Type))
		}

		target := req.Target
		if target == "" {
			if current, ok := room.CurrentPlayer(); ok {
				target = current.ID
			}
		} else if _, ok := room.GetPlayer(target); !ok {
			return fmt.Errorf("%w: target %s", model.ErrPlayerNotFound, target)
		}

		q = &model.Question{
			ID:             o.ids.QuestionID(),
			Text:           text,
			Type:           req.Type,
			TargetPlayerID: target,
			AdminInjected:  true,
			CreatedAt:      o.clock.Now(),
		}
		room.AddAdminQuestion(q)
		if room.IsActive() {
			room.SetCurrentQuestion(q)
		}
		snap = room.Snapshot()
		return nil
	})
	if err != nil {
		return nil, err
	}

	o.logger.Info("admin question injected",
		slog.String("room_code", string(snap.Code)),
		slog.String("type", string(q.Type)),
		slog.Bool("immediate", snap.Status == model.RoomStatusActive),
	)
	o.emit(ctx, room, snap, model.EventAdminOverride, model.QuestionPayload{Question: *q})
	return q, nil
}

func requirePlayable(room *model.Room) error {
	if !room.IsActive() {
		return model.ErrGameNotActive
	}
	if _, ok := room.CurrentPlayer(); !ok {
		return model.ErrNoCurrentPlayer
	}
	return nil
}

func turnPayload(snap model.RoomSnapshot) model.TurnPayload {
	return model.TurnPayload{CurrentPlayer: snap.CurrentPlayer, TurnIndex: snap.TurnIndex}
}

func (o *Orchestrator) event(code model.RoomCode, t model.EventType, payload any) model.Event {
	return model.Event{
		Type:      t,
		Timestamp: o.clock.Now(),
		RoomCode:  code,
		Payload:   payload,
	}
}

// emit sends the typed event followed by the resulting state. Called
// with no room lock held. Deliveries for one room are serialised, and a
// snapshot older than one already delivered is not broadcast as state.
func (o *Orchestrator) emit(ctx context.Context, room *model.Room, snap model.RoomSnapshot, t model.EventType, payload any) {
	room.Deliver(snap.Version, func(fresh bool) {
		o.broadcaster.BroadcastEvent(ctx, snap.Code, o.event(snap.Code, t, payload))
		if !fresh {
			o.logger.Debug("stale room state not broadcast",
				slog.String("room_code", string(snap.Code)),
				slog.Uint64("version", snap.Version),
			)
			return
		}
		o.broadcaster.BroadcastState(ctx, snap)
	})
}
