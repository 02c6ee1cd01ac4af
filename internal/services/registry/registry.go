package registry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mcoot/truthdare-go/internal/dependencies/clock"
	"github.com/mcoot/truthdare-go/internal/model"
	"github.com/mcoot/truthdare-go/internal/services/codes"
	"github.com/mcoot/truthdare-go/internal/services/ids"
	"github.com/mcoot/truthdare-go/internal/storage"
)

const (
	// MaxCodeAttempts bounds the search for an unused room code
	MaxCodeAttempts = 100

	// DefaultCreatorName is used when a room is created with a blank name
	DefaultCreatorName = "Admin"
)

// Registry owns the live rooms: creation, lookup, membership and
// teardown of empty rooms.
type Registry struct {
	store  storage.RoomStore
	codes  *codes.Generator
	ids    ids.Generator
	clock  clock.Clock
	logger *slog.Logger
}

// New creates a Registry over the given store
func New(
	store storage.RoomStore,
	codes *codes.Generator,
	ids ids.Generator,
	clock clock.Clock,
	logger *slog.Logger,
) *Registry {
	return &Registry{
		store:  store,
		codes:  codes,
		ids:    ids,
		clock:  clock,
		logger: logger.With(slog.String("component", "registry")),
	}
}

// CreateRoom allocates a code, builds a WAITING room with the creator as
// its ADMIN player and makes it visible by code and id.
func (r *Registry) CreateRoom(ctx context.Context, mode model.GameMode, creatorName string) (*model.Room, model.Player, error) {
	if !mode.Valid() {
		return nil, model.Player{}, fmt.Errorf("%w: %q", model.ErrInvalidGameMode, string(mode))
	}

	name := strings.TrimSpace(creatorName)
	if name == "" {
		name = DefaultCreatorName
	}

	now := r.clock.Now()
	admin := model.Player{
		ID:       r.ids.PlayerID(),
		Name:     name,
		Role:     model.RoleAdmin,
		JoinedAt: now,
	}

	for attempt := 1; attempt <= MaxCodeAttempts; attempt++ {
		code := r.codes.GenerateRoomCode()
		exists, err := r.store.CodeExists(ctx, code)
		if err != nil {
			return nil, model.Player{}, err
		}
		if exists {
			continue
		}

		room := model.NewRoom(model.RoomParams{
			ID:         r.ids.RoomID(),
			Code:       code,
			AdminToken: r.codes.GenerateAdminToken(),
			Mode:       mode,
			Now:        clock.Func(r.clock),
		})
		room.AddPlayer(admin)

		err = r.store.Insert(ctx, room)
		if errors.Is(err, storage.ErrCodeTaken) {
			// Lost a race for the code with a concurrent create
			continue
		}
		if err != nil {
			return nil, model.Player{}, err
		}

		r.logger.Info("room created",
			slog.String("room_id", string(room.ID)),
			slog.String("room_code", string(room.Code)),
			slog.String("game_mode", string(mode)),
			slog.Int("attempts", attempt),
		)
		return room, admin, nil
	}

	r.logger.Error("room code space exhausted",
		slog.Int("attempts", MaxCodeAttempts),
	)
	return nil, model.Player{}, model.ErrCodeAllocation
}

// LookupByCode returns the live room with exactly this code
func (r *Registry) LookupByCode(ctx context.Context, code model.RoomCode) (*model.Room, error) {
	return r.store.GetByCode(ctx, code)
}

// LookupByID returns the live room with this id
func (r *Registry) LookupByID(ctx context.Context, id model.RoomID) (*model.Room, error) {
	return r.store.GetByID(ctx, id)
}

// UpdateByCode runs fn with the room's lock held. A room torn down
// between lookup and lock is reported as not found.
func (r *Registry) UpdateByCode(ctx context.Context, code model.RoomCode, fn func(*model.Room) error) error {
	room, err := r.store.GetByCode(ctx, code)
	if err != nil {
		return err
	}
	return withLock(room, fn)
}

// UpdateByID runs fn with the room's lock held, like UpdateByCode
func (r *Registry) UpdateByID(ctx context.Context, id model.RoomID, fn func(*model.Room) error) error {
	room, err := r.store.GetByID(ctx, id)
	if err != nil {
		return err
	}
	return withLock(room, fn)
}

func withLock(room *model.Room, fn func(*model.Room) error) error {
	room.Lock()
	defer room.Unlock()
	if room.Closed() {
		return model.ErrRoomNotFound
	}
	return fn(room)
}

// Change is the outcome of a membership mutation, captured in the same
// critical section as the mutation itself
type Change struct {
	Room     *model.Room
	Snapshot model.RoomSnapshot
	TornDown bool // The last player left and the room was removed
}

// AddPlayer appends a PLAYER to the room. Names are unique per room
// ignoring case, and rooms stop accepting joins once the game starts.
func (r *Registry) AddPlayer(ctx context.Context, code model.RoomCode, name string) (model.Player, Change, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Player{}, Change{}, model.ErrBlankName
	}

	var player model.Player
	var change Change
	err := r.UpdateByCode(ctx, code, func(room *model.Room) error {
		if room.IsActive() {
			return model.ErrGameAlreadyStarted
		}
		if room.HasPlayerNamed(name) {
			return fmt.Errorf("%w: %q", model.ErrDuplicateName, name)
		}
		player = model.Player{
			ID:       r.ids.PlayerID(),
			Name:     name,
			Role:     model.RolePlayer,
			JoinedAt: r.clock.Now(),
		}
		room.AddPlayer(player)
		change = Change{Room: room, Snapshot: room.Snapshot()}
		return nil
	})
	if err != nil {
		return model.Player{}, Change{}, err
	}

	r.logger.Info("player joined",
		slog.String("room_code", string(code)),
		slog.String("player_id", string(player.ID)),
	)
	return player, change, nil
}

// RemovePlayer removes a player from the room. When the last player
// leaves, the room is removed from the registry in the same critical
// section and the change is marked TornDown. Returns false if the player
// was not in the room.
func (r *Registry) RemovePlayer(ctx context.Context, code model.RoomCode, playerID model.PlayerID) (bool, Change, error) {
	var removed bool
	var change Change
	err := r.UpdateByCode(ctx, code, func(room *model.Room) error {
		removed = room.RemovePlayer(playerID)
		if !removed {
			return nil
		}
		change.Room = room
		if room.IsEmpty() {
			if err := r.store.Delete(ctx, room); err != nil {
				return err
			}
			room.Close()
			change.TornDown = true
		}
		change.Snapshot = room.Snapshot()
		return nil
	})
	if err != nil {
		return false, Change{}, err
	}

	if removed {
		r.logger.Info("player left",
			slog.String("room_code", string(code)),
			slog.String("player_id", string(playerID)),
			slog.Bool("room_closed", change.TornDown),
		)
	}
	return removed, change, nil
}

// SnapshotByCode returns a consistent copy of the room's state
func (r *Registry) SnapshotByCode(ctx context.Context, code model.RoomCode) (model.RoomSnapshot, error) {
	var snap model.RoomSnapshot
	err := r.UpdateByCode(ctx, code, func(room *model.Room) error {
		snap = room.Snapshot()
		return nil
	})
	return snap, err
}

// Count returns the number of live rooms
func (r *Registry) Count(ctx context.Context) (int, error) {
	return r.store.Count(ctx)
}

// Snapshots returns a copy of every live room's state in creation order
func (r *Registry) Snapshots(ctx context.Context) ([]model.RoomSnapshot, error) {
	rooms, err := r.store.All(ctx)
	if err != nil {
		return nil, err
	}
	snaps := make([]model.RoomSnapshot, 0, len(rooms))
	for _, room := range rooms {
		room.Lock()
		if !room.Closed() {
			snaps = append(snaps, room.Snapshot())
		}
		room.Unlock()
	}
	return snaps, nil
}
