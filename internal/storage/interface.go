package storage

import (
	"context"
	"errors"

	"github.com/mcoot/truthdare-go/internal/model"
)

// ErrCodeTaken is returned by Insert when a live room already holds the code
var ErrCodeTaken = errors.New("room code already in use")

// RoomStore holds the live rooms, indexed by code and by id. Both views
// change together: a room is visible through both or neither.
type RoomStore interface {
	// Insert adds a room under its code and id. Fails with ErrCodeTaken
	// if the code is in use.
	Insert(ctx context.Context, room *model.Room) error

	// GetByCode returns the room with the exact code, or model.ErrRoomNotFound
	GetByCode(ctx context.Context, code model.RoomCode) (*model.Room, error)

	// GetByID returns the room with the id, or model.ErrRoomNotFound
	GetByID(ctx context.Context, id model.RoomID) (*model.Room, error)

	// Delete removes the room from both views. Deleting an absent room is
	// not an error.
	Delete(ctx context.Context, room *model.Room) error

	// CodeExists reports whether a live room holds the code
	CodeExists(ctx context.Context, code model.RoomCode) (bool, error)

	// Count returns the number of live rooms
	Count(ctx context.Context) (int, error)

	// All returns the live rooms in creation order
	All(ctx context.Context) ([]*model.Room, error)
}
