package memory

import (
	"context"
	"sync"

	"github.com/mcoot/truthdare-go/internal/model"
	"github.com/mcoot/truthdare-go/internal/storage"
)

// Storage is the in-memory room store. One RWMutex guards both indexes,
// so they are never observed out of step. Per-room state is guarded by
// the room's own lock, not by this one.
type Storage struct {
	mu sync.RWMutex

	byCode map[model.RoomCode]*model.Room
	byID   map[model.RoomID]*model.Room
	order  []model.RoomID
}

// New creates an empty store
func New() *Storage {
	return &Storage{
		byCode: make(map[model.RoomCode]*model.Room),
		byID:   make(map[model.RoomID]*model.Room),
	}
}

// Ensure Storage implements the interface
var _ storage.RoomStore = (*Storage)(nil)

func (s *Storage) Insert(ctx context.Context, room *model.Room) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byCode[room.Code]; ok {
		return storage.ErrCodeTaken
	}
	s.byCode[room.Code] = room
	s.byID[room.ID] = room
	s.order = append(s.order, room.ID)
	return nil
}

func (s *Storage) GetByCode(ctx context.Context, code model.RoomCode) (*model.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	room, ok := s.byCode[code]
	if !ok {
		return nil, model.ErrRoomNotFound
	}
	return room, nil
}

func (s *Storage) GetByID(ctx context.Context, id model.RoomID) (*model.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	room, ok := s.byID[id]
	if !ok {
		return nil, model.ErrRoomNotFound
	}
	return room, nil
}

func (s *Storage) Delete(ctx context.Context, room *model.Room) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	// Only remove entries that still point at this room instance
	if existing, ok := s.byCode[room.Code]; ok && existing == room {
		delete(s.byCode, room.Code)
	}
	if existing, ok := s.byID[room.ID]; ok && existing == room {
		delete(s.byID, room.ID)
		for i, id := range s.order {
			if id == room.ID {
				s.order = append(s.order[:i], s.order[i+1:]...)
				break
			}
		}
	}
	return nil
}

func (s *Storage) CodeExists(ctx context.Context, code model.RoomCode) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.byCode[code]
	return ok, nil
}

func (s *Storage) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byID), nil
}

func (s *Storage) All(ctx context.Context) ([]*model.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rooms := make([]*model.Room, 0, len(s.order))
	for _, id := range s.order {
		rooms = append(rooms, s.byID[id])
	}
	return rooms, nil
}
