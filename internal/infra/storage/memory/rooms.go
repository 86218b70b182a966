package memory

import (
	"context"
	"sort"

	"github.com/Oso5408/ofcoz-booking/internal/domain"
)

// Rooms returns a RoomStore view over the same data. Store.GetByID is the booking lookup.
func (s *Store) Rooms() *Rooms {
	return &Rooms{store: s}
}

type Rooms struct {
	store *Store
}

var _ domain.RoomStore = (*Rooms)(nil)

func (r *Rooms) GetByID(ctx context.Context, id int64) (*domain.Room, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	room, ok := r.store.rooms[id]
	if !ok {
		return nil, domain.ErrRoomNotFound
	}
	out := *room
	return &out, nil
}

func (r *Rooms) List(ctx context.Context, includeHidden bool) ([]*domain.Room, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]*domain.Room, 0, len(r.store.rooms))
	for _, room := range r.store.rooms {
		if room.Hidden && !includeHidden {
			continue
		}
		c := *room
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
