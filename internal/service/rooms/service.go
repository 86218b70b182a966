package rooms

import (
	"context"
	"errors"
	"fmt"

	"github.com/Oso5408/ofcoz-booking/internal/domain"
	"github.com/Oso5408/ofcoz-booking/internal/service/rooms/models"
)

// Service serves the public room catalogue. Hidden rooms are never exposed.
type Service struct {
	roomRepo RoomRepository
	logger   Logger
}

func NewService(roomRepo RoomRepository, logger Logger) *Service {
	return &Service{
		roomRepo: roomRepo,
		logger:   logger,
	}
}

func (s *Service) ListRooms(ctx context.Context) (*models.RoomListResponse, error) {
	rooms, err := s.roomRepo.List(ctx, false)
	if err != nil {
		s.logger.Error("ListRooms: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListRooms - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListRooms: fetched %d rooms", len(rooms))
	return models.FromDomainRoomList(rooms), nil
}

func (s *Service) GetRoom(ctx context.Context, id int64) (*models.RoomResponse, error) {
	room, err := s.roomRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrRoomNotFound) {
			s.logger.Warn("GetRoom: room id=%d not found", id)
			return nil, ErrRoomNotFound
		}
		s.logger.Error("GetRoom: repository error for room id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetRoom - repository error: %v", ErrInternal, err)
	}
	if room.Hidden {
		s.logger.Warn("GetRoom: room id=%d is hidden", id)
		return nil, ErrRoomNotFound
	}

	return models.FromDomainRoom(room), nil
}
