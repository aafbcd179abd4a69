package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"bus-booking-api/internal/model"
	"bus-booking-api/pkg/apierror"
)

type BusStore interface {
	List(ctx context.Context) ([]model.Bus, error)
	Create(ctx context.Context, b model.Bus) error
	Update(ctx context.Context, b model.Bus) (model.Bus, error)
	Delete(ctx context.Context, id string) error
}

type BusService struct {
	buses BusStore
}

func NewBusService(buses BusStore) *BusService {
	return &BusService{buses: buses}
}

func (s *BusService) List(ctx context.Context) ([]model.Bus, error) {
	return s.buses.List(ctx)
}

func (s *BusService) Create(ctx context.Context, req model.BusRequest) (model.Bus, error) {
	if err := validateBusRequest(req); err != nil {
		return model.Bus{}, err
	}

	now := time.Now().UTC()
	bus := model.Bus{
		ID:               uuid.NewString(),
		BusNumber:        strings.TrimSpace(req.BusNumber),
		Seats:            *req.Seats,
		Route:            strings.TrimSpace(req.Route),
		DeparturePoint:   strings.TrimSpace(req.DeparturePoint),
		DestinationPoint: strings.TrimSpace(req.DestinationPoint),
		DepartureTime:    strings.TrimSpace(req.DepartureTime),
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.buses.Create(ctx, bus); err != nil {
		return model.Bus{}, err
	}
	return bus, nil
}

// Update replaces the whole record: the payload must carry every field,
// the same rule as Create. Partial merges are deliberately not offered.
func (s *BusService) Update(ctx context.Context, id string, req model.BusRequest) (model.Bus, error) {
	if strings.TrimSpace(id) == "" {
		return model.Bus{}, apierror.NotFound("Bus not found")
	}

	if err := validateBusRequest(req); err != nil {
		return model.Bus{}, err
	}

	bus := model.Bus{
		ID:               id,
		BusNumber:        strings.TrimSpace(req.BusNumber),
		Seats:            *req.Seats,
		Route:            strings.TrimSpace(req.Route),
		DeparturePoint:   strings.TrimSpace(req.DeparturePoint),
		DestinationPoint: strings.TrimSpace(req.DestinationPoint),
		DepartureTime:    strings.TrimSpace(req.DepartureTime),
		UpdatedAt:        time.Now().UTC(),
	}

	return s.buses.Update(ctx, bus)
}

func (s *BusService) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return apierror.NotFound("Bus not found")
	}

	return s.buses.Delete(ctx, id)
}

func validateBusRequest(req model.BusRequest) error {
	missing := strings.TrimSpace(req.BusNumber) == "" ||
		req.Seats == nil || *req.Seats <= 0 ||
		strings.TrimSpace(req.Route) == "" ||
		strings.TrimSpace(req.DeparturePoint) == "" ||
		strings.TrimSpace(req.DestinationPoint) == "" ||
		strings.TrimSpace(req.DepartureTime) == ""

	if missing {
		return apierror.BadRequest("Please fill all the fields")
	}
	return nil
}
