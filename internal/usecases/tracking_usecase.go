package usecases

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"
	"qfifat.backend/internal/domain/entities"
	domainerrors "qfifat.backend/internal/domain/errors"
	"qfifat.backend/internal/domain/repositories"
	"qfifat.backend/pkg/logger"
)

// TrackingNotifier pushes tracking updates to subscribed clients
type TrackingNotifier interface {
	PublishTrackingUpdate(ctx context.Context, point *entities.TrackingPoint) error
}

// TrackingUsecase handles the shipment trail of an order. The trail is
// append-only; each point also advances the order status.
type TrackingUsecase struct {
	trackingRepo repositories.TrackingRepository
	orderRepo    repositories.OrderRepository
	uow          repositories.UnitOfWork
	notifier     TrackingNotifier
}

// NewTrackingUsecase creates a new tracking usecase
func NewTrackingUsecase(
	trackingRepo repositories.TrackingRepository,
	orderRepo repositories.OrderRepository,
	uow repositories.UnitOfWork,
	notifier TrackingNotifier,
) *TrackingUsecase {
	return &TrackingUsecase{
		trackingRepo: trackingRepo,
		orderRepo:    orderRepo,
		uow:          uow,
		notifier:     notifier,
	}
}

// Append records a checkpoint on the order's trail and mirrors it onto
// the order. A point may repeat the current status (a location update)
// or move it forward; it can never move it back.
func (u *TrackingUsecase) Append(ctx context.Context, orderID uuid.UUID, input *entities.AppendTrackingInput) (*entities.TrackingPoint, error) {
	if !input.Status.IsValid() {
		return nil, domainerrors.ErrInvalidInput
	}

	point := &entities.TrackingPoint{
		OrderID:     orderID,
		Status:      input.Status,
		Location:    input.Location,
		Latitude:    null.Float64FromPtr(input.Latitude),
		Longitude:   null.Float64FromPtr(input.Longitude),
		Description: nullStringFrom(input.Description),
		CreatedAt:   time.Now(),
	}

	err := u.uow.Do(ctx, func(ctx context.Context) error {
		order, err := u.orderRepo.GetByID(ctx, orderID)
		if err != nil {
			return err
		}
		if input.Status != order.Status && !order.Status.CanTransitionTo(input.Status) {
			return domainerrors.ErrInvalidTransition
		}

		if err := u.trackingRepo.Append(ctx, point); err != nil {
			return err
		}
		return u.orderRepo.SetCurrentState(ctx, orderID, input.Status, input.Location)
	})
	if err != nil {
		return nil, err
	}

	// Best effort: a dropped notification only delays the live view,
	// the trail itself is committed.
	if u.notifier != nil {
		if err := u.notifier.PublishTrackingUpdate(ctx, point); err != nil {
			logger.Warn(ctx, "failed to publish tracking update",
				zap.String("order_id", orderID.String()), zap.Error(err))
		}
	}
	return point, nil
}

// History returns the full trail of an order the requester may see
func (u *TrackingUsecase) History(ctx context.Context, requesterID uuid.UUID, isAdmin bool, orderID uuid.UUID) ([]*entities.TrackingPoint, error) {
	order, err := u.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !isAdmin && order.CustomerID != requesterID {
		return nil, domainerrors.ErrForbidden
	}
	return u.trackingRepo.GetByOrderID(ctx, orderID)
}

// Latest returns the newest checkpoint of an order
func (u *TrackingUsecase) Latest(ctx context.Context, requesterID uuid.UUID, isAdmin bool, orderID uuid.UUID) (*entities.TrackingPoint, error) {
	order, err := u.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !isAdmin && order.CustomerID != requesterID {
		return nil, domainerrors.ErrForbidden
	}
	return u.trackingRepo.GetLatestByOrderID(ctx, orderID)
}
