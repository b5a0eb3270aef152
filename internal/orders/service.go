package orders

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/eight22lax/stringshop-backend/pkg/enums"
	pkgerrors "github.com/eight22lax/stringshop-backend/pkg/errors"
)

// Customer-facing copy. The storefront renders these strings verbatim.
const (
	msgOrderNotFound     = "Order not found. Please check your pickup code."
	msgAlreadyDroppedOff = "This order has already been dropped off."
	msgNotReadyForPickup = "This order is not ready for pickup yet."
	msgCodeMismatch      = "Confirmation code does not match. Please try again."
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service defines order lifecycle operations beyond repository reads.
type Service interface {
	SetStatus(ctx context.Context, orderID uuid.UUID, target enums.OrderStatus) (*AdminOrder, error)
	StepForward(ctx context.Context, orderID uuid.UUID) (*AdminOrder, error)
	StepBack(ctx context.Context, orderID uuid.UUID) (*AdminOrder, error)
	ConfirmDropOff(ctx context.Context, pickupCode, confirmCode string) (*PublicOrder, error)
	ConfirmCustomerPickup(ctx context.Context, pickupCode, confirmCode string) (*PublicOrder, error)
	ConfirmReview(ctx context.Context, pickupCode string) error
	PublicStatus(ctx context.Context, pickupCode string) (*PublicOrder, error)
	AdminDetail(ctx context.Context, orderID uuid.UUID) (*AdminOrder, error)
	AdminList(ctx context.Context, filters ListFilters) (*OrderList, error)
	Archive(ctx context.Context, orderID uuid.UUID) error
}

type service struct {
	repo Repository
	tx   txRunner
	now  func() time.Time
}

// NewService builds an order service with the required dependencies.
func NewService(repo Repository, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{
		repo: repo,
		tx:   tx,
		now:  time.Now,
	}, nil
}

// statusUpdates builds the column set for a move into target: the status
// itself, a fresh entry timestamp when the target owns one, and NULLs for
// every timestamp later in the flow so backward moves erase stale progress.
func statusUpdates(target enums.OrderStatus, now time.Time) map[string]any {
	updates := map[string]any{"status": target}
	if col := target.TimestampColumn(); col != "" {
		updates[col] = now
	}
	targetRank := target.Rank()
	for _, status := range enums.OrderStatusFlow() {
		if status.Rank() <= targetRank {
			continue
		}
		if col := status.TimestampColumn(); col != "" {
			updates[col] = nil
		}
	}
	return updates
}

func (s *service) SetStatus(ctx context.Context, orderID uuid.UUID, target enums.OrderStatus) (*AdminOrder, error) {
	if orderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	if target.Rank() < 0 {
		if target.IsLegacy() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "legacy statuses cannot be transition targets")
		}
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid order status")
	}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		order, err := repo.FindByID(ctx, orderID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
		}
		// Re-issuing the current status is a deliberate write: it refreshes
		// the entry timestamp, matching how admin edits behave.
		return s.applyStatus(ctx, repo, order.ID, target)
	})
	if err != nil {
		return nil, err
	}
	return s.AdminDetail(ctx, orderID)
}

func (s *service) StepForward(ctx context.Context, orderID uuid.UUID) (*AdminOrder, error) {
	if orderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		order, err := repo.FindByID(ctx, orderID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
		}

		rank := order.Status.Rank()
		if rank < 0 {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "legacy orders require an explicit status update")
		}
		next, ok := enums.OrderStatusAt(rank + 1)
		if !ok {
			// already at the end of the flow
			return nil
		}
		if next.Owner() == enums.RankOwnerCustomer {
			return pkgerrors.New(pkgerrors.CodeStateConflict,
				fmt.Sprintf("status %q is confirmed by the customer", next))
		}
		return s.applyStatus(ctx, repo, order.ID, next)
	})
	if err != nil {
		return nil, err
	}
	return s.AdminDetail(ctx, orderID)
}

func (s *service) StepBack(ctx context.Context, orderID uuid.UUID) (*AdminOrder, error) {
	if orderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		order, err := repo.FindByID(ctx, orderID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
		}

		rank := order.Status.Rank()
		if rank < 0 {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "legacy orders require an explicit status update")
		}
		if rank == 0 {
			return nil
		}
		prev, _ := enums.OrderStatusAt(rank - 1)
		return s.applyStatus(ctx, repo, order.ID, prev)
	})
	if err != nil {
		return nil, err
	}
	return s.AdminDetail(ctx, orderID)
}

func (s *service) ConfirmDropOff(ctx context.Context, pickupCode, confirmCode string) (*PublicOrder, error) {
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		order, err := repo.FindByPickupCode(ctx, pickupCode)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return pkgerrors.New(pkgerrors.CodeNotFound, msgOrderNotFound)
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
		}
		if order.Status != enums.OrderStatusPaid {
			return pkgerrors.New(pkgerrors.CodeStateConflict, msgAlreadyDroppedOff)
		}
		if confirmCode != order.PickupCode {
			return pkgerrors.New(pkgerrors.CodeBadCode, msgCodeMismatch)
		}
		return s.applyStatus(ctx, repo, order.ID, enums.OrderStatusDroppedOff)
	})
	if err != nil {
		return nil, err
	}
	return s.PublicStatus(ctx, pickupCode)
}

func (s *service) ConfirmCustomerPickup(ctx context.Context, pickupCode, confirmCode string) (*PublicOrder, error) {
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		order, err := repo.FindByPickupCode(ctx, pickupCode)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return pkgerrors.New(pkgerrors.CodeNotFound, msgOrderNotFound)
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
		}
		if order.Status != enums.OrderStatusReadyForPickup {
			return pkgerrors.New(pkgerrors.CodeStateConflict, msgNotReadyForPickup)
		}
		if confirmCode != order.PickupCode {
			return pkgerrors.New(pkgerrors.CodeBadCode, msgCodeMismatch)
		}
		return s.applyStatus(ctx, repo, order.ID, enums.OrderStatusPickedUpByCustomer)
	})
	if err != nil {
		return nil, err
	}
	return s.PublicStatus(ctx, pickupCode)
}

// ConfirmReview closes out an order after the customer leaves a review. It is
// intentionally silent: unknown codes and orders outside the review window
// are ignored so the storefront can fire it unconditionally.
func (s *service) ConfirmReview(ctx context.Context, pickupCode string) error {
	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		order, err := repo.FindByPickupCode(ctx, pickupCode)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
		}
		switch order.Status {
		case enums.OrderStatusPickedUpByCustomer, enums.OrderStatusReview:
			return s.applyStatus(ctx, repo, order.ID, enums.OrderStatusCompleted)
		default:
			return nil
		}
	})
}

func (s *service) PublicStatus(ctx context.Context, pickupCode string) (*PublicOrder, error) {
	order, err := s.repo.FindByPickupCode(ctx, pickupCode)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, msgOrderNotFound)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	return toPublicOrder(order), nil
}

func (s *service) AdminDetail(ctx context.Context, orderID uuid.UUID) (*AdminOrder, error) {
	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	detail := toAdminOrder(order)
	return &detail, nil
}

func (s *service) AdminList(ctx context.Context, filters ListFilters) (*OrderList, error) {
	rows, total, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}
	list := &OrderList{Orders: make([]AdminOrder, 0, len(rows)), Total: total}
	for i := range rows {
		list.Orders = append(list.Orders, toAdminOrder(&rows[i]))
	}
	return list, nil
}

// Archive hard-deletes the order and its line items. Pickup codes are only
// unique among live orders, so archiving frees the code for reuse.
func (s *service) Archive(ctx context.Context, orderID uuid.UUID) error {
	if orderID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if _, err := repo.FindByID(ctx, orderID); err != nil {
			if err == gorm.ErrRecordNotFound {
				return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
		}
		if err := repo.Delete(ctx, orderID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete order")
		}
		return nil
	})
}

func (s *service) applyStatus(ctx context.Context, repo Repository, orderID uuid.UUID, target enums.OrderStatus) error {
	if err := repo.Update(ctx, orderID, statusUpdates(target, s.now())); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order status")
	}
	return nil
}
