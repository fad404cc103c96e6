package services

import (
	"backend/entity"
	"backend/pkg/rbac"
	"backend/repository"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderNotifier receives order lifecycle events; the ws hub implements
// it. A nil notifier is fine.
type OrderNotifier interface {
	OrderCreated(o *entity.Order)
	OrderUpdated(o *entity.Order)
}

type OrderService struct {
	DB       *gorm.DB
	Repo     *repository.OrderRepository
	CartRepo *repository.CartRepository
	UserRepo *repository.UserRepository
	Groups   *repository.GroupRepository

	Notifier OrderNotifier
}

func NewOrderService(
	db *gorm.DB,
	repo *repository.OrderRepository,
	cartRepo *repository.CartRepository,
	userRepo *repository.UserRepository,
	groups *repository.GroupRepository,
) *OrderService {
	return &OrderService{DB: db, Repo: repo, CartRepo: cartRepo, UserRepo: userRepo, Groups: groups}
}

func (s *OrderService) notifyCreated(o *entity.Order) {
	if s.Notifier != nil {
		s.Notifier.OrderCreated(o)
	}
}

func (s *OrderService) notifyUpdated(o *entity.Order) {
	if s.Notifier != nil {
		s.Notifier.OrderUpdated(o)
	}
}

// ----- Conversion -----

// ConvertCart turns the customer's pending cart into an order plus one
// order item per line, snapshotting unit prices and the total, then
// empties the cart. All of it commits or none of it does. The delete
// is guarded on affected rows: when a concurrent conversion already
// consumed the lines, the count comes up short and the transaction
// rolls back, so one cart can never pay for two orders.
func (s *OrderService) ConvertCart(userID uint) (*entity.Order, error) {
	lines, err := s.CartRepo.ListLines(userID)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	total := decimal.Zero
	for i := range lines {
		qty := decimal.NewFromInt(int64(lines[i].Quantity))
		total = total.Add(lines[i].MenuItem.Price.Mul(qty))
	}

	var out entity.Order
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		order := entity.Order{
			UserID: userID,
			Status: entity.OrderStatusPending,
			Total:  total,
			Date:   time.Now(),
		}
		if err := s.Repo.CreateOrder(tx, &order); err != nil {
			return err
		}

		for i := range lines {
			oi := entity.OrderItem{
				OrderID:    order.ID,
				MenuItemID: lines[i].MenuItemID,
				Quantity:   lines[i].Quantity,
				UnitPrice:  lines[i].MenuItem.Price,
			}
			if err := s.Repo.CreateOrderItem(tx, &oi); err != nil {
				return err
			}
		}

		affected, err := s.CartRepo.ClearLines(tx, userID)
		if err != nil {
			return err
		}
		if affected != int64(len(lines)) {
			return ErrCartConflict
		}

		out = order
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifyCreated(&out)
	return &out, nil
}

// ----- Listing & detail -----

// ListVisible scopes the order list by role: managers see everything,
// delivery crew their assignments, customers their own orders.
func (s *OrderService) ListVisible(actor *rbac.Actor) ([]entity.Order, error) {
	switch {
	case actor.Roles.Superuser || actor.Roles.Manager:
		return s.Repo.ListAll()
	case actor.Roles.DeliveryCrew:
		return s.Repo.ListForCrew(actor.ID)
	default:
		return s.Repo.ListForCustomer(actor.ID)
	}
}

type OrderDetail struct {
	Order entity.Order       `json:"order"`
	Items []entity.OrderItem `json:"items"`
}

// Detail applies the same visibility scoping as ListVisible; an order
// outside the caller's scope reads as absent, not as forbidden.
func (s *OrderService) Detail(actor *rbac.Actor, orderID uint) (*OrderDetail, error) {
	o, err := s.Repo.GetOrder(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if !s.visible(actor, o) {
		return nil, ErrNotFound
	}

	items, err := s.Repo.GetOrderItems(o.ID)
	if err != nil {
		return nil, err
	}
	return &OrderDetail{Order: *o, Items: items}, nil
}

func (s *OrderService) visible(actor *rbac.Actor, o *entity.Order) bool {
	switch {
	case actor.Roles.Superuser || actor.Roles.Manager:
		return true
	case actor.Roles.DeliveryCrew:
		return o.DeliveryCrewID != nil && *o.DeliveryCrewID == actor.ID
	default:
		return o.UserID == actor.ID
	}
}

// ----- Update -----

// OrderPatch carries every field a caller may try to set. Which of
// them actually land depends on the caller's role.
type OrderPatch struct {
	Status         *int             `json:"status"`
	DeliveryCrewID *uint            `json:"deliveryCrewId"`
	Total          *decimal.Decimal `json:"total"`
}

// Update applies the patch role-masked: managers may set status and
// delivery crew, delivery crew status only, customers nothing. Fields
// outside the caller's mask are dropped without error and the call
// still succeeds — callers relying on that should read the response.
// Total is immutable after conversion and is dropped for everyone.
func (s *OrderService) Update(actor *rbac.Actor, orderID uint, patch *OrderPatch) (*entity.Order, error) {
	o, err := s.Repo.GetOrder(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	manager := actor.Roles.Superuser || actor.Roles.Manager

	if patch.Status != nil && (manager || actor.Roles.DeliveryCrew) {
		// only the two observed values; no transition graph is enforced
		o.Status = *patch.Status
	}

	if patch.DeliveryCrewID != nil && manager {
		crewID := *patch.DeliveryCrewID
		ok, err := s.Groups.IsMember(entity.GroupDeliveryCrew, crewID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrNotDeliveryCrew
		}
		o.DeliveryCrewID = &crewID
	}

	if err := s.Repo.SaveOrder(o); err != nil {
		return nil, err
	}

	s.notifyUpdated(o)
	return o, nil
}

// ----- Delete -----

// Delete removes the order and cascades to its items. The permission
// table already restricts this to managers.
func (s *OrderService) Delete(orderID uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		affected, err := s.Repo.DeleteOrder(tx, orderID)
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrNotFound
		}
		return nil
	})
}
