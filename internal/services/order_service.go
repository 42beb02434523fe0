package services

import (
	"context"
	"fmt"
	"log"
	"math"
	"time"

	"storefront-api/internal/domain"
	rabbit "storefront-api/internal/infra/rabbitmq"
	"storefront-api/internal/infra/stripe"
	"storefront-api/internal/repository"
)

// minorUnitScale is the gateway's minor-unit factor for a two-decimal
// currency (USD cents). All amount conversions go through it.
const minorUnitScale = 100

type OrderService struct {
	repo      repository.OrderRepository
	gateway   stripe.GatewayInterface
	publisher rabbit.PublisherInterface
}

// NewOrderService wires the reconciler. publisher may be nil, in which case
// lifecycle events are not emitted.
func NewOrderService(r repository.OrderRepository, g stripe.GatewayInterface, pub rabbit.PublisherInterface) *OrderService {
	return &OrderService{
		repo:      r,
		gateway:   g,
		publisher: pub,
	}
}

// CreateCheckoutSession opens a gateway session for the cart. Purely a
// gateway call: nothing is persisted until the payment is confirmed.
func (s *OrderService) CreateCheckoutSession(ctx context.Context, cart []domain.CartItem) (*stripe.CheckoutSession, error) {
	if len(cart) == 0 {
		return nil, ErrEmptyCart
	}

	items := make([]stripe.LineItem, 0, len(cart))
	for _, it := range cart {
		if it.Name == "" || it.Price <= 0 || it.Quantity < 1 {
			return nil, ErrInvalidCartItem
		}
		items = append(items, stripe.LineItem{
			Name:       it.Name,
			Image:      it.Image,
			UnitAmount: int64(math.Round(it.Price * minorUnitScale)),
			Quantity:   it.Quantity,
		})
	}

	sess, err := s.gateway.CreateCheckoutSession(ctx, items)
	if err != nil {
		log.Printf("Error creating checkout session: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrGateway, err)
	}
	return sess, nil
}

// ConfirmPayment reconciles one checkout session into exactly one order.
// The gateway is the source of truth: amount, items and email come from the
// retrieved session, status is derived from the payment intent alone. The
// payment-intent id keys the upsert, so replaying a confirmation only
// refreshes the status of the already committed order.
func (s *OrderService) ConfirmPayment(ctx context.Context, sessionID string) (*domain.Order, error) {
	if sessionID == "" {
		return nil, ErrSessionIDRequired
	}

	sess, err := s.gateway.RetrieveCheckoutSession(ctx, sessionID)
	if err != nil {
		log.Printf("Error retrieving checkout session %s: %v", sessionID, err)
		return nil, fmt.Errorf("%w: %v", ErrGateway, err)
	}
	if sess.PaymentIntent.ID == "" {
		return nil, fmt.Errorf("%w: session %s has no payment intent", ErrGateway, sessionID)
	}

	status := domain.StatusFailed
	if sess.PaymentIntent.Status == "succeeded" {
		status = domain.StatusPending
	}

	existing, err := s.repo.FindByOrderID(sess.PaymentIntent.ID)
	if err != nil {
		return nil, err
	}

	var order *domain.Order
	if existing == nil {
		items := make([]domain.OrderItem, 0, len(sess.LineItems))
		for _, li := range sess.LineItems {
			items = append(items, domain.OrderItem{
				ProductID: li.ProductID,
				Quantity:  li.Quantity,
			})
		}
		order = &domain.Order{
			OrderID: sess.PaymentIntent.ID,
			Amount:  float64(sess.AmountTotal) / minorUnitScale,
			Email:   sess.CustomerEmail,
			Status:  status,
			Items:   items,
		}
	} else {
		existing.Status = status
		order = existing
	}

	if err := s.repo.Upsert(order); err != nil {
		log.Printf("Error persisting order %s: %v", order.OrderID, err)
		return nil, err
	}

	go s.publishOrderConfirmed(context.Background(), order)

	return order, nil
}

func (s *OrderService) publishOrderConfirmed(ctx context.Context, order *domain.Order) {
	if s.publisher == nil {
		return
	}
	evt := domain.OrderConfirmedEvent{
		OrderID: order.OrderID,
		Email:   order.Email,
		Amount:  order.Amount,
		Status:  order.Status,
		At:      time.Now(),
	}
	if err := s.publisher.Publish(ctx, "order.confirmed", evt); err != nil {
		log.Printf("Failed to publish order.confirmed event: %v", err)
	}
}

func (s *OrderService) GetOrdersByEmail(ctx context.Context, email string) ([]domain.Order, error) {
	orders, err := s.repo.FindByEmail(email)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, ErrOrderNotFound
	}
	return orders, nil
}

func (s *OrderService) GetOrderByID(ctx context.Context, id uint64) (*domain.Order, error) {
	o, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, ErrOrderNotFound
	}
	return o, nil
}

func (s *OrderService) GetAllOrders(ctx context.Context) ([]domain.Order, error) {
	return s.repo.FindAll()
}

func (s *OrderService) UpdateOrderStatus(ctx context.Context, id uint64, status domain.OrderStatus) (*domain.Order, error) {
	if !domain.ValidStatus(status) {
		return nil, ErrInvalidStatus
	}
	o, err := s.repo.UpdateStatus(id, status)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, ErrOrderNotFound
	}

	go func(order domain.Order) {
		if s.publisher == nil {
			return
		}
		evt := domain.OrderStatusUpdatedEvent{ID: order.ID, Status: order.Status, At: time.Now()}
		if err := s.publisher.Publish(context.Background(), "order.status.updated", evt); err != nil {
			log.Printf("Failed to publish order.status.updated event: %v", err)
		}
	}(*o)

	return o, nil
}

func (s *OrderService) DeleteOrder(ctx context.Context, id uint64) (*domain.Order, error) {
	o, err := s.repo.Delete(id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, ErrOrderNotFound
	}
	return o, nil
}
