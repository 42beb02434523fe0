package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"storefront-api/internal/domain"
	"storefront-api/internal/infra/stripe"
	"storefront-api/internal/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// memOrderRepo enforces the same uniqueness semantics as the real store: a
// unique key on OrderID, insert collapsing into a status-only update on
// conflict. Used where mock expectations cannot express the race.
type memOrderRepo struct {
	mu        sync.Mutex
	nextID    uint64
	byOrderID map[string]*domain.Order
}

func newMemOrderRepo() *memOrderRepo {
	return &memOrderRepo{byOrderID: make(map[string]*domain.Order)}
}

func (r *memOrderRepo) Upsert(o *domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.byOrderID[o.OrderID]; ok {
		existing.Status = o.Status
		*o = *existing
		return nil
	}
	r.nextID++
	o.ID = r.nextID
	stored := *o
	r.byOrderID[o.OrderID] = &stored
	return nil
}

func (r *memOrderRepo) FindByOrderID(orderID string) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.byOrderID[orderID]
	if !ok {
		return nil, nil
	}
	cp := *o
	return &cp, nil
}

func (r *memOrderRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byOrderID)
}

func (r *memOrderRepo) FindByID(uint64) (*domain.Order, error)         { return nil, nil }
func (r *memOrderRepo) FindByEmail(string) ([]domain.Order, error)     { return nil, nil }
func (r *memOrderRepo) FindAll() ([]domain.Order, error)               { return nil, nil }
func (r *memOrderRepo) Delete(uint64) (*domain.Order, error)           { return nil, nil }
func (r *memOrderRepo) Count() (int64, error)                          { return 0, nil }
func (r *memOrderRepo) SumAmount() (float64, error)                    { return 0, nil }
func (r *memOrderRepo) MonthlyEarnings() ([]domain.MonthlyEarning, error) {
	return nil, nil
}
func (r *memOrderRepo) UpdateStatus(uint64, domain.OrderStatus) (*domain.Order, error) {
	return nil, nil
}

// chanPublisher hands published routing keys to the test goroutine.
type chanPublisher struct {
	ch chan string
}

func (p *chanPublisher) Publish(ctx context.Context, routingKey string, data any) error {
	p.ch <- routingKey
	return nil
}

func TestConfirmPaymentCreatesOrderFromGatewayState(t *testing.T) {
	gateway := new(mocks.MockGateway)
	repo := new(mocks.MockOrderRepository)

	sess := NewTestSession("succeeded", 4998,
		stripe.SessionLineItem{ProductID: "prod_A", Quantity: 1},
		stripe.SessionLineItem{ProductID: "prod_B", Quantity: 3},
	)
	gateway.On("RetrieveCheckoutSession", mock.Anything, TestSessionID).Return(sess, nil)
	repo.On("FindByOrderID", TestIntentID).Return(nil, nil)

	var persisted *domain.Order
	repo.On("Upsert", mock.AnythingOfType("*domain.Order")).Return(nil).
		Run(func(args mock.Arguments) { persisted = args.Get(0).(*domain.Order) })

	svc := NewOrderService(repo, gateway, nil)
	order, err := svc.ConfirmPayment(context.Background(), TestSessionID)

	require.NoError(t, err)
	require.NotNil(t, persisted)
	assert.Equal(t, TestIntentID, order.OrderID)
	assert.Equal(t, 49.98, order.Amount)
	assert.Equal(t, TestEmail, order.Email)
	assert.Equal(t, domain.StatusPending, order.Status)
	require.Len(t, order.Items, 2)
	assert.Equal(t, "prod_A", order.Items[0].ProductID)
	assert.Equal(t, int64(1), order.Items[0].Quantity)
	assert.Equal(t, "prod_B", order.Items[1].ProductID)
	assert.Equal(t, int64(3), order.Items[1].Quantity)
	repo.AssertExpectations(t)
}

func TestConfirmPaymentStatusDerivation(t *testing.T) {
	cases := []struct {
		intentStatus string
		want         domain.OrderStatus
	}{
		{"succeeded", domain.StatusPending},
		{"requires_payment_method", domain.StatusFailed},
		{"processing", domain.StatusFailed},
		{"canceled", domain.StatusFailed},
	}

	for _, tc := range cases {
		t.Run(tc.intentStatus, func(t *testing.T) {
			gateway := new(mocks.MockGateway)
			repo := new(mocks.MockOrderRepository)

			gateway.On("RetrieveCheckoutSession", mock.Anything, TestSessionID).
				Return(NewTestSession(tc.intentStatus, 1000), nil)
			repo.On("FindByOrderID", TestIntentID).Return(nil, nil)
			repo.On("Upsert", mock.AnythingOfType("*domain.Order")).Return(nil)

			svc := NewOrderService(repo, gateway, nil)
			order, err := svc.ConfirmPayment(context.Background(), TestSessionID)

			require.NoError(t, err)
			assert.Equal(t, tc.want, order.Status)
		})
	}
}

func TestConfirmPaymentAmountConversion(t *testing.T) {
	cases := []struct {
		amountTotal int64
		want        float64
	}{
		{0, 0},
		{1, 0.01},
		{4998, 49.98},
		{100000, 1000},
	}

	for _, tc := range cases {
		gateway := new(mocks.MockGateway)
		repo := new(mocks.MockOrderRepository)

		gateway.On("RetrieveCheckoutSession", mock.Anything, TestSessionID).
			Return(NewTestSession("succeeded", tc.amountTotal), nil)
		repo.On("FindByOrderID", TestIntentID).Return(nil, nil)
		repo.On("Upsert", mock.AnythingOfType("*domain.Order")).Return(nil)

		svc := NewOrderService(repo, gateway, nil)
		order, err := svc.ConfirmPayment(context.Background(), TestSessionID)

		require.NoError(t, err)
		assert.Equal(t, float64(tc.amountTotal)/100, order.Amount)
		assert.Equal(t, tc.want, order.Amount)
	}
}

func TestConfirmPaymentIsIdempotent(t *testing.T) {
	gateway := new(mocks.MockGateway)
	repo := newMemOrderRepo()

	sess := NewTestSession("succeeded", 4998,
		stripe.SessionLineItem{ProductID: "prod_A", Quantity: 2},
	)
	gateway.On("RetrieveCheckoutSession", mock.Anything, TestSessionID).Return(sess, nil)

	svc := NewOrderService(repo, gateway, nil)

	first, err := svc.ConfirmPayment(context.Background(), TestSessionID)
	require.NoError(t, err)
	second, err := svc.ConfirmPayment(context.Background(), TestSessionID)
	require.NoError(t, err)

	assert.Equal(t, 1, repo.count())
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.OrderID, second.OrderID)
	assert.Equal(t, first.Amount, second.Amount)
	assert.Equal(t, first.Email, second.Email)
	require.Len(t, second.Items, 1)
	assert.Equal(t, "prod_A", second.Items[0].ProductID)
}

func TestConfirmPaymentConcurrentSameSession(t *testing.T) {
	gateway := new(mocks.MockGateway)
	repo := newMemOrderRepo()

	gateway.On("RetrieveCheckoutSession", mock.Anything, TestSessionID).
		Return(NewTestSession("succeeded", 2500), nil)

	svc := NewOrderService(repo, gateway, nil)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.ConfirmPayment(context.Background(), TestSessionID)
		}(i)
	}
	wg.Wait()

	require.NoError(t, errs[0])
	require.NoError(t, errs[1])
	assert.Equal(t, 1, repo.count(), "concurrent confirmations must not produce two orders")
}

func TestConfirmPaymentUpdatesStatusOnly(t *testing.T) {
	gateway := new(mocks.MockGateway)
	repo := new(mocks.MockOrderRepository)

	existing := NewTestOrder(7, TestIntentID, 49.98, TestEmail, domain.StatusPending,
		domain.OrderItem{ProductID: "prod_A", Quantity: 2})

	// Gateway now reports a non-succeeded intent for the same session.
	gateway.On("RetrieveCheckoutSession", mock.Anything, TestSessionID).
		Return(NewTestSession("requires_payment_method", 9999), nil)
	repo.On("FindByOrderID", TestIntentID).Return(existing, nil)
	repo.On("Upsert", mock.AnythingOfType("*domain.Order")).Return(nil)

	svc := NewOrderService(repo, gateway, nil)
	order, err := svc.ConfirmPayment(context.Background(), TestSessionID)

	require.NoError(t, err)
	assert.Equal(t, domain.StatusFailed, order.Status)
	// Amount, email and items stay as first committed, never re-derived.
	assert.Equal(t, 49.98, order.Amount)
	assert.Equal(t, TestEmail, order.Email)
	require.Len(t, order.Items, 1)
}

func TestConfirmPaymentRequiresSessionID(t *testing.T) {
	gateway := new(mocks.MockGateway)
	repo := new(mocks.MockOrderRepository)

	svc := NewOrderService(repo, gateway, nil)
	_, err := svc.ConfirmPayment(context.Background(), "")

	require.ErrorIs(t, err, ErrSessionIDRequired)
	gateway.AssertNotCalled(t, "RetrieveCheckoutSession", mock.Anything, mock.Anything)
}

func TestConfirmPaymentGatewayFailure(t *testing.T) {
	gateway := new(mocks.MockGateway)
	repo := new(mocks.MockOrderRepository)

	gateway.On("RetrieveCheckoutSession", mock.Anything, TestSessionID).
		Return(nil, errors.New("connection refused"))

	svc := NewOrderService(repo, gateway, nil)
	_, err := svc.ConfirmPayment(context.Background(), TestSessionID)

	require.ErrorIs(t, err, ErrGateway)
	repo.AssertNotCalled(t, "Upsert", mock.Anything)
}

func TestConfirmPaymentMissingPaymentIntent(t *testing.T) {
	gateway := new(mocks.MockGateway)
	repo := new(mocks.MockOrderRepository)

	sess := NewTestSession("succeeded", 1000)
	sess.PaymentIntent = stripe.PaymentIntent{}
	gateway.On("RetrieveCheckoutSession", mock.Anything, TestSessionID).Return(sess, nil)

	svc := NewOrderService(repo, gateway, nil)
	_, err := svc.ConfirmPayment(context.Background(), TestSessionID)

	require.ErrorIs(t, err, ErrGateway)
	repo.AssertNotCalled(t, "Upsert", mock.Anything)
}

func TestConfirmPaymentPersistenceFailure(t *testing.T) {
	gateway := new(mocks.MockGateway)
	repo := new(mocks.MockOrderRepository)

	gateway.On("RetrieveCheckoutSession", mock.Anything, TestSessionID).
		Return(NewTestSession("succeeded", 1000), nil)
	repo.On("FindByOrderID", TestIntentID).Return(nil, nil)
	repo.On("Upsert", mock.AnythingOfType("*domain.Order")).Return(errors.New("write rejected"))

	svc := NewOrderService(repo, gateway, nil)
	_, err := svc.ConfirmPayment(context.Background(), TestSessionID)

	require.Error(t, err)
}

func TestConfirmPaymentPublishesEvent(t *testing.T) {
	gateway := new(mocks.MockGateway)
	repo := new(mocks.MockOrderRepository)
	pub := &chanPublisher{ch: make(chan string, 1)}

	gateway.On("RetrieveCheckoutSession", mock.Anything, TestSessionID).
		Return(NewTestSession("succeeded", 1000), nil)
	repo.On("FindByOrderID", TestIntentID).Return(nil, nil)
	repo.On("Upsert", mock.AnythingOfType("*domain.Order")).Return(nil)

	svc := NewOrderService(repo, gateway, pub)
	_, err := svc.ConfirmPayment(context.Background(), TestSessionID)
	require.NoError(t, err)

	select {
	case key := <-pub.ch:
		assert.Equal(t, "order.confirmed", key)
	case <-time.After(time.Second):
		t.Fatal("expected order.confirmed event")
	}
}

func TestCreateCheckoutSessionRoundsMinorUnits(t *testing.T) {
	gateway := new(mocks.MockGateway)
	repo := new(mocks.MockOrderRepository)

	var sent []stripe.LineItem
	gateway.On("CreateCheckoutSession", mock.Anything, mock.AnythingOfType("[]stripe.LineItem")).
		Return(&stripe.CheckoutSession{ID: TestSessionID}, nil).
		Run(func(args mock.Arguments) { sent = args.Get(1).([]stripe.LineItem) })

	svc := NewOrderService(repo, gateway, nil)
	sess, err := svc.CreateCheckoutSession(context.Background(), []domain.CartItem{
		{Name: "Mug", Price: 19.999, Quantity: 2},
		{Name: "Shirt", Price: 25.00, Quantity: 1},
	})

	require.NoError(t, err)
	assert.Equal(t, TestSessionID, sess.ID)
	require.Len(t, sent, 2)
	assert.Equal(t, int64(2000), sent[0].UnitAmount)
	assert.Equal(t, int64(2), sent[0].Quantity)
	assert.Equal(t, int64(2500), sent[1].UnitAmount)
}

func TestCreateCheckoutSessionValidation(t *testing.T) {
	gateway := new(mocks.MockGateway)
	repo := new(mocks.MockOrderRepository)
	svc := NewOrderService(repo, gateway, nil)

	_, err := svc.CreateCheckoutSession(context.Background(), nil)
	require.ErrorIs(t, err, ErrEmptyCart)

	_, err = svc.CreateCheckoutSession(context.Background(), []domain.CartItem{
		{Name: "Mug", Price: 0, Quantity: 1},
	})
	require.ErrorIs(t, err, ErrInvalidCartItem)

	_, err = svc.CreateCheckoutSession(context.Background(), []domain.CartItem{
		{Name: "Mug", Price: 10, Quantity: 0},
	})
	require.ErrorIs(t, err, ErrInvalidCartItem)

	gateway.AssertNotCalled(t, "CreateCheckoutSession", mock.Anything, mock.Anything)
}

func TestCreateCheckoutSessionGatewayFailure(t *testing.T) {
	gateway := new(mocks.MockGateway)
	repo := new(mocks.MockOrderRepository)

	gateway.On("CreateCheckoutSession", mock.Anything, mock.Anything).
		Return(nil, errors.New("invalid line item"))

	svc := NewOrderService(repo, gateway, nil)
	_, err := svc.CreateCheckoutSession(context.Background(), []domain.CartItem{
		{Name: "Mug", Price: 10, Quantity: 1},
	})

	require.ErrorIs(t, err, ErrGateway)
}

func TestUpdateOrderStatusValidatesEnum(t *testing.T) {
	repo := new(mocks.MockOrderRepository)
	svc := NewOrderService(repo, new(mocks.MockGateway), nil)

	_, err := svc.UpdateOrderStatus(context.Background(), 1, "cancelled")

	require.ErrorIs(t, err, ErrInvalidStatus)
	repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything)
}

func TestUpdateOrderStatusPublishesEvent(t *testing.T) {
	repo := new(mocks.MockOrderRepository)
	pub := &chanPublisher{ch: make(chan string, 1)}

	updated := NewTestOrder(3, TestIntentID, 10, TestEmail, domain.StatusShipped)
	repo.On("UpdateStatus", uint64(3), domain.StatusShipped).Return(updated, nil)

	svc := NewOrderService(repo, new(mocks.MockGateway), pub)
	order, err := svc.UpdateOrderStatus(context.Background(), 3, domain.StatusShipped)

	require.NoError(t, err)
	assert.Equal(t, domain.StatusShipped, order.Status)

	select {
	case key := <-pub.ch:
		assert.Equal(t, "order.status.updated", key)
	case <-time.After(time.Second):
		t.Fatal("expected order.status.updated event")
	}
}

func TestGetOrdersByEmailNotFound(t *testing.T) {
	repo := new(mocks.MockOrderRepository)
	repo.On("FindByEmail", "nobody@example.com").Return([]domain.Order{}, nil)

	svc := NewOrderService(repo, new(mocks.MockGateway), nil)
	_, err := svc.GetOrdersByEmail(context.Background(), "nobody@example.com")

	require.ErrorIs(t, err, ErrOrderNotFound)
}

func TestGetOrderByIDNotFound(t *testing.T) {
	repo := new(mocks.MockOrderRepository)
	repo.On("FindByID", uint64(42)).Return(nil, nil)

	svc := NewOrderService(repo, new(mocks.MockGateway), nil)
	_, err := svc.GetOrderByID(context.Background(), 42)

	require.ErrorIs(t, err, ErrOrderNotFound)
}

func TestDeleteOrderNotFound(t *testing.T) {
	repo := new(mocks.MockOrderRepository)
	repo.On("Delete", uint64(42)).Return(nil, nil)

	svc := NewOrderService(repo, new(mocks.MockGateway), nil)
	_, err := svc.DeleteOrder(context.Background(), 42)

	require.ErrorIs(t, err, ErrOrderNotFound)
}
