package services

import (
	"context"
	"errors"
	"testing"

	"storefront-api/internal/domain"
	"storefront-api/internal/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStatsFixture() (*mocks.MockOrderRepository, *mocks.MockUserRepository, *mocks.MockProductRepository, *mocks.MockReviewRepository, *StatsService) {
	orders := new(mocks.MockOrderRepository)
	users := new(mocks.MockUserRepository)
	products := new(mocks.MockProductRepository)
	reviews := new(mocks.MockReviewRepository)
	return orders, users, products, reviews, NewStatsService(orders, users, products, reviews)
}

func TestUserStatsDistinctProductCount(t *testing.T) {
	orders, users, _, reviews, svc := newStatsFixture()

	users.On("FindByEmail", TestEmail).Return(&domain.User{ID: 5, Email: TestEmail}, nil)
	// Two orders containing the same product with different quantities:
	// still one distinct purchased product.
	orders.On("FindByEmail", TestEmail).Return([]domain.Order{
		*NewTestOrder(1, "pi_1", 20, TestEmail, domain.StatusPending,
			domain.OrderItem{ProductID: "prod_A", Quantity: 2}),
		*NewTestOrder(2, "pi_2", 30, TestEmail, domain.StatusPending,
			domain.OrderItem{ProductID: "prod_A", Quantity: 5}),
	}, nil)
	reviews.On("CountByUser", uint64(5)).Return(int64(0), nil)

	stats, err := svc.GetUserStats(context.Background(), TestEmail)

	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalPurchasedProducts)
	assert.Equal(t, "50.00", stats.TotalPayments)
}

func TestUserStatsTotalPaymentsFormatted(t *testing.T) {
	orders, users, _, reviews, svc := newStatsFixture()

	users.On("FindByEmail", TestEmail).Return(&domain.User{ID: 5, Email: TestEmail}, nil)
	orders.On("FindByEmail", TestEmail).Return([]domain.Order{
		*NewTestOrder(1, "pi_1", 49.99, TestEmail, domain.StatusPending,
			domain.OrderItem{ProductID: "prod_A", Quantity: 1}),
		*NewTestOrder(2, "pi_2", 99.98, TestEmail, domain.StatusCompleted,
			domain.OrderItem{ProductID: "prod_B", Quantity: 1}),
	}, nil)
	reviews.On("CountByUser", uint64(5)).Return(int64(3), nil)

	stats, err := svc.GetUserStats(context.Background(), TestEmail)

	require.NoError(t, err)
	assert.Equal(t, "149.97", stats.TotalPayments)
	assert.Equal(t, int64(3), stats.TotalReviews)
	assert.Equal(t, 2, stats.TotalPurchasedProducts)
}

func TestUserStatsUserNotFound(t *testing.T) {
	_, users, _, _, svc := newStatsFixture()

	users.On("FindByEmail", "ghost@example.com").Return(nil, nil)

	_, err := svc.GetUserStats(context.Background(), "ghost@example.com")
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserStatsNoOrders(t *testing.T) {
	orders, users, _, reviews, svc := newStatsFixture()

	users.On("FindByEmail", TestEmail).Return(&domain.User{ID: 5, Email: TestEmail}, nil)
	orders.On("FindByEmail", TestEmail).Return([]domain.Order{}, nil)
	reviews.On("CountByUser", uint64(5)).Return(int64(2), nil)

	stats, err := svc.GetUserStats(context.Background(), TestEmail)

	require.NoError(t, err)
	assert.Equal(t, "0.00", stats.TotalPayments)
	assert.Equal(t, int64(2), stats.TotalReviews)
	assert.Equal(t, 0, stats.TotalPurchasedProducts)
}

func TestAdminStatsMonthlyOrderingAndSums(t *testing.T) {
	orders, users, products, reviews, svc := newStatsFixture()

	orders.On("Count").Return(int64(3), nil)
	products.On("Count").Return(int64(12), nil)
	reviews.On("Count").Return(int64(7), nil)
	users.On("Count").Return(int64(4), nil)
	orders.On("SumAmount").Return(223.49, nil)
	// Buckets arrive unordered from the store.
	orders.On("MonthlyEarnings").Return([]domain.MonthlyEarning{
		{Year: 2024, Month: 1, Total: 120.5},
		{Year: 2023, Month: 12, Total: 99.99},
		{Year: 2024, Month: 2, Total: 3},
	}, nil)

	stats, err := svc.GetAdminStats(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.TotalOrders)
	assert.Equal(t, int64(12), stats.TotalProducts)
	assert.Equal(t, int64(7), stats.TotalReviews)
	assert.Equal(t, int64(4), stats.TotalUsers)
	assert.Equal(t, "223.49", stats.TotalEarnings)

	require.Len(t, stats.MonthlyEarnings, 3)
	assert.Equal(t, MonthlyEarningReport{Month: 12, Year: 2023, Earnings: "99.99"}, stats.MonthlyEarnings[0])
	assert.Equal(t, MonthlyEarningReport{Month: 1, Year: 2024, Earnings: "120.50"}, stats.MonthlyEarnings[1])
	assert.Equal(t, MonthlyEarningReport{Month: 2, Year: 2024, Earnings: "3.00"}, stats.MonthlyEarnings[2])
}

func TestAdminStatsEmptyStore(t *testing.T) {
	orders, users, products, reviews, svc := newStatsFixture()

	orders.On("Count").Return(int64(0), nil)
	products.On("Count").Return(int64(0), nil)
	reviews.On("Count").Return(int64(0), nil)
	users.On("Count").Return(int64(0), nil)
	orders.On("SumAmount").Return(float64(0), nil)
	orders.On("MonthlyEarnings").Return([]domain.MonthlyEarning{}, nil)

	stats, err := svc.GetAdminStats(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "0.00", stats.TotalEarnings)
	require.NotNil(t, stats.MonthlyEarnings)
	assert.Empty(t, stats.MonthlyEarnings)
}

func TestAdminStatsPropagatesStoreError(t *testing.T) {
	orders, users, products, reviews, svc := newStatsFixture()

	orders.On("Count").Return(int64(0), errors.New("store unreachable"))
	products.On("Count").Return(int64(0), nil)
	reviews.On("Count").Return(int64(0), nil)
	users.On("Count").Return(int64(0), nil)
	orders.On("SumAmount").Return(float64(0), nil)
	orders.On("MonthlyEarnings").Return([]domain.MonthlyEarning{}, nil)

	_, err := svc.GetAdminStats(context.Background())
	require.Error(t, err)
}
