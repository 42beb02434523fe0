package services

import (
	"context"
	"sort"

	"storefront-api/internal/domain"
	"storefront-api/internal/repository"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

type UserStats struct {
	TotalPayments          string `json:"totalPayments"`
	TotalReviews           int64  `json:"totalReviews"`
	TotalPurchasedProducts int    `json:"totalPurchasedProducts"`
}

type MonthlyEarningReport struct {
	Month    int    `json:"month"`
	Year     int    `json:"year"`
	Earnings string `json:"earnings"`
}

type AdminStats struct {
	TotalOrders     int64                  `json:"totalOrders"`
	TotalProducts   int64                  `json:"totalProducts"`
	TotalReviews    int64                  `json:"totalReviews"`
	TotalUsers      int64                  `json:"totalUsers"`
	TotalEarnings   string                 `json:"totalEarnings"`
	MonthlyEarnings []MonthlyEarningReport `json:"monthlyEarnings"`
}

// StatsService derives reports from committed orders and reviews at read
// time. Nothing here is cached or persisted.
type StatsService struct {
	orders   repository.OrderRepository
	users    repository.UserRepository
	products repository.ProductRepository
	reviews  repository.ReviewRepository
}

func NewStatsService(
	orders repository.OrderRepository,
	users repository.UserRepository,
	products repository.ProductRepository,
	reviews repository.ReviewRepository,
) *StatsService {
	return &StatsService{
		orders:   orders,
		users:    users,
		products: products,
		reviews:  reviews,
	}
}

// GetUserStats sums the user's order amounts, counts their reviews, and
// counts the distinct products across all their orders (distinct product
// ids, not units).
func (s *StatsService) GetUserStats(ctx context.Context, email string) (*UserStats, error) {
	user, err := s.users.FindByEmail(email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	orders, err := s.orders.FindByEmail(email)
	if err != nil {
		return nil, err
	}

	totalPayments := decimal.Zero
	distinct := make(map[string]struct{})
	for _, o := range orders {
		totalPayments = totalPayments.Add(decimal.NewFromFloat(o.Amount))
		for _, item := range o.Items {
			distinct[item.ProductID] = struct{}{}
		}
	}

	totalReviews, err := s.reviews.CountByUser(user.ID)
	if err != nil {
		return nil, err
	}

	return &UserStats{
		TotalPayments:          totalPayments.StringFixed(2),
		TotalReviews:           totalReviews,
		TotalPurchasedProducts: len(distinct),
	}, nil
}

// GetAdminStats fans the independent collection reads out concurrently and
// assembles the dashboard. Monthly buckets come back from the store
// unordered and are sorted ascending by (year, month) here.
func (s *StatsService) GetAdminStats(ctx context.Context) (*AdminStats, error) {
	var (
		totalOrders, totalProducts, totalReviews, totalUsers int64
		totalEarnings                                        float64
		monthly                                              []domain.MonthlyEarning
	)

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() (err error) { totalOrders, err = s.orders.Count(); return })
	g.Go(func() (err error) { totalProducts, err = s.products.Count(); return })
	g.Go(func() (err error) { totalReviews, err = s.reviews.Count(); return })
	g.Go(func() (err error) { totalUsers, err = s.users.Count(); return })
	g.Go(func() (err error) { totalEarnings, err = s.orders.SumAmount(); return })
	g.Go(func() (err error) { monthly, err = s.orders.MonthlyEarnings(); return })
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(monthly, func(i, j int) bool {
		if monthly[i].Year != monthly[j].Year {
			return monthly[i].Year < monthly[j].Year
		}
		return monthly[i].Month < monthly[j].Month
	})

	reports := make([]MonthlyEarningReport, 0, len(monthly))
	for _, m := range monthly {
		reports = append(reports, MonthlyEarningReport{
			Month:    m.Month,
			Year:     m.Year,
			Earnings: decimal.NewFromFloat(m.Total).StringFixed(2),
		})
	}

	return &AdminStats{
		TotalOrders:     totalOrders,
		TotalProducts:   totalProducts,
		TotalReviews:    totalReviews,
		TotalUsers:      totalUsers,
		TotalEarnings:   decimal.NewFromFloat(totalEarnings).StringFixed(2),
		MonthlyEarnings: reports,
	}, nil
}
