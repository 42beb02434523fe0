package mysql

import (
	"errors"
	"log"

	"storefront-api/internal/domain"
	"storefront-api/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type orderRepo struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) repository.OrderRepository {
	return &orderRepo{db: db}
}

// Upsert relies on the unique index on order_id: the insert either lands or
// collapses into a status-only update of the existing row. Line items are
// written once, on first insert, and never touched again.
func (r *orderRepo) Upsert(order *domain.Order) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Omit("Items").Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "order_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{"status": order.Status}),
		}).Create(order)
		if result.Error != nil {
			log.Printf("Upsert order error: %v", result.Error)
			return result.Error
		}

		// On conflict MySQL does not hand the existing row's id back
		// through Create, so resolve the canonical row explicitly.
		var existing domain.Order
		if err := tx.Where("order_id = ?", order.OrderID).First(&existing).Error; err != nil {
			return err
		}
		order.ID = existing.ID
		order.CreatedAt = existing.CreatedAt

		var itemCount int64
		if err := tx.Model(&domain.OrderItem{}).Where("order_db_id = ?", existing.ID).Count(&itemCount).Error; err != nil {
			return err
		}
		if itemCount == 0 && len(order.Items) > 0 {
			for i := range order.Items {
				order.Items[i].OrderDBID = existing.ID
			}
			if err := tx.Create(&order.Items).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *orderRepo) FindByOrderID(orderID string) (*domain.Order, error) {
	var o domain.Order
	if err := r.db.Preload("Items").Where("order_id = ?", orderID).First(&o).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		log.Printf("FindByOrderID error: %v", err)
		return nil, err
	}
	return &o, nil
}

func (r *orderRepo) FindByID(id uint64) (*domain.Order, error) {
	var o domain.Order
	if err := r.db.Preload("Items").First(&o, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		log.Printf("FindByID error: %v", err)
		return nil, err
	}
	return &o, nil
}

func (r *orderRepo) FindByEmail(email string) ([]domain.Order, error) {
	var out []domain.Order
	if err := r.db.Preload("Items").Where("email = ?", email).Order("created_at DESC").Find(&out).Error; err != nil {
		log.Printf("FindByEmail error: %v", err)
		return nil, err
	}
	return out, nil
}

func (r *orderRepo) FindAll() ([]domain.Order, error) {
	var out []domain.Order
	if err := r.db.Preload("Items").Order("created_at DESC").Find(&out).Error; err != nil {
		log.Printf("FindAll orders error: %v", err)
		return nil, err
	}
	return out, nil
}

func (r *orderRepo) UpdateStatus(id uint64, status domain.OrderStatus) (*domain.Order, error) {
	var o domain.Order
	if err := r.db.Preload("Items").First(&o, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if err := r.db.Model(&o).Update("status", status).Error; err != nil {
		log.Printf("UpdateStatus error: %v", err)
		return nil, err
	}
	o.Status = status
	return &o, nil
}

func (r *orderRepo) Delete(id uint64) (*domain.Order, error) {
	var o domain.Order
	if err := r.db.Preload("Items").First(&o, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_db_id = ?", o.ID).Delete(&domain.OrderItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.Order{}, o.ID).Error
	})
	if err != nil {
		log.Printf("Delete order error: %v", err)
		return nil, err
	}
	return &o, nil
}

func (r *orderRepo) Count() (int64, error) {
	var n int64
	if err := r.db.Model(&domain.Order{}).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

func (r *orderRepo) SumAmount() (float64, error) {
	var total float64
	err := r.db.Model(&domain.Order{}).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, err
	}
	return total, nil
}

func (r *orderRepo) MonthlyEarnings() ([]domain.MonthlyEarning, error) {
	var rows []domain.MonthlyEarning
	err := r.db.Model(&domain.Order{}).
		Select("YEAR(created_at) AS year, MONTH(created_at) AS month, SUM(amount) AS total").
		Group("YEAR(created_at), MONTH(created_at)").
		Scan(&rows).Error
	if err != nil {
		log.Printf("MonthlyEarnings error: %v", err)
		return nil, err
	}
	return rows, nil
}
