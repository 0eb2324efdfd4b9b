package mysql

import (
	"context"
	"errors"
	"log"

	"order-service/internal/domain"
	"order-service/internal/repository"

	gomysql "github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

type orderRepo struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) repository.OrderRepository {
	return &orderRepo{db: db}
}

func (r *orderRepo) Create(ctx context.Context, order *domain.Order) error {
	if err := r.db.WithContext(ctx).Omit("Items").Create(order).Error; err != nil {
		if isDuplicateKey(err) {
			return repository.ErrDuplicateOrderNumber
		}
		log.Printf("order create error: %v", err)
		return err
	}
	return nil
}

func (r *orderRepo) CreateItems(ctx context.Context, items []*domain.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).Create(&items).Error; err != nil {
		log.Printf("order items create error: %v", err)
		return err
	}
	return nil
}

// Delete removes the header and any item rows that made it in. Used as the
// compensating action when item persistence fails mid-creation.
func (r *orderRepo) Delete(ctx context.Context, orderID string) error {
	tx := r.db.WithContext(ctx)
	if err := tx.Where("order_id = ?", orderID).Delete(&domain.OrderItem{}).Error; err != nil {
		return err
	}
	return tx.Delete(&domain.Order{}, "id = ?", orderID).Error
}

func (r *orderRepo) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	var o domain.Order
	err := r.db.WithContext(ctx).Preload("Items").First(&o, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		log.Printf("order find error: %v", err)
		return nil, err
	}
	return &o, nil
}

func (r *orderRepo) FindByOrderNumber(ctx context.Context, orderNumber string) (*domain.Order, error) {
	var o domain.Order
	err := r.db.WithContext(ctx).Preload("Items").
		First(&o, "order_number = ?", orderNumber).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		log.Printf("order find by number error: %v", err)
		return nil, err
	}
	return &o, nil
}

func (r *orderRepo) UpdateOrder(ctx context.Context, order *domain.Order) error {
	if err := r.db.WithContext(ctx).Omit("Items").Save(order).Error; err != nil {
		log.Printf("order update error: %v", err)
		return err
	}
	return nil
}

func (r *orderRepo) UpdateItem(ctx context.Context, item *domain.OrderItem) error {
	if err := r.db.WithContext(ctx).Save(item).Error; err != nil {
		log.Printf("order item update error: %v", err)
		return err
	}
	return nil
}

func (r *orderRepo) DeleteItem(ctx context.Context, itemID string) error {
	return r.db.WithContext(ctx).Delete(&domain.OrderItem{}, "id = ?", itemID).Error
}

// isDuplicateKey matches MySQL error 1062 (ER_DUP_ENTRY).
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var mysqlErr *gomysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == 1062
}
