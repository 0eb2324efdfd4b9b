package mysql

import (
	"context"
	"errors"
	"log"

	"order-service/internal/domain"
	"order-service/internal/repository"

	"gorm.io/gorm"
)

type catalogRepo struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) repository.CatalogRepository {
	return &catalogRepo{db: db}
}

func (r *catalogRepo) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	var p domain.Product
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		log.Printf("product lookup error: %v", err)
		return nil, err
	}
	return &p, nil
}

func (r *catalogRepo) GetVariant(ctx context.Context, id string) (*domain.ProductVariant, error) {
	var v domain.ProductVariant
	err := r.db.WithContext(ctx).Preload("AttributeValues").First(&v, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		log.Printf("variant lookup error: %v", err)
		return nil, err
	}
	return &v, nil
}

type stockRepo struct {
	db *gorm.DB
}

func NewStockRepository(db *gorm.DB) repository.StockRepository {
	return &stockRepo{db: db}
}

// DecrementStock is a single conditional UPDATE so two concurrent debits of
// the same counter can never overdraw it; RowsAffected tells the caller
// whether the guard held.
func (r *stockRepo) DecrementStock(ctx context.Context, targetID string, isVariant bool, qty int) (bool, error) {
	res := r.db.WithContext(ctx).Model(r.model(isVariant)).
		Where("id = ? AND stock >= ?", targetID, qty).
		UpdateColumn("stock", gorm.Expr("stock - ?", qty))
	if res.Error != nil {
		log.Printf("stock decrement error: %v", res.Error)
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *stockRepo) IncrementStock(ctx context.Context, targetID string, isVariant bool, qty int) error {
	res := r.db.WithContext(ctx).Model(r.model(isVariant)).
		Where("id = ?", targetID).
		UpdateColumn("stock", gorm.Expr("stock + ?", qty))
	if res.Error != nil {
		log.Printf("stock increment error: %v", res.Error)
	}
	return res.Error
}

func (r *stockRepo) model(isVariant bool) any {
	if isVariant {
		return &domain.ProductVariant{}
	}
	return &domain.Product{}
}
