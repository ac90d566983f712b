package orderrepo

import (
	"context"
	"errors"

	"restaurant/internal/adapters/out/postgres/pgerr"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a repository bound to db, which may be a transaction.
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Add inserts the order and all of its items.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Omit("Table", "Items.MenuItem").Create(&dto).Error; err != nil {
		return pgerr.Classify("insert order", err)
	}

	return nil
}

// Update writes the order's status and UpdatedAt. Items are never rewritten.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("id = ?", aggregate.ID().Bytes()).
		Updates(map[string]any{
			"status":     aggregate.Status().String(),
			"updated_at": aggregate.UpdatedAt(),
		})
	if result.Error != nil {
		return pgerr.Classify("update order", result.Error)
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", aggregate.ID().String())
	}

	return nil
}

// Get retrieves an order with its items.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	return r.get(ctx, id, false)
}

// GetForUpdate retrieves an order and locks its row until the transaction ends.
// Items are immutable, so they are read without a lock.
func (r *GormOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	return r.get(ctx, id, true)
}

func (r *GormOrderRepository) get(ctx context.Context, id kernel.UUID, lock bool) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	db, operation := r.db.WithContext(ctx), "get order"
	if lock {
		db, operation = db.Clauses(clause.Locking{Strength: "UPDATE"}), "lock order"
	}

	var dto OrderDTO
	if err := db.First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, pgerr.Classify(operation, err)
	}

	if err := r.db.WithContext(ctx).
		Where("order_id = ?", dto.ID).
		Order("position").
		Find(&dto.Items).Error; err != nil {
		return nil, pgerr.Classify("get order items", err)
	}

	return toDomain(dto)
}

// CountActiveByTable counts the table's orders in pending, preparing or ready.
func (r *GormOrderRepository) CountActiveByTable(ctx context.Context, tableID kernel.UUID) (int64, error) {
	if err := tableID.Validate(); err != nil {
		return 0, err
	}

	active := make([]string, 0, len(order.ActiveStatuses()))
	for _, s := range order.ActiveStatuses() {
		active = append(active, s.String())
	}

	var count int64
	err := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("table_id = ? AND status IN ?", tableID.Bytes(), active).
		Count(&count).Error
	if err != nil {
		return 0, pgerr.Classify("count active orders", err)
	}

	return count, nil
}
