package tablerepo

import (
	"context"
	"errors"

	"restaurant/internal/adapters/out/postgres/pgerr"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/table"
	"restaurant/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormTableRepository implements ports.TableRepository using GORM.
type GormTableRepository struct {
	db *gorm.DB
}

// NewGormTableRepository creates a repository bound to db, which may be a transaction.
func NewGormTableRepository(db *gorm.DB) *GormTableRepository {
	return &GormTableRepository{db: db}
}

// Add inserts a table. Used by seeding and tests; the registry owns production inserts.
func (r *GormTableRepository) Add(ctx context.Context, t *table.Table) error {
	if err := t.Validate(); err != nil {
		return err
	}

	dto := FromDomain(t)
	return pgerr.Classify("insert table", r.db.WithContext(ctx).Create(&dto).Error)
}

// Get retrieves a table by ID.
func (r *GormTableRepository) Get(ctx context.Context, id kernel.UUID) (*table.Table, error) {
	return r.get(ctx, r.db.WithContext(ctx), id, "get table")
}

// GetForUpdate retrieves a table and locks its row until the transaction ends.
// A lock wait beyond the session lock_timeout surfaces as a transient failure.
func (r *GormTableRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*table.Table, error) {
	locked := r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"})
	return r.get(ctx, locked, id, "lock table")
}

func (r *GormTableRepository) get(_ context.Context, db *gorm.DB, id kernel.UUID, operation string) (*table.Table, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto TableDTO
	if err := db.First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("table", id.String())
		}
		return nil, pgerr.Classify(operation, err)
	}

	return toDomain(dto)
}

// GetAllIDs returns every table identifier ordered by QR code.
func (r *GormTableRepository) GetAllIDs(ctx context.Context) ([]kernel.UUID, error) {
	var raw []uuid.UUID
	if err := r.db.WithContext(ctx).Model(&TableDTO{}).Order("qr_code").Pluck("id", &raw).Error; err != nil {
		return nil, pgerr.Classify("list tables", err)
	}

	ids := make([]kernel.UUID, 0, len(raw))
	for _, id := range raw {
		parsed, err := kernel.UUIDFromBytes(id[:])
		if err != nil {
			return nil, err
		}
		ids = append(ids, parsed)
	}
	return ids, nil
}

// Update persists the table's status and UpdatedAt.
func (r *GormTableRepository) Update(ctx context.Context, t *table.Table) error {
	if err := t.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Model(&TableDTO{}).
		Where("id = ?", t.ID().Bytes()).
		Updates(map[string]any{
			"status":     t.Status().String(),
			"updated_at": t.UpdatedAt(),
		})
	if result.Error != nil {
		return pgerr.Classify("update table", result.Error)
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("table", t.ID().String())
	}

	return nil
}
