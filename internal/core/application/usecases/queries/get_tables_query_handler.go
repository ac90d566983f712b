package queries

import (
	"context"
	"fmt"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/table"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GetTablesQueryHandler struct {
	db *gorm.DB
}

func NewGetTablesQueryHandler(db *gorm.DB) GetTablesQueryHandler {
	return GetTablesQueryHandler{db: db}
}

// Handle returns all tables ordered by QR code.
func (h GetTablesQueryHandler) Handle(ctx context.Context, query GetTablesQuery) ([]TableReadModel, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	tables := make([]TableReadModel, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			qr_code,
			status,
			created_at,
			updated_at
		FROM tables
		ORDER BY qr_code
	`).Rows()
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var t TableReadModel
		var id uuid.UUID
		var status string

		if err = rows.Scan(&id, &t.QRCode, &status, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}

		if t.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if t.Status, err = table.ParseStatus(status); err != nil {
			return nil, err
		}

		tables = append(tables, t)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return tables, nil
}
