package table

import (
	"errors"
	"strings"
	"time"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/errs"
)

var ErrTableIsNotConstructed = errors.New("Table must be created via NewTable or RestoreTable constructor")

// Table is a physical table identified by its QR code.
type Table struct {
	id        kernel.UUID
	qrCode    string
	status    Status
	createdAt time.Time
	updatedAt time.Time

	isConstructed bool
}

// NewTable registers a new, available table.
func NewTable(id kernel.UUID, qrCode string, now time.Time) (*Table, error) {
	return RestoreTable(id, qrCode, Available, now, now)
}

// RestoreTable rebuilds a table from persisted state.
func RestoreTable(id kernel.UUID, qrCode string, status Status, createdAt, updatedAt time.Time) (*Table, error) {
	t := &Table{
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		isConstructed: true,
	}

	if err := errors.Join(
		t.setID(id),
		t.setQRCode(qrCode),
		t.setStatus(status),
	); err != nil {
		return nil, err
	}

	return t, nil
}

func (t *Table) Validate() error {
	if t == nil || !t.isConstructed {
		return ErrTableIsNotConstructed
	}
	return nil
}

// ID returns the table identifier.
func (t *Table) ID() kernel.UUID {
	return t.id
}

// QRCode returns the code printed on the table.
func (t *Table) QRCode() string {
	return t.qrCode
}

// Status returns the current occupancy.
func (t *Table) Status() Status {
	return t.status
}

func (t *Table) CreatedAt() time.Time {
	return t.createdAt
}

func (t *Table) UpdatedAt() time.Time {
	return t.updatedAt
}

// IsOccupied reports whether the table hosts an active order.
func (t *Table) IsOccupied() bool {
	return t.status == Occupied
}

// Occupy marks the table occupied and reports whether the status changed.
// UpdatedAt always moves: the row was written.
func (t *Table) Occupy(now time.Time) bool {
	return t.moveTo(Occupied, now)
}

// Release marks the table available and reports whether the status changed.
func (t *Table) Release(now time.Time) bool {
	return t.moveTo(Available, now)
}

func (t *Table) moveTo(status Status, now time.Time) bool {
	changed := t.status != status
	t.status = status
	t.updatedAt = now
	return changed
}

func (t *Table) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	t.id = id
	return nil
}

func (t *Table) setQRCode(qrCode string) error {
	qrCode = strings.TrimSpace(qrCode)
	if qrCode == "" {
		return errs.NewValueIsRequiredError("qr code")
	}
	t.qrCode = qrCode
	return nil
}

func (t *Table) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	t.status = status
	return nil
}
