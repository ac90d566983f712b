package postgres

import (
	"context"
	"fmt"
	"time"

	"restaurant/internal/adapters/out/postgres/menurepo"
	"restaurant/internal/adapters/out/postgres/tablerepo"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/menu"
	"restaurant/internal/core/domain/model/table"

	"gorm.io/gorm"
)

type seedMenuItem struct {
	name        string
	description string
	price       string
	category    string
	available   bool
}

var seedTables = []string{"table-qr-001", "table-qr-002", "table-qr-003", "table-qr-004"}

var seedMenu = []seedMenuItem{
	{"Margherita Pizza", "Classic pizza with tomato sauce, mozzarella, and basil", "12.50", "Main Course", true},
	{"Caesar Salad", "Romaine lettuce, croutons, parmesan, and Caesar dressing", "9.00", "Appetizer", true},
	{"Spaghetti Carbonara", "Pasta with eggs, cheese, pancetta, and black pepper", "14.75", "Main Course", true},
	{"Cheesecake", "New York style cheesecake with berry compote", "7.25", "Dessert", true},
	{"Orange Juice", "Freshly squeezed orange juice", "4.00", "Beverage", true},
	{"Grilled Salmon", "Atlantic salmon with lemon butter and seasonal vegetables", "18.00", "Main Course", true},
	{"Tiramisu", "Coffee-soaked ladyfingers layered with mascarpone", "8.50", "Dessert", false},
}

// Seed fills an empty catalog with four tables and the house menu. It does nothing when
// any menu item already exists.
func Seed(ctx context.Context, db *gorm.DB, now time.Time) (bool, error) {
	seeded := false

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&menurepo.MenuItemDTO{}).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}

		tables := tablerepo.NewGormTableRepository(tx)
		for _, qr := range seedTables {
			var existing int64
			if err := tx.Model(&tablerepo.TableDTO{}).Where("qr_code = ?", qr).Count(&existing).Error; err != nil {
				return err
			}
			if existing > 0 {
				continue
			}

			t, err := table.NewTable(kernel.NewUUID(), qr, now)
			if err != nil {
				return err
			}
			if err := tables.Add(ctx, t); err != nil {
				return err
			}
		}

		items := menurepo.NewGormMenuRepository(tx)
		for _, s := range seedMenu {
			price, err := kernel.MoneyFromString(s.price)
			if err != nil {
				return err
			}

			item, err := menu.NewMenuItem(kernel.NewUUID(), s.name, s.description, price, s.category, s.available)
			if err != nil {
				return err
			}
			if err := items.Add(ctx, item); err != nil {
				return err
			}
		}

		seeded = true
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("seed: %w", err)
	}

	return seeded, nil
}
