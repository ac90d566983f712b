package http

import (
	"restaurant/internal/core/application/usecases/queries"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/domain/model/table"
	"restaurant/internal/generated/servers"
)

func orderFromDomain(o *order.Order) servers.Order {
	items := o.Items()
	response := servers.Order{
		Id:          o.ID().Bytes(),
		TableId:     o.TableID().Bytes(),
		Status:      servers.OrderStatus(o.Status().String()),
		TotalAmount: o.Total().String(),
		CreatedAt:   o.CreatedAt(),
		UpdatedAt:   o.UpdatedAt(),
		Items:       make([]servers.OrderItem, len(items)),
	}
	for i, item := range items {
		response.Items[i] = servers.OrderItem{
			Id:         item.ID().Bytes(),
			MenuItemId: item.MenuItemID().Bytes(),
			Quantity:   item.Quantity(),
			Price:      item.Price().String(),
			Notes:      optional(item.Note()),
		}
	}
	return response
}

func orderFromReadModel(o queries.OrderReadModel) servers.Order {
	response := servers.Order{
		Id:          o.ID.Bytes(),
		TableId:     o.TableID.Bytes(),
		Status:      servers.OrderStatus(o.Status.String()),
		TotalAmount: o.TotalAmount.String(),
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
		Items:       make([]servers.OrderItem, len(o.Items)),
	}
	for i, item := range o.Items {
		response.Items[i] = servers.OrderItem{
			Id:           item.ID.Bytes(),
			MenuItemId:   item.MenuItemID.Bytes(),
			MenuItemName: optional(item.MenuItemName),
			Quantity:     item.Quantity,
			Price:        item.Price.String(),
			Notes:        optional(item.Note),
		}
	}
	return response
}

func tableFromDomain(t *table.Table) servers.Table {
	return servers.Table{
		Id:        t.ID().Bytes(),
		QrCode:    t.QRCode(),
		Status:    servers.TableStatus(t.Status().String()),
		CreatedAt: t.CreatedAt(),
		UpdatedAt: t.UpdatedAt(),
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
