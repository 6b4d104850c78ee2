package services

import (
	"context"
	"errors"

	"github.com/yeremiapane/enterprise-pos/models"
)

var (
	ErrOrderNotFound     = errors.New("order not found")
	ErrInvalidTransition = errors.New("order status cannot change from its current state")
)

var allowedTransitions = map[string][]string{
	models.OrderStatusPending: {models.OrderStatusCompleted, models.OrderStatusCancelled},
}

// UpdateOrderStatus moves a PENDING order to COMPLETED or CANCELLED.
func (a *App) UpdateOrderStatus(ctx context.Context, id, status string) (models.Order, error) {
	var (
		order models.Order
		err   = ErrOrderNotFound
	)
	a.Orders.Update(ctx, func(list []models.Order) []models.Order {
		for i := range list {
			if list[i].ID != id {
				continue
			}
			if !canTransition(list[i].Status, status) {
				err = ErrInvalidTransition
				return list
			}
			next := append([]models.Order(nil), list...)
			next[i].Status = status
			order = next[i]
			err = nil
			return next
		}
		return list
	})
	if err == nil && a.Hub != nil {
		a.Hub.BroadcastOrderUpdate(order)
	}
	return order, err
}

func canTransition(from, to string) bool {
	for _, s := range allowedTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}
