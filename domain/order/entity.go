package order

import (
	"time"

	"github.com/example/storefront-demo/domain/cart"
)

// Status represents where an order is in its fulfilment lifecycle.
type Status string

const (
	StatusConfirmed  Status = "confirmed"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
)

// Statuses lists every status in display order.
var Statuses = []Status{StatusConfirmed, StatusProcessing, StatusShipped, StatusDelivered}

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	return s.index() >= 0
}

func (s Status) index() int {
	for i, candidate := range Statuses {
		if candidate == s {
			return i
		}
	}
	return -1
}

// Customer holds the contact and delivery details captured at checkout.
type Customer struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// Order is a snapshot of a completed checkout. Only Status changes after creation.
type Order struct {
	ID                string          `json:"id"`
	Items             []cart.LineItem `json:"items"`
	Total             float64         `json:"total"`
	Customer          Customer        `json:"customer"`
	Status            Status          `json:"status"`
	Date              time.Time       `json:"date"`
	EstimatedDelivery time.Time       `json:"estimatedDelivery"`
}

// Stage is one step of the tracking progress indicator.
type Stage struct {
	Status   Status `json:"status"`
	Complete bool   `json:"complete"`
}

// Progress returns the tracking stages for the given status. A stage is complete
// when it is at or before the current status. Unknown statuses mark nothing complete.
func Progress(current Status) []Stage {
	idx := current.index()
	stages := make([]Stage, len(Statuses))
	for i, s := range Statuses {
		stages[i] = Stage{Status: s, Complete: idx >= 0 && i <= idx}
	}
	return stages
}
