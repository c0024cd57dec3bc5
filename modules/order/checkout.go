package order

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	cartdomain "github.com/example/storefront-demo/domain/cart"
	domain "github.com/example/storefront-demo/domain/order"
	"github.com/example/storefront-demo/modules/cart"
	nanoid "github.com/jaevor/go-nanoid"
)

// Sentinel errors for order operations.
var (
	ErrOrderNotFound   = errors.New("order not found")
	ErrEmptyCart       = errors.New("cart is empty")
	ErrInvalidStatus   = errors.New("invalid order status")
	ErrInvalidCustomer = errors.New("invalid customer details")
)

// DefaultDeliveryDays is the offset used for the estimated delivery date.
const DefaultDeliveryDays = 5

const (
	orderIDPrefix   = "ORD-"
	orderIDAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	orderIDLength   = 10
)

// Checkout turns the current cart into a confirmed order.
type Checkout struct {
	book         *Book
	cart         cart.CartPort
	newID        func() string
	now          func() time.Time
	deliveryDays int
}

// NewCheckout creates a checkout over book and the cart port.
func NewCheckout(book *Book, cartPort cart.CartPort, deliveryDays int) (*Checkout, error) {
	gen, err := nanoid.CustomASCII(orderIDAlphabet, orderIDLength)
	if err != nil {
		return nil, fmt.Errorf("failed to create order id generator: %w", err)
	}
	if deliveryDays <= 0 {
		deliveryDays = DefaultDeliveryDays
	}
	return &Checkout{
		book:         book,
		cart:         cartPort,
		newID:        func() string { return orderIDPrefix + gen() },
		now:          time.Now,
		deliveryDays: deliveryDays,
	}, nil
}

// Place moves the cart lines into a new confirmed order and records it. The cart
// is emptied in the same step that reads it.
func (c *Checkout) Place(ctx context.Context, customer domain.Customer) (domain.Order, error) {
	customer = normalizeCustomer(customer)
	if err := validateCustomer(customer); err != nil {
		return domain.Order{}, err
	}

	current, err := c.cart.TakeCart(ctx)
	if err != nil {
		return domain.Order{}, fmt.Errorf("failed to take cart: %w", err)
	}
	if len(current.Items) == 0 {
		return domain.Order{}, ErrEmptyCart
	}

	now := c.now()
	placed := domain.Order{
		ID:                c.newID(),
		Items:             current.Items,
		Total:             cartdomain.Total(current.Items),
		Customer:          customer,
		Status:            domain.StatusConfirmed,
		Date:              now,
		EstimatedDelivery: now.AddDate(0, 0, c.deliveryDays),
	}
	c.book.Place(ctx, placed)
	return placed, nil
}

func normalizeCustomer(c domain.Customer) domain.Customer {
	return domain.Customer{
		Name:    strings.TrimSpace(c.Name),
		Email:   strings.TrimSpace(c.Email),
		Phone:   strings.TrimSpace(c.Phone),
		Address: strings.TrimSpace(c.Address),
	}
}

func validateCustomer(c domain.Customer) error {
	switch {
	case c.Name == "":
		return fmt.Errorf("%w: name is required", ErrInvalidCustomer)
	case c.Email == "":
		return fmt.Errorf("%w: email is required", ErrInvalidCustomer)
	case !strings.Contains(c.Email, "@"):
		return fmt.Errorf("%w: email is not valid", ErrInvalidCustomer)
	case c.Phone == "":
		return fmt.Errorf("%w: phone is required", ErrInvalidCustomer)
	case c.Address == "":
		return fmt.Errorf("%w: address is required", ErrInvalidCustomer)
	}
	return nil
}
