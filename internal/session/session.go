package session

import (
	"context"
	"errors"
	"time"
)

var ErrSessionNotFound = errors.New("session not found")

// CartItem is one cart line. Name and Price are a snapshot taken when
// the line was added; totals are always computed from the live catalog.
type CartItem struct {
	Quantity int    `json:"quantity"`
	Name     string `json:"name"`
	Price    int    `json:"price"`
}

// Flash is a transient user-facing message consumed on the next read.
type Flash struct {
	Level   string `json:"level"` // success, danger, info
	Message string `json:"message"`
}

// Data is the server-side session payload, keyed by product id as the
// original form routes deliver it (a decimal string).
type Data struct {
	UserID  int64               `json:"user_id,omitempty"`
	Cart    map[string]CartItem `json:"cart,omitempty"`
	Flashes []Flash             `json:"flashes,omitempty"`
}

// PopFlashes returns pending flashes and clears them.
func (d *Data) PopFlashes() []Flash {
	flashes := d.Flashes
	d.Flashes = nil
	return flashes
}

// AddFlash queues a transient message.
func (d *Data) AddFlash(level, message string) {
	d.Flashes = append(d.Flashes, Flash{Level: level, Message: message})
}

// clone returns an independent copy so two requests resolving the same
// session never share the cart map or flash slice.
func (d *Data) clone() *Data {
	c := &Data{UserID: d.UserID}
	if d.Cart != nil {
		c.Cart = make(map[string]CartItem, len(d.Cart))
		for k, v := range d.Cart {
			c.Cart[k] = v
		}
	}
	if d.Flashes != nil {
		c.Flashes = append([]Flash(nil), d.Flashes...)
	}
	return c
}

// Store persists session payloads by session ID for a bounded lifetime.
type Store interface {
	Get(ctx context.Context, id string) (*Data, error)
	Save(ctx context.Context, id string, data *Data) error
	Delete(ctx context.Context, id string) error
}

// TTL applied by both store drivers.
const defaultTTL = 24 * time.Hour
