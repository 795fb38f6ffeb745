package service

import (
	"context"
	"errors"
	"strconv"

	"storefront/internal/repository"
	"storefront/internal/session"

	"gorm.io/gorm"
)

// CartLine is one priced row of the cart view. Price is the live
// catalog price, not the add-time snapshot.
type CartLine struct {
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	Price     int    `json:"price"`
	Total     int    `json:"total"`
}

type CartView struct {
	Items []CartLine `json:"items"`
	Total int        `json:"total"`
}

type CartService interface {
	Add(ctx context.Context, sess *session.Data, productID int64, quantity int) (name string, err error)
	Update(ctx context.Context, sess *session.Data, productID int64, quantity int) error
	Remove(sess *session.Data, productID int64) (name string, err error)
	View(ctx context.Context, sess *session.Data) (*CartView, error)
}

type cartService struct {
	productRepo repository.ProductRepository
}

func NewCartService(productRepo repository.ProductRepository) CartService {
	return &cartService{productRepo: productRepo}
}

func cartKey(productID int64) string {
	return strconv.FormatInt(productID, 10)
}

// Add puts quantity units of a product in the session cart. Quantities
// outside [1, stock] leave the cart untouched.
func (s *cartService) Add(ctx context.Context, sess *session.Data, productID int64, quantity int) (string, error) {
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrNotFound
		}
		return "", err
	}

	if quantity < 1 || quantity > product.Stock {
		return product.Name, ErrInvalidQuantity
	}

	if sess.Cart == nil {
		sess.Cart = make(map[string]session.CartItem)
	}

	key := cartKey(productID)
	if item, ok := sess.Cart[key]; ok {
		item.Quantity += quantity
		sess.Cart[key] = item
	} else {
		sess.Cart[key] = session.CartItem{
			Quantity: quantity,
			Name:     product.Name,
			Price:    product.Price,
		}
	}
	return product.Name, nil
}

// Update replaces a line's quantity. A quantity below one removes the
// line, matching the original form semantics.
func (s *cartService) Update(ctx context.Context, sess *session.Data, productID int64, quantity int) error {
	key := cartKey(productID)
	item, ok := sess.Cart[key]
	if !ok {
		return ErrNotFound
	}

	if quantity < 1 {
		delete(sess.Cart, key)
		return nil
	}

	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if quantity > product.Stock {
		return ErrInvalidQuantity
	}

	item.Quantity = quantity
	sess.Cart[key] = item
	return nil
}

func (s *cartService) Remove(sess *session.Data, productID int64) (string, error) {
	key := cartKey(productID)
	item, ok := sess.Cart[key]
	if !ok {
		return "", ErrNotFound
	}
	delete(sess.Cart, key)
	return item.Name, nil
}

// View prices every line against the live catalog. Lines whose product
// no longer exists are dropped from both the view and the cart.
func (s *cartService) View(ctx context.Context, sess *session.Data) (*CartView, error) {
	view := &CartView{Items: []CartLine{}}

	for key, item := range sess.Cart {
		productID, err := strconv.ParseInt(key, 10, 64)
		if err != nil {
			delete(sess.Cart, key)
			continue
		}

		product, err := s.productRepo.GetByID(ctx, productID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				delete(sess.Cart, key)
				continue
			}
			return nil, err
		}

		lineTotal := product.Price * item.Quantity
		view.Items = append(view.Items, CartLine{
			ProductID: productID,
			Name:      product.Name,
			Quantity:  item.Quantity,
			Price:     product.Price,
			Total:     lineTotal,
		})
		view.Total += lineTotal
	}
	return view, nil
}
