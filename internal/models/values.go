package models

import (
	"net/url"

	"golang.org/x/crypto/bcrypt"
	"storefront/internal/schema"

	"github.com/google/uuid"
)

// SetValues populates entities from raw admin-form input. Only type
// coercion happens here; anything stricter belongs to the services.

func (u *User) SetValues(form url.Values) error {
	u.Name = form.Get("name")
	u.Email = form.Get("email")
	hash, err := bcrypt.GenerateFromPassword([]byte(form.Get("password_hash")), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hash)
	u.IsAdmin = schema.FormBool(form, "is_admin")
	return nil
}

func (p *Product) SetValues(form url.Values) error {
	p.Name = form.Get("name")
	p.Description = form.Get("description")
	price, err := schema.FormInt(form, "price")
	if err != nil {
		return err
	}
	p.Price = price
	stock, err := schema.FormInt(form, "stock")
	if err != nil {
		return err
	}
	p.Stock = stock
	categoryID, err := schema.FormInt64(form, "category_id")
	if err != nil {
		return err
	}
	p.CategoryID = categoryID
	return nil
}

func (c *Category) SetValues(form url.Values) error {
	c.Name = form.Get("name")
	return nil
}

func (r *Review) SetValues(form url.Values) error {
	r.Text = form.Get("text")
	rate, err := schema.FormInt(form, "rate")
	if err != nil {
		return err
	}
	r.Rate = rate
	userID, err := schema.FormInt64(form, "user_id")
	if err != nil {
		return err
	}
	r.UserID = userID
	productID, err := schema.FormInt64(form, "product_id")
	if err != nil {
		return err
	}
	r.ProductID = productID
	return nil
}

func (o *Order) SetValues(form url.Values) error {
	o.Destination = form.Get("destination")
	userID, err := schema.FormInt64(form, "user_id")
	if err != nil {
		return err
	}
	o.UserID = userID
	if o.Reference == "" {
		o.Reference = uuid.New().String()
	}
	return nil
}

func (i *OrderItem) SetValues(form url.Values) error {
	orderID, err := schema.FormInt64(form, "order_id")
	if err != nil {
		return err
	}
	i.OrderID = orderID
	productID, err := schema.FormInt64(form, "product_id")
	if err != nil {
		return err
	}
	i.ProductID = productID
	return nil
}

func (t *Task) SetValues(form url.Values) error {
	t.Name = form.Get("name")
	t.Description = form.Get("description")
	createdAt, err := schema.FormTime(form, "created_at")
	if err != nil {
		return err
	}
	t.CreatedAt = createdAt
	endDate, err := schema.FormTime(form, "end_date")
	if err != nil {
		return err
	}
	t.EndDate = endDate
	userID, err := schema.FormInt64(form, "user_id")
	if err != nil {
		return err
	}
	t.UserID = userID
	return nil
}
