package models

import (
	"context"

	"storefront/internal/schema"

	"gorm.io/gorm"
)

// listAll adapts a typed gorm query to the registry's query-all shape.
func listAll[T any, PT interface {
	*T
	schema.Entity
}](ctx context.Context, db *gorm.DB) ([]schema.Entity, error) {
	var rows []T
	if err := db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, err
	}
	entities := make([]schema.Entity, len(rows))
	for i := range rows {
		entities[i] = PT(&rows[i])
	}
	return entities, nil
}

func userDescriptor() *schema.Descriptor {
	return &schema.Descriptor{
		Table: "users",
		Fields: []schema.Field{
			{Name: "id", Type: "int", PrimaryKey: true},
			{Name: "name", Type: "string", Nullable: true},
			{Name: "email", Type: "string"},
			{Name: "password_hash", Type: "string"},
			{Name: "is_admin", Type: "bool", Nullable: true},
			{Name: "created_at", Type: "timestamp", Nullable: true},
		},
		New: func() schema.Entity { return &User{} },
		All: listAll[User],
	}
}

func productDescriptor() *schema.Descriptor {
	return &schema.Descriptor{
		Table: "products",
		Fields: []schema.Field{
			{Name: "id", Type: "int", PrimaryKey: true},
			{Name: "name", Type: "string"},
			{Name: "description", Type: "text", Nullable: true},
			{Name: "avg_rate", Type: "float", Nullable: true},
			{Name: "price", Type: "int"},
			{Name: "stock", Type: "int"},
			{Name: "category_id", Type: "int", Nullable: true, References: "categories"},
		},
		New: func() schema.Entity { return &Product{} },
		All: listAll[Product],
	}
}

func categoryDescriptor() *schema.Descriptor {
	return &schema.Descriptor{
		Table: "categories",
		Fields: []schema.Field{
			{Name: "id", Type: "int", PrimaryKey: true},
			{Name: "name", Type: "string"},
		},
		New: func() schema.Entity { return &Category{} },
		All: listAll[Category],
	}
}

func reviewDescriptor() *schema.Descriptor {
	return &schema.Descriptor{
		Table: "reviews",
		Fields: []schema.Field{
			{Name: "id", Type: "int", PrimaryKey: true},
			{Name: "text", Type: "text", Nullable: true},
			{Name: "rate", Type: "int"},
			{Name: "created_at", Type: "timestamp", Nullable: true},
			{Name: "updated_at", Type: "timestamp", Nullable: true},
			{Name: "user_id", Type: "int", References: "users"},
			{Name: "product_id", Type: "int", References: "products"},
		},
		New: func() schema.Entity { return &Review{} },
		All: listAll[Review],
	}
}

func orderDescriptor() *schema.Descriptor {
	return &schema.Descriptor{
		Table: "orders",
		Fields: []schema.Field{
			{Name: "id", Type: "int", PrimaryKey: true},
			{Name: "reference", Type: "string", Nullable: true},
			{Name: "user_id", Type: "int", References: "users"},
			{Name: "created_at", Type: "timestamp", Nullable: true},
			{Name: "destination", Type: "text", Nullable: true},
		},
		New: func() schema.Entity { return &Order{} },
		All: listAll[Order],
	}
}

func orderItemDescriptor() *schema.Descriptor {
	return &schema.Descriptor{
		Table: "order_items",
		Fields: []schema.Field{
			{Name: "id", Type: "int", PrimaryKey: true},
			{Name: "order_id", Type: "int", References: "orders"},
			{Name: "product_id", Type: "int", References: "products"},
		},
		New: func() schema.Entity { return &OrderItem{} },
		All: listAll[OrderItem],
	}
}

func taskDescriptor() *schema.Descriptor {
	return &schema.Descriptor{
		Table: "tasks",
		Fields: []schema.Field{
			{Name: "id", Type: "int", PrimaryKey: true},
			{Name: "name", Type: "string", Nullable: true},
			{Name: "description", Type: "text"},
			{Name: "created_at", Type: "timestamp", Nullable: true},
			{Name: "end_date", Type: "timestamp", Nullable: true},
			{Name: "user_id", Type: "int", Nullable: true, References: "users"},
		},
		New: func() schema.Entity { return &Task{} },
		All: listAll[Task],
	}
}

// NewShopRegistry registers the storefront tables.
func NewShopRegistry() *schema.Registry {
	r := schema.NewRegistry()
	r.Register(userDescriptor())
	r.Register(categoryDescriptor())
	r.Register(productDescriptor())
	r.Register(reviewDescriptor())
	r.Register(orderDescriptor())
	r.Register(orderItemDescriptor())
	return r
}

// NewTaskRegistry registers the task tracker tables.
func NewTaskRegistry() *schema.Registry {
	r := schema.NewRegistry()
	r.Register(userDescriptor())
	r.Register(taskDescriptor())
	return r
}
