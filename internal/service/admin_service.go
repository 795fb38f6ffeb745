package service

import (
	"context"
	"net/url"

	"storefront/internal/schema"

	"gorm.io/gorm"
)

// TableView is everything needed to render one admin grid: the rows,
// the field metadata, and for every foreign-key field the full row set
// of the referenced table for the selection control.
type TableView struct {
	Table   string                     `json:"table"`
	Fields  []schema.Field             `json:"fields"`
	Rows    []schema.Entity            `json:"rows"`
	Choices map[string][]schema.Entity `json:"choices,omitempty"`
}

type AdminService interface {
	Tables() []string
	Browse(ctx context.Context, table string) (*TableView, error)
	Create(ctx context.Context, table string, form url.Values) error
}

type adminService struct {
	registry *schema.Registry
	db       *gorm.DB
}

func NewAdminService(registry *schema.Registry, db *gorm.DB) AdminService {
	return &adminService{registry: registry, db: db}
}

func (s *adminService) Tables() []string {
	return s.registry.Tables()
}

func (s *adminService) Browse(ctx context.Context, table string) (*TableView, error) {
	desc, err := s.registry.Lookup(table)
	if err != nil {
		return nil, err
	}

	rows, err := desc.All(ctx, s.db)
	if err != nil {
		return nil, err
	}

	view := &TableView{
		Table:  desc.Table,
		Fields: desc.Fields,
		Rows:   rows,
	}

	for _, fk := range desc.ForeignKeys() {
		refDesc, err := s.registry.Lookup(fk.References)
		if err != nil {
			// FK points at a table this app never registered; render
			// the field as plain input rather than failing the grid
			continue
		}
		refRows, err := refDesc.All(ctx, s.db)
		if err != nil {
			return nil, err
		}
		if view.Choices == nil {
			view.Choices = make(map[string][]schema.Entity)
		}
		view.Choices[fk.Name] = refRows
	}
	return view, nil
}

// Create builds a blank entity for the table, populates it from the raw
// form and persists it. Coercion failures surface as *schema.TypeError.
func (s *adminService) Create(ctx context.Context, table string, form url.Values) error {
	desc, err := s.registry.Lookup(table)
	if err != nil {
		return err
	}

	entity := desc.New()
	if err := entity.SetValues(form); err != nil {
		return err
	}
	return s.db.WithContext(ctx).Create(entity).Error
}
