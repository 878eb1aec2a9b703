package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/nwtech/license-orderflow/internal/apperr"
	"github.com/nwtech/license-orderflow/internal/docstore"
)

const seedStatusOK = "ok"

// Service implements catalog search, product creation and sample seeding.
type Service struct {
	store   docstore.Store
	nowFunc func() time.Time
}

// NewService returns a catalog Service. A nil store makes every call fail
// with a service-unavailable error.
func NewService(store docstore.Store) *Service {
	return &Service{
		store:   store,
		nowFunc: time.Now,
	}
}

// Search lists catalog entries matching q and vendor (see BuildFilter).
func (s *Service) Search(ctx context.Context, q, vendor string) ([]Product, error) {
	if s.store == nil {
		return nil, apperr.Unavailable()
	}

	var filter docstore.Filter
	if vendor != "" {
		filter = docstore.Filter{"vendor": vendor}
	}
	var docs []Product
	if err := s.store.FindMany(ctx, Collection, filter, &docs); err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, err, "Database error")
	}

	match := BuildFilter(q, vendor)
	out := make([]Product, 0, len(docs))
	for _, p := range docs {
		if !match(p) {
			continue
		}
		p.ID = ""
		if p.Features == nil {
			p.Features = []string{}
		}
		out = append(out, p)
	}
	return out, nil
}

// Create inserts p unless a product with the same SKU already exists.
// The check and the insert are separate store calls; concurrent creates of the
// same new SKU can both succeed.
func (s *Service) Create(ctx context.Context, p Product) (string, error) {
	if s.store == nil {
		return "", apperr.Unavailable()
	}

	var existing Product
	found, err := s.store.FindOne(ctx, Collection, docstore.Filter{"sku": p.SKU}, &existing)
	if err != nil {
		return "", apperr.Wrap(apperr.CodeInternal, err, "Database error")
	}
	if found {
		return "", apperr.New(apperr.CodeConflict, "SKU already exists").
			WithDetails(map[string]any{"sku": p.SKU})
	}

	return s.insert(ctx, p)
}

// Seed writes the sample plans when, and only when, the catalog is empty.
func (s *Service) Seed(ctx context.Context) (SeedResult, error) {
	if s.store == nil {
		return SeedResult{}, apperr.Unavailable()
	}

	count, err := s.store.Count(ctx, Collection, nil)
	if err != nil {
		return SeedResult{}, apperr.Wrap(apperr.CodeInternal, err, "Database error")
	}
	if count > 0 {
		return SeedResult{Status: seedStatusOK, Message: "Catalog already has items", Count: &count}, nil
	}

	inserted := 0
	for _, p := range SamplePlans() {
		if _, err := s.insert(ctx, p); err != nil {
			return SeedResult{}, fmt.Errorf("seed %s: %w", p.SKU, err)
		}
		inserted++
	}
	return SeedResult{Status: seedStatusOK, Inserted: &inserted}, nil
}

func (s *Service) insert(ctx context.Context, p Product) (string, error) {
	now := s.nowFunc().UTC()
	p.ID = ""
	p.CreatedAt = now
	p.UpdatedAt = now
	if p.Features == nil {
		p.Features = []string{}
	}
	id, err := s.store.Insert(ctx, Collection, p)
	if err != nil {
		return "", apperr.Wrap(apperr.CodeInternal, err, "Database error")
	}
	return id, nil
}
