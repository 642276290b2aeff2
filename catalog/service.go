package catalog

import (
	"context"
	"log"
	"sync"

	"github.com/HimashaKodikara/ShuttlemateClient-sub000/clients"
	"github.com/HimashaKodikara/ShuttlemateClient-sub000/models"
)

// Backend is the subset of the backend client the catalog needs.
type Backend interface {
	GetShop(ctx context.Context, shopID string) (*models.Shop, error)
	ListItems(ctx context.Context) ([]clients.CategoryGroup, error)
	ListShopItems(ctx context.Context, shopID string) ([]clients.CategoryGroup, error)
	ListCategoryItems(ctx context.Context, categoryID string) ([]clients.CategoryGroup, error)
}

// Service loads and normalizes the catalog. It keeps the last
// successfully loaded snapshot; a failed reload leaves it untouched,
// and a reload that resolves after a newer one is dropped.
type Service struct {
	backend Backend

	mu       sync.RWMutex
	gen      uint64
	snapshot models.CategorizedItems
	shop     *models.Shop
	loaded   bool
}

func NewService(backend Backend) *Service {
	return &Service{backend: backend}
}

// LoadCatalog fetches the catalog, scoped to shopID when non-empty.
// Shop detail is fetched best-effort; its failure never blocks items.
// Reloading with the same arguments is idempotent.
func (s *Service) LoadCatalog(ctx context.Context, shopID string) (models.CategorizedItems, error) {
	s.mu.Lock()
	s.gen++
	gen := s.gen
	s.mu.Unlock()

	var shop *models.Shop
	var groups []clients.CategoryGroup
	var err error

	if shopID != "" {
		shop, err = s.backend.GetShop(ctx, shopID)
		if err != nil {
			log.Printf("Shop detail fetch failed for %s (continuing): %v", shopID, err)
			shop = nil
		}
		groups, err = s.backend.ListShopItems(ctx, shopID)
	} else {
		groups, err = s.backend.ListItems(ctx)
	}
	if err != nil {
		return models.CategorizedItems{}, err
	}

	shopName := ""
	if shop != nil {
		shopName = shop.Name
	}
	view := Normalize(groups, shopID, shopName)

	s.mu.Lock()
	if gen == s.gen {
		s.snapshot = view
		s.shop = shop
		s.loaded = true
	} else {
		log.Printf("Dropping stale catalog load (generation %d < %d)", gen, s.gen)
	}
	s.mu.Unlock()

	return view, nil
}

// Snapshot returns the last successfully loaded catalog view.
func (s *Service) Snapshot() (models.CategorizedItems, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot, s.loaded
}

// Shop returns the best-effort shop detail from the last load, if any.
func (s *Service) Shop() *models.Shop {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.shop
}

// Normalize flattens category groups into a single ordered item list
// annotated with category and shop identifiers, and synthesizes the
// leading "All" category.
func Normalize(groups []clients.CategoryGroup, shopID, shopName string) models.CategorizedItems {
	view := models.CategorizedItems{
		ShopID:     shopID,
		Categories: []string{models.AllCategory},
		Items:      []models.Item{},
	}
	seen := make(map[string]bool)
	for _, g := range groups {
		if g.CategoryName != "" && !seen[g.CategoryName] {
			seen[g.CategoryName] = true
			view.Categories = append(view.Categories, g.CategoryName)
		}
		for _, raw := range g.Items {
			view.Items = append(view.Items, raw.ToItem(g.CategoryID, g.CategoryName, shopID, shopName))
		}
	}
	return view
}
