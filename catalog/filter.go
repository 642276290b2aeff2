package catalog

import (
	"context"
	"log"
	"sync"

	"github.com/HimashaKodikara/ShuttlemateClient-sub000/models"
)

// Filter maintains the active category selection over a Service
// snapshot. A named category is refined server-side when possible; any
// failure there falls back to filtering the in-memory snapshot by
// category name, so the view never blocks on the backend.
type Filter struct {
	service *Service

	mu       sync.Mutex
	gen      uint64
	active   string
	filtered []models.Item
}

func NewFilter(service *Service) *Filter {
	return &Filter{service: service, active: models.AllCategory}
}

// SelectCategory switches the active category and returns the filtered
// item view. Results from a selection that was superseded while its
// refinement call was in flight are not installed as the active view.
func (f *Filter) SelectCategory(ctx context.Context, name string) []models.Item {
	f.mu.Lock()
	f.gen++
	gen := f.gen
	f.active = name
	f.mu.Unlock()

	snapshot, _ := f.service.Snapshot()

	var items []models.Item
	if name == models.AllCategory {
		items = snapshot.Items
	} else {
		items = f.refineOrFallback(ctx, snapshot, name)
	}

	f.mu.Lock()
	if gen == f.gen {
		f.filtered = items
	} else {
		log.Printf("Dropping stale category selection %q (generation %d < %d)", name, gen, f.gen)
	}
	f.mu.Unlock()

	return items
}

// Active returns the current category name and filtered view.
func (f *Filter) Active() (string, []models.Item) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.active, f.filtered
}

// refineOrFallback tries the category-scoped endpoint when the catalog
// is shop-scoped and the category identifier is resolvable from the
// snapshot. The endpoint returns fresher data than the snapshot, but
// its failure must not block the view.
func (f *Filter) refineOrFallback(ctx context.Context, snapshot models.CategorizedItems, name string) []models.Item {
	if snapshot.ShopID != "" {
		if categoryID := resolveCategoryID(snapshot.Items, name); categoryID != "" {
			groups, err := f.service.backend.ListCategoryItems(ctx, categoryID)
			if err == nil {
				shopName := ""
				if shop := f.service.Shop(); shop != nil {
					shopName = shop.Name
				}
				refined := Normalize(groups, snapshot.ShopID, shopName)
				return refined.Items
			}
			log.Printf("Category refinement failed for %q (falling back to local filter): %v", name, err)
		}
	}
	return filterByName(snapshot.Items, name)
}

func resolveCategoryID(items []models.Item, name string) string {
	for _, item := range items {
		if item.CategoryName == name {
			return item.CategoryID
		}
	}
	return ""
}

func filterByName(items []models.Item, name string) []models.Item {
	filtered := []models.Item{}
	for _, item := range items {
		if item.CategoryName == name {
			filtered = append(filtered, item)
		}
	}
	return filtered
}
