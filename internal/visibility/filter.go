package visibility

import (
	"context"
)

// DealerArg is the named query argument the SQL predicates bind the dealer id to.
const DealerArg = "dealer_id"

// Item is the part of a product that decides visibility.
type Item struct {
	ProductID  string
	CategoryID *string
}

// Filter answers whether a dealer may see a product: it is hidden when the
// product itself or its category is in the dealer's hidden sets.
type Filter struct {
	repo Repository
}

func NewFilter(repo Repository) *Filter {
	return &Filter{repo: repo}
}

func (f *Filter) IsVisible(ctx context.Context, dealerID string, item Item) (bool, error) {
	hidden, err := f.repo.IsProductHidden(ctx, dealerID, item.ProductID)
	if err != nil {
		return false, err
	}
	if hidden {
		return false, nil
	}
	if item.CategoryID == nil || *item.CategoryID == "" {
		return true, nil
	}
	hidden, err = f.repo.IsCategoryHidden(ctx, dealerID, *item.CategoryID)
	if err != nil {
		return false, err
	}
	return !hidden, nil
}

// Load reads both hidden sets once for checking many items.
func (f *Filter) Load(ctx context.Context, dealerID string) (*HiddenSet, error) {
	categories, err := f.repo.FindHiddenCategories(ctx, dealerID)
	if err != nil {
		return nil, err
	}
	products, err := f.repo.FindHiddenProducts(ctx, dealerID)
	if err != nil {
		return nil, err
	}

	categoryIDs := make([]string, len(categories))
	for i, c := range categories {
		categoryIDs[i] = c.CategoryID
	}
	productIDs := make([]string, len(products))
	for i, p := range products {
		productIDs[i] = p.ProductID
	}
	return NewHiddenSet(categoryIDs, productIDs), nil
}

type HiddenSet struct {
	categories map[string]struct{}
	products   map[string]struct{}
}

func NewHiddenSet(categoryIDs, productIDs []string) *HiddenSet {
	s := &HiddenSet{
		categories: make(map[string]struct{}, len(categoryIDs)),
		products:   make(map[string]struct{}, len(productIDs)),
	}
	for _, id := range categoryIDs {
		s.categories[id] = struct{}{}
	}
	for _, id := range productIDs {
		s.products[id] = struct{}{}
	}
	return s
}

func (s *HiddenSet) Hides(item Item) bool {
	if _, ok := s.products[item.ProductID]; ok {
		return true
	}
	if item.CategoryID != nil {
		if _, ok := s.categories[*item.CategoryID]; ok {
			return true
		}
	}
	return false
}

// CategoryCondition is a SQL predicate excluding categories hidden from :dealer_id.
func CategoryCondition(categoryIDColumn string) string {
	return "NOT EXISTS (SELECT 1 FROM dealer_hidden_categories hc WHERE hc.dealer_id = :" + DealerArg +
		" AND hc.category_id = " + categoryIDColumn + ")"
}

// ProductCondition is a SQL predicate excluding products hidden from :dealer_id.
func ProductCondition(productIDColumn string) string {
	return "NOT EXISTS (SELECT 1 FROM dealer_hidden_products hp WHERE hp.dealer_id = :" + DealerArg +
		" AND hp.product_id = " + productIDColumn + ")"
}

// CatalogConditions expresses the same rule as Filter.IsVisible in SQL, so
// paginated listings count and page only visible rows.
func CatalogConditions(productIDColumn, categoryIDColumn string) []string {
	return []string{ProductCondition(productIDColumn), CategoryCondition(categoryIDColumn)}
}
