package visibility

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fekuna/omnipos-dealer-service/internal/model"
)

type memRepo struct {
	categories map[string][]string // dealer -> category ids
	products   map[string][]string // dealer -> product ids
	err        error
}

func (m *memRepo) HideCategory(context.Context, *model.DealerHiddenCategory) error { return nil }
func (m *memRepo) UnhideCategory(context.Context, string, string) error { return nil }
func (m *memRepo) HideProduct(context.Context, *model.DealerHiddenProduct) error { return nil }
func (m *memRepo) UnhideProduct(context.Context, string, string) error { return nil }
func (m *memRepo) ReplaceForDealer(context.Context, string, []model.DealerHiddenCategory, []model.DealerHiddenProduct) error {
	return nil
}

func (m *memRepo) IsCategoryHidden(_ context.Context, dealerID, categoryID string) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	return contains(m.categories[dealerID], categoryID), nil
}

func (m *memRepo) IsProductHidden(_ context.Context, dealerID, productID string) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	return contains(m.products[dealerID], productID), nil
}

func (m *memRepo) FindHiddenCategories(_ context.Context, dealerID string) ([]model.DealerHiddenCategory, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []model.DealerHiddenCategory
	for _, id := range m.categories[dealerID] {
		out = append(out, model.DealerHiddenCategory{DealerID: dealerID, CategoryID: id})
	}
	return out, nil
}

func (m *memRepo) FindHiddenProducts(_ context.Context, dealerID string) ([]model.DealerHiddenProduct, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []model.DealerHiddenProduct
	for _, id := range m.products[dealerID] {
		out = append(out, model.DealerHiddenProduct{DealerID: dealerID, ProductID: id})
	}
	return out, nil
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func strPtr(s string) *string { return &s }

func TestVisibilityRule(t *testing.T) {
	repo := &memRepo{
		categories: map[string][]string{"d1": {"cat-hidden"}},
		products:   map[string][]string{"d1": {"p-hidden"}},
	}
	filter := NewFilter(repo)
	set, err := filter.Load(context.Background(), "d1")
	require.NoError(t, err)

	tests := []struct {
		name     string
		dealerID string
		item     Item
		visible  bool
	}{
		{"plain product", "d1", Item{ProductID: "p1", CategoryID: strPtr("cat-open")}, true},
		{"product hidden directly", "d1", Item{ProductID: "p-hidden", CategoryID: strPtr("cat-open")}, false},
		{"category hidden", "d1", Item{ProductID: "p1", CategoryID: strPtr("cat-hidden")}, false},
		{"both hidden", "d1", Item{ProductID: "p-hidden", CategoryID: strPtr("cat-hidden")}, false},
		{"no category", "d1", Item{ProductID: "p1"}, true},
		{"other dealer sees everything", "d2", Item{ProductID: "p-hidden", CategoryID: strPtr("cat-hidden")}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			visible, err := filter.IsVisible(context.Background(), tt.dealerID, tt.item)
			require.NoError(t, err)
			assert.Equal(t, tt.visible, visible)

			if tt.dealerID == "d1" {
				assert.Equal(t, !tt.visible, set.Hides(tt.item), "batch and point checks must agree")
			}
		})
	}
}

func TestIsVisibleLookupError(t *testing.T) {
	filter := NewFilter(&memRepo{err: errors.New("timeout")})

	_, err := filter.IsVisible(context.Background(), "d1", Item{ProductID: "p1"})
	assert.Error(t, err)

	_, err = filter.Load(context.Background(), "d1")
	assert.Error(t, err)
}

func TestCatalogConditions(t *testing.T) {
	conds := CatalogConditions("p.id", "p.category_id")
	require.Len(t, conds, 2)
	assert.Equal(t, "NOT EXISTS (SELECT 1 FROM dealer_hidden_products hp WHERE hp.dealer_id = :dealer_id AND hp.product_id = p.id)", conds[0])
	assert.Equal(t, "NOT EXISTS (SELECT 1 FROM dealer_hidden_categories hc WHERE hc.dealer_id = :dealer_id AND hc.category_id = p.category_id)", conds[1])
}
