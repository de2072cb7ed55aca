package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fekuna/omnipos-dealer-service/internal/listquery"
	"github.com/fekuna/omnipos-dealer-service/internal/model"
)

type pagedCatalog struct {
	products []model.Product
	seen     []listquery.Params
}

func (c *pagedCatalog) FindCatalog(_ context.Context, _ string, p listquery.Params) (*listquery.Result[model.Product], error) {
	c.seen = append(c.seen, p)
	start := (p.Page - 1) * p.Limit
	end := start + p.Limit
	if end > len(c.products) {
		end = len(c.products)
	}
	return &listquery.Result[model.Product]{Data: c.products[start:end], Meta: listquery.NewMeta(p, len(c.products))}, nil
}

func strPtr(s string) *string { return &s }

func TestLoadCatalogWalksAllPages(t *testing.T) {
	catalog := &pagedCatalog{}
	for i := 0; i < 250; i++ {
		catalog.products = append(catalog.products, model.Product{BaseModel: model.BaseModel{ID: string(rune('a' + i%26))}})
	}

	products, err := loadCatalog(context.Background(), catalog, "d1", "pad", "c1")
	require.NoError(t, err)
	assert.Len(t, products, 250)
	require.Len(t, catalog.seen, 3)
	assert.Equal(t, "category_id", catalog.seen[0].FilterKey)
	assert.Equal(t, "pad", catalog.seen[2].Search)
	assert.Equal(t, 3, catalog.seen[2].Page)
}

func TestLoadCatalogEmpty(t *testing.T) {
	products, err := loadCatalog(context.Background(), &pagedCatalog{}, "d1", "", "")
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestRenderSheet(t *testing.T) {
	products := []model.Product{
		{BaseModel: model.BaseModel{ID: "a"}, Name: "Brake Pad", BasePrice: 1000, CategoryID: strPtr("c1"), CategoryName: strPtr("Brakes")},
		{BaseModel: model.BaseModel{ID: "b"}, Name: "Oil Filter", BasePrice: 500},
	}
	rows := sheetRows(products, map[string]float64{"a": 800, "b": 500}, map[string]float64{"c1": 20})

	assert.Equal(t, []string{"Brake Pad", "Brakes", "1000.00", "20%", "800.00"}, rows[0])
	assert.Equal(t, []string{"Oil Filter", "-", "500.00", "-", "500.00"}, rows[1])

	var buf bytes.Buffer
	require.NoError(t, renderSheet(&buf, rows))
	out := buf.String()
	assert.Contains(t, out, "Brake Pad")
	assert.Contains(t, out, "800.00")
	assert.Contains(t, out, "Oil Filter")
}
