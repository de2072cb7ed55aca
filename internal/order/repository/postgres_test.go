package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fekuna/omnipos-dealer-service/internal/apperror"
	"github.com/fekuna/omnipos-dealer-service/internal/listquery"
)

const dealerID = "0f8e2a9c-1b2c-4d5e-8f90-123456789abc"

func TestDealerListSpec(t *testing.T) {
	spec := DealerListSpec(dealerID)

	assert.Equal(t, []string{"o.dealer_id = :dealer_id"}, spec.Conditions)
	assert.Equal(t, dealerID, spec.Args["dealer_id"])
	assert.NotContains(t, spec.Filterable, "dealer_id")

	_, err := listquery.Build(spec, listquery.Params{FilterKey: "dealer_id", FilterValue: dealerID, Page: 1, Limit: 10})
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))

	q, err := listquery.Build(spec, listquery.Params{FilterKey: "order_status", FilterValue: "pending", Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Contains(t, q.Count, "o.dealer_id = :dealer_id AND o.order_status = :lq_filter")

	// The admin spec keeps its dealer filter.
	assert.Contains(t, ListSpec().Filterable, "dealer_id")
}

func TestListSpecDealerFilterNeedsID(t *testing.T) {
	_, err := listquery.Build(ListSpec(), listquery.Params{FilterKey: "dealer_id", FilterValue: "x", Page: 1, Limit: 10})
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))

	q, err := listquery.Build(ListSpec(), listquery.Params{FilterKey: "dealer_id", FilterValue: dealerID, Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, dealerID, q.Args["lq_filter"])
}

func TestFindByIDMalformed(t *testing.T) {
	o, err := NewPGRepository(nil).FindByID(context.Background(), "o1")
	require.NoError(t, err)
	assert.Nil(t, o)
}
