package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fekuna/omnipos-dealer-service/internal/apperror"
	"github.com/fekuna/omnipos-dealer-service/internal/listquery"
)

func TestListSpec(t *testing.T) {
	spec := ListSpec()
	assert.Contains(t, spec.Conditions, "deleted_at IS NULL")

	q, err := listquery.Build(spec, listquery.Params{FilterKey: "is_active", FilterValue: "false", Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Contains(t, q.Count, "deleted_at IS NULL")
	assert.Equal(t, false, q.Args["lq_filter"])

	_, err = listquery.Build(spec, listquery.Params{FilterKey: "is_active", FilterValue: "x", Page: 1, Limit: 10})
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
}

func TestFindByIDMalformed(t *testing.T) {
	c, err := NewPGRepository(nil).FindByID(context.Background(), "not-a-uuid")
	require.NoError(t, err)
	assert.Nil(t, c)
}
