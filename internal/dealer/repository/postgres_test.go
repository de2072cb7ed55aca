package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fekuna/omnipos-dealer-service/internal/listquery"
)

func TestListSpec(t *testing.T) {
	spec := ListSpec()
	assert.Contains(t, spec.Conditions, "d.deleted_at IS NULL")

	q, err := listquery.Build(spec, listquery.Params{Search: "budi", Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Contains(t, q.List, "d.deleted_at IS NULL")
	assert.Contains(t, q.List, "ORDER BY d.created_at DESC, d.id DESC")
}

func TestFindByIDMalformed(t *testing.T) {
	d, err := NewPGRepository(nil).FindByID(context.Background(), "42")
	require.NoError(t, err)
	assert.Nil(t, d)
}
