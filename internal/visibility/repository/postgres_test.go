package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnhideMalformedIDs(t *testing.T) {
	repo := NewPGRepository(nil)
	ctx := context.Background()
	dealerID := "0f8e2a9c-1b2c-4d5e-8f90-123456789abc"

	assert.NoError(t, repo.UnhideCategory(ctx, dealerID, "x"))
	assert.NoError(t, repo.UnhideProduct(ctx, "x", dealerID))
}
