package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestT(t *testing.T) {
	assert.Equal(t, "Internal Server Error", T("ErrorInternal"))
	assert.Equal(t, "Internal Server Error", T("ErrorInternal", "en-US,en;q=0.9"))
	assert.Equal(t, "Data tidak ditemukan", T("ErrorNotFound", "id-ID,id;q=0.9"))
	assert.Equal(t, "Forbidden", T("ErrorForbidden", "fr"))
	assert.Equal(t, "UnknownMessage", T("UnknownMessage"))
}
