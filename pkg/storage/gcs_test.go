package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestObjectPath(t *testing.T) {
	tests := []struct {
		name     string
		prefix   string
		fileName string
		want     string
	}{
		{"plain", "products", "photo.png", "products/abc-photo.png"},
		{"strips directories", "products", "../../etc/passwd", "products/abc-passwd"},
		{"windows separators", "products", `C:\tmp\a.jpg`, `products/abc-C:_tmp_a.jpg`},
		{"empty name", "products", "", "products/abc-file"},
		{"dotted prefix", "../products", "a.png", "products/abc-a.png"},
		{"product folder", "products/0f8e2a9c-1b2c-4d5e-8f90-123456789abc", "a.png", "products/0f8e2a9c-1b2c-4d5e-8f90-123456789abc/abc-a.png"},
		{"traversal inside prefix", "products/../../x/./", "a.png", "products/x/abc-a.png"},
		{"backslash prefix", `products\p1`, "a.png", "products/p1/abc-a.png"},
		{"empty prefix", "", "a.png", "abc-a.png"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ObjectPath(tt.prefix, tt.fileName, "abc"))
		})
	}
}

func TestNewObjectIDIsHex(t *testing.T) {
	id := newObjectID()
	assert.Len(t, id, 24)
	assert.NotEqual(t, id, newObjectID())
}
