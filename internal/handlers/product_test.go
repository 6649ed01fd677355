package handlers

import (
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductImagePath(t *testing.T) {
	productID := uuid.New()

	path, err := productImagePath(productID, "tree.JPG")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("uploads", "products", "tree", productID.String()+".jpg"), path)
}

func TestProductImagePathReplacesOnReupload(t *testing.T) {
	productID := uuid.New()

	first, err := productImagePath(productID, "before.png")
	require.NoError(t, err)
	second, err := productImagePath(productID, "after.png")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestProductImagePathRejectsUnknownTypes(t *testing.T) {
	for _, filename := range []string{"tree.exe", "tree.svg", "tree", "tree.jpg.sh"} {
		_, err := productImagePath(uuid.New(), filename)
		assert.Error(t, err, "filename %q", filename)
	}
}
