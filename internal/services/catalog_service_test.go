package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/elkisamara/internal/models"
)

func TestBuildSidebarKindGroupsTypesByCategory(t *testing.T) {
	rows := []sidebarRow{
		{CategoryName: "Firs", CategorySlug: "firs", ProductType: "Nordmann fir"},
		{CategoryName: "Firs", CategorySlug: "firs", ProductType: "Fraser fir"},
		{CategoryName: "Pines", CategorySlug: "pines", ProductType: "Scots pine"},
	}

	kind := buildSidebarKind(models.KindChristmasTree, "Christmas trees", rows)

	assert.Equal(t, "Christmas trees", kind.CategoryName)
	assert.Equal(t, models.KindChristmasTree, kind.CategorySlug)
	require.Len(t, kind.Subcategories, 2)

	firs := kind.Subcategories[0]
	assert.Equal(t, "firs", firs.SubcategorySlug)
	require.Len(t, firs.Types, 2)
	assert.Equal(t, "Nordmann fir", firs.Types[0].ProductTypeName)

	pines := kind.Subcategories[1]
	assert.Equal(t, "Pines", pines.SubcategoryName)
	require.Len(t, pines.Types, 1)
}

func TestBuildSidebarKindSkipsBlankTypes(t *testing.T) {
	rows := []sidebarRow{
		{CategoryName: "Firs", CategorySlug: "firs", ProductType: ""},
		{CategoryName: "Firs", CategorySlug: "firs", ProductType: "Nordmann fir"},
	}

	kind := buildSidebarKind(models.KindChristmasTree, "Christmas trees", rows)

	require.Len(t, kind.Subcategories, 1)
	assert.Len(t, kind.Subcategories[0].Types, 1)
}

func TestBuildSidebarKindEmpty(t *testing.T) {
	kind := buildSidebarKind(models.KindChristmasTree, "Christmas trees", nil)
	assert.Empty(t, kind.Subcategories)
}
