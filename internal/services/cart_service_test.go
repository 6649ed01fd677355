package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/example/elkisamara/internal/models"
)

func TestEnsureMutableRejectsFrozenCart(t *testing.T) {
	cart := &models.Cart{InOrder: true}
	require.ErrorIs(t, ensureMutable(cart), ErrCartFrozen)
}

func TestEnsureMutableAllowsOpenCart(t *testing.T) {
	assert.NoError(t, ensureMutable(&models.Cart{}))
}

func TestVersionGuardDetectsStaleWrite(t *testing.T) {
	// The guarded update matched no row: another writer bumped the
	// version between our read and our write.
	res := &gorm.DB{RowsAffected: 0}
	require.ErrorIs(t, versionGuard(res), ErrCartConflict)
}

func TestVersionGuardAcceptsMatchedRow(t *testing.T) {
	assert.NoError(t, versionGuard(&gorm.DB{RowsAffected: 1}))
}

func TestVersionGuardPropagatesQueryError(t *testing.T) {
	boom := errors.New("connection reset")
	assert.ErrorIs(t, versionGuard(&gorm.DB{Error: boom}), boom)
}
