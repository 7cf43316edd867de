package domain_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/estoque-api/internal/domain"
)

func TestPermissionLevel(t *testing.T) {
	cases := []struct {
		level     domain.PermissionLevel
		canWrite  bool
		canDelete bool
	}{
		{domain.LevelReadOnly, false, false},
		{domain.LevelStandard, true, false},
		{domain.LevelElevated, true, true},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.canWrite, tc.level.CanWrite(), "CanWrite nivel %d", tc.level)
		assert.Equal(t, tc.canDelete, tc.level.CanDelete(), "CanDelete nivel %d", tc.level)
		assert.True(t, tc.level.Valid())
	}
	assert.False(t, domain.PermissionLevel(0).Valid())
	assert.False(t, domain.PermissionLevel(4).Valid())
}

func TestDuplicateErrors_WrapErrDuplicate(t *testing.T) {
	for _, err := range []error{domain.ErrDuplicateUser, domain.ErrDuplicateSupplier, domain.ErrDuplicateProduct} {
		assert.True(t, errors.Is(err, domain.ErrDuplicate), err.Error())
	}
	assert.False(t, errors.Is(domain.ErrDuplicateUser, domain.ErrDuplicateProduct))
}
