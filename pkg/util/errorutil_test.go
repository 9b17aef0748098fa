package util_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/catalog-service/pkg/util"
)

func TestDomainErrorCodes(t *testing.T) {
	err := util.NewDuplicateKey("sku", "KB-001")
	de, ok := util.AsDomainError(err)
	require.True(t, ok)
	assert.Equal(t, util.CodeDuplicateKey, de.Code)
	assert.Equal(t, "sku", de.Details["field"])
	assert.Equal(t, "KB-001", de.Details["value"])
	assert.Contains(t, err.Error(), "KB-001")

	assert.True(t, util.HasCode(err, util.CodeDuplicateKey))
	assert.False(t, util.HasCode(err, util.CodeNotFound))
}

func TestDomainErrorUnwrapsThroughWrapping(t *testing.T) {
	inner := util.NewNotFound("product", 42)
	wrapped := fmt.Errorf("loading catalog: %w", inner)

	assert.Equal(t, util.CodeNotFound, util.CodeOf(wrapped))
	de, ok := util.AsDomainError(wrapped)
	require.True(t, ok)
	assert.EqualValues(t, 42, de.Details["id"])
}

func TestForeignErrorsHaveNoCode(t *testing.T) {
	err := errors.New("plain failure")
	assert.Equal(t, "", util.CodeOf(err))
	_, ok := util.AsDomainError(err)
	assert.False(t, ok)
}

func TestInsufficientStockDetails(t *testing.T) {
	err := util.NewInsufficientStock(2, 5)
	de, ok := util.AsDomainError(err)
	require.True(t, ok)
	assert.Equal(t, util.CodeInsufficientStock, de.Code)
	assert.Equal(t, 2, de.Details["available"])
	assert.Equal(t, 5, de.Details["requested"])
}
