package queries_test

import (
	"testing"

	"orderflow/internal/core/application/usecases/queries"
	"orderflow/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetStockMovementsQuery_ValidInput(t *testing.T) {
	id := kernel.NewUUID()
	q, err := queries.NewGetStockMovementsQuery(id)
	require.NoError(t, err)
	assert.Equal(t, id, q.OrderID())
}

func TestNewGetStockMovementsQuery_InvalidOrderID(t *testing.T) {
	_, err := queries.NewGetStockMovementsQuery(kernel.UUID{})
	require.Error(t, err)
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestGetStockMovementsQuery_Validate_NotConstructed(t *testing.T) {
	q := queries.GetStockMovementsQuery{}
	err := q.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrGetStockMovementsQueryIsNotConstructed)
}

func TestNewGetActiveOrdersQuery_Validate(t *testing.T) {
	q := queries.NewGetActiveOrdersQuery()
	require.NoError(t, q.Validate())

	invalid := queries.GetActiveOrdersQuery{}
	assert.ErrorIs(t, invalid.Validate(), queries.ErrGetActiveOrdersQueryIsNotConstructed)
}
