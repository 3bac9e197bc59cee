package queries_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skybroker/internal/core/application/usecases/queries"
	"skybroker/internal/core/domain/model/kernel"
)

func TestNewGetShipmentQuery_Valid(t *testing.T) {
	shipmentID := kernel.NewUUID()

	query, err := queries.NewGetShipmentQuery(shipmentID)

	require.NoError(t, err)
	require.NoError(t, query.Validate())
	assert.True(t, shipmentID.IsEqual(query.ShipmentID()))
}

func TestNewGetShipmentQuery_EmptyID(t *testing.T) {
	_, err := queries.NewGetShipmentQuery(kernel.UUID{})
	require.Error(t, err)
}

func TestGetShipmentQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.GetShipmentQuery{}
	err := query.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrGetShipmentQueryIsNotConstructed)
}
