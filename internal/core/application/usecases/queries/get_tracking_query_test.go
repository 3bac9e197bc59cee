package queries_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skybroker/internal/core/application/usecases/queries"
	"skybroker/internal/core/domain/model/kernel"
)

func TestNewGetTrackingQuery_Valid(t *testing.T) {
	shipmentID := kernel.NewUUID()

	query, err := queries.NewGetTrackingQuery(shipmentID)

	require.NoError(t, err)
	require.NoError(t, query.Validate())
	assert.True(t, shipmentID.IsEqual(query.ShipmentID()))
}

func TestNewGetTrackingQuery_EmptyID(t *testing.T) {
	_, err := queries.NewGetTrackingQuery(kernel.UUID{})
	require.Error(t, err)
}

func TestGetTrackingQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.GetTrackingQuery{}
	err := query.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrGetTrackingQueryIsNotConstructed)
}
