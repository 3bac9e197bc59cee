package commands_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skybroker/internal/core/application/usecases/commands"
	"skybroker/internal/core/domain/model/kernel"
	"skybroker/internal/core/domain/model/shipment"
)

func TestNewCreateShipmentCommand(t *testing.T) {
	cmd := fixtureCreateShipmentCommand(t)

	assert.NoError(t, cmd.Validate())
	assert.Equal(t, "INPOST_LOCKER_STANDARD", cmd.ServiceCode())
	assert.Equal(t, shipment.CarrierInPost, cmd.CarrierCode())
	assert.Equal(t, "ref-9", cmd.Reference())
	assert.Equal(t, "KRA01M", cmd.PickupPointID())
}

func TestNewCreateShipmentCommand_Invalid(t *testing.T) {
	sender, err := shipment.NewAddress("Sender", "+48500100200", "",
		"Prosta", "1", "", "Warszawa", "00-001", "PL")
	require.NoError(t, err)
	parcel, err := shipment.NewParcel(nil, nil, nil, 1.5)
	require.NoError(t, err)

	t.Run("empty service code", func(t *testing.T) {
		_, err := commands.NewCreateShipmentCommand(kernel.NewUUID(), "",
			shipment.CarrierInPost, sender, sender, parcel, "", "", nil)
		assert.ErrorIs(t, err, commands.ErrServiceCodeIsRequired)
	})

	t.Run("unknown carrier", func(t *testing.T) {
		_, err := commands.NewCreateShipmentCommand(kernel.NewUUID(), "SVC",
			shipment.CarrierCode("DHL"), sender, sender, parcel, "", "", nil)
		assert.Error(t, err)
	})

	t.Run("unconstructed address", func(t *testing.T) {
		_, err := commands.NewCreateShipmentCommand(kernel.NewUUID(), "SVC",
			shipment.CarrierInPost, shipment.Address{}, sender, parcel, "", "", nil)
		assert.Error(t, err)
	})
}

func TestCreateShipmentCommand_Validate_NotConstructed(t *testing.T) {
	var cmd commands.CreateShipmentCommand
	assert.ErrorIs(t, cmd.Validate(), commands.ErrCreateShipmentCommandIsNotConstructed)
}
