package commands_test

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"skybroker/internal/core/domain/model/kernel"
	"skybroker/internal/core/domain/model/shipment"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func fixtureShipment(t *testing.T, status shipment.Status) *shipment.Shipment {
	t.Helper()

	sender, err := shipment.NewAddress("Sender", "+48500100200", "",
		"Prosta", "1", "", "Warszawa", "00-001", "PL")
	require.NoError(t, err)
	receiver, err := shipment.NewAddress("Receiver", "+48500100300", "",
		"Dluga", "2", "", "Krakow", "30-001", "PL")
	require.NoError(t, err)
	parcel, err := shipment.NewParcel(nil, nil, nil, 1.5)
	require.NoError(t, err)

	s, err := shipment.NewShipment(kernel.NewUUID(), "INPOST_LOCKER_STANDARD",
		sender, receiver, parcel, "ref-1", "KRA01M", nil)
	require.NoError(t, err)

	if status == shipment.Draft {
		return s
	}

	price := 12.99
	require.NoError(t, s.LinkCarrier(shipment.CarrierInPost, "inpost-1", "PL123", &price))
	if status == shipment.Created {
		return s
	}

	steps := map[shipment.Status]func() error{
		shipment.PendingPayment: s.StartPayment,
		shipment.Paid:           s.MarkPaid,
		shipment.LabelReady:     s.MarkLabelReady,
		shipment.Manifested:     s.MarkManifested,
		shipment.Shipped:        s.MarkShipped,
		shipment.Delivered:      s.MarkDelivered,
	}
	for _, target := range []shipment.Status{
		shipment.PendingPayment, shipment.Paid, shipment.LabelReady,
		shipment.Manifested, shipment.Shipped, shipment.Delivered,
	} {
		require.NoError(t, steps[target]())
		if status == target {
			return s
		}
	}

	t.Fatalf("unsupported fixture status %s", status)
	return nil
}
