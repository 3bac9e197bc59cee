// Package carriers wires concrete carrier gateways behind the registry port.
package carriers

import (
	"skybroker/internal/core/domain/model/shipment"
	"skybroker/internal/core/ports"
)

// Registry maps carrier codes to their gateways. Resolution fails closed:
// a code without a registered gateway yields UnknownCarrierError, never a
// silent default.
type Registry struct {
	gateways map[shipment.CarrierCode]ports.CarrierGateway
}

// NewRegistry creates an empty carrier registry.
func NewRegistry() *Registry {
	return &Registry{gateways: make(map[shipment.CarrierCode]ports.CarrierGateway)}
}

// Register wires a gateway for a carrier code, replacing any previous one.
func (r *Registry) Register(code shipment.CarrierCode, gateway ports.CarrierGateway) {
	r.gateways[code] = gateway
}

// Resolve returns the gateway for a carrier code. Matching is
// case-insensitive through the carrier code parser.
func (r *Registry) Resolve(code shipment.CarrierCode) (ports.CarrierGateway, error) {
	parsed, err := shipment.ParseCarrierCode(code.String())
	if err != nil {
		return nil, ports.NewUnknownCarrierError(code.String())
	}

	gateway, ok := r.gateways[parsed]
	if !ok {
		return nil, ports.NewUnknownCarrierError(code.String())
	}
	return gateway, nil
}
