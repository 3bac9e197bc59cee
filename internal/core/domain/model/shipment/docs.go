// Package shipment contains the Shipment aggregate and its value objects.
//
// The aggregate enforces the shipment lifecycle through a transition table:
// the status can only change along declared edges, transitions to the current
// status are no-op successes (so repeated webhooks and retried jobs are
// harmless), and terminal statuses admit no further change. Carrier linkage
// is write-once: once a carrier shipment id is recorded, carrier creation is
// never re-invoked for the shipment.
package shipment
