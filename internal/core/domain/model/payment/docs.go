// Package payment contains the Payment entity tracking individual payment
// attempts. Attempts start Pending and settle exactly once into Paid, Failed
// or Cancelled; repeated settlement with the same outcome is a no-op.
package payment
