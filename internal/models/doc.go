// Package models defines the records persisted by zeipilote.
//
// # Aggregate
//
// Everything lives in one AppData value:
//   - Client: a customer of the business
//   - Project: work done for a client
//   - Invoice: a bill sent to a client, with its line items
//   - BusinessInfo: the singleton profile of the business owner
//   - Settings: optional currency and locale preferences
//
// AppData is the only unit of persistence. Records are never stored on their own;
// every change is a read-modify-write of the whole aggregate.
//
// # References
//
// Projects and invoices point at their client through ClientID. The reference is weak:
// nothing prevents it from dangling, and readers resolve a missing client to
// UnknownClientName instead of failing.
//
// # Wire format
//
// JSON field names follow the exported backup format (camelCase), so a backup written by
// any version can be imported back as long as the four top-level collections are present.
package models
