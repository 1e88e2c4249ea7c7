// Package models defines the core domain models for the council reporting system.
//
// # Records
//
// The following models are persisted by the store and read by the report engine:
//   - Meeting: A council meeting with its agenda, attendees and embedded minutes
//   - ActionItem: A task recorded in a meeting's minutes
//   - User: A council member profile with an embedded performance block
//
// # Enumerations
//
// Status and type fields are closed string enumerations. Each exposes Valid so
// the store can reject unknown values on save and the report layouts can switch
// over every case.
//
// # Design Principles
//
// 1. **IDs, not pointers**: Relationships reference users by ID strings
// 2. **Derived values stay derived**: Overdue and attendance rates are computed at report time
// 3. **Optional means pointer**: Optional dates are *time.Time, absent references are ""
package models
