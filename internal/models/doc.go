// Package models defines the core domain models for settleup.
//
// # Ledger Models
//
// A ledger is an ordered list of Expense rows. Rows are kept exactly as they
// were entered so that malformed input can be reported and skipped per row
// instead of rejected at the boundary:
//   - Expense: one line of the ledger (payer, raw amount, participants)
//   - Slot: one numbered "Participant N" entry with a head count
//   - Share: a normalized (name, units) pair produced from either encoding
//
// # Participant Encodings
//
// An expense names the people sharing it in one of two ways, or both:
//
//  1. Participants: a flat list of names, each weighing one unit
//  2. Slots: named slots, each with an explicit member count (e.g. a family of 3)
//
// Both encodings are merged additively by the ledger normalizer.
//
// # Sessions
//
// Session is the persisted form of a ledger together with the roster inputs
// that were used to build it. The calculator never sees a Session; callers
// hand it Session.Expenses.
package models
