// Package models defines the core domain models for dinesplit.
//
// # Models
//
//   - MenuEntry: one dish on the compiled-in menu
//   - CartLine: a menu entry plus the quantity a diner has chosen
//   - Participant: one party to the bill, identified by position
//   - PersonShare, CategorySplit, SplitSummary: calculated split results
//   - SessionState: the transient state of one ordering session, as stored
//
// Participants are identified by index, not by name. Renaming a participant
// never changes which items are assigned to them.
//
// # Design Principles
//
//  1. Value semantics: models are plain structs passed by value; slices and
//     maps are copied at package boundaries that hand state to another owner
//  2. No back references: a cart line embeds a copy of its menu entry and
//     nothing points into the catalog
//  3. Money is float64 in rupees; rounding happens at display time only
package models
