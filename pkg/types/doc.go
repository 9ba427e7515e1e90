// Package types defines the entity types, status values, configuration, and
// standard errors of the tableside order and table state engine.
//
// Entities are plain structs with constructor validation. Menu items are
// immutable values; tables, orders, and order lines are mutable and owned by
// the engine components in internal/.
package types
