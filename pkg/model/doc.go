// Package model defines the declarative form definition consumed by the schema
// compiler and the form controller. A FormModel lists its fields in display
// order; every Field carries an ordered slice of ValidationRule values whose
// Kind is one of the ValidationRule* constants. Rules keep their parameters as
// strings (Params["value"], Params["pattern"], Params["ref"], Params["values"])
// so definitions round-trip through JSON and YAML without loss, and carry the
// user-facing Message shown when the rule fails.
package model
