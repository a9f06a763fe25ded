// Package exchange marshals and unmarshals the layout exchange format: a
// versioned document listing a grid's dimensions, machines, and
// connections, used for import/export and for persisting an elite archive
// across optimizer invocations. YAML is the primary encoding; JSON is a
// thin fallback for consumers that prefer it.
package exchange
