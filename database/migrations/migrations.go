// Package migrations registers the schema migrations. Each migration
// lives in its own file and self-registers via init(), so importing this
// package for side effects is enough to populate the registry.
package migrations
