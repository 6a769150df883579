// Package aliases stores per-user group display state: the alias map that
// renames domain groups and the order overrides that pin groups in the list.
// This state lives outside the records themselves; losing it only resets
// group names and ordering to their derived defaults.
package aliases

import "context"

// Store is the key-value capability the grouping layer is fed from.
type Store interface {
	// Aliases returns the user's domainKey -> display name map.
	Aliases(ctx context.Context, userID string) (map[string]string, error)

	// SetAlias maps a domain key to a display name. An empty alias removes
	// the mapping.
	SetAlias(ctx context.Context, userID, domainKey, alias string) error

	// Order returns the user's domainKey -> position overrides.
	Order(ctx context.Context, userID string) (map[string]int, error)

	// SetOrder pins a domain key to a position in the group list.
	SetOrder(ctx context.Context, userID, domainKey string, position int) error
}
