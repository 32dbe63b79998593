// Package economy provides the opaque goal and item tokens the preference
// engine operates on, plus the demand field used by the simulation driver.
package economy

import "strings"

// Goal is an abstract end an actor wants satisfied. The engine treats it as
// an opaque token: comparable, usable as a map key, and intrinsically
// ordered (lexicographically) for item-value comparisons.
type Goal string

// Item is an abstract means an actor can apply toward satisfying goals.
// Opaque, comparable, usable as a map key.
type Item string

// Compare orders two goals by their intrinsic (lexicographic) order.
// Note this is independent of any actor's hierarchy rank.
func (g Goal) Compare(other Goal) int {
	return strings.Compare(string(g), string(other))
}
