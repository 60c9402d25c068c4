// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ShadowGrid Contributors

package storycond

import (
	"fmt"
	"strings"

	"github.com/oklog/ulid/v2"
)

// Builders assemble condition strings that Parse accepts. The world generator
// uses them so every stored reveal condition is valid by construction.

// TraitAtLeast builds a trait threshold check, e.g. trait(hacking) >= 5.
func TraitAtLeast(name string, value int) string {
	return fmt.Sprintf("trait(%s) >= %d", name, value)
}

// MissionDone builds a mission completion check.
func MissionDone(id ulid.ULID) string {
	return fmt.Sprintf("mission_done(%q)", id.String())
}

// AtLocation builds a presence check.
func AtLocation(id ulid.ULID) string {
	return fmt.Sprintf("at_location(%q)", id.String())
}

// ItemOwned builds an ownership check.
func ItemOwned(id ulid.ULID) string {
	return fmt.Sprintf("item_owned(%q)", id.String())
}

// And joins conditions so all must hold.
func And(conds ...string) string {
	return strings.Join(conds, " and ")
}

// Or joins conditions so any may hold, parenthesized so the disjunction can be
// embedded in a larger conjunction.
func Or(conds ...string) string {
	if len(conds) == 1 {
		return conds[0]
	}
	return "(" + strings.Join(conds, " or ") + ")"
}

// Not negates a condition.
func Not(cond string) string {
	return "not (" + cond + ")"
}
