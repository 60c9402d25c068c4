// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ShadowGrid Contributors

package storycond

// PlayerState is the evaluation environment for a reveal condition. Absent
// traits evaluate as zero; absent missions and items as not done / not owned.
type PlayerState struct {
	Traits          map[string]int
	MissionsDone    map[string]bool
	CurrentLocation string
	ItemsOwned      map[string]bool
}

// Evaluate reports whether the condition holds for the given player state.
// The condition must come from Parse, so every predicate is well formed.
func Evaluate(c *Condition, state PlayerState) bool {
	return evalDisjunction(c.Expr, state)
}

func evalDisjunction(d *Disjunction, state PlayerState) bool {
	for _, conj := range d.Terms {
		if evalConjunction(conj, state) {
			return true
		}
	}
	return false
}

func evalConjunction(c *Conjunction, state PlayerState) bool {
	for _, u := range c.Terms {
		if !evalUnary(u, state) {
			return false
		}
	}
	return true
}

func evalUnary(u *Unary, state PlayerState) bool {
	switch {
	case u.Not != nil:
		return !evalUnary(u.Not, state)
	case u.Grouped != nil:
		return evalDisjunction(u.Grouped, state)
	case u.Predicate != nil:
		return evalPredicate(u.Predicate, state)
	}
	return false
}

func evalPredicate(p *Predicate, state PlayerState) bool {
	switch {
	case p.Trait != nil:
		return evalTrait(p.Trait, state.Traits[p.Trait.Name])
	case p.MissionDone != nil:
		return state.MissionsDone[*p.MissionDone]
	case p.AtLocation != nil:
		return state.CurrentLocation == *p.AtLocation
	case p.ItemOwned != nil:
		return state.ItemsOwned[*p.ItemOwned]
	}
	return false
}

func evalTrait(t *TraitPredicate, actual int) bool {
	switch t.Op {
	case ">=":
		return actual >= t.Value
	case "<=":
		return actual <= t.Value
	case "==":
		return actual == t.Value
	case "!=":
		return actual != t.Value
	case ">":
		return actual > t.Value
	case "<":
		return actual < t.Value
	default:
		return false
	}
}
