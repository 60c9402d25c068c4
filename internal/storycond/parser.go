// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ShadowGrid Contributors

package storycond

import (
	"fmt"

	"github.com/alecthomas/participle/v2"
	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"
)

// MaxNestingDepth is the maximum allowed nesting depth for conditions.
const MaxNestingDepth = 16

// Trait names a predicate may reference.
var traitNames = map[string]bool{
	"importance": true,
	"hacking":    true,
	"combat":     true,
	"charisma":   true,
	"wealth":     true,
}

// parser is the singleton participle parser instance.
var parser *participle.Parser[Condition]

func init() {
	var err error
	parser, err = NewParser()
	if err != nil {
		panic(fmt.Sprintf("failed to build storycond parser: %v", err))
	}
}

// Parse parses a reveal condition into an AST, validating trait names, ULID
// arguments, and nesting depth.
func Parse(text string) (*Condition, error) {
	cond, err := parser.ParseString("", text)
	if err != nil {
		return nil, oops.Code("REVEAL_CONDITION_INVALID").Wrapf(err, "parsing reveal condition")
	}
	if err := validateDisjunction(cond.Expr, 0); err != nil {
		return nil, oops.Code("REVEAL_CONDITION_INVALID").Wrap(err)
	}
	return cond, nil
}

func validateDisjunction(d *Disjunction, depth int) error {
	if depth > MaxNestingDepth {
		return fmt.Errorf("nesting depth exceeds maximum of %d", MaxNestingDepth)
	}
	for _, conj := range d.Terms {
		for _, u := range conj.Terms {
			if err := validateUnary(u, depth); err != nil {
				return err
			}
		}
	}
	return nil
}

func validateUnary(u *Unary, depth int) error {
	switch {
	case u.Not != nil:
		return validateUnary(u.Not, depth+1)
	case u.Grouped != nil:
		return validateDisjunction(u.Grouped, depth+1)
	case u.Predicate != nil:
		return validatePredicate(u.Predicate)
	}
	return nil
}

func validatePredicate(p *Predicate) error {
	switch {
	case p.Trait != nil:
		if !traitNames[p.Trait.Name] {
			return fmt.Errorf("unknown trait %q", p.Trait.Name)
		}
	case p.MissionDone != nil:
		return validateULIDArg("mission_done", *p.MissionDone)
	case p.AtLocation != nil:
		return validateULIDArg("at_location", *p.AtLocation)
	case p.ItemOwned != nil:
		return validateULIDArg("item_owned", *p.ItemOwned)
	}
	return nil
}

func validateULIDArg(predicate, arg string) error {
	if _, err := ulid.Parse(arg); err != nil {
		return fmt.Errorf("%s argument %q is not a ULID: %w", predicate, arg, err)
	}
	return nil
}
