// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ShadowGrid Contributors

// Package storycond defines the AST types for story-element reveal conditions
// and provides a parser built with participle. A reveal condition is a small
// boolean expression over player state, e.g.
//
//	trait(hacking) >= 5 and not mission_done("01JA...")
package storycond

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// condLexer defines the token types for reveal conditions. Multi-character
// comparison operators need explicit rules so the lexer does not split them.
var condLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "String", Pattern: `"[^"]*"`},
	{Name: "OpGe", Pattern: `>=`},
	{Name: "OpLe", Pattern: `<=`},
	{Name: "OpEq", Pattern: `==`},
	{Name: "OpNe", Pattern: `!=`},
	{Name: "OpGt", Pattern: `>`},
	{Name: "OpLt", Pattern: `<`},
	{Name: "Number", Pattern: `\d+`},
	{Name: "Ident", Pattern: `[a-zA-Z_]\w*`},
	{Name: "Punct", Pattern: `[()]`},
	{Name: "whitespace", Pattern: `\s+`},
})

// Condition is the root of a parsed reveal condition.
//
// Grammar: disjunction of conjunctions of (possibly negated) predicates, with
// parentheses for grouping. "or" binds looser than "and".
type Condition struct {
	Pos  lexer.Position `parser:"" json:"-"`
	Expr *Disjunction   `parser:"@@" json:"expr"`
}

// Disjunction holds one or more conjunctions separated by "or".
type Disjunction struct {
	Pos   lexer.Position `parser:"" json:"-"`
	Terms []*Conjunction `parser:"@@ ('or' @@)*" json:"terms"`
}

// Conjunction holds one or more unary terms separated by "and".
type Conjunction struct {
	Pos   lexer.Position `parser:"" json:"-"`
	Terms []*Unary       `parser:"@@ ('and' @@)*" json:"terms"`
}

// Unary is a negation, a parenthesized group, or a predicate.
type Unary struct {
	Pos       lexer.Position `parser:"" json:"-"`
	Not       *Unary         `parser:"  'not' @@" json:"not,omitempty"`
	Grouped   *Disjunction   `parser:"| '(' @@ ')'" json:"grouped,omitempty"`
	Predicate *Predicate     `parser:"| @@" json:"predicate,omitempty"`
}

// Predicate is one of the four leaf checks against player state.
type Predicate struct {
	Pos         lexer.Position  `parser:"" json:"-"`
	Trait       *TraitPredicate `parser:"  @@" json:"trait,omitempty"`
	MissionDone *string         `parser:"| 'mission_done' '(' @String ')'" json:"mission_done,omitempty"`
	AtLocation  *string         `parser:"| 'at_location' '(' @String ')'" json:"at_location,omitempty"`
	ItemOwned   *string         `parser:"| 'item_owned' '(' @String ')'" json:"item_owned,omitempty"`
}

// TraitPredicate compares a named character trait against a constant.
type TraitPredicate struct {
	Pos   lexer.Position `parser:"" json:"-"`
	Name  string         `parser:"'trait' '(' @Ident ')'" json:"name"`
	Op    string         `parser:"@(OpGe | OpLe | OpEq | OpNe | OpGt | OpLt)" json:"op"`
	Value int            `parser:"@Number" json:"value"`
}

// NewParser constructs a participle parser for the Condition grammar.
func NewParser() (*participle.Parser[Condition], error) {
	return participle.Build[Condition](
		participle.Lexer(condLexer),
		participle.Unquote("String"),
	)
}
