// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ShadowGrid Contributors

package storycond

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	missionULID  = "01ARZ3NDEKTSV4RRFFQ69G5FAV"
	locationULID = "01BX5ZZKBKACTAV9WEVGEMMVRZ"
	itemULID     = "01BX5ZZKBKACTAV9WEVGEMMVS0"
)

func TestParse_Accepts(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"trait threshold", `trait(hacking) >= 5`},
		{"trait equality", `trait(wealth) == 10`},
		{"trait inequality", `trait(combat) != 3`},
		{"trait strict bounds", `trait(charisma) > 2`},
		{"trait upper bound", `trait(importance) <= 7`},
		{"mission done", `mission_done("` + missionULID + `")`},
		{"at location", `at_location("` + locationULID + `")`},
		{"item owned", `item_owned("` + itemULID + `")`},
		{"conjunction", `trait(hacking) >= 5 and trait(combat) >= 3`},
		{"disjunction", `trait(hacking) >= 5 or trait(charisma) >= 8`},
		{"negation", `not mission_done("` + missionULID + `")`},
		{"grouping", `(trait(hacking) >= 5 or trait(combat) >= 5) and at_location("` + locationULID + `")`},
		{"nested negation", `not (trait(wealth) < 3 and not item_owned("` + itemULID + `"))`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cond, err := Parse(tt.input)
			require.NoError(t, err)
			require.NotNil(t, cond)
			require.NotNil(t, cond.Expr)
		})
	}
}

func TestParse_Rejects(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ``},
		{"unknown trait", `trait(luck) >= 5`},
		{"bare ident", `hacking >= 5`},
		{"missing operand", `trait(hacking) >=`},
		{"unterminated group", `(trait(hacking) >= 5`},
		{"non-ulid mission", `mission_done("not-a-ulid")`},
		{"non-ulid location", `at_location("12345")`},
		{"non-ulid item", `item_owned("")`},
		{"unquoted argument", `mission_done(` + missionULID + `)`},
		{"dangling and", `trait(hacking) >= 5 and`},
		{"assignment operator", `trait(hacking) = 5`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.input)
			assert.Error(t, err)
		})
	}
}

func TestParse_NestingDepthLimit(t *testing.T) {
	deep := `trait(hacking) >= 5`
	for i := 0; i < MaxNestingDepth; i++ {
		deep = "(" + deep + ")"
	}
	_, err := Parse(deep)
	assert.NoError(t, err, "depth at the limit must parse")

	tooDeep := strings.Repeat("(", MaxNestingDepth+1) + `trait(hacking) >= 5` + strings.Repeat(")", MaxNestingDepth+1)
	_, err = Parse(tooDeep)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nesting depth")
}

func TestParse_PrecedenceOrBindsLooser(t *testing.T) {
	cond, err := Parse(`trait(hacking) >= 5 and trait(combat) >= 5 or trait(charisma) >= 9`)
	require.NoError(t, err)

	// Two disjunction terms: (hacking and combat), (charisma).
	require.Len(t, cond.Expr.Terms, 2)
	assert.Len(t, cond.Expr.Terms[0].Terms, 2)
	assert.Len(t, cond.Expr.Terms[1].Terms, 1)
}

func TestParse_UnquotesStringArguments(t *testing.T) {
	cond, err := Parse(`mission_done("` + missionULID + `")`)
	require.NoError(t, err)

	pred := cond.Expr.Terms[0].Terms[0].Predicate
	require.NotNil(t, pred)
	require.NotNil(t, pred.MissionDone)
	assert.Equal(t, missionULID, *pred.MissionDone, "quotes must be stripped")
}
