package rule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uncommentPass(rules ...*Rule) *Pass {
	return &Pass{Name: "uncomment", Rules: rules, Idempotent: true}
}

var (
	narrowCall  = Regex("call", `Text\(\s*//\s*(['"][^'"\n]*['"])\s*(\.\w+\(\),?)`, "Text(${1}${2}")
	genericText = Regex("text", `Text\(\s*//\s*(['"][^'"\n]*['"])(,)?`, "Text(${1}${2}")
)

func TestPass_Apply(t *testing.T) {
	p := uncommentPass(narrowCall, genericText)
	file := File{Path: "views/admin/admin_booking_list.dart"}

	got, changes := p.Apply(file, "Text( // 'a' .toUpperCase()) Text( // 'b', style)")
	assert.Equal(t, "Text('a'.toUpperCase()) Text('b', style)", got)
	assert.Equal(t, Changes{{Rule: "call", Count: 1}, {Rule: "text", Count: 1}}, changes)
	assert.Equal(t, 2, changes.Total())

	got, changes = p.Apply(file, got)
	assert.Equal(t, "Text('a'.toUpperCase()) Text('b', style)", got)
	assert.Empty(t, changes)
}

func TestPass_OrderSensitivity(t *testing.T) {
	file := File{Path: "a.dart"}
	input := "Text( // 'hello' .toUpperCase())"

	ordered, _ := uncommentPass(narrowCall, genericText).Apply(file, input)
	assert.Equal(t, "Text('hello'.toUpperCase())", ordered)

	reversed, _ := uncommentPass(genericText, narrowCall).Apply(file, input)
	assert.Equal(t, "Text('hello' .toUpperCase())", reversed)
	assert.NotEqual(t, ordered, reversed)
}

func TestPass_Validate(t *testing.T) {
	tests := []struct {
		name      string
		pass      *Pass
		wantError string
	}{
		{name: "valid", pass: uncommentPass(narrowCall, genericText)},
		{name: "missing_name", pass: &Pass{}, wantError: "pass name is required"},
		{name: "duplicate_rule", pass: uncommentPass(narrowCall, narrowCall), wantError: `duplicate rule id "call"`},
		{name: "invalid_rule", pass: uncommentPass(Literal("", "a", "b")), wantError: "rule id is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.pass.Validate()
			if tt.wantError != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantError)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestPipeline_Apply(t *testing.T) {
	pl := Pipeline{
		{Name: "first", Rules: []*Rule{Literal("a", "a", "b")}},
		{Name: "second", Rules: []*Rule{Literal("b", "b", "c")}},
		{Name: "third", Rules: []*Rule{Literal("z", "z", "y")}},
	}

	got, changes := pl.Apply(File{}, "a b")
	assert.Equal(t, "c c", got)
	assert.Equal(t, []PassChange{
		{Pass: "first", Changes: Changes{{Rule: "a", Count: 1}}},
		{Pass: "second", Changes: Changes{{Rule: "b", Count: 2}}},
	}, changes)
	assert.Equal(t, []string{"first", "second"}, PassNames(changes))
	assert.Equal(t, 3, Replacements(changes))
}

func TestPipeline_Converge(t *testing.T) {
	file := File{Path: "views/conductor/conductor_dashboard.dart"}

	// a repair that only becomes reachable after a later pass ran
	pl := Pipeline{
		{Name: "trip", Rules: []*Rule{Literal("trip", "(trip: t.trip)", "(trip: t)")}},
		{Name: "trip-id", Rules: []*Rule{Literal("trip-id", "(tripId: t.tripId)", "(trip: t.trip)")}},
	}

	got, changes, iterations, err := pl.Converge(file, "Screen(tripId: t.tripId)", 4)
	require.NoError(t, err)
	assert.Equal(t, "Screen(trip: t)", got)
	assert.Equal(t, 2, iterations)
	assert.Equal(t, []string{"trip-id", "trip"}, PassNames(changes))

	got, _, iterations, err = pl.Converge(file, got, 4)
	require.NoError(t, err)
	assert.Equal(t, "Screen(trip: t)", got)
	assert.Zero(t, iterations)
}

func TestPipeline_ConvergeBound(t *testing.T) {
	// non idempotent on purpose
	grow := Pipeline{{Name: "grow", Rules: []*Rule{Literal("grow", "a", "aa")}}}

	got, _, iterations, err := grow.Converge(File{Path: "x.dart"}, "a", 3)
	require.ErrorIs(t, err, ErrNotConverged)
	assert.Contains(t, err.Error(), "x.dart")
	assert.Equal(t, 3, iterations)
	assert.Equal(t, "aaaaaaaaaaaaaaaa", got)
}

func TestPipeline_Select(t *testing.T) {
	pl := Pipeline{
		{Name: "one"},
		{Name: "two"},
		{Name: "three"},
	}

	all, err := pl.Select()
	require.NoError(t, err)
	assert.Equal(t, []string{"one", "two", "three"}, all.Names())

	sub, err := pl.Select("three", "one")
	require.NoError(t, err)
	assert.Equal(t, []string{"one", "three"}, sub.Names())

	_, err = pl.Select("four")
	require.ErrorIs(t, err, ErrUnknownPass)

	p, ok := pl.Lookup("two")
	require.True(t, ok)
	assert.Equal(t, "two", p.Name)
}

func TestPipeline_Validate(t *testing.T) {
	require.NoError(t, Pipeline{{Name: "a"}, {Name: "b"}}.Validate())

	err := Pipeline{{Name: "a"}, {Name: "a"}}.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `duplicate pass "a"`)
}
