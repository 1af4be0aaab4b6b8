package script

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chazu/ashlar/pkg/params"
)

// ---------------------------------------------------------------------------
// Preprocessing
// ---------------------------------------------------------------------------

func TestPreprocessSource(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"keyword", "(building :width 8)", `(building "__kw_width" 8)`},
		{"kebab keyword", "(:flat-roof true)", `("__kw_flat-roof" true)`},
		{"kebab identifier", "(my-func 1)", "(my_func 1)"},
		{"minus untouched", "(- 5 3)", "(- 5 3)"},
		{"comment", "; note\n(+ 1 2)", "// note\n(+ 1 2)"},
		{"double comment", ";; note", "// note"},
		{"string preserved", `(building "flat-roof")`, `(building "flat-roof")`},
		{"assignment preserved", "(x := 3)", "(x := 3)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, preprocessSource(tt.in))
		})
	}
}

// ---------------------------------------------------------------------------
// Evaluation
// ---------------------------------------------------------------------------

func TestEvaluateEmptySource(t *testing.T) {
	eng := NewEngine()
	res, evalErrs, err := eng.Evaluate("   \n\t ")
	require.NoError(t, err)
	require.Empty(t, evalErrs)
	require.NotNil(t, res)
	assert.Empty(t, res.Buildings)
}

func TestEvaluatePlainLisp(t *testing.T) {
	eng := NewEngine()
	res, evalErrs, err := eng.Evaluate("(def x 10)\n(+ x 2)")
	require.NoError(t, err)
	require.Empty(t, evalErrs)
	assert.Empty(t, res.Buildings)
}

func TestEvaluateBuildingDefaults(t *testing.T) {
	eng := NewEngine()
	res, evalErrs, err := eng.Evaluate("(building)")
	require.NoError(t, err)
	require.Empty(t, evalErrs)
	require.Len(t, res.Buildings, 1)

	b := res.Buildings[0]
	assert.Equal(t, 0, b.Index)
	assert.Equal(t, params.Defaults(), b.Params)
	require.NotNil(t, b.Mesh)
	assert.False(t, b.Mesh.IsEmpty())
}

func TestEvaluateBuildingParams(t *testing.T) {
	eng := NewEngine()
	src := `(building :width 10 :depth 8 :floors 3
                  :profile :warehouse
                  :window-sides :front-back
                  :flat-roof false
                  :seed 7)`
	res, evalErrs, err := eng.Evaluate(src)
	require.NoError(t, err)
	require.Empty(t, evalErrs)
	require.Len(t, res.Buildings, 1)

	b := res.Buildings[0].Params
	assert.Equal(t, 10.0, b.Width)
	assert.Equal(t, 8.0, b.Depth)
	assert.Equal(t, 3, b.Floors)
	assert.Equal(t, params.ProfileWarehouse, b.BuildingProfile)
	assert.Equal(t, params.SidesFrontBack, b.WindowSides)
	assert.False(t, b.FlatRoof)
	assert.Equal(t, int64(7), b.Seed)
}

func TestEvaluateBuildingDamageAndFill(t *testing.T) {
	eng := NewEngine()
	src := `(building :damage true :damage-amount 0.5
                  :fill :rubble-piles :rubble-density 0.4)`
	res, evalErrs, err := eng.Evaluate(src)
	require.NoError(t, err)
	require.Empty(t, evalErrs)
	require.Len(t, res.Buildings, 1)

	b := res.Buildings[0].Params
	assert.True(t, b.EnableDamage)
	assert.Equal(t, 0.5, b.DamageAmount)
	assert.Equal(t, params.FillRubblePiles, b.InteriorFill)
	assert.Equal(t, 0.4, b.RubbleDensity)
}

func TestEvaluateBuildingBadArgType(t *testing.T) {
	eng := NewEngine()
	res, evalErrs, err := eng.Evaluate(`(building :width "wide")`)
	require.NoError(t, err)
	require.NotEmpty(t, evalErrs)
	assert.Nil(t, res)
}

func TestEvaluateBuildingUnknownParam(t *testing.T) {
	eng := NewEngine()
	_, evalErrs, err := eng.Evaluate("(building :wibble 3)")
	require.NoError(t, err)
	require.NotEmpty(t, evalErrs)
	assert.Contains(t, evalErrs[0].Message, "wibble")
}

func TestEvaluateParseError(t *testing.T) {
	eng := NewEngine()
	res, evalErrs, err := eng.Evaluate("(building :width 8")
	require.NoError(t, err)
	require.NotEmpty(t, evalErrs)
	assert.Nil(t, res)
}

func TestEvaluateBatch(t *testing.T) {
	eng := NewEngine()
	src := `(batch :count 3 :seed 11 :layout :row :spacing 2
               :width-min 6 :width-max 8 :depth-min 5 :depth-max 6
               :floors-min 1 :floors-max 2)`
	res, evalErrs, err := eng.Evaluate(src)
	require.NoError(t, err)
	require.Empty(t, evalErrs)
	require.Len(t, res.Buildings, 3)

	for i, p := range res.Buildings {
		assert.Equal(t, i, p.Index)
		require.NotNil(t, p.Mesh)
		assert.False(t, p.Mesh.IsEmpty())
	}
	// Row layout spaces the cells along X.
	assert.Greater(t, res.Buildings[1].Offset.X, res.Buildings[0].Offset.X)
	assert.Greater(t, res.Buildings[2].Offset.X, res.Buildings[1].Offset.X)
}

func TestEvaluateBatchFixedProfile(t *testing.T) {
	eng := NewEngine()
	src := `(batch :count 2 :seed 3 :profile :bar
               :width-min 8 :width-max 8 :depth-min 7 :depth-max 7)`
	res, evalErrs, err := eng.Evaluate(src)
	require.NoError(t, err)
	require.Empty(t, evalErrs)
	require.Len(t, res.Buildings, 2)
	for _, p := range res.Buildings {
		assert.Equal(t, params.ProfileBar, p.Params.BuildingProfile)
	}
}

func TestEvaluateMixedScript(t *testing.T) {
	eng := NewEngine()
	src := `
; one hero building, then a filler batch
(building :width 12 :depth 9 :floors 2 :profile :storefront)
(batch :count 2 :seed 21)`
	res, evalErrs, err := eng.Evaluate(src)
	require.NoError(t, err)
	require.Empty(t, evalErrs)
	require.Len(t, res.Buildings, 3)
	assert.Equal(t, 12.0, res.Buildings[0].Params.Width)
	for i, p := range res.Buildings {
		assert.Equal(t, i, p.Index)
	}
}

func TestEvaluateIsolatedBetweenRuns(t *testing.T) {
	eng := NewEngine()
	res1, _, err := eng.Evaluate("(building)")
	require.NoError(t, err)
	res2, _, err := eng.Evaluate("(building)")
	require.NoError(t, err)
	assert.Len(t, res1.Buildings, 1)
	assert.Len(t, res2.Buildings, 1)
}
