package filter_test

import (
	"math"
	"testing"

	"github.com/theographic/theodb/internal/filter"
	"gotest.tools/assert"
)

func str(s string) *string { return &s }
func num(n int) *int       { return &n }
func boolean(b bool) *bool { return &b }

func TestStringFilter(t *testing.T) {
	t.Run("eq is case sensitive", func(t *testing.T) {
		f := filter.StringFilter{Eq: str("Genesis")}
		assert.Assert(t, filter.Evaluate(f, "Genesis"))
		assert.Assert(t, !filter.Evaluate(f, "genesis"))
		assert.Assert(t, !filter.Evaluate(f, "Genesis "))
	})

	t.Run("contains ignores case", func(t *testing.T) {
		f := filter.StringFilter{Contains: str("samuel")}
		assert.Assert(t, filter.Evaluate(f, "1 Samuel"))
		assert.Assert(t, filter.Evaluate(f, "2 Samuel"))
		assert.Assert(t, !filter.Evaluate(f, "Exodus"))
	})

	t.Run("eq and contains combine", func(t *testing.T) {
		f := filter.StringFilter{Eq: str("1 Samuel"), Contains: str("SAM")}
		assert.Assert(t, filter.Evaluate(f, "1 Samuel"))
		assert.Assert(t, !filter.Evaluate(f, "2 Samuel"))

		f = filter.StringFilter{Eq: str("Exodus"), Contains: str("sam")}
		assert.Assert(t, !filter.Evaluate(f, "Exodus"))
	})

	t.Run("nil is empty string", func(t *testing.T) {
		assert.Assert(t, filter.Evaluate(filter.StringFilter{Eq: str("")}, nil))
		assert.Assert(t, filter.Evaluate(filter.StringFilter{Contains: str("")}, nil))
		assert.Assert(t, !filter.Evaluate(filter.StringFilter{Contains: str("a")}, nil))
	})

	t.Run("non string values", func(t *testing.T) {
		assert.Assert(t, filter.Evaluate(filter.StringFilter{Eq: str("3")}, 3.0))
		assert.Assert(t, filter.Evaluate(filter.StringFilter{Eq: str("true")}, true))
		assert.Assert(t, filter.Evaluate(filter.StringFilter{Contains: str("b,c")}, []any{"a", "b", "c"}))
	})
}

func TestIntFilter(t *testing.T) {
	t.Run("range is inclusive", func(t *testing.T) {
		f := filter.IntFilter{Gte: num(1), Lte: num(5)}
		for i := 1; i <= 5; i++ {
			assert.Assert(t, filter.Evaluate(f, float64(i)), i)
		}
		assert.Assert(t, !filter.Evaluate(f, 0.))
		assert.Assert(t, !filter.Evaluate(f, 6.))
	})

	t.Run("eq", func(t *testing.T) {
		f := filter.IntFilter{Eq: num(1)}
		assert.Assert(t, filter.Evaluate(f, 1.))
		assert.Assert(t, filter.Evaluate(f, "1"))
		assert.Assert(t, !filter.Evaluate(f, 1.5))
	})

	t.Run("null fails every present bound", func(t *testing.T) {
		assert.Assert(t, !filter.Evaluate(filter.IntFilter{Eq: num(0)}, nil))
		assert.Assert(t, !filter.Evaluate(filter.IntFilter{Gte: num(-10)}, nil))
		assert.Assert(t, !filter.Evaluate(filter.IntFilter{Lte: num(10)}, nil))
		assert.Assert(t, !filter.Evaluate(filter.IntFilter{Lte: num(10)}, "n/a"))
	})

	t.Run("float values", func(t *testing.T) {
		f := filter.IntFilter{Gte: num(-1000), Lte: num(-900)}
		assert.Assert(t, filter.Evaluate(f, -950.5))
		assert.Assert(t, !filter.Evaluate(f, -899.5))
	})
}

func TestBoolFilter(t *testing.T) {
	t.Run("eq", func(t *testing.T) {
		f := filter.BoolFilter{Eq: boolean(true)}
		assert.Assert(t, filter.Evaluate(f, true))
		assert.Assert(t, !filter.Evaluate(f, false))
		assert.Assert(t, !filter.Evaluate(f, nil))
	})

	t.Run("truthiness", func(t *testing.T) {
		f := filter.BoolFilter{Eq: boolean(false)}
		assert.Assert(t, filter.Evaluate(f, nil))
		assert.Assert(t, filter.Evaluate(f, ""))
		assert.Assert(t, filter.Evaluate(f, 0.))
		assert.Assert(t, filter.Evaluate(f, math.NaN()))
		assert.Assert(t, !filter.Evaluate(f, "no"))
		assert.Assert(t, !filter.Evaluate(f, []any{}))
	})
}

func TestEvaluateEmpty(t *testing.T) {
	assert.Assert(t, filter.Evaluate(nil, "anything"))
	assert.Assert(t, filter.Evaluate(filter.StringFilter{}, nil))
	assert.Assert(t, filter.Evaluate(filter.IntFilter{}, nil))
	assert.Assert(t, filter.Evaluate(filter.BoolFilter{}, nil))
}

func TestStringify(t *testing.T) {
	assert.Equal(t, filter.Stringify(nil), "")
	assert.Equal(t, filter.Stringify(-1574.), "-1574")
	assert.Equal(t, filter.Stringify(0.25), "0.25")
	assert.Equal(t, filter.Stringify(false), "false")
	assert.Equal(t, filter.Stringify([]any{"recA", 2.}), "recA,2")
}
