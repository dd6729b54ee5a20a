package report

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatComma(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		digits   int
		expected string
	}{
		{"zero with default digits", 0, 2, "0.00"},
		{"rounds when digits is zero", 1234.5, 0, "1,235"},
		{"grouping and two digits", 1234.5, 2, "1,234.50"},
		{"large value grouping", 1234567.891, 2, "1,234,567.89"},
		{"negative value", -42.5, 2, "-42.50"},
		{"more than two digits allowed", 1.23456, 4, "1.2346"},
		{"trailing zeros trimmed above the floor", 1.2, 4, "1.20"},
		{"nan coerces to zero", math.NaN(), 2, "0.00"},
		{"infinity coerces to zero", math.Inf(1), 2, "0.00"},
		{"negative digits clamp to zero", 1234.5, -1, "1,235"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatComma(tt.value, tt.digits))
		})
	}
}

func TestFormatMinus(t *testing.T) {
	assert.Equal(t, "(1,234.50)", FormatMinus(-1234.5, 2))
	assert.Equal(t, "1,234.50", FormatMinus(1234.5, 2))
	assert.Equal(t, "0.00", FormatMinus(0, 2))
}

func TestSum(t *testing.T) {
	assert.True(t, Sum(nil).IsZero())
	assert.True(t, Sum([]decimal.Decimal{}).IsZero())

	total := Sum([]decimal.Decimal{
		decimal.NewFromInt(2),
		decimal.NewFromInt(3),
	})
	assert.True(t, total.Equal(decimal.NewFromInt(5)))
}

func TestSumBy(t *testing.T) {
	type row struct {
		X decimal.Decimal
	}

	assert.True(t, SumBy(nil, func(r row) decimal.Decimal { return r.X }).IsZero())

	rows := []row{
		{X: decimal.NewFromInt(2)},
		{X: decimal.NewFromInt(3)},
	}
	total := SumBy(rows, func(r row) decimal.Decimal { return r.X })
	assert.True(t, total.Equal(decimal.NewFromInt(5)))
}

func TestPercentageChange(t *testing.T) {
	assert.Equal(t, "100.00", PercentageChange(decimal.Zero, decimal.NewFromInt(50)))
	assert.Equal(t, "0.00", PercentageChange(decimal.Zero, decimal.Zero))
	assert.Equal(t, "50.00", PercentageChange(decimal.NewFromInt(100), decimal.NewFromInt(150)))
	assert.Equal(t, "-25.00", PercentageChange(decimal.NewFromInt(100), decimal.NewFromInt(75)))
}

func TestGroupBySum(t *testing.T) {
	type row struct {
		Tower string
		Net   decimal.Decimal
	}

	rows := []row{
		{Tower: "a", Net: decimal.NewFromInt(1)},
		{Tower: "a", Net: decimal.NewFromInt(2)},
		{Tower: "b", Net: decimal.NewFromInt(5)},
	}

	grouped := GroupBySum(rows,
		func(r row) string { return r.Tower },
		func(dst *row, src row) { dst.Net = dst.Net.Add(src.Net) },
	)

	assert.Len(t, grouped, 2)
	assert.Equal(t, "a", grouped[0].Tower)
	assert.True(t, grouped[0].Net.Equal(decimal.NewFromInt(3)))
	assert.Equal(t, "b", grouped[1].Tower)
	assert.True(t, grouped[1].Net.Equal(decimal.NewFromInt(5)))
}

func TestGroupBySumEmpty(t *testing.T) {
	grouped := GroupBySum(nil,
		func(v int) int { return v },
		func(dst *int, src int) {},
	)
	assert.Empty(t, grouped)
}
