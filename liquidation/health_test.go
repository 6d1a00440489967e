package liquidation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestComputeHealth(t *testing.T) {
	for _, tc := range []struct {
		name       string
		collateral string
		borrow     string
		factor     string
		ltv        string
	}{
		{"healthy", "8", "4", "1.6", "50"},
		{"underwater", "1", "10", "0.08", "1000"},
		{"at threshold", "5", "4", "1", "80"},
		{"capped", "100", "1", "3", "1"},
		{"no debt", "42", "0", "3", "0"},
		{"no debt no collateral", "0", "0", "3", "0"},
		{"debt without collateral", "0", "7", "0", "0"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			h := ComputeHealth(Event{
				Collateral: decimal.RequireFromString(tc.collateral),
				Borrow:     decimal.RequireFromString(tc.borrow),
			}, DefaultCollateralFactor)
			require.True(t, h.Factor.Equal(decimal.RequireFromString(tc.factor)), "factor = %s", h.Factor)
			require.True(t, h.LTV.Equal(decimal.RequireFromString(tc.ltv)), "ltv = %s", h.LTV)
		})
	}
}

func TestComputeHealthCustomCollateralFactor(t *testing.T) {
	h := ComputeHealth(Event{
		Collateral: decimal.RequireFromString("10"),
		Borrow:     decimal.RequireFromString("5"),
	}, decimal.RequireFromString("0.5"))
	require.True(t, h.Factor.Equal(decimal.RequireFromString("1")), "factor = %s", h.Factor)
}

func TestComputeHealthMonotonicInCollateral(t *testing.T) {
	borrow := decimal.RequireFromString("7")
	prev := decimal.Decimal{}
	for i := 0; i <= 50; i++ {
		h := ComputeHealth(Event{
			Collateral: decimal.NewFromInt(int64(i)),
			Borrow:     borrow,
		}, DefaultCollateralFactor)
		require.True(t, h.Factor.GreaterThanOrEqual(prev), "factor decreased at collateral %d", i)
		prev = h.Factor
	}
}

func TestClassifyBoundaries(t *testing.T) {
	for _, tc := range []struct {
		factor   string
		level    RiskLevel
		severity Severity
	}{
		{"0", RiskLiquidatable, SeverityCritical},
		{"0.5", RiskLiquidatable, SeverityCritical},
		{"0.500001", RiskDanger, SeverityCritical},
		{"1", RiskDanger, SeverityCritical},
		{"1.000001", RiskDanger, SeverityCaution},
		{"1.2", RiskDanger, SeverityCaution},
		{"1.200001", RiskModerate, SeverityNone},
		{"1.5", RiskModerate, SeverityNone},
		{"1.500001", RiskSafe, SeverityNone},
		{"3", RiskSafe, SeverityNone},
	} {
		t.Run(tc.factor, func(t *testing.T) {
			level, severity := Classify(decimal.RequireFromString(tc.factor))
			require.Equal(t, tc.level, level)
			require.Equal(t, tc.severity, severity)
		})
	}
}

func TestLiquidatable(t *testing.T) {
	require.True(t, Liquidatable(decimal.RequireFromString("0.5")))
	require.True(t, Liquidatable(decimal.RequireFromString("1")))
	require.False(t, Liquidatable(decimal.RequireFromString("1.000001")))
}

func TestMargin(t *testing.T) {
	require.True(t, Margin(decimal.RequireFromString("1.6")).Equal(decimal.RequireFromString("60")))
	require.True(t, Margin(decimal.RequireFromString("1")).Equal(decimal.Zero))
	require.True(t, Margin(decimal.RequireFromString("0.08")).Equal(decimal.Zero))
}
