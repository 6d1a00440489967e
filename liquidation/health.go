package liquidation

import "github.com/shopspring/decimal"

var (
	// DefaultCollateralFactor is the flat fraction of collateral value
	// counted toward borrowing power when no per-asset weighting is given.
	DefaultCollateralFactor = decimal.RequireFromString("0.8")

	// MaxHealthFactor caps the reported health factor. Positions with no
	// debt report exactly this value.
	MaxHealthFactor = decimal.RequireFromString("3")

	// LiquidationThreshold is the health factor at or below which a
	// position may be liquidated.
	LiquidationThreshold = decimal.RequireFromString("1")

	hundred = decimal.RequireFromString("100")
)

// Risk tier boundaries, inclusive on the lower (more severe) side.
var (
	liquidatableBound = decimal.RequireFromString("0.5")
	criticalBound     = decimal.RequireFromString("1")
	cautionBound      = decimal.RequireFromString("1.2")
	moderateBound     = decimal.RequireFromString("1.5")
)

type RiskLevel string

const (
	RiskLiquidatable RiskLevel = "liquidatable"
	RiskDanger       RiskLevel = "danger"
	RiskModerate     RiskLevel = "moderate"
	RiskSafe         RiskLevel = "safe"
)

// Severity refines the danger tier.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityCaution  Severity = "caution"
	SeverityNone     Severity = ""
)

type Health struct {
	Factor decimal.Decimal
	LTV    decimal.Decimal
}

// ComputeHealth derives the health factor and loan-to-value ratio from a
// position snapshot. A position with no debt reports MaxHealthFactor; a
// position with debt but no collateral reports zero.
func ComputeHealth(ev Event, collateralFactor decimal.Decimal) Health {
	if ev.Borrow.IsZero() {
		return Health{Factor: MaxHealthFactor, LTV: decimal.Zero}
	}
	if ev.Collateral.IsZero() {
		return Health{Factor: decimal.Zero, LTV: decimal.Zero}
	}
	factor := ev.Collateral.Mul(collateralFactor).Div(ev.Borrow)
	if factor.GreaterThan(MaxHealthFactor) {
		factor = MaxHealthFactor
	}
	return Health{
		Factor: factor,
		LTV:    ev.Borrow.Div(ev.Collateral).Mul(hundred),
	}
}

// Classify maps a health factor to a risk tier. Boundary values belong to
// the more severe tier.
func Classify(factor decimal.Decimal) (RiskLevel, Severity) {
	switch {
	case factor.LessThanOrEqual(liquidatableBound):
		return RiskLiquidatable, SeverityCritical
	case factor.LessThanOrEqual(criticalBound):
		return RiskDanger, SeverityCritical
	case factor.LessThanOrEqual(cautionBound):
		return RiskDanger, SeverityCaution
	case factor.LessThanOrEqual(moderateBound):
		return RiskModerate, SeverityNone
	default:
		return RiskSafe, SeverityNone
	}
}

// Liquidatable reports whether a "liquidate now" action may be taken
// against the position. This is a wider threshold than the liquidatable
// risk tier: the tier marks the most severe bucket, the action unlocks as
// soon as the position crosses the liquidation threshold.
func Liquidatable(factor decimal.Decimal) bool {
	return factor.LessThanOrEqual(LiquidationThreshold)
}

// Margin is the buffer above the liquidation threshold as a percentage,
// floored at zero.
func Margin(factor decimal.Decimal) decimal.Decimal {
	m := factor.Sub(LiquidationThreshold).Mul(hundred)
	if m.IsNegative() {
		return decimal.Zero
	}
	return m
}
