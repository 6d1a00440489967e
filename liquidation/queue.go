package liquidation

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/dorkfi/dorkfi-backend/util"
)

// DefaultPageSize is the number of accounts per liquidation queue page.
const DefaultPageSize = 10

// Account is one risk-annotated entry in the liquidation queue.
type Account struct {
	Address           string
	HealthFactor      decimal.Decimal
	LiquidationMargin decimal.Decimal
	TotalSupplied     decimal.Decimal
	TotalBorrowed     decimal.Decimal
	LTV               decimal.Decimal
	RiskLevel         RiskLevel
	Severity          Severity
	Liquidatable      bool
	Round             uint64
	LastUpdated       int64
}

// BuildQueue maps per-address snapshots into classified accounts sorted
// ascending by health factor, most at-risk first.
func BuildQueue(snapshots map[string]Event, collateralFactor decimal.Decimal) []Account {
	accs := make([]Account, 0, len(snapshots))
	for addr, ev := range snapshots {
		h := ComputeHealth(ev, collateralFactor)
		level, severity := Classify(h.Factor)
		accs = append(accs, Account{
			Address:           addr,
			HealthFactor:      h.Factor,
			LiquidationMargin: Margin(h.Factor),
			TotalSupplied:     ev.Collateral,
			TotalBorrowed:     ev.Borrow,
			LTV:               h.LTV,
			RiskLevel:         level,
			Severity:          severity,
			Liquidatable:      Liquidatable(h.Factor),
			Round:             ev.Round,
			LastUpdated:       ev.Timestamp,
		})
	}
	sort.SliceStable(accs, func(i, j int) bool {
		if !accs[i].HealthFactor.Equal(accs[j].HealthFactor) {
			return accs[i].HealthFactor.LessThan(accs[j].HealthFactor)
		}
		return accs[i].Address < accs[j].Address
	})
	return accs
}

// PageBounds returns the half-open index range of a page along with the
// total page count. Pages are 1-based; out-of-range pages yield an empty
// range.
func PageBounds(total, page, size int) (start, end, totalPages int) {
	if size <= 0 {
		size = DefaultPageSize
	}
	totalPages = (total + size - 1) / size
	if page < 1 {
		page = 1
	}
	start = (page - 1) * size
	if start >= total {
		return total, total, totalPages
	}
	end = util.MinInt(start+size, total)
	return start, end, totalPages
}
