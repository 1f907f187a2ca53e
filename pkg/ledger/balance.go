// Package ledger derives rent balances from lease terms and recorded
// payments. The calculation uses calendar months, not elapsed days: a
// lease owes rent for every month it has touched, including the
// current one.
package ledger

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/rentdesk/rentdesk/pkg/domain"
)

// Statement is the computed rent position for one tenant as of a
// reference instant. Balance is signed: positive means the tenant owes
// money, negative means the tenant has overpaid.
type Statement struct {
	MonthsOwed  int
	TotalOwed   decimal.Decimal
	TotalPaid   decimal.Decimal
	Balance     decimal.Decimal
	NextDueDate time.Time
}

// MonthsOwed counts the rent cycles elapsed between leaseStart and now,
// inclusive of the current month, floored at zero. Day-of-month is
// irrelevant: a lease started on the 31st evaluated on the 1st of the
// next month counts one additional elapsed month.
func MonthsOwed(leaseStart, now time.Time) int {
	months := (now.Year()-leaseStart.Year())*12 + int(now.Month()) - int(leaseStart.Month()) + 1
	if months < 0 {
		months = 0
	}
	return months
}

// NextDueDate returns the first calendar day of the month after now,
// in now's location.
func NextDueDate(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month()+1, 1, 0, 0, 0, 0, now.Location())
}

// Compute produces the rent statement for a tenant. Payments are summed
// all-time with no date filtering; their order is irrelevant.
func Compute(leaseStart time.Time, monthlyRent decimal.Decimal, payments []domain.Payment, now time.Time) Statement {
	monthsOwed := MonthsOwed(leaseStart, now)
	totalOwed := monthlyRent.Mul(decimal.NewFromInt(int64(monthsOwed)))

	totalPaid := decimal.Zero
	for _, p := range payments {
		totalPaid = totalPaid.Add(p.Amount)
	}

	return Statement{
		MonthsOwed:  monthsOwed,
		TotalOwed:   totalOwed,
		TotalPaid:   totalPaid,
		Balance:     totalOwed.Sub(totalPaid),
		NextDueDate: NextDueDate(now),
	}
}
