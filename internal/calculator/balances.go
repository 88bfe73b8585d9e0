// Package calculator computes net balances, payment plans and paid/owed
// summaries from a ledger of expenses. Every function is pure: it reads the
// rows it is given and returns fresh values.
package calculator

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sort"

	"github.com/mmynk/settleup/internal/ledger"
	"github.com/mmynk/settleup/internal/models"
)

// Tolerance is the absolute window treated as zero when comparing balances.
const Tolerance = 0.01

// Balances maps a person to their net balance.
// Positive = owed money, Negative = owes money.
type Balances map[string]float64

// Names returns the people in the map, sorted.
func (b Balances) Names() []string {
	names := make([]string, 0, len(b))
	for name := range b {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Total returns the sum of all balances. For a consistent ledger it is
// within Tolerance of zero.
func (b Balances) Total() float64 {
	var sum float64
	for _, v := range b {
		sum += v
	}
	return sum
}

// RowIssue records a ledger row that was skipped and why.
type RowIssue struct {
	Index int // zero-based row index
	Err   error
}

func (r RowIssue) Error() string {
	return fmt.Sprintf("row %d: %v", r.Index+1, r.Err)
}

func (r RowIssue) Unwrap() error { return r.Err }

// contribution is one row reduced to what the calculator needs.
type contribution struct {
	payer  string
	amount float64
	units  int
	shares []models.Share
}

// costPerUnit is the share of the amount carried by one unit.
func (c contribution) costPerUnit() float64 {
	return c.amount / float64(c.units)
}

// parseRow validates one row. Rows with zero participant units return
// ErrNoParticipantUnits, which callers treat as a silent no-op.
func parseRow(row models.Expense, width int) (contribution, error) {
	payer, err := ledger.ParsePayer(row)
	if err != nil {
		return contribution{}, err
	}
	amount, err := ledger.ParseAmount(row)
	if err != nil {
		return contribution{}, err
	}
	units, shares, err := ledger.Normalize(row, width)
	if err != nil {
		return contribution{}, err
	}
	if units == 0 {
		return contribution{}, ledger.ErrNoParticipantUnits
	}
	return contribution{payer: payer, amount: amount, units: units, shares: shares}, nil
}

// eachContribution calls fn for every row that contributes to balances and
// returns the issues for rows that were skipped because of bad data. Only the
// first width slots of each row are read.
func eachContribution(rows []models.Expense, width int, fn func(c contribution)) []RowIssue {
	var issues []RowIssue
	for i, row := range rows {
		c, err := parseRow(row, width)
		if errors.Is(err, ledger.ErrNoParticipantUnits) {
			slog.Debug("Expense row has no participant units", "row", i+1)
			continue
		}
		if err != nil {
			slog.Warn("Skipping invalid expense row", "row", i+1, "error", err)
			issues = append(issues, RowIssue{Index: i, Err: err})
			continue
		}
		fn(c)
	}
	return issues
}

// AccumulateBalances computes the net balance of every person in the ledger.
//
// Algorithm:
//   - Every payer and participant name found anywhere starts at zero
//   - For each valid row: payer is credited the full amount, each share is
//     debited amount / total_units * units
//   - Payers who also participate are both credited and debited
//
// Malformed rows are skipped and returned as issues; they never abort the pass.
func AccumulateBalances(rows []models.Expense) (Balances, []RowIssue) {
	return AccumulateBalancesWidth(rows, 0)
}

// AccumulateBalancesWidth is AccumulateBalances reading at most width named
// slots per row. A width of zero uses the widest row in the ledger.
func AccumulateBalancesWidth(rows []models.Expense, width int) (Balances, []RowIssue) {
	balances := make(Balances)
	for _, name := range ledger.People(rows) {
		balances[name] = 0
	}

	issues := eachContribution(rows, ledger.SlotWidth(rows, width), func(c contribution) {
		perUnit := c.costPerUnit()
		balances[c.payer] += c.amount
		for _, share := range c.shares {
			balances[share.Name] -= perUnit * float64(share.Units)
		}
	})

	return balances, issues
}

// isZero reports whether v is within Tolerance of zero.
func isZero(v float64) bool {
	return math.Abs(v) < Tolerance
}
