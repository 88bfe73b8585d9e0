package calculator

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mmynk/settleup/internal/ledger"
	"github.com/mmynk/settleup/internal/models"
)

// Status describes the outcome of a settlement run.
type Status int

const (
	// StatusNothingToSettle means the ledger had no data to settle.
	StatusNothingToSettle Status = iota
	// StatusSettled means the ledger had data but every balance is already zero.
	StatusSettled
	// StatusPending means payments are required; see Settlement.Transactions.
	StatusPending
)

func (s Status) String() string {
	switch s {
	case StatusNothingToSettle:
		return "nothing_to_settle"
	case StatusSettled:
		return "settled"
	case StatusPending:
		return "pending"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

const (
	nothingToSettleMessage = "Enter some expenses to calculate a settlement."
	settledMessage         = "Everyone is settled up!"
)

// Transaction is one suggested payment from a debtor to a creditor.
type Transaction struct {
	From   string  // Person who pays
	To     string  // Person who receives
	Amount float64 // Rounded to cents, always positive
}

func (t Transaction) String() string {
	return fmt.Sprintf("%s pays %s: $%s", t.From, t.To, decimal.NewFromFloat(t.Amount).StringFixed(2))
}

// Settlement is the payment plan for a ledger.
type Settlement struct {
	Status       Status
	Transactions []Transaction
	Skipped      []RowIssue // rows left out of the balances; set by CalculateSettlement
}

// Message renders the settlement the way it is shown to users.
func (s Settlement) Message() string {
	switch s.Status {
	case StatusNothingToSettle:
		return nothingToSettleMessage
	case StatusSettled:
		return settledMessage
	}
	lines := make([]string, len(s.Transactions))
	for i, t := range s.Transactions {
		lines[i] = t.String()
	}
	return strings.Join(lines, "\n")
}

type position struct {
	name    string
	balance float64
}

// Settle produces a payment plan that clears the given balances.
//
// Greedy matching: debtors (balance < -Tolerance) sorted most negative first,
// creditors (balance > Tolerance) sorted largest first, ties broken by name.
// Each step pays min(|debt|, credit) from the current debtor to the current
// creditor and advances whichever side reached zero (both may advance). It
// emits at most len(debtors)+len(creditors)-1 transactions. Residual drift left
// when one side runs out is not reported.
func Settle(balances Balances) Settlement {
	if len(balances) == 0 {
		return Settlement{Status: StatusNothingToSettle}
	}

	var debtors, creditors []position
	for name, bal := range balances {
		if bal < -Tolerance {
			debtors = append(debtors, position{name: name, balance: bal})
		} else if bal > Tolerance {
			creditors = append(creditors, position{name: name, balance: bal})
		}
	}
	sort.Slice(debtors, func(i, j int) bool {
		if debtors[i].balance != debtors[j].balance {
			return debtors[i].balance < debtors[j].balance
		}
		return debtors[i].name < debtors[j].name
	})
	sort.Slice(creditors, func(i, j int) bool {
		if creditors[i].balance != creditors[j].balance {
			return creditors[i].balance > creditors[j].balance
		}
		return creditors[i].name < creditors[j].name
	})

	var transactions []Transaction
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		debtor := &debtors[i]
		creditor := &creditors[j]

		amount := -debtor.balance
		if creditor.balance < amount {
			amount = creditor.balance
		}

		transactions = append(transactions, Transaction{
			From:   debtor.name,
			To:     creditor.name,
			Amount: roundCents(amount),
		})

		debtor.balance += amount
		creditor.balance -= amount

		if isZero(debtor.balance) {
			i++
		}
		if isZero(creditor.balance) {
			j++
		}
	}

	if len(transactions) == 0 {
		return Settlement{Status: StatusSettled}
	}
	return Settlement{Status: StatusPending, Transactions: transactions}
}

// CalculateSettlement runs the whole pipeline over a ledger: an empty ledger or
// one whose amounts sum to exactly zero has nothing to settle; otherwise
// balances are accumulated and settled.
func CalculateSettlement(rows []models.Expense) Settlement {
	return CalculateSettlementWidth(rows, 0)
}

// CalculateSettlementWidth is CalculateSettlement reading at most width named
// slots per row. A width of zero uses the widest row in the ledger.
func CalculateSettlementWidth(rows []models.Expense, width int) Settlement {
	if len(rows) == 0 || ledger.TotalAmount(rows) == 0 {
		return Settlement{Status: StatusNothingToSettle}
	}
	balances, issues := AccumulateBalancesWidth(rows, width)
	settlement := Settle(balances)
	settlement.Skipped = issues
	return settlement
}

// Apply returns a copy of balances with the transactions paid: each payer's
// balance rises and each receiver's falls by the transaction amount.
func Apply(balances Balances, transactions []Transaction) Balances {
	out := make(Balances, len(balances))
	for name, bal := range balances {
		out[name] = bal
	}
	for _, t := range transactions {
		out[t.From] += t.Amount
		out[t.To] -= t.Amount
	}
	return out
}

func roundCents(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
