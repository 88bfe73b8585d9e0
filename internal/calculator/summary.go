package calculator

import (
	"github.com/mmynk/settleup/internal/ledger"
	"github.com/mmynk/settleup/internal/models"
)

// PersonSummary is one column of the paid/owed summary table.
type PersonSummary struct {
	Name       string
	TotalPaid  float64 // Sum of amounts this person paid
	TotalOwed  float64 // Sum of this person's weighted shares
	Difference float64 // TotalPaid - TotalOwed
}

// Summary is the paid/owed table for a fixed set of people.
type Summary struct {
	People []PersonSummary
}

// Get returns the summary for one person.
func (s Summary) Get(name string) (PersonSummary, bool) {
	for _, p := range s.People {
		if p.Name == name {
			return p, true
		}
	}
	return PersonSummary{}, false
}

// Check returns the sum of all differences. When the table covers everyone in
// the ledger it is within Tolerance of zero.
func (s Summary) Check() float64 {
	var sum float64
	for _, p := range s.People {
		sum += p.Difference
	}
	return sum
}

// GenerateSummary computes total paid and total owed for exactly the given
// people, in the given order (duplicates dropped). It does not settle.
//
// Only rows that contribute to balances are counted, so for the same set of
// people Difference equals the value AccumulateBalances returns. Payments by or
// shares of people outside the set are ignored. An empty ledger or empty people
// list yields a zero-filled table.
func GenerateSummary(rows []models.Expense, people []string) Summary {
	return GenerateSummaryWidth(rows, people, 0)
}

// GenerateSummaryWidth is GenerateSummary reading at most width named slots
// per row. A width of zero uses the widest row in the ledger.
func GenerateSummaryWidth(rows []models.Expense, people []string, width int) Summary {
	index := make(map[string]int, len(people))
	summary := Summary{People: make([]PersonSummary, 0, len(people))}
	for _, name := range people {
		if _, dup := index[name]; dup {
			continue
		}
		index[name] = len(summary.People)
		summary.People = append(summary.People, PersonSummary{Name: name})
	}

	if len(rows) == 0 || len(summary.People) == 0 {
		return summary
	}

	eachContribution(rows, ledger.SlotWidth(rows, width), func(c contribution) {
		if k, ok := index[c.payer]; ok {
			summary.People[k].TotalPaid += c.amount
		}
		perUnit := c.costPerUnit()
		for _, share := range c.shares {
			if k, ok := index[share.Name]; ok {
				summary.People[k].TotalOwed += perUnit * float64(share.Units)
			}
		}
	})

	for k := range summary.People {
		p := &summary.People[k]
		p.Difference = p.TotalPaid - p.TotalOwed
	}
	return summary
}
