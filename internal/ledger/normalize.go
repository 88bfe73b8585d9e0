// Package ledger turns raw expense rows into the canonical form used by the
// calculator: a trimmed payer, a parsed amount and a list of weighted shares.
package ledger

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/mmynk/settleup/internal/models"
)

// Normalize extracts the participant shares of one expense.
//
// Flat participants contribute (name, 1) each. Slots 1..maxSlots contribute
// (name, members) when the slot name is non-blank; a blank member count means 1.
// Both encodings are summed: a name present in both is counted twice.
//
// It returns the total number of units and the shares in encounter order.
// A malformed member count returns an error wrapping ErrInvalidMembers.
func Normalize(e models.Expense, maxSlots int) (int, []models.Share, error) {
	total := 0
	var shares []models.Share

	for _, p := range e.Participants {
		name := strings.TrimSpace(p)
		if name == "" {
			continue
		}
		total++
		shares = append(shares, models.Share{Name: name, Units: 1})
	}

	for i, slot := range e.Slots {
		if i >= maxSlots {
			break
		}
		name := strings.TrimSpace(slot.Name)
		if name == "" {
			continue
		}
		units, err := parseMembers(slot.Members)
		if err != nil {
			return 0, nil, fmt.Errorf("participant %d (%s): %w", i+1, name, err)
		}
		total += units
		shares = append(shares, models.Share{Name: name, Units: units})
	}

	return total, shares, nil
}

// parseMembers coerces a raw head count. Integral float text ("2.0") is
// accepted and fractional counts are truncated.
func parseMembers(raw string) (int, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 1, nil
	}
	if n, err := strconv.Atoi(s); err == nil {
		if n < 0 {
			return 0, fmt.Errorf("%q: %w", raw, ErrInvalidMembers)
		}
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f < 0 || f > math.MaxInt32 {
		return 0, fmt.Errorf("%q: %w", raw, ErrInvalidMembers)
	}
	return int(f), nil
}

// ParsePayer returns the trimmed payer name.
func ParsePayer(e models.Expense) (string, error) {
	payer := strings.TrimSpace(e.Payer)
	if payer == "" {
		return "", ErrBlankPayer
	}
	return payer, nil
}

// ParseAmount returns the numeric amount of an expense. Non-numeric text
// wraps ErrInvalidAmount, zero or negative values wrap ErrNonPositiveAmount.
func ParseAmount(e models.Expense) (float64, error) {
	amount, err := parseAmount(e.Amount)
	if err != nil {
		return 0, err
	}
	if amount <= 0 {
		return 0, fmt.Errorf("%v: %w", amount, ErrNonPositiveAmount)
	}
	return amount, nil
}

func parseAmount(raw string) (float64, error) {
	amount, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return 0, fmt.Errorf("%q: %w", raw, ErrInvalidAmount)
	}
	return amount, nil
}

// TotalAmount sums every numeric amount in the ledger, ignoring rows whose
// amount cannot be parsed. Negative amounts are included as entered.
func TotalAmount(rows []models.Expense) float64 {
	var sum float64
	for _, row := range rows {
		if amount, err := parseAmount(row.Amount); err == nil {
			sum += amount
		}
	}
	return sum
}

// MaxSlots returns the widest named-slot count used anywhere in the ledger.
func MaxSlots(rows []models.Expense) int {
	widest := 0
	for _, row := range rows {
		if len(row.Slots) > widest {
			widest = len(row.Slots)
		}
	}
	return widest
}

// SlotWidth returns how many named slots are read from each row: the
// configured width when positive, otherwise the widest row in the ledger.
func SlotWidth(rows []models.Expense, configured int) int {
	if configured > 0 {
		return configured
	}
	return MaxSlots(rows)
}

// People returns every distinct name that appears in the ledger as a payer or
// participant, in either encoding, sorted. Rows are not validated: a payer of
// a skipped row is still listed.
func People(rows []models.Expense) []string {
	seen := make(map[string]bool)
	add := func(name string) {
		if name = strings.TrimSpace(name); name != "" {
			seen[name] = true
		}
	}
	for _, row := range rows {
		add(row.Payer)
		for _, p := range row.Participants {
			add(p)
		}
		for _, slot := range row.Slots {
			add(slot.Name)
		}
	}
	return sortedKeys(seen)
}

func sortedKeys(set map[string]bool) []string {
	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
