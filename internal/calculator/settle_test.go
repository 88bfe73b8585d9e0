package calculator

import (
	"errors"
	"math"
	"math/rand"
	"reflect"
	"testing"

	"github.com/mmynk/settleup/internal/ledger"
	"github.com/mmynk/settleup/internal/models"
)

func TestSettle(t *testing.T) {
	tests := []struct {
		name       string
		balances   Balances
		wantStatus Status
		want       []Transaction
	}{
		{
			name:       "empty balances",
			balances:   Balances{},
			wantStatus: StatusNothingToSettle,
		},
		{
			name:       "everyone within tolerance",
			balances:   Balances{"Alice": 0.004, "Bob": -0.004, "Charlie": 0},
			wantStatus: StatusSettled,
		},
		{
			name:       "ties are broken by name",
			balances:   Balances{"Charlie": -10, "Alice": 20, "Bob": -10},
			wantStatus: StatusPending,
			want: []Transaction{
				{From: "Bob", To: "Alice", Amount: 10},
				{From: "Charlie", To: "Alice", Amount: 10},
			},
		},
		{
			name:       "largest debtor pays largest creditor first",
			balances:   Balances{"Alice": 50, "Bob": 30, "Charlie": -60, "Diana": -20},
			wantStatus: StatusPending,
			want: []Transaction{
				{From: "Charlie", To: "Alice", Amount: 50},
				{From: "Charlie", To: "Bob", Amount: 10},
				{From: "Diana", To: "Bob", Amount: 20},
			},
		},
		{
			name:       "both cursors advance on an exact match",
			balances:   Balances{"Alice": 25, "Bob": -25, "Charlie": 5, "Diana": -5},
			wantStatus: StatusPending,
			want: []Transaction{
				{From: "Bob", To: "Alice", Amount: 25},
				{From: "Diana", To: "Charlie", Amount: 5},
			},
		},
		{
			name:       "amounts are rounded to cents",
			balances:   Balances{"Alice": 100, "Bob": -200.0 / 3, "Charlie": -100.0 / 3},
			wantStatus: StatusPending,
			want: []Transaction{
				{From: "Bob", To: "Alice", Amount: 66.67},
				{From: "Charlie", To: "Alice", Amount: 33.33},
			},
		},
		{
			name:       "unmatched drift is left alone",
			balances:   Balances{"Alice": 10, "Bob": -12},
			wantStatus: StatusPending,
			want: []Transaction{
				{From: "Bob", To: "Alice", Amount: 10},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Settle(tt.balances)
			if got.Status != tt.wantStatus {
				t.Errorf("status = %v, want %v", got.Status, tt.wantStatus)
			}
			if !reflect.DeepEqual(got.Transactions, tt.want) {
				t.Errorf("transactions = %v, want %v", got.Transactions, tt.want)
			}
		})
	}
}

func TestSettle_DoesNotMutateInput(t *testing.T) {
	balances := Balances{"Alice": 20, "Bob": -10, "Charlie": -10}
	Settle(balances)
	if balances["Alice"] != 20 || balances["Bob"] != -10 || balances["Charlie"] != -10 {
		t.Errorf("Settle mutated balances: %v", balances)
	}
}

func TestCalculateSettlement_Scenarios(t *testing.T) {
	tests := []struct {
		name         string
		rows         []models.Expense
		wantStatus   Status
		wantMessage  string
		validateFunc func(t *testing.T, s Settlement)
	}{
		{
			name:        "empty ledger has nothing to settle",
			rows:        nil,
			wantStatus:  StatusNothingToSettle,
			wantMessage: "Enter some expenses to calculate a settlement.",
		},
		{
			name: "ledger of unparseable amounts has nothing to settle",
			rows: []models.Expense{
				{Payer: "Alice", Amount: "n/a", Participants: []string{"Bob"}},
			},
			wantStatus:  StatusNothingToSettle,
			wantMessage: "Enter some expenses to calculate a settlement.",
		},
		{
			name: "scenario A: equal meal",
			rows: []models.Expense{
				{Kind: "Meal", Payer: "Alice", Amount: "30", Participants: []string{"Alice", "Bob", "Charlie"}},
			},
			wantStatus:  StatusPending,
			wantMessage: "Bob pays Alice: $10.00\nCharlie pays Alice: $10.00",
		},
		{
			name: "scenario B: family of two",
			rows: []models.Expense{
				{Payer: "Alice", Amount: "100", Slots: []models.Slot{
					{Name: "Bob", Members: "2"},
					{Name: "Charlie", Members: "1"},
				}},
			},
			wantStatus:  StatusPending,
			wantMessage: "Bob pays Alice: $66.67\nCharlie pays Alice: $33.33",
			validateFunc: func(t *testing.T, s Settlement) {
				var total float64
				for _, tx := range s.Transactions {
					if tx.To != "Alice" {
						t.Errorf("payment to %s, want Alice", tx.To)
					}
					total += tx.Amount
				}
				if math.Abs(total-100) > Tolerance {
					t.Errorf("payments sum to %v, want 100", total)
				}
			},
		},
		{
			name: "scenario C: blank payer skipped",
			rows: []models.Expense{
				{Payer: "", Amount: "99", Participants: []string{"Alice", "Bob"}},
				{Payer: "Bob", Amount: "10", Participants: []string{"Alice", "Bob"}},
			},
			wantStatus:  StatusPending,
			wantMessage: "Alice pays Bob: $5.00",
		},
		{
			name: "scenario D: cycle nets to zero",
			rows: []models.Expense{
				{Payer: "A", Amount: "10", Participants: []string{"B"}},
				{Payer: "B", Amount: "10", Participants: []string{"C"}},
				{Payer: "C", Amount: "10", Participants: []string{"A"}},
			},
			wantStatus:  StatusSettled,
			wantMessage: "Everyone is settled up!",
			validateFunc: func(t *testing.T, s Settlement) {
				if len(s.Transactions) != 0 {
					t.Errorf("got %d transactions, want 0", len(s.Transactions))
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := CalculateSettlement(tt.rows)
			if s.Status != tt.wantStatus {
				t.Errorf("status = %v, want %v", s.Status, tt.wantStatus)
			}
			if got := s.Message(); got != tt.wantMessage {
				t.Errorf("message = %q, want %q", got, tt.wantMessage)
			}
			if tt.validateFunc != nil {
				tt.validateFunc(t, s)
			}
		})
	}
}

func TestCalculateSettlement_ReportsSkippedRows(t *testing.T) {
	rows := []models.Expense{
		{Payer: "", Amount: "99", Participants: []string{"Alice", "Bob"}},
		{Payer: "Bob", Amount: "10", Participants: []string{"Alice", "Bob"}},
		{Payer: "Alice", Amount: "lots", Participants: []string{"Bob"}},
	}

	s := CalculateSettlement(rows)
	if s.Status != StatusPending {
		t.Fatalf("status = %v, want pending", s.Status)
	}
	if len(s.Skipped) != 2 {
		t.Fatalf("got %d skipped rows, want 2: %v", len(s.Skipped), s.Skipped)
	}
	if s.Skipped[0].Index != 0 || !errors.Is(s.Skipped[0], ledger.ErrBlankPayer) {
		t.Errorf("skipped[0] = %v, want row 1 blank payer", s.Skipped[0])
	}
	if s.Skipped[1].Index != 2 || !errors.Is(s.Skipped[1], ledger.ErrInvalidAmount) {
		t.Errorf("skipped[1] = %v, want row 3 invalid amount", s.Skipped[1])
	}
}

func TestCalculateSettlementWidth(t *testing.T) {
	rows := []models.Expense{
		{Payer: "Alice", Amount: "30", Slots: []models.Slot{
			{Name: "Bob"},
			{Name: "Charlie", Members: "2"},
		}},
	}

	tests := []struct {
		name  string
		width int
		want  string
	}{
		{name: "derived width reads every slot", width: 0, want: "Charlie pays Alice: $20.00\nBob pays Alice: $10.00"},
		{name: "configured width drops later slots", width: 1, want: "Bob pays Alice: $30.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CalculateSettlementWidth(rows, tt.width).Message(); got != tt.want {
				t.Errorf("message = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSettle_Properties(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for run := 0; run < 25; run++ {
		rows := randomLedger(r, 5+r.Intn(40))
		balances, _ := AccumulateBalances(rows)

		debtors, creditors := 0, 0
		for _, b := range balances {
			if b < -Tolerance {
				debtors++
			} else if b > Tolerance {
				creditors++
			}
		}

		s := Settle(balances)
		if s.Status == StatusPending && len(s.Transactions) > debtors+creditors-1 {
			t.Errorf("run %d: %d transactions exceeds bound %d", run, len(s.Transactions), debtors+creditors-1)
		}
		for _, tx := range s.Transactions {
			if tx.Amount <= 0 {
				t.Errorf("run %d: non-positive transaction %v", run, tx)
			}
		}

		// Each transaction carries at most half a cent of rounding.
		slack := Tolerance + 0.005*float64(len(s.Transactions))
		for name, b := range Apply(balances, s.Transactions) {
			if math.Abs(b) > slack {
				t.Errorf("run %d: %s left with %v after settling", run, name, b)
			}
		}
	}
}

func TestApply(t *testing.T) {
	balances := Balances{"Alice": 20, "Bob": -10, "Charlie": -10}
	after := Apply(balances, []Transaction{
		{From: "Bob", To: "Alice", Amount: 10},
		{From: "Charlie", To: "Alice", Amount: 10},
	})
	for name, b := range after {
		if b != 0 {
			t.Errorf("%s = %v after apply, want 0", name, b)
		}
	}
	if balances["Alice"] != 20 {
		t.Errorf("Apply mutated input: %v", balances)
	}
}

func TestTransaction_String(t *testing.T) {
	tx := Transaction{From: "Bob", To: "Alice", Amount: 7.5}
	if got, want := tx.String(), "Bob pays Alice: $7.50"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestStatus_String(t *testing.T) {
	if StatusPending.String() != "pending" || StatusSettled.String() != "settled" ||
		StatusNothingToSettle.String() != "nothing_to_settle" {
		t.Error("unexpected status names")
	}
}
