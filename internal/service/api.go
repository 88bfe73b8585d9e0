package service

import "github.com/mmynk/settleup/internal/models"

// Transaction is one suggested payment.
type Transaction struct {
	From   string  `json:"from"`
	To     string  `json:"to"`
	Amount float64 `json:"amount"`
	Text   string  `json:"text"` // "Bob pays Alice: $10.00"
}

// SkippedRow is a ledger row ignored because of invalid data.
type SkippedRow struct {
	Row   int    `json:"row"` // 1-based
	Error string `json:"error"`
}

// MemberBalance is one person's net balance.
type MemberBalance struct {
	Name    string  `json:"name"`
	Balance float64 `json:"balance"` // Positive = owed money, Negative = owes money
}

// PersonSummary is one column of the paid/owed table.
type PersonSummary struct {
	Name       string  `json:"name"`
	TotalPaid  float64 `json:"total_paid"`
	TotalOwed  float64 `json:"total_owed"`
	Difference float64 `json:"difference"`
}

// CalculateSettlementRequest carries a ledger. NumSlots caps the named slots
// read per row; zero uses the widest row.
type CalculateSettlementRequest struct {
	Expenses []models.Expense `json:"expenses"`
	NumSlots int              `json:"num_slots,omitempty"`
}

type CalculateSettlementResponse struct {
	// Status is one of nothing_to_settle, settled, pending.
	Status       string        `json:"status"`
	Message      string        `json:"message"`
	Transactions []Transaction `json:"transactions,omitempty"`
	SkippedRows  []SkippedRow  `json:"skipped_rows,omitempty"`
}

type GetBalancesRequest struct {
	Expenses []models.Expense `json:"expenses"`
	NumSlots int              `json:"num_slots,omitempty"`
}

type GetBalancesResponse struct {
	Balances    []MemberBalance `json:"balances"`
	SkippedRows []SkippedRow    `json:"skipped_rows,omitempty"`
}

// GetSummaryRequest selects the people to summarize: People if set, else the
// roster built from PayerNames and ParticipantNames, else everyone in the ledger.
type GetSummaryRequest struct {
	Expenses         []models.Expense `json:"expenses"`
	People           []string         `json:"people,omitempty"`
	PayerNames       string           `json:"payer_names,omitempty"`
	ParticipantNames string           `json:"participant_names,omitempty"`
	NumSlots         int              `json:"num_slots,omitempty"`
}

type GetSummaryResponse struct {
	People []PersonSummary `json:"people"`
	Check  float64         `json:"check"`
}

type CreateSessionRequest struct {
	Session models.Session `json:"session"`
}

type CreateSessionResponse struct {
	Session *models.Session `json:"session"`
}

type GetSessionRequest struct {
	SessionID string `json:"session_id"`
}

type GetSessionResponse struct {
	Session *models.Session `json:"session"`
}

type UpdateSessionRequest struct {
	Session models.Session `json:"session"`
}

type UpdateSessionResponse struct {
	Session *models.Session `json:"session"`
}

type ListSessionsRequest struct{}

type ListSessionsResponse struct {
	Sessions []*models.Session `json:"sessions"`
}

type SettleSessionRequest struct {
	SessionID string `json:"session_id"`
}

type SettleSessionResponse struct {
	Settlement CalculateSettlementResponse `json:"settlement"`
	Summary    GetSummaryResponse          `json:"summary"`
}
