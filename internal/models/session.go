package models

// Session is a saved ledger together with the roster that was configured for it.
type Session struct {
	// ID is the unique identifier for the session (UUID format).
	ID string `json:"id"`

	// PayerNames is the comma-separated list of people who may pay.
	PayerNames string `json:"payer_names"`

	// ParticipantNames is the comma-separated list of people who may share expenses.
	ParticipantNames string `json:"participant_names"`

	// NumSlots is the number of named participant slots the ledger was entered with.
	// Settling reads at most this many slots per row; zero reads every slot.
	NumSlots int `json:"num_slots"`

	// Expenses is the ledger itself, in entry order.
	Expenses []Expense `json:"expenses"`

	// CreatedAt is the Unix timestamp when the session was first saved.
	CreatedAt int64 `json:"created_at"`

	// UpdatedAt is the Unix timestamp of the last save.
	UpdatedAt int64 `json:"updated_at"`
}
