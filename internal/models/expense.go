package models

// Expense represents one row of a shared-expense ledger.
// Fields hold the values as entered; the ledger normalizer coerces them.
type Expense struct {
	// Kind is a free-text category label (e.g., "Dinner", "Gas").
	// It is carried for display and never used in calculations.
	Kind string `json:"kind,omitempty" yaml:"kind,omitempty"`

	// Payer is the name of the person who fronted the money.
	Payer string `json:"payer" yaml:"payer"`

	// Amount is the raw decimal text of the expense amount.
	// Rows whose amount is not numeric or not positive are skipped.
	Amount string `json:"amount" yaml:"amount"`

	// Participants is the flat encoding: every non-blank name shares one unit.
	Participants []string `json:"participants,omitempty" yaml:"participants,omitempty"`

	// Slots is the named-slot encoding: "Participant N Name" / "Participant N Members".
	// Slot i corresponds to column N = i+1.
	Slots []Slot `json:"slots,omitempty" yaml:"slots,omitempty"`
}

// Slot is one numbered participant entry with a head count.
type Slot struct {
	// Name is the participant name; blank slots are ignored.
	Name string `json:"name" yaml:"name"`

	// Members is the raw head count. Blank means 1.
	Members string `json:"members,omitempty" yaml:"members,omitempty"`
}

// Share is a normalized participant share of one expense.
type Share struct {
	Name  string
	Units int
}
