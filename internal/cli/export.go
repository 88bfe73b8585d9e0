package cli

import (
	"fmt"
	"io"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"

	"github.com/mmynk/settleup/internal/calculator"
)

type transactionRecord struct {
	From   string `csv:"From"`
	To     string `csv:"To"`
	Amount string `csv:"Amount"`
}

type summaryRecord struct {
	Name       string `csv:"Person"`
	TotalPaid  string `csv:"Total Paid"`
	TotalOwed  string `csv:"Total Owed"`
	Difference string `csv:"Difference"`
}

// WriteTransactionsCSV writes the payment plan as CSV.
func WriteTransactionsCSV(w io.Writer, transactions []calculator.Transaction) error {
	records := make([]*transactionRecord, len(transactions))
	for i, t := range transactions {
		records[i] = &transactionRecord{From: t.From, To: t.To, Amount: cents(t.Amount)}
	}
	if err := gocsv.Marshal(&records, w); err != nil {
		return fmt.Errorf("failed to write transactions: %w", err)
	}
	return nil
}

// WriteSummaryCSV writes one record per person.
func WriteSummaryCSV(w io.Writer, summary calculator.Summary) error {
	records := make([]*summaryRecord, len(summary.People))
	for i, p := range summary.People {
		records[i] = &summaryRecord{
			Name:       p.Name,
			TotalPaid:  cents(p.TotalPaid),
			TotalOwed:  cents(p.TotalOwed),
			Difference: cents(p.Difference),
		}
	}
	if err := gocsv.Marshal(&records, w); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}
	return nil
}

func cents(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}
