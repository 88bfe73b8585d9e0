package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/gocarina/gocsv"
	"gopkg.in/yaml.v3"

	"github.com/mmynk/settleup/internal/models"
)

// CSV column names, matching the spreadsheet layout of the expense entry form.
const (
	colKind         = "Expense Type"
	colPayer        = "Payer"
	colAmount       = "Amount"
	colParticipants = "Participants"
)

var slotColumn = regexp.MustCompile(`^Participant (\d+) (Name|Members)$`)

// ledgerDocument is the JSON/YAML file shape: either a bare list of expenses
// or a saved session with an "expenses" key.
type ledgerDocument struct {
	Expenses []models.Expense `json:"expenses" yaml:"expenses"`
}

// LoadLedger reads a ledger from a .csv, .json, .yaml or .yml file.
func LoadLedger(path string) ([]models.Expense, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read ledger: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return parseCSVLedger(data)
	case ".json":
		return parseJSONLedger(data)
	case ".yaml", ".yml":
		return parseYAMLLedger(data)
	default:
		return nil, fmt.Errorf("unsupported ledger format %q (want .csv, .json, .yaml)", filepath.Ext(path))
	}
}

func parseJSONLedger(data []byte) ([]models.Expense, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var rows []models.Expense
		if err := json.Unmarshal(trimmed, &rows); err != nil {
			return nil, fmt.Errorf("failed to parse JSON ledger: %w", err)
		}
		return rows, nil
	}
	var doc ledgerDocument
	if err := json.Unmarshal(trimmed, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse JSON ledger: %w", err)
	}
	return doc.Expenses, nil
}

func parseYAMLLedger(data []byte) ([]models.Expense, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("failed to parse YAML ledger: %w", err)
	}
	if len(node.Content) == 0 {
		return nil, nil
	}
	root := node.Content[0]

	if root.Kind == yaml.SequenceNode {
		var rows []models.Expense
		if err := root.Decode(&rows); err != nil {
			return nil, fmt.Errorf("failed to decode YAML ledger: %w", err)
		}
		return rows, nil
	}
	var doc ledgerDocument
	if err := root.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode YAML ledger: %w", err)
	}
	return doc.Expenses, nil
}

// parseCSVLedger reads one expense per record. "Participants" holds flat
// names separated by ';' (or ',' when no ';' is present); "Participant N Name"
// and "Participant N Members" columns become slot N.
func parseCSVLedger(data []byte) ([]models.Expense, error) {
	records, err := gocsv.CSVToMaps(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV ledger: %w", err)
	}

	rows := make([]models.Expense, 0, len(records))
	for _, record := range records {
		row := models.Expense{
			Kind:         record[colKind],
			Payer:        record[colPayer],
			Amount:       record[colAmount],
			Participants: splitParticipants(record[colParticipants]),
		}

		width := 0
		for col := range record {
			if m := slotColumn.FindStringSubmatch(col); m != nil {
				if n, _ := strconv.Atoi(m[1]); n > width {
					width = n
				}
			}
		}
		if width > 0 {
			row.Slots = make([]models.Slot, width)
			for i := range row.Slots {
				row.Slots[i] = models.Slot{
					Name:    record[fmt.Sprintf("Participant %d Name", i+1)],
					Members: record[fmt.Sprintf("Participant %d Members", i+1)],
				}
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func splitParticipants(cell string) []string {
	if strings.TrimSpace(cell) == "" {
		return nil
	}
	sep := ","
	if strings.Contains(cell, ";") {
		sep = ";"
	}
	var names []string
	for _, part := range strings.Split(cell, sep) {
		if name := strings.TrimSpace(part); name != "" {
			names = append(names, name)
		}
	}
	return names
}
