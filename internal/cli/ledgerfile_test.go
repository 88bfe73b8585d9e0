package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/settleup/internal/models"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadLedger_CSV(t *testing.T) {
	path := writeTemp(t, "ledger.csv", `Expense Type,Payer,Amount,Participants,Participant 1 Name,Participant 1 Members,Participant 2 Name,Participant 2 Members
Dinner,Alice,30,Alice;Bob,Carol,2,,
Taxi,Bob,12,"Alice, Bob",,,,
`)

	rows, err := LoadLedger(path)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "Dinner", rows[0].Kind)
	assert.Equal(t, "Alice", rows[0].Payer)
	assert.Equal(t, "30", rows[0].Amount)
	assert.Equal(t, []string{"Alice", "Bob"}, rows[0].Participants)
	assert.Equal(t, []models.Slot{{Name: "Carol", Members: "2"}, {}}, rows[0].Slots)

	assert.Equal(t, []string{"Alice", "Bob"}, rows[1].Participants)
	assert.Len(t, rows[1].Slots, 2)
}

func TestLoadLedger_JSON(t *testing.T) {
	t.Run("list", func(t *testing.T) {
		path := writeTemp(t, "ledger.json", `[{"payer":"Alice","amount":"30","participants":["Alice","Bob"]}]`)
		rows, err := LoadLedger(path)
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "Alice", rows[0].Payer)
		assert.Equal(t, []string{"Alice", "Bob"}, rows[0].Participants)
	})

	t.Run("session document", func(t *testing.T) {
		path := writeTemp(t, "session.json", `{"id":"abc","expenses":[{"payer":"Bob","amount":"5","slots":[{"name":"Carol","members":"3"}]}]}`)
		rows, err := LoadLedger(path)
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, []models.Slot{{Name: "Carol", Members: "3"}}, rows[0].Slots)
	})
}

func TestLoadLedger_YAML(t *testing.T) {
	t.Run("list", func(t *testing.T) {
		path := writeTemp(t, "ledger.yaml", `
- kind: Groceries
  payer: Alice
  amount: "42.50"
  participants: [Alice, Bob]
`)
		rows, err := LoadLedger(path)
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "Groceries", rows[0].Kind)
		assert.Equal(t, "42.50", rows[0].Amount)
	})

	t.Run("document", func(t *testing.T) {
		path := writeTemp(t, "ledger.yml", `
expenses:
  - payer: Bob
    amount: "10"
    slots:
      - name: Carol
        members: "2"
`)
		rows, err := LoadLedger(path)
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "Bob", rows[0].Payer)
		assert.Equal(t, []models.Slot{{Name: "Carol", Members: "2"}}, rows[0].Slots)
	})

	t.Run("empty", func(t *testing.T) {
		rows, err := LoadLedger(writeTemp(t, "empty.yaml", ""))
		require.NoError(t, err)
		assert.Empty(t, rows)
	})
}

func TestLoadLedger_Errors(t *testing.T) {
	_, err := LoadLedger(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)

	_, err = LoadLedger(writeTemp(t, "ledger.txt", "hello"))
	assert.ErrorContains(t, err, "unsupported ledger format")

	_, err = LoadLedger(writeTemp(t, "bad.json", "{"))
	assert.Error(t, err)
}

func TestSplitParticipants(t *testing.T) {
	assert.Nil(t, splitParticipants("  "))
	assert.Equal(t, []string{"Alice", "Bob"}, splitParticipants("Alice, Bob"))
	assert.Equal(t, []string{"Smith, J", "Bob"}, splitParticipants("Smith, J; Bob"))
}
