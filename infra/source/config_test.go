package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigDefaults(t *testing.T) {
	var c Config
	c.SetDefaults()
	assert.Equal(t, "Transacciones.xlsx", c.Transactions.Path)
	assert.Equal(t, 2, c.Transactions.HeaderRow)
	assert.Equal(t, "INICIO (UTC-05:00)", c.Transactions.Columns.Start)
	assert.Equal(t, "Maestro_MVES.xlsx", c.Roster.Path)
	assert.Equal(t, 0, c.Roster.HeaderRow)
	assert.Equal(t, "VEHÍCULO", c.Roster.Column)
	require.NoError(t, c.Validate())
}

func TestConfigKeepsExplicitHeaderRow(t *testing.T) {
	c := Config{Transactions: TransactionsConfig{Path: "tx.csv"}}
	c.SetDefaults()
	assert.Equal(t, 0, c.Transactions.HeaderRow)
}

func TestConfigValidate(t *testing.T) {
	c := Config{Timezone: "Mars/Olympus"}
	err := c.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "transactions.path")
	assert.Contains(t, err.Error(), "sources.timezone")
}

func TestConfigLocation(t *testing.T) {
	loc, err := Config{}.Location()
	require.NoError(t, err)
	assert.Equal(t, "UTC", loc.String())
}
