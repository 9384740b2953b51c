package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogSchemaSpellsResourcesByName(t *testing.T) {
	data, err := json.Marshal(buildSchema("catalog"))
	require.NoError(t, err)
	text := string(data)
	assert.Contains(t, text, `"Swipe City Card Catalog"`)
	assert.Contains(t, text, `"enum":["Economy","Technology","Environment","Happiness"]`)
}

func TestConfigSchema(t *testing.T) {
	data, err := json.Marshal(buildSchema("config"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "cascade_depth")
}

func TestSchemaCommandRejectsUnknownKind(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"schema", "bogus"})
	assert.Error(t, rootCmd.Execute())

	rootCmd.SetArgs([]string{"schema"})
	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), "Card Catalog")
}
