package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

func TestStripFences(t *testing.T) {
	assert.Equal(t, `{"a": 1}`, StripFences("```json\n{\"a\": 1}\n```"))
	assert.Equal(t, `{"a": 1}`, StripFences("```\n{\"a\": 1}\n```"))
	assert.Equal(t, `plain text`, StripFences("  plain text\n"))
}

func TestDecodeList(t *testing.T) {
	resp := "Here are the results:\n```json\n[{\"name\": \"Radium\", \"type\": \"Substance\"}]\n```"
	items, err := DecodeList[item](resp)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Radium", items[0].Name)
}

func TestDecodeListRepairsBrokenJSON(t *testing.T) {
	// Trailing comma and unquoted key, the usual model damage.
	resp := `[{"name": "Radium", "type": "Substance",}]`
	items, err := DecodeList[item](resp)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Substance", items[0].Type)
}

func TestDecodeListNoArray(t *testing.T) {
	_, err := DecodeList[item]("no list here")
	assert.Error(t, err)
}

func TestLines(t *testing.T) {
	resp := "```\nMarie Curie; Person; url; cite\n\n  Radium; Substance; url2; cite2  \n```"
	lines := Lines(resp)
	require.Len(t, lines, 2)
	assert.Equal(t, "Marie Curie; Person; url; cite", lines[0])
	assert.Equal(t, "Radium; Substance; url2; cite2", lines[1])
}
