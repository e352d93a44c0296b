package utils

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteJSON(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")

	path, err := WriteJSON(dir, "token_x.json", map[string]string{"supply": "18446744073709551615"})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "token_x.json"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var out map[string]string
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, "18446744073709551615", out["supply"])
}
