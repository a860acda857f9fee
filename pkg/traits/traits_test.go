package traits

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTable() MappingTable {
	return MappingTable{
		"ATCG": TraitPatch{"learning_rate": 0.1, "behavior": "cooperative"},
		"GCTA": TraitPatch{"behavior": "default", "curiosity": 0.8},
	}
}

func TestDecodeAppliesMatchingChunks(t *testing.T) {
	record := Decode("ATCGGCTA", testTable(), 4)

	// Both patches applied; GCTA's behavior overwrites ATCG's.
	assert.Equal(t, 0.1, record["learning_rate"])
	assert.Equal(t, "default", record["behavior"])
	assert.Equal(t, 0.8, record["curiosity"])
}

func TestDecodeLastWriteWinsIsOrderDependent(t *testing.T) {
	record := Decode("GCTAATCG", testTable(), 4)

	// Reversed chunk order: ATCG is now last, so its behavior wins.
	assert.Equal(t, "cooperative", record["behavior"])
	assert.Equal(t, 0.1, record["learning_rate"])
	assert.Equal(t, 0.8, record["curiosity"])
}

func TestDecodeIgnoresTrailingPartialChunk(t *testing.T) {
	// The trailing "GC" cannot match any 4-character key.
	record := Decode("ATCGGC", testTable(), 4)

	assert.Equal(t, 0.1, record["learning_rate"])
	assert.Equal(t, "cooperative", record["behavior"])
	assert.NotContains(t, record, "curiosity")
}

func TestDecodeUnmatchedChunksLeaveRecordUntouched(t *testing.T) {
	record := Decode("TTTTAAAA", testTable(), 4)
	assert.Empty(t, record)
}

func TestDecodeIsCaseInsensitive(t *testing.T) {
	record := Decode("atcggcta", testTable(), 4)
	assert.Equal(t, "default", record["behavior"])
}

func TestDecodeDeterministic(t *testing.T) {
	first := Decode("ATCGGCTAATCG", testTable(), 4)
	second := Decode("ATCGGCTAATCG", testTable(), 4)
	assert.Equal(t, first, second)
}

func TestDecodeInvalidChunkSize(t *testing.T) {
	assert.Empty(t, Decode("ATCG", testTable(), 0))
	assert.Empty(t, Decode("ATCG", testTable(), -1))
}

func writeTableFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "traits.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadMappingTable(t *testing.T) {
	path := writeTableFile(t, `
chunk_size: 4
chunks:
  ATCG:
    learning_rate: 0.1
    behavior: cooperative
  gcta:
    behavior: default
`)

	table, chunkSize, err := LoadMappingTable(path)
	require.NoError(t, err)

	assert.Equal(t, 4, chunkSize)
	require.Contains(t, table, "ATCG")
	require.Contains(t, table, "GCTA") // keys normalized to uppercase
	assert.Equal(t, "cooperative", table["ATCG"]["behavior"])
}

func TestLoadMappingTableRejectsBadChunks(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name: "chunk length mismatch",
			content: `
chunk_size: 4
chunks:
  ATC:
    behavior: default
`,
		},
		{
			name: "chunk outside alphabet",
			content: `
chunk_size: 4
chunks:
  ATXG:
    behavior: default
`,
		},
		{
			name: "missing chunk size",
			content: `
chunks:
  ATCG:
    behavior: default
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := LoadMappingTable(writeTableFile(t, tt.content))
			assert.Error(t, err)
		})
	}
}
