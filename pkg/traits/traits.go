package traits

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/8bitsats/Agentic-DNA/pkg/dna"
)

// TraitPatch is a partial update to a trait record, keyed by trait field
// name (e.g. "learning_rate", "behavior")
type TraitPatch map[string]interface{}

// TraitRecord describes agent behavior/configuration derived from a
// generated sequence
type TraitRecord map[string]interface{}

// MappingTable maps fixed-length nucleotide chunks to trait patches. It is
// injected configuration; the decoder infers no semantics beyond lookup.
type MappingTable map[string]TraitPatch

// Decode partitions sequence into consecutive non-overlapping chunks of
// chunkSize and applies the patch of every chunk found in the table, left
// to right with last-write-wins per field. A trailing partial chunk is
// ignored. The result is deterministic for identical inputs.
func Decode(sequence string, table MappingTable, chunkSize int) TraitRecord {
	record := make(TraitRecord)
	if chunkSize <= 0 {
		return record
	}

	sequence = strings.ToUpper(sequence)
	for i := 0; i+chunkSize <= len(sequence); i += chunkSize {
		chunk := sequence[i : i+chunkSize]
		patch, ok := table[chunk]
		if !ok {
			continue
		}
		for field, value := range patch {
			record[field] = value
		}
	}
	return record
}

// tableFile is the YAML shape of an externally supplied decode table
type tableFile struct {
	ChunkSize int                   `yaml:"chunk_size"`
	Chunks    map[string]TraitPatch `yaml:"chunks"`
}

// LoadMappingTable loads a decode table and its chunk size from a YAML
// file. Every chunk key must be a nucleotide string of exactly the
// declared chunk size.
func LoadMappingTable(filePath string) (MappingTable, int, error) {
	data, err := os.ReadFile(filePath) // #nosec G304 - table path comes from operator configuration
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read mapping table file: %w", err)
	}

	var file tableFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, 0, fmt.Errorf("failed to unmarshal mapping table: %w", err)
	}

	if file.ChunkSize <= 0 {
		return nil, 0, fmt.Errorf("mapping table chunk_size must be positive, got %d", file.ChunkSize)
	}

	table := make(MappingTable, len(file.Chunks))
	for chunk, patch := range file.Chunks {
		key := strings.ToUpper(chunk)
		if len(key) != file.ChunkSize {
			return nil, 0, fmt.Errorf("chunk %q does not match chunk_size %d", chunk, file.ChunkSize)
		}
		if !dna.ValidSequence(key) {
			return nil, 0, fmt.Errorf("chunk %q contains characters outside the nucleotide alphabet", chunk)
		}
		table[key] = patch
	}

	return table, file.ChunkSize, nil
}
