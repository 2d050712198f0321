package automatic

import (
	"bufio"
	"encoding/base64"
	"fmt"
	"os"
	"strings"

	"lukechampine.com/frand"
)

// GenerateSeeds creates n random 32-byte seeds, one per replayable game.
func GenerateSeeds(n int) [][32]byte {
	seeds := make([][32]byte, n)
	for i := range seeds {
		frand.Read(seeds[i][:])
	}
	return seeds
}

// SaveSeeds writes one URL-safe base64 seed per line.
func SaveSeeds(seeds [][32]byte, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create seed file: %w", err)
	}
	defer file.Close()

	writer := bufio.NewWriter(file)
	if _, err := writer.WriteString("# autoplay seeds, base64 (URL-safe), 32 bytes each\n"); err != nil {
		return err
	}
	for i, seed := range seeds {
		if _, err := writer.WriteString(base64.RawURLEncoding.EncodeToString(seed[:]) + "\n"); err != nil {
			return fmt.Errorf("failed to write seed %d: %w", i, err)
		}
	}
	return writer.Flush()
}

// LoadSeeds reads a file written by SaveSeeds. Blank lines and lines
// starting with # are skipped.
func LoadSeeds(path string) ([][32]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open seed file: %w", err)
	}
	defer file.Close()

	var seeds [][32]byte
	scanner := bufio.NewScanner(file)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		decoded, err := base64.RawURLEncoding.DecodeString(line)
		if err != nil {
			return nil, fmt.Errorf("bad seed at line %d: %w", lineNum, err)
		}
		if len(decoded) != 32 {
			return nil, fmt.Errorf("bad seed at line %d: got %d bytes, expected 32", lineNum, len(decoded))
		}
		var seed [32]byte
		copy(seed[:], decoded)
		seeds = append(seeds, seed)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading seed file: %w", err)
	}
	return seeds, nil
}
