package tilemapping

import (
	"bytes"
	"embed"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/domino14/lineword/cache"
	"github.com/domino14/lineword/config"
)

const CacheKeyPrefix = "letterdist:"

//go:embed data
var builtinDistributions embed.FS

// ConfigurationError means a letter distribution cannot be used to build a
// bag. It halts session creation.
type ConfigurationError struct {
	Letter rune
	Reason string
}

func (e *ConfigurationError) Error() string {
	if e.Letter == 0 {
		return "bad letter distribution: " + e.Reason
	}
	return fmt.Sprintf("bad letter distribution: letter %c: %s", e.Letter, e.Reason)
}

// LetterDistribution is the static table of letters, values and counts a
// bag is built from. It is never modified after construction, so a single
// instance may be shared by many sessions.
type LetterDistribution struct {
	Name      string
	defs      []TileDefinition
	scores    map[rune]int
	numLetter int
}

// NewLetterDistribution validates defs and returns a distribution. Every
// count must be positive, every value non-negative and every letter unique.
func NewLetterDistribution(name string, defs []TileDefinition) (*LetterDistribution, error) {
	if len(defs) == 0 {
		return nil, &ConfigurationError{Reason: "no letters defined"}
	}
	ld := &LetterDistribution{
		Name:   name,
		defs:   make([]TileDefinition, len(defs)),
		scores: make(map[rune]int, len(defs)),
	}
	for i, d := range defs {
		if d.Count <= 0 {
			return nil, &ConfigurationError{Letter: d.Letter,
				Reason: fmt.Sprintf("count must be positive, got %d", d.Count)}
		}
		if d.Value < 0 {
			return nil, &ConfigurationError{Letter: d.Letter,
				Reason: fmt.Sprintf("value must not be negative, got %d", d.Value)}
		}
		if _, ok := ld.scores[d.Letter]; ok {
			return nil, &ConfigurationError{Letter: d.Letter, Reason: "defined twice"}
		}
		ld.scores[d.Letter] = d.Value
		ld.defs[i] = d
		ld.numLetter += d.Count
	}
	return ld, nil
}

// ScanLetterDistribution reads a CSV distribution. Each record is
// letter,quantity,value with an optional fourth (vowel) column that is
// ignored.
func ScanLetterDistribution(name string, data io.Reader) (*LetterDistribution, error) {
	r := csv.NewReader(data)
	r.FieldsPerRecord = -1
	r.Comment = '#'
	defs := []TileDefinition{}
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &ConfigurationError{Reason: err.Error()}
		}
		if len(record) < 3 {
			return nil, &ConfigurationError{
				Reason: fmt.Sprintf("record %v: need letter,quantity,value", record)}
		}
		letter, err := NormalizeLetter(record[0])
		if err != nil {
			return nil, &ConfigurationError{Reason: err.Error()}
		}
		n, err := strconv.Atoi(strings.TrimSpace(record[1]))
		if err != nil {
			return nil, &ConfigurationError{Letter: letter, Reason: "bad quantity: " + err.Error()}
		}
		p, err := strconv.Atoi(strings.TrimSpace(record[2]))
		if err != nil {
			return nil, &ConfigurationError{Letter: letter, Reason: "bad value: " + err.Error()}
		}
		defs = append(defs, TileDefinition{Letter: letter, Value: p, Count: n})
	}
	return NewLetterDistribution(name, defs)
}

type yamlDistribution struct {
	Name  string `yaml:"name"`
	Tiles []struct {
		Letter string `yaml:"letter"`
		Count  int    `yaml:"count"`
		Value  int    `yaml:"value"`
	} `yaml:"tiles"`
}

// ScanYAMLLetterDistribution reads a YAML distribution:
//
//	name: short
//	tiles:
//	  - {letter: A, count: 4, value: 1}
func ScanYAMLLetterDistribution(name string, data io.Reader) (*LetterDistribution, error) {
	yd := yamlDistribution{}
	if err := yaml.NewDecoder(data).Decode(&yd); err != nil {
		return nil, &ConfigurationError{Reason: err.Error()}
	}
	if yd.Name != "" {
		name = yd.Name
	}
	defs := make([]TileDefinition, 0, len(yd.Tiles))
	for _, t := range yd.Tiles {
		letter, err := NormalizeLetter(t.Letter)
		if err != nil {
			return nil, &ConfigurationError{Reason: err.Error()}
		}
		defs = append(defs, TileDefinition{Letter: letter, Value: t.Value, Count: t.Count})
	}
	return NewLetterDistribution(name, defs)
}

// NamedLetterDistribution loads a built-in distribution ("english", "short")
// or, if name looks like a .csv/.yaml path, reads it from disk. Results are
// cached.
func NamedLetterDistribution(cfg *config.Config, name string) (*LetterDistribution, error) {
	obj, err := cache.Load(cfg, CacheKeyPrefix+name, loadDistribution)
	if err != nil {
		return nil, err
	}
	ld, ok := obj.(*LetterDistribution)
	if !ok {
		return nil, fmt.Errorf("cached object for %v is not a letter distribution", name)
	}
	return ld, nil
}

// EnglishLetterDistribution returns the standard 100-tile English set.
func EnglishLetterDistribution(cfg *config.Config) (*LetterDistribution, error) {
	return NamedLetterDistribution(cfg, "english")
}

func loadDistribution(cfg *config.Config, key string) (any, error) {
	name := strings.TrimPrefix(key, CacheKeyPrefix)
	ext := strings.ToLower(filepath.Ext(name))
	var data []byte
	var err error
	if ext == ".csv" || ext == ".yaml" || ext == ".yml" {
		data, err = os.ReadFile(name)
		name = strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	} else {
		name = strings.ToLower(name)
		data, ext, err = readBuiltin(name)
	}
	if err != nil {
		return nil, err
	}
	if ext == ".csv" {
		return ScanLetterDistribution(name, bytes.NewReader(data))
	}
	return ScanYAMLLetterDistribution(name, bytes.NewReader(data))
}

func readBuiltin(name string) ([]byte, string, error) {
	for _, ext := range []string{".csv", ".yaml"} {
		data, err := builtinDistributions.ReadFile("data/" + name + ext)
		if err == nil {
			return data, ext, nil
		}
	}
	return nil, "", fmt.Errorf("no built-in letter distribution named %v", name)
}

// Definitions returns a copy of the distribution table, in file order.
func (ld *LetterDistribution) Definitions() []TileDefinition {
	out := make([]TileDefinition, len(ld.defs))
	copy(out, ld.defs)
	return out
}

// Score returns the value of a letter, or 0 for a letter not in the set.
func (ld *LetterDistribution) Score(letter rune) int {
	return ld.scores[letter]
}

func (ld *LetterDistribution) Has(letter rune) bool {
	_, ok := ld.scores[letter]
	return ok
}

// NumTotalTiles is the size of a freshly built bag.
func (ld *LetterDistribution) NumTotalTiles() int {
	return ld.numLetter
}

// MakeBag returns a full bag drawn with rng. A nil rng uses frand.
func (ld *LetterDistribution) MakeBag(rng Randomizer) *Bag {
	return NewBag(ld, rng)
}
