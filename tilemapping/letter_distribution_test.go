package tilemapping

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/lineword/cache"
	"github.com/domino14/lineword/config"
)

var DefaultConfig = config.DefaultConfig()

func TestLetterDistributionScores(t *testing.T) {
	is := is.New(t)
	ld, err := EnglishLetterDistribution(DefaultConfig)
	is.NoErr(err)

	is.Equal(ld.Score('?'), 0)
	is.Equal(ld.Score('A'), 1)
	is.Equal(ld.Score('B'), 3)
	is.Equal(ld.Score('K'), 5)
	is.Equal(ld.Score('Z'), 10)
	is.Equal(ld.Score('3'), 0)
	is.True(!ld.Has('3'))
	is.Equal(ld.NumTotalTiles(), 100)
	is.Equal(len(ld.Definitions()), 27)
}

func TestBuiltinYAMLDistribution(t *testing.T) {
	is := is.New(t)
	ld, err := NamedLetterDistribution(DefaultConfig, "short")
	is.NoErr(err)
	is.Equal(ld.Name, "short")
	is.Equal(ld.NumTotalTiles(), 23)
	is.Equal(ld.Score('Z'), 10)
}

func TestUnknownBuiltin(t *testing.T) {
	is := is.New(t)
	_, err := NamedLetterDistribution(DefaultConfig, "klingon")
	is.True(err != nil)
}

func TestScanLetterDistributionLowercase(t *testing.T) {
	is := is.New(t)
	ld, err := ScanLetterDistribution("tiny", strings.NewReader("a,2,1\nb,1,3,0\n"))
	is.NoErr(err)
	is.Equal(ld.NumTotalTiles(), 3)
	is.Equal(ld.Score('A'), 1)
	is.Equal(ld.Score('B'), 3)
}

func TestConfigurationErrors(t *testing.T) {
	is := is.New(t)
	type testdata struct {
		name string
		csv  string
	}
	cases := []testdata{
		{"zero count", "A,0,1\n"},
		{"negative count", "A,-2,1\n"},
		{"negative value", "A,2,-1\n"},
		{"duplicate letter", "A,2,1\na,1,1\n"},
		{"empty", ""},
		{"short record", "A,2\n"},
		{"not a number", "A,two,1\n"},
		{"two letters", "AB,2,1\n"},
	}
	for _, tc := range cases {
		_, err := ScanLetterDistribution("bad", strings.NewReader(tc.csv))
		var cerr *ConfigurationError
		if !errors.As(err, &cerr) {
			t.Errorf("%v: expected a ConfigurationError, got %v", tc.name, err)
		}
	}
	_, err := NewLetterDistribution("bad", []TileDefinition{{Letter: 'A', Value: 1, Count: 0}})
	var cerr *ConfigurationError
	is.True(errors.As(err, &cerr))
	is.Equal(cerr.Letter, 'A')
}

func TestScanYAMLLetterDistribution(t *testing.T) {
	is := is.New(t)
	data := `
tiles:
  - {letter: q, count: 1, value: 10}
  - {letter: u, count: 3, value: 1}
`
	ld, err := ScanYAMLLetterDistribution("qu", strings.NewReader(data))
	is.NoErr(err)
	is.Equal(ld.Name, "qu")
	is.Equal(ld.NumTotalTiles(), 4)
	is.Equal(ld.Definitions()[0], TileDefinition{Letter: 'Q', Value: 10, Count: 1})

	_, err = ScanYAMLLetterDistribution("bad", strings.NewReader("tiles:\n  - {letter: q, count: 0, value: 10}\n"))
	var cerr *ConfigurationError
	is.True(errors.As(err, &cerr))
}

func TestDistributionFromFile(t *testing.T) {
	is := is.New(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "mini.csv")
	is.NoErr(os.WriteFile(path, []byte("# letter,quantity,value\nX,1,8\nY,2,4\n"), 0644))

	ld, err := NamedLetterDistribution(DefaultConfig, path)
	is.NoErr(err)
	is.Equal(ld.Name, "mini")
	is.Equal(ld.NumTotalTiles(), 3)

	again, err := NamedLetterDistribution(DefaultConfig, path)
	is.NoErr(err)
	is.True(again == ld) // cached

	// A changed file is only seen once the cache is dropped.
	is.NoErr(os.WriteFile(path, []byte("X,4,8\n"), 0644))
	again, err = NamedLetterDistribution(DefaultConfig, path)
	is.NoErr(err)
	is.Equal(again.NumTotalTiles(), 3)

	cache.Reset()
	again, err = NamedLetterDistribution(DefaultConfig, path)
	is.NoErr(err)
	is.True(again != ld)
	is.Equal(again.NumTotalTiles(), 4)
}
