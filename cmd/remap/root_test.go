package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleAlmanac = `seeds: 79 14 55 13

seed-to-soil map:
50 98 2
52 50 48

soil-to-fertilizer map:
0 15 37
37 52 2
39 0 15

fertilizer-to-water map:
49 53 8
0 11 42
42 0 7
57 7 4

water-to-light map:
88 18 7
18 25 70

light-to-temperature map:
45 77 23
81 45 19
68 64 13

temperature-to-humidity map:
0 69 1
1 0 69

humidity-to-location map:
60 56 37
56 93 4
`

func writeAlmanac(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "almanac.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func run(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()

	var out, errOut bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)

	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestSolve(t *testing.T) {
	path := writeAlmanac(t, sampleAlmanac)

	for _, args := range [][]string{
		{"solve", path},
		{"solve", "--sequential", path},
		{"-vvv", "solve", path},
	} {
		t.Run(strings.Join(args[:len(args)-1], " "), func(t *testing.T) {
			stdout, _, err := run(t, args...)
			require.NoError(t, err)
			assert.Equal(t, "35\n46\n", stdout)
		})
	}
}

func TestSolve_ConfigFile(t *testing.T) {
	path := writeAlmanac(t, sampleAlmanac)
	cfgPath := filepath.Join(t.TempDir(), "remap.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("workers = 2\nverbosity = 1\n"), 0o644))

	stdout, stderr, err := run(t, "--config", cfgPath, "solve", path)
	require.NoError(t, err)
	assert.Equal(t, "35\n46\n", stdout)
	assert.Contains(t, stderr, "Almanac loaded")
}

func TestSolve_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, _, err := run(t, "solve", filepath.Join(t.TempDir(), "missing.txt"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("odd seed count", func(t *testing.T) {
		path := writeAlmanac(t, "seeds: 1 2 3\na-to-b map:\n1 2 3\n")

		_, _, err := run(t, "solve", path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "seed ranges")
	})

	t.Run("malformed rule", func(t *testing.T) {
		path := writeAlmanac(t, "seeds: 1 2\na-to-b map:\n1 2\n")

		_, _, err := run(t, "solve", path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "line 3")
	})

	t.Run("bad config", func(t *testing.T) {
		t.Setenv("REMAP_WORKERS", "-1")

		_, _, err := run(t, "solve", writeAlmanac(t, sampleAlmanac))
		assert.Error(t, err)
	})
}

func TestTrace(t *testing.T) {
	path := writeAlmanac(t, sampleAlmanac)

	stdout, _, err := run(t, "trace", path, "79")
	require.NoError(t, err)
	assert.Equal(t, `seed 79
soil 81
fertilizer 81
water 81
light 74
temperature 78
humidity 78
location 82
`, stdout)

	_, _, err = run(t, "trace", path, "-3")
	assert.Error(t, err)
}

func TestVersion(t *testing.T) {
	stdout, _, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "remap version dev")
}
