package cmd

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/hashicorp/go-multierror"
	mh "github.com/multiformats/go-multihash"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/sha3"

	"github.com/onflow/flow-sha3/crypto/hash"
	"github.com/onflow/flow-sha3/module"
	"github.com/onflow/flow-sha3/module/metrics"
	"github.com/onflow/flow-sha3/utils/unittest"
)

func testRunner(cfg config, stdin string) *runner {
	return newRunner(unittest.Logger(), metrics.NewNoopCollector(), strings.NewReader(stdin), cfg)
}

func testConfig(t *testing.T, settings map[string]any) config {
	cfg, err := loadConfig(testViper(settings))
	require.NoError(t, err)
	return cfg
}

// writeInputs writes n random files of various sizes to a temporary
// directory and returns their paths and contents.
func writeInputs(t *testing.T, n int) ([]string, [][]byte) {
	dir := t.TempDir()
	rng := unittest.GetPRG(t)
	paths := make([]string, n)
	contents := make([][]byte, n)
	for i := 0; i < n; i++ {
		contents[i] = unittest.RandomBytesFixture(rng, rng.Intn(3*readBufferSize))
		paths[i] = unittest.FileFixture(t, dir, fmt.Sprintf("input-%d", i), contents[i])
	}
	return paths, contents
}

func TestRunSum(t *testing.T) {
	paths, contents := writeInputs(t, 10)

	t.Run("sha3-256 in argument order", func(t *testing.T) {
		cfg := testConfig(t, nil)
		var out bytes.Buffer
		require.NoError(t, runSum(testRunner(cfg, ""), cfg, paths, &out))

		lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
		require.Len(t, lines, len(paths))
		for i, line := range lines {
			expected := sha3.Sum256(contents[i])
			assert.Equal(t, hex.EncodeToString(expected[:])+"  "+paths[i], line)
		}
	})

	t.Run("progress bar does not change the output", func(t *testing.T) {
		cfg := testConfig(t, nil)
		var plain bytes.Buffer
		require.NoError(t, runSum(testRunner(cfg, ""), cfg, paths, &plain))

		cfg.progress = true
		var out bytes.Buffer
		require.NoError(t, runSum(testRunner(cfg, ""), cfg, paths, &out))
		assert.Equal(t, plain.String(), out.String())
	})

	t.Run("shake256 with a custom length", func(t *testing.T) {
		cfg := testConfig(t, map[string]any{flagAlgorithm: "shake256", flagLength: 200, flagWorkers: 1})
		var out bytes.Buffer
		require.NoError(t, runSum(testRunner(cfg, ""), cfg, paths[:1], &out))

		expected := make([]byte, 200)
		sha3.ShakeSum256(expected, contents[0])
		assert.Equal(t, hex.EncodeToString(expected)+"  "+paths[0]+"\n", out.String())
	})

	t.Run("cshake128", func(t *testing.T) {
		cfg := testConfig(t, map[string]any{flagAlgorithm: "cshake128", flagName: "N", flagCustom: "S"})
		var out bytes.Buffer
		require.NoError(t, runSum(testRunner(cfg, ""), cfg, paths[:1], &out))

		c := sha3.NewCShake128([]byte("N"), []byte("S"))
		_, _ = c.Write(contents[0])
		expected := make([]byte, defaultLength128)
		_, _ = c.Read(expected)
		assert.Equal(t, hex.EncodeToString(expected)+"  "+paths[0]+"\n", out.String())
	})

	t.Run("standard input", func(t *testing.T) {
		cfg := testConfig(t, map[string]any{flagAlgorithm: "sha3-512"})
		var out bytes.Buffer
		require.NoError(t, runSum(testRunner(cfg, "abc"), cfg, nil, &out))

		expected := sha3.Sum512([]byte("abc"))
		assert.Equal(t, hex.EncodeToString(expected[:])+"  -\n", out.String())
	})

	t.Run("multihash", func(t *testing.T) {
		cfg := testConfig(t, map[string]any{flagMultihash: true})
		var out bytes.Buffer
		require.NoError(t, runSum(testRunner(cfg, ""), cfg, paths[:1], &out))

		encoded, path, found := strings.Cut(strings.TrimSuffix(out.String(), "\n"), "  ")
		require.True(t, found)
		assert.Equal(t, paths[0], path)

		m, err := mh.FromB58String(encoded)
		require.NoError(t, err)
		decoded, err := mh.Decode(m)
		require.NoError(t, err)
		expected := sha3.Sum256(contents[0])
		assert.Equal(t, uint64(mh.SHA3_256), decoded.Code)
		assert.Equal(t, expected[:], decoded.Digest)
	})

	t.Run("standard input given twice", func(t *testing.T) {
		cfg := testConfig(t, nil)
		var out bytes.Buffer
		err := runSum(testRunner(cfg, "abc"), cfg, []string{stdinPath, paths[0], stdinPath}, &out)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "only be hashed once")
		assert.Empty(t, out.String())
	})

	t.Run("many inputs on few workers", func(t *testing.T) {
		cfg := testConfig(t, map[string]any{flagWorkers: 2})
		many := make([]string, 0, 10*len(paths))
		for i := 0; i < 10; i++ {
			many = append(many, paths...)
		}
		var out bytes.Buffer
		unittest.RequireReturnsBefore(t, func() {
			assert.NoError(t, runSum(testRunner(cfg, ""), cfg, many, &out))
		}, 30*time.Second, "hashing on the worker pool did not finish")
		assert.Equal(t, len(many), strings.Count(out.String(), "\n"))
	})

	t.Run("missing files are reported and skipped", func(t *testing.T) {
		cfg := testConfig(t, nil)
		missing := filepath.Join(t.TempDir(), "missing")
		var out bytes.Buffer
		err := runSum(testRunner(cfg, ""), cfg, []string{paths[0], missing, paths[1]}, &out)
		require.Error(t, err)

		var merr *multierror.Error
		require.True(t, errors.As(err, &merr))
		assert.Len(t, merr.Errors, 1)
		assert.True(t, errors.Is(err, os.ErrNotExist))

		lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
		require.Len(t, lines, 2)
		assert.True(t, strings.HasSuffix(lines[0], paths[0]))
		assert.True(t, strings.HasSuffix(lines[1], paths[1]))
	})
}

func TestRunCheck(t *testing.T) {
	paths, _ := writeInputs(t, 6)

	for _, settings := range []map[string]any{
		nil,
		{flagAlgorithm: "sha3-224"},
		{flagAlgorithm: "shake128", flagLength: 500},
		{flagAlgorithm: "cshake256", flagCustom: "custom"},
		{flagAlgorithm: "shake256", flagMultihash: true},
	} {
		cfg := testConfig(t, settings)
		t.Run(fmt.Sprintf("%s multihash=%v", cfg.algorithm, cfg.multihash), func(t *testing.T) {
			var list bytes.Buffer
			require.NoError(t, runSum(testRunner(cfg, ""), cfg, paths, &list))

			var out bytes.Buffer
			require.NoError(t, runCheck(testRunner(cfg, ""), cfg, &list, &out))
			for _, path := range paths {
				assert.Contains(t, out.String(), path+": OK\n")
			}
		})
	}

	t.Run("modified file fails", func(t *testing.T) {
		cfg := testConfig(t, nil)
		var list bytes.Buffer
		require.NoError(t, runSum(testRunner(cfg, ""), cfg, paths[:2], &list))
		require.NoError(t, os.WriteFile(paths[1], []byte("modified"), 0o644))

		var out bytes.Buffer
		err := runCheck(testRunner(cfg, ""), cfg, &list, &out)
		require.Error(t, err)
		assert.True(t, errors.Is(err, errChecksumMismatch))
		assert.Equal(t, paths[0]+": OK\n"+paths[1]+": FAILED\n", out.String())
	})

	t.Run("malformed lines", func(t *testing.T) {
		cfg := testConfig(t, nil)
		digest := hash.NewSHA3_256().ComputeHash([]byte("x")).Hex()
		list := strings.Join([]string{
			"not a checksum line",
			"zz  " + paths[0],
			digest[:10] + "  " + paths[0],
			"",
		}, "\n")

		var out bytes.Buffer
		err := runCheck(testRunner(cfg, ""), cfg, strings.NewReader(list), &out)
		require.Error(t, err)
		var merr *multierror.Error
		require.True(t, errors.As(err, &merr))
		assert.Len(t, merr.Errors, 3)
		assert.Empty(t, out.String())
	})

	t.Run("missing listed file", func(t *testing.T) {
		cfg := testConfig(t, nil)
		missing := filepath.Join(t.TempDir(), "missing")
		digest := hash.NewSHA3_256().ComputeHash(nil).Hex()

		var out bytes.Buffer
		err := runCheck(testRunner(cfg, ""), cfg, strings.NewReader(digest+"  "+missing+"\n"), &out)
		require.Error(t, err)
		assert.True(t, errors.Is(err, os.ErrNotExist))
		assert.True(t, errors.Is(err, errChecksumMismatch))
		assert.Equal(t, missing+": FAILED\n", out.String())
	})
}

func TestWithMetrics(t *testing.T) {
	paths, _ := writeInputs(t, 3)
	metricsFile := filepath.Join(t.TempDir(), "sha3sum.prom")
	cfg := testConfig(t, map[string]any{flagMetricsFile: metricsFile})

	err := withMetrics(cfg, func(collector module.HashMetrics) error {
		r := newRunner(unittest.Logger(), collector, strings.NewReader(""), cfg)
		return runSum(r, cfg, paths, &bytes.Buffer{})
	})
	require.NoError(t, err)

	content, err := os.ReadFile(metricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(content), `sha3_hashing_files_total{algorithm="SHA3_256"} 3`)
}
