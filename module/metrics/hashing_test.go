package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashCollector(t *testing.T) {
	registry := prometheus.NewRegistry()
	hc := NewHashCollector(registry)

	hc.FileHashed("SHA3_256", 100, 2*time.Millisecond)
	hc.FileHashed("SHA3_256", 28, time.Millisecond)
	hc.FileHashed("SHAKE128", 5, time.Millisecond)
	hc.HashFailed("SHA3_256")
	hc.DigestChecked("SHA3_256", true)
	hc.DigestChecked("SHA3_256", false)
	hc.DigestChecked("SHA3_256", false)

	assert.Equal(t, 2.0, testutil.ToFloat64(hc.filesHashed.WithLabelValues("SHA3_256")))
	assert.Equal(t, 1.0, testutil.ToFloat64(hc.filesHashed.WithLabelValues("SHAKE128")))
	assert.Equal(t, 128.0, testutil.ToFloat64(hc.bytesHashed.WithLabelValues("SHA3_256")))
	assert.Equal(t, 1.0, testutil.ToFloat64(hc.hashFailures.WithLabelValues("SHA3_256")))
	assert.Equal(t, 1.0, testutil.ToFloat64(hc.checks.WithLabelValues("SHA3_256", ResultOK)))
	assert.Equal(t, 2.0, testutil.ToFloat64(hc.checks.WithLabelValues("SHA3_256", ResultFailed)))

	expected := `
# HELP sha3_hashing_failures_total the number of inputs that could not be hashed
# TYPE sha3_hashing_failures_total counter
sha3_hashing_failures_total{algorithm="SHA3_256"} 1
`
	require.NoError(t, testutil.GatherAndCompare(registry, strings.NewReader(expected), "sha3_hashing_failures_total"))

	t.Run("duplicate registration panics", func(t *testing.T) {
		assert.Panics(t, func() { NewHashCollector(registry) })
	})
}

func TestWriteTextfile(t *testing.T) {
	registry := prometheus.NewRegistry()
	hc := NewHashCollector(registry)
	hc.FileHashed("SHA3_512", 64, time.Millisecond)

	path := filepath.Join(t.TempDir(), "sha3sum.prom")
	require.NoError(t, WriteTextfile(path, registry))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), `sha3_hashing_files_total{algorithm="SHA3_512"} 1`)
	assert.Contains(t, string(content), `sha3_hashing_bytes_total{algorithm="SHA3_512"} 64`)

	err = WriteTextfile(filepath.Join(t.TempDir(), "missing", "dir", "x.prom"), registry)
	assert.Error(t, err)
}

func TestNoopCollector(t *testing.T) {
	nc := NewNoopCollector()
	assert.NotPanics(t, func() {
		nc.FileHashed("SHA3_256", 1, time.Second)
		nc.HashFailed("SHA3_256")
		nc.DigestChecked("SHA3_256", false)
	})
}
