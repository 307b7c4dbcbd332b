package cmd

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onflow/flow-sha3/crypto/hash"
)

func testViper(settings map[string]any) *viper.Viper {
	v := viper.New()
	v.SetDefault(flagAlgorithm, "sha3-256")
	v.SetDefault(flagWorkers, 4)
	for key, value := range settings {
		v.Set(key, value)
	}
	return v
}

func TestLoadConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := loadConfig(testViper(nil))
		require.NoError(t, err)
		assert.Equal(t, hash.SHA3_256, cfg.algorithm)
		assert.Equal(t, hash.HashLenSHA3_256, cfg.length)
		assert.Equal(t, 4, cfg.workers)
		assert.False(t, cfg.multihash)
	})

	t.Run("extendable output lengths", func(t *testing.T) {
		for algo, expected := range map[string]int{
			"shake128":  defaultLength128,
			"cshake128": defaultLength128,
			"shake256":  defaultLength256,
			"cshake256": defaultLength256,
		} {
			cfg, err := loadConfig(testViper(map[string]any{flagAlgorithm: algo}))
			require.NoError(t, err, algo)
			assert.Equal(t, expected, cfg.length, algo)
		}

		cfg, err := loadConfig(testViper(map[string]any{flagAlgorithm: "shake128", flagLength: 1000}))
		require.NoError(t, err)
		assert.Equal(t, 1000, cfg.length)
	})

	t.Run("cshake strings", func(t *testing.T) {
		cfg, err := loadConfig(testViper(map[string]any{
			flagAlgorithm: "cshake256",
			flagName:      "name",
			flagCustom:    "custom",
		}))
		require.NoError(t, err)
		assert.Equal(t, []byte("name"), cfg.name)
		assert.Equal(t, []byte("custom"), cfg.custom)
	})

	t.Run("invalid settings", func(t *testing.T) {
		for name, settings := range map[string]map[string]any{
			"unknown algorithm":        {flagAlgorithm: "md5"},
			"fixed length mismatch":    {flagAlgorithm: "sha3-512", flagLength: 32},
			"negative length":          {flagAlgorithm: "shake256", flagLength: -1},
			"no workers":               {flagWorkers: 0},
			"customized shake":         {flagAlgorithm: "shake128", flagCustom: "custom"},
			"customized sha3":          {flagName: "name"},
			"multihash without a code": {flagAlgorithm: "cshake128", flagMultihash: true},
		} {
			_, err := loadConfig(testViper(settings))
			assert.Error(t, err, name)
		}
	})

	t.Run("fixed length given explicitly", func(t *testing.T) {
		cfg, err := loadConfig(testViper(map[string]any{flagAlgorithm: "sha3-384", flagLength: 48}))
		require.NoError(t, err)
		assert.Equal(t, 48, cfg.length)
	})
}
