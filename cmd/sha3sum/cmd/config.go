package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/onflow/flow-sha3/crypto/hash"
	"github.com/onflow/flow-sha3/crypto/hash/multihash"
)

const (
	flagAlgorithm   = "algorithm"
	flagLength      = "length"
	flagName        = "name"
	flagCustom      = "custom"
	flagMultihash   = "multihash"
	flagWorkers     = "workers"
	flagMetricsFile = "metrics-file"
	flagLogLevel    = "log-level"
	flagProgress    = "progress"
)

// default output lengths of the extendable output functions, twice the
// security level
const (
	defaultLength128 = 32
	defaultLength256 = 64
)

// config holds the validated settings of a run.
type config struct {
	algorithm   hash.HashingAlgorithm
	length      int
	name        []byte
	custom      []byte
	multihash   bool
	workers     int
	metricsFile string
	progress    bool
}

func addConfigFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.StringP(flagAlgorithm, "a", "sha3-256", "hash function: sha3-224, sha3-256, sha3-384, sha3-512, shake128, shake256, cshake128 or cshake256")
	flags.IntP(flagLength, "l", 0, "output length in bytes of shake and cshake (default 32 for 128-bit functions, 64 for 256-bit functions)")
	flags.String(flagName, "", "cSHAKE function-name string")
	flags.String(flagCustom, "", "cSHAKE customization string")
	flags.Bool(flagMultihash, false, "print and read base58 multihashes instead of hex digests")
	flags.Int(flagWorkers, 4, "number of files hashed concurrently")
	flags.String(flagMetricsFile, "", "write Prometheus metrics of the run to this file")
	flags.String(flagLogLevel, "info", "log level: debug, info, warn or error")
	flags.Bool(flagProgress, false, "show a progress bar on standard error")
}

// loadConfig reads and validates the settings held by v.
func loadConfig(v *viper.Viper) (config, error) {
	algo, err := hash.ParseHashingAlgorithm(v.GetString(flagAlgorithm))
	if err != nil {
		return config{}, err
	}

	cfg := config{
		algorithm:   algo,
		name:        []byte(v.GetString(flagName)),
		custom:      []byte(v.GetString(flagCustom)),
		multihash:   v.GetBool(flagMultihash),
		workers:     v.GetInt(flagWorkers),
		metricsFile: v.GetString(flagMetricsFile),
		progress:    v.GetBool(flagProgress),
	}

	if cfg.workers < 1 {
		return config{}, fmt.Errorf("--%s must be at least 1, got %d", flagWorkers, cfg.workers)
	}
	if (len(cfg.name) > 0 || len(cfg.custom) > 0) && algo != hash.CSHAKE128 && algo != hash.CSHAKE256 {
		return config{}, fmt.Errorf("--%s and --%s only apply to cshake128 and cshake256", flagName, flagCustom)
	}
	if cfg.multihash {
		if _, err := multihash.Code(algo); err != nil {
			return config{}, err
		}
	}

	cfg.length, err = outputLength(algo, v.GetInt(flagLength))
	if err != nil {
		return config{}, err
	}
	return cfg, nil
}

// outputLength returns the digest length of algo. A zero length selects
// the default one.
func outputLength(algo hash.HashingAlgorithm, length int) (int, error) {
	if length < 0 {
		return 0, fmt.Errorf("--%s cannot be negative, got %d", flagLength, length)
	}

	var ctx hash.Context
	if err := ctx.Starts(algo); err != nil {
		return 0, err
	}
	if size := ctx.Size(); size != 0 {
		if length != 0 && length != size {
			return 0, fmt.Errorf("%s has a fixed length of %d bytes, --%s %d is invalid", algo, size, flagLength, length)
		}
		return size, nil
	}

	if length != 0 {
		return length, nil
	}
	switch algo {
	case hash.SHAKE128, hash.CSHAKE128:
		return defaultLength128, nil
	default:
		return defaultLength256, nil
	}
}
