package cmd

import (
	"encoding/hex"
	"fmt"
	"io"

	"github.com/hashicorp/go-multierror"
	mh "github.com/multiformats/go-multihash"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/onflow/flow-sha3/crypto/hash"
	"github.com/onflow/flow-sha3/crypto/hash/multihash"
	"github.com/onflow/flow-sha3/module"
	"github.com/onflow/flow-sha3/module/metrics"
)

func sum(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(viper.GetViper())
	if err != nil {
		return err
	}
	return withMetrics(cfg, func(collector module.HashMetrics) error {
		r := newRunner(log, collector, cmd.InOrStdin(), cfg)
		return runSum(r, cfg, args, cmd.OutOrStdout())
	})
}

// runSum prints one `<digest>  <path>` line per input, in argument order.
// Inputs that cannot be hashed are skipped and reported in the returned
// error.
func runSum(r *runner, cfg config, paths []string, out io.Writer) error {
	if len(paths) == 0 {
		paths = []string{stdinPath}
	}

	stdinCount := 0
	for _, path := range paths {
		if path == stdinPath {
			stdinCount++
		}
	}
	if stdinCount > 1 {
		return fmt.Errorf("standard input (%s) can only be hashed once, given %d times", stdinPath, stdinCount)
	}

	jobs := make([]job, 0, len(paths))
	for _, path := range paths {
		jobs = append(jobs, job{path: path, algorithm: cfg.algorithm, length: cfg.length})
	}

	var errs *multierror.Error
	for i, res := range r.digestAll(jobs) {
		if res.err != nil {
			errs = multierror.Append(errs, res.err)
			continue
		}
		encoded, err := formatDigest(cfg, res.digest)
		if err != nil {
			errs = multierror.Append(errs, fmt.Errorf("%s: %w", paths[i], err))
			continue
		}
		fmt.Fprintf(out, "%s  %s\n", encoded, paths[i])
	}
	return errs.ErrorOrNil()
}

func formatDigest(cfg config, digest []byte) (string, error) {
	if !cfg.multihash {
		return hex.EncodeToString(digest), nil
	}
	m, err := multihash.Encode(cfg.algorithm, digest)
	if err != nil {
		return "", err
	}
	return m.B58String(), nil
}

// parseDigest decodes a digest printed by formatDigest. With multihashes the
// algorithm is read from the digest itself.
func parseDigest(cfg config, s string) (hash.HashingAlgorithm, []byte, error) {
	if !cfg.multihash {
		digest, err := hex.DecodeString(s)
		if err != nil {
			return hash.UnknownHashingAlgorithm, nil, fmt.Errorf("invalid hex digest: %w", err)
		}
		return cfg.algorithm, digest, nil
	}
	m, err := mh.FromB58String(s)
	if err != nil {
		return hash.UnknownHashingAlgorithm, nil, err
	}
	algo, digest, err := multihash.Decode(m)
	if err != nil {
		return hash.UnknownHashingAlgorithm, nil, err
	}
	return algo, digest, nil
}

// withMetrics runs f with a collector. When a metrics file is configured the
// collected metrics are written to it once f returns, even if f failed.
func withMetrics(cfg config, f func(module.HashMetrics) error) error {
	if cfg.metricsFile == "" {
		return f(metrics.NewNoopCollector())
	}

	registry := prometheus.NewRegistry()
	collector := metrics.NewHashCollector(registry)
	runErr := f(collector)

	if err := metrics.WriteTextfile(cfg.metricsFile, registry); err != nil {
		if runErr != nil {
			return multierror.Append(runErr, err)
		}
		return err
	}
	log.Debug().Str("path", cfg.metricsFile).Msg("metrics written")
	return runErr
}
