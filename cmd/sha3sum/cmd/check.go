package cmd

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/onflow/flow-sha3/module"
)

var errChecksumMismatch = errors.New("computed checksums did not match")

var checkCmd = &cobra.Command{
	Use:   "check <file>",
	Short: "Verify the checksums listed in a file",
	Long: `Read "<digest>  <path>" lines, as printed by sha3sum, recompute the digest
of every path and print "<path>: OK" or "<path>: FAILED".
With -, read the list from standard input.`,
	Args: cobra.ExactArgs(1),
	RunE: check,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func check(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(viper.GetViper())
	if err != nil {
		return err
	}

	var list io.Reader
	if args[0] == stdinPath {
		list = cmd.InOrStdin()
	} else {
		content, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("could not read checksum list: %w", err)
		}
		list = bytes.NewReader(content)
	}

	return withMetrics(cfg, func(collector module.HashMetrics) error {
		// listed paths are never read from standard input
		r := newRunner(log, collector, strings.NewReader(""), cfg)
		return runCheck(r, cfg, list, cmd.OutOrStdout())
	})
}

// runCheck verifies every line of list and prints one status line per
// listed path. Malformed lines are logged and counted as failures.
func runCheck(r *runner, cfg config, list io.Reader, out io.Writer) error {
	var (
		jobs     []job
		expected [][]byte
		errs     *multierror.Error
	)

	scanner := bufio.NewScanner(list)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		j, digest, err := parseCheckLine(cfg, line)
		if err != nil {
			r.log.Warn().Err(err).Int("line", lineNumber).Msg("improperly formatted checksum line")
			errs = multierror.Append(errs, fmt.Errorf("line %d: %w", lineNumber, err))
			continue
		}
		jobs = append(jobs, j)
		expected = append(expected, digest)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("could not read checksum list: %w", err)
	}

	failed := 0
	for i, res := range r.digestAll(jobs) {
		ok := res.err == nil && bytes.Equal(res.digest, expected[i])
		r.metrics.DigestChecked(jobs[i].algorithm.String(), ok)
		if ok {
			fmt.Fprintf(out, "%s: OK\n", jobs[i].path)
			continue
		}
		failed++
		fmt.Fprintf(out, "%s: FAILED\n", jobs[i].path)
		if res.err != nil {
			errs = multierror.Append(errs, res.err)
		}
	}

	if failed > 0 {
		errs = multierror.Append(errs, fmt.Errorf("%d of %d: %w", failed, len(jobs), errChecksumMismatch))
	}
	return errs.ErrorOrNil()
}

// parseCheckLine splits a "<digest>  <path>" line. The digest length of
// extendable output functions is taken from the digest itself.
func parseCheckLine(cfg config, line string) (job, []byte, error) {
	encoded, path, found := strings.Cut(line, "  ")
	if !found || encoded == "" || path == "" {
		return job{}, nil, fmt.Errorf("expected \"<digest>  <path>\", got %q", line)
	}

	algo, digest, err := parseDigest(cfg, encoded)
	if err != nil {
		return job{}, nil, err
	}
	if len(digest) == 0 {
		return job{}, nil, fmt.Errorf("empty digest for %s", path)
	}
	length, err := outputLength(algo, len(digest))
	if err != nil {
		return job{}, nil, err
	}
	return job{path: path, algorithm: algo, length: length}, digest, nil
}
