package metrics

import (
	"time"

	"github.com/onflow/flow-sha3/module"
)

type NoopCollector struct{}

var _ module.HashMetrics = (*NoopCollector)(nil)

func NewNoopCollector() *NoopCollector {
	nc := &NoopCollector{}
	return nc
}

func (nc *NoopCollector) FileHashed(algo string, bytes int64, duration time.Duration) {}
func (nc *NoopCollector) HashFailed(algo string)                                     {}
func (nc *NoopCollector) DigestChecked(algo string, ok bool)                         {}
