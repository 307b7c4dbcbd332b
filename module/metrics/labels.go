package metrics

const (
	LabelAlgorithm = "algorithm"
	LabelResult    = "result"
)

const (
	ResultOK     = "ok"
	ResultFailed = "failed"
)

const (
	namespaceSHA3    = "sha3"
	subsystemHashing = "hashing"
	subsystemCheck   = "check"
)
