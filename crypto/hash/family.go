package hash

const (
	// Domain separation bytes. Each one holds the suffix bits that separate
	// SHA3 ("01"), SHAKE ("1111") and cSHAKE ("00") outputs, followed by the
	// first "1" bit of the pad10*1 rule, in little-endian bit order.
	dsByteSHA3   = byte(0x06)
	dsByteSHAKE  = byte(0x1f)
	dsByteCSHAKE = byte(0x04)
)

// family holds the fixed sponge parameters of one SHA-3 family function.
// A Context keeps its own copy since cSHAKE adjusts dsByte at start time.
type family struct {
	algo      HashingAlgorithm
	rate      int  // bytes absorbed or squeezed per permutation
	outputLen int  // fixed output size in bytes, 0 for extendable output functions
	dsByte    byte // domain separation and first padding bit
}

// familyOf returns the sponge parameters of algo.
func familyOf(algo HashingAlgorithm) (family, error) {
	switch algo {
	case SHA3_224:
		return family{algo: algo, rate: rateSHA3_224, outputLen: HashLenSHA3_224, dsByte: dsByteSHA3}, nil
	case SHA3_256:
		return family{algo: algo, rate: rateSHA3_256, outputLen: HashLenSHA3_256, dsByte: dsByteSHA3}, nil
	case SHA3_384:
		return family{algo: algo, rate: rateSHA3_384, outputLen: HashLenSHA3_384, dsByte: dsByteSHA3}, nil
	case SHA3_512:
		return family{algo: algo, rate: rateSHA3_512, outputLen: HashLenSHA3_512, dsByte: dsByteSHA3}, nil
	case SHAKE128:
		return family{algo: algo, rate: rateSHAKE128, dsByte: dsByteSHAKE}, nil
	case SHAKE256:
		return family{algo: algo, rate: rateSHAKE256, dsByte: dsByteSHAKE}, nil
	case CSHAKE128:
		return family{algo: algo, rate: rateSHAKE128, dsByte: dsByteCSHAKE}, nil
	case CSHAKE256:
		return family{algo: algo, rate: rateSHAKE256, dsByte: dsByteCSHAKE}, nil
	default:
		return family{}, ErrUnknownAlgorithm
	}
}
