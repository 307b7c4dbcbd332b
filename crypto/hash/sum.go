package hash

// Sum computes algo over data and writes len(out) bytes of output to out.
// For SHA3 functions len(out) must be the fixed output length.
//
// It is the one-call form of Starts, Update and Finish on a transient
// context, which is wiped before returning.
func Sum(algo HashingAlgorithm, data, out []byte) error {
	var ctx Context
	defer ctx.Free()

	if err := ctx.Starts(algo); err != nil {
		return err
	}
	if err := ctx.Update(data); err != nil {
		return err
	}
	return ctx.Finish(out)
}

// SumCShake computes cSHAKE over data with the function-name string name
// and the customization string custom, and writes len(out) bytes of output
// to out. See Context.StartsCShake for how empty strings are handled.
func SumCShake(algo HashingAlgorithm, data, name, custom, out []byte) error {
	var ctx Context
	defer ctx.Free()

	if err := ctx.StartsCShake(algo, name, custom); err != nil {
		return err
	}
	if err := ctx.Update(data); err != nil {
		return err
	}
	return ctx.Finish(out)
}
