package main

import (
	"github.com/onflow/flow-sha3/cmd/sha3sum/cmd"
)

func main() {
	cmd.Execute()
}
