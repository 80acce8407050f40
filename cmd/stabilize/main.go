// Command stabilize loads a declarative graph definition, compiles it,
// and drives it with a synthetic producer/consumer intake loop, logging a
// summary when the run ends. It is glue code exercising every public operation
// the core packages expose end to end — not part of the core contract.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
