// Svbench benchmarks the fixed-capacity vector against a general-purpose
// growable slice and records the results.
package main

import "github.com/slotlab/staticvec/svbench/cmd"

func main() {
	cmd.Execute()
}
