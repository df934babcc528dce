// ptdstress soaks the per-thread runtime-data registry: many workers hammer
// lookup/release cycles, optionally recycling thread identifiers, and the
// tool reports registry and pool counters at the end.
package main

import "os"

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
