// Command kahuna solves wave function collapse worlds from a prototype set
// and prints them layer by layer.
//
//	kahuna solve                       # 3×3×3 cube from the bundled modules
//	kahuna solve --count 8 --parallel 4 --seed 42
//	kahuna solve --config run.yaml --height 5
//	kahuna inspect --prototypes modules.json
package main

import (
	"context"
	"os"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
