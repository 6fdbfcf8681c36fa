// Command tmsim runs a deterministic Turing machine definition against a
// batch of input words and reports ACCEPT/REJECT/INFINITE/ERROR for each.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"
)

func main() {
	logger, _ := zap.NewProduction()
	defer func() {
		_ = logger.Sync()
	}()

	if err := newRootCommand(logger).Execute(); err != nil {
		var ee *exitError
		if isExitError(err, &ee) {
			if ee.message != "" {
				fmt.Fprintln(os.Stderr, ee.message)
			}

			os.Exit(ee.code)
		}

		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
