// Command bigcalc performs exact arithmetic on arbitrarily large
// non-negative integers and computes factorial, Fibonacci and Catalan terms.
//
// Usage:
//
//	bigcalc -op mul -a 123456789 -b 987654321
//	bigcalc -op fibonacci -n 1000 -algo all
//	bigcalc -server -port 8080
package main

import (
	"context"
	"os"

	"github.com/agbru/bigcalc/internal/app"
	apperrors "github.com/agbru/bigcalc/internal/errors"
)

func main() {
	if app.HasVersionFlag(os.Args[1:]) {
		app.PrintVersion(os.Stdout)
		os.Exit(apperrors.ExitSuccess)
	}

	application, err := app.New(os.Args, os.Stderr)
	if err != nil {
		if app.IsHelpError(err) {
			os.Exit(apperrors.ExitSuccess)
		}
		os.Exit(apperrors.ExitCodeFor(err))
	}

	os.Exit(application.Run(context.Background(), os.Stdout))
}
