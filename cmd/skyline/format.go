package main

import (
	"fmt"
	"io"

	"github.com/ChicagoDave/skyline/pkg/validation"
)

func printValidationReport(w io.Writer, r *validation.Report) {
	printResults := func(title string, results []validation.Result) {
		if len(results) == 0 {
			return
		}
		fmt.Fprintf(w, "%s (%d):\n", title, len(results))
		for _, res := range results {
			fmt.Fprintf(w, "  [%s] %s\n", res.Level, res.Message)
			if res.Path != "" && res.ActualValue != nil {
				fmt.Fprintf(w, "    -> %s = %v\n", res.Path, res.ActualValue)
			}
			if res.Expected != "" {
				fmt.Fprintf(w, "    expected: %s\n", res.Expected)
			}
		}
		fmt.Fprintln(w)
	}

	printResults("ERRORS", r.Errors)
	printResults("WARNINGS", r.Warnings)
	printResults("INFO", r.Info)

	if r.Valid {
		fmt.Fprintf(w, "Result: VALID (%s)\n", r.Summary)
	} else {
		fmt.Fprintf(w, "Result: INVALID (%s)\n", r.Summary)
	}
}
