// Package testutils holds helpers shared by package tests.
package testutils

import (
	"fmt"
	"os"
	"testing"
	"text/tabwriter"

	"cursespp/internal/console"
)

// TestCase is one input/expected/actual row of a comparison table.
type TestCase struct {
	Name     string
	Input    string
	Expected string
	Actual   string
	Pass     bool
}

// PrintTestTable prints the cases as an aligned table, marking failed rows,
// and fails t if any case did not pass.
func PrintTestTable(t *testing.T, cases []TestCase) {
	t.Helper()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
	fmt.Fprintf(w, "  Input\tExpected Value\tReturned Value\t\n")

	anyFailed := false
	for _, tc := range cases {
		left, right := " ", " "
		if !tc.Pass {
			anyFailed = true
			left, right = ">", "<"
			t.Errorf("%s: input %q: expected %q, got %q", tc.Name, tc.Input, tc.Expected, tc.Actual)
		}
		fmt.Fprintf(w, "%s %q\t%q\t%q\t%s\n", left, tc.Input, tc.Expected, tc.Actual, right)
	}
	w.Flush()
	fmt.Println()

	if anyFailed {
		fmt.Println(console.Colorize(console.CodeRed, "Some cases failed."))
	}
}
