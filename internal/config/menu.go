package config

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/rohankatakam/dbstats/internal/errors"
)

// ChooseTarget prints the database menu and reads a choice from in until it
// gets a valid one. Only end of input stops the loop.
func ChooseTarget(in io.Reader, out io.Writer) (TargetName, error) {
	fmt.Fprintln(out, "\nAvailable databases:")
	fmt.Fprintf(out, "1. %s\n", TargetLocal.Label())
	fmt.Fprintf(out, "2. %s\n", TargetRemote.Label())

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "\nSelect database (1 or 2): ")
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return "", errors.Wrap(err, errors.ErrorTypeValidation, errors.SeverityCritical,
					"failed to read database choice")
			}
			return "", errors.ValidationError("no database selected: input closed")
		}

		switch strings.TrimSpace(scanner.Text()) {
		case "1":
			return TargetLocal, nil
		case "2":
			return TargetRemote, nil
		default:
			fmt.Fprintln(out, "Invalid choice. Please select 1 or 2.")
		}
	}
}
