// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package prompt asks the user how extracted lessons should be written.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/lesson-scraper/pkg/types"
)

// ErrNoChoice is returned when input ends before a valid choice is made.
var ErrNoChoice = errors.New("input closed before an output mode was chosen")

// ChooseMode prints the output-mode menu to w and reads answers from r
// until one is "1" (individual) or "2" (combined). Any other answer
// re-prompts.
func ChooseMode(r io.Reader, w io.Writer) (types.OutputMode, error) {
	fmt.Fprintln(w, "\nChoose output format:")
	fmt.Fprintln(w, "1. Individual files (one file per lesson)")
	fmt.Fprintln(w, "2. Combined file (all lessons in one file)")

	scanner := bufio.NewScanner(r)
	for {
		fmt.Fprint(w, "\nEnter choice (1 or 2): ")
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return "", fmt.Errorf("reading choice: %w", err)
			}
			return "", ErrNoChoice
		}
		switch strings.TrimSpace(scanner.Text()) {
		case "1":
			return types.ModeIndividual, nil
		case "2":
			return types.ModeCombined, nil
		default:
			fmt.Fprintln(w, "Please enter 1 or 2")
		}
	}
}
