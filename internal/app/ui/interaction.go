package ui

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"
)

// Confirm prompts the user for a yes/no answer.
func Confirm(prompt string) (bool, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		fmt.Print(prompt + " (y/n): ")
		var input string
		fmt.Scanln(&input)
		return strings.ToLower(input) == "y", nil
	}

	oldState, err := term.MakeRaw(int(os.Stdin.Fd()))
	if err != nil {
		return false, err
	}
	defer term.Restore(int(os.Stdin.Fd()), oldState)

	fmt.Print(prompt + " (y/n): ")

	for {
		b := make([]byte, 1)
		_, err := os.Stdin.Read(b)
		if err != nil {
			return false, err
		}

		if b[0] == 3 { // Ctrl+C
			fmt.Print("^C\r\n")
			return false, fmt.Errorf("cancelled")
		}

		char := strings.ToLower(string(b[0]))
		if char == "y" {
			fmt.Print("y\r\n")
			return true, nil
		}
		if char == "n" {
			fmt.Print("n\r\n")
			return false, nil
		}
	}
}

// Choose reads a single-character answer from the given set, e.g.
// "pae" for proceed/abort/exclude.
func Choose(prompt string, choices string) (byte, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		fmt.Printf("%s [%s]: ", prompt, choices)
		var input string
		fmt.Scanln(&input)
		input = strings.ToLower(strings.TrimSpace(input))
		if len(input) == 1 && strings.IndexByte(choices, input[0]) >= 0 {
			return input[0], nil
		}
		return 0, fmt.Errorf("invalid choice %q", input)
	}

	oldState, err := term.MakeRaw(int(os.Stdin.Fd()))
	if err != nil {
		return 0, err
	}
	defer term.Restore(int(os.Stdin.Fd()), oldState)

	fmt.Printf("%s [%s]: ", prompt, choices)

	for {
		b := make([]byte, 1)
		if _, err := os.Stdin.Read(b); err != nil {
			return 0, err
		}
		if b[0] == 3 { // Ctrl+C
			fmt.Print("^C\r\n")
			return 0, fmt.Errorf("cancelled")
		}
		c := strings.ToLower(string(b[0]))[0]
		if strings.IndexByte(choices, c) >= 0 {
			fmt.Printf("%c\r\n", c)
			return c, nil
		}
	}
}
