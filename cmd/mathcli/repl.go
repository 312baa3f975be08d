package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"mathcli/internal/engine"
)

// runREPL reads command lines until EOF or "exit". The prompt is suppressed
// when stdin is not a terminal so piped scripts produce clean output.
func runREPL(eng *engine.Engine) error {
	interactive := isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())

	if interactive {
		active := eng.Sessions().Active()
		fmt.Printf("mathcli - type 'help' for commands, 'exit' to quit\n")
		fmt.Printf("session: %s (%s)\n", active.Name, active.ID)
	}

	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for {
		if interactive {
			fmt.Printf("%s> ", eng.Sessions().Active().ID)
		}
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if line == "exit" || line == "quit" {
			break
		}

		v, err := eng.Execute(line)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			continue
		}
		if !v.IsUnit() {
			fmt.Println(v.Format())
		}
	}
	return scanner.Err()
}
