package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// sender runs one conversation turn.
type sender interface {
	Send(ctx context.Context, text string) (string, error)
}

var (
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

const exitMessage = "Exiting conversation."

func isExit(input string) bool {
	switch strings.ToLower(input) {
	case "exit", "quit":
		return true
	}
	return false
}

// runCLI reads one message per line until exit, quit, end of input or ctx
// is cancelled. Turn errors are reported and the loop carries on.
func runCLI(ctx context.Context, conv sender, in io.Reader, out, errOut io.Writer, interactive bool) error {
	scanner := bufio.NewScanner(in)
	prompt := func() {
		if interactive {
			fmt.Fprint(out, promptStyle.Render("you> "))
		}
	}

	prompt()
	for scanner.Scan() {
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			prompt()
			continue
		}
		if isExit(input) {
			fmt.Fprintln(out, exitMessage)
			return nil
		}

		reply, err := conv.Send(ctx, input)
		switch {
		case ctx.Err() != nil:
			fmt.Fprintln(out, exitMessage)
			return nil
		case err != nil:
			fmt.Fprintln(errOut, errorStyle.Render("error: "+err.Error()))
		default:
			fmt.Fprintln(out, reply)
		}
		prompt()
	}
	return scanner.Err()
}
