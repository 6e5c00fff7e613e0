// Command xkcddl downloads xkcd comic images and info JSONs.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/handiism/xkcd-downloader/internal/console"
)

// Exit codes.
const (
	exitOK        = 0
	exitError     = 1
	exitInterrupt = 130
)

func main() {
	os.Exit(execute(context.Background(), os.Args[1:], os.Stdout))
}

// execute runs the command line and maps its outcome to an exit code.
func execute(ctx context.Context, args []string, out io.Writer) int {
	root := newRootCmd(out)
	root.SetArgs(args)

	cmd, err := root.ExecuteContextC(ctx)
	if err == nil {
		return exitOK
	}
	if errors.Is(err, errAborted) {
		return exitInterrupt
	}

	console.NewPrinter(out, false).Error(fmt.Sprintf("Error: %v", err))

	var usage *usageError
	if errors.As(err, &usage) {
		fmt.Fprintln(out)
		fmt.Fprint(out, cmd.UsageString())
	}
	return exitError
}
