package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

// exitFailure is returned for errors that prevented the checks from running.
const exitFailure = 2

var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := newRootCommand()
	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return
	}

	var gate *gateError
	if errors.As(err, &gate) {
		fmt.Fprintln(os.Stderr, gate)
		stop()
		os.Exit(gate.code)
	}
	if !errors.Is(err, context.Canceled) {
		fmt.Fprintln(os.Stderr, err)
	}
	stop()
	os.Exit(exitFailure)
}

// gateError carries a blocked verdict out of the check command.
type gateError struct {
	code    int
	message string
}

func (e *gateError) Error() string {
	return e.message
}
