// Package main is the entry point for the KubeDrift application.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"runtime/debug"

	"github.com/devantler-tech/kubedrift/internal/buildmeta"
	"github.com/devantler-tech/kubedrift/pkg/cli/cmd"
	"github.com/devantler-tech/kubedrift/pkg/cli/helpers"
	"github.com/devantler-tech/kubedrift/pkg/utils/notify"
)

func main() {
	exitCode := runSafely(os.Args[1:], runWithArgs, os.Stderr)

	if exitCode != 0 {
		os.Exit(exitCode)
	}
}

//nolint:nonamedreturns // Named return simplifies panic recovery logic.
func runSafely(args []string, runner func([]string) int, errWriter io.Writer) (exitCode int) {
	defer func() {
		if r := recover(); r != nil {
			panicMessage := fmt.Sprintf("panic recovered: %v\n%s", r, debug.Stack())
			notify.WriteMessage(notify.Message{
				Type:    notify.ErrorType,
				Content: panicMessage,
				Writer:  errWriter,
			})

			exitCode = 2
		}
	}()

	exitCode = runner(args)

	return exitCode
}

func runWithArgs(args []string) int {
	streams := helpers.NewStandardIOStreams()

	rootCmd := cmd.NewRootCmd(buildmeta.Version, buildmeta.Commit, buildmeta.Date)
	rootCmd.SetArgs(args)
	rootCmd.SetIn(streams.In)
	rootCmd.SetOut(streams.Out)
	rootCmd.SetErr(streams.ErrOut)

	err := cmd.Execute(rootCmd)
	if err != nil {
		// Exit 1 means drift was found; the report is already on stdout.
		// Every other failure exits 2.
		if errors.Is(err, cmd.ErrDriftFound) {
			return 1
		}

		notify.Errorf(rootCmd.ErrOrStderr(), "%v", err)

		return 2
	}

	return 0
}
