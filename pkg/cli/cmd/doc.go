// Package cmd provides the command line interface for KubeDrift.
//
// The root command wires the diff, render, validate, and init subcommands
// onto a shared dependency injection runtime, so every command resolves its
// collaborators the same way.
package cmd
