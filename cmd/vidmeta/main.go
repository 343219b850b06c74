// Package main provides the CLI entry point for vidmeta.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

const (
	appName    = "vidmeta"
	appVersion = "0.1.0"
)

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Video metadata scanner",
		Long: `vidmeta lists the video files in a directory, probes each one with
ffprobe, and writes their duration, frame rate, audio presence and bit rate
to a JSON report.`,
		Version:       appVersion,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetVersionTemplate(fmt.Sprintf("%s version {{.Version}}\n", appName))

	root.AddCommand(newScanCmd(stdout, stderr))
	root.AddCommand(newVersionCmd(stdout))

	return root
}

func newVersionCmd(stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(stdout, "%s version %s\n", appName, appVersion)
		},
	}
}
