// Command nvimgui is the reference CLI for the UI-state engine: a
// version subcommand, a run subcommand that drives the embedded Bubble
// Tea demo, and a logs subcommand that tails the engine's log output.
package main

import (
	"os"

	"github.com/grovetools/nvimgui/cli"
	"github.com/grovetools/nvimgui/version"
)

func main() {
	rootCmd := cli.NewStandardCommand(
		"nvimgui",
		"A UI-state engine and reference client for an embedded modal editor backend",
	)

	info := version.GetInfo()
	cli.SetVersionTemplate(rootCmd, cli.VersionInfo{
		Version:   info.Version,
		Commit:    info.Commit,
		BuildDate: info.BuildDate,
		BuildArch: info.Platform,
	})
	rootCmd.Version = info.Version

	rootCmd.AddCommand(cli.NewVersionCommand("nvimgui", cli.VersionInfo{
		Version:   info.Version,
		Commit:    info.Commit,
		BuildDate: info.BuildDate,
		BuildArch: info.Platform,
	}))
	rootCmd.AddCommand(newRunCmd())
	rootCmd.AddCommand(newLogsCmd())

	cli.SetStyledHelp(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		verbose, _ := rootCmd.PersistentFlags().GetBool("verbose")
		cli.NewErrorHandler(verbose).Handle(err)
		os.Exit(1)
	}
}
