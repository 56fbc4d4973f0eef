package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const version = "0.1.0"

var configPath string

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, styleError.Render(err.Error()))
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "moviedeck",
		Short: "Browse TMDb movie lists from the terminal",
		Long: "MovieDeck is a terminal movie browser backed by TMDb.\n" +
			"It shows curated movie lists (popular, top rated, now playing, upcoming)\n" +
			"and detail screens with posters, genres, budgets, and runtimes.",
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "configs/moviedeck.yaml", "path to configuration file")

	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true

	rootCmd.AddCommand(
		newVersionCmd(),
		newBrowseCmd(),
		newMovieCmd(),
		newBotCmd(),
		newMCPServeCmd(),
		newConfigCmd(),
	)

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("MovieDeck v%s\n", version)
		},
	}
}
