/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information (set via ldflags during build)
var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

var (
	logLevel string
	logFile  string

	// Upstream overrides, used by the integration tests.
	lastfmURL       string
	spotifyTokenURL string
	spotifyAPIURL   string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "recap",
	Short: "Listening recaps from Last.fm",
	Long: `recap builds listening summaries from a Last.fm account.

It ranks a user's top tags, falling back to sampling their top albums or
tracks when Last.fm has no tag chart for them, and resolves artwork for
artists, albums and tracks from Spotify with Last.fm images as a fallback.

Configuration is read from ~/.config/recap/config.yaml and RECAP_*
environment variables.`,
	Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildDate),
	SilenceUsage:  true,
	SilenceErrors: false,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Log file path (default: stderr)")

	rootCmd.PersistentFlags().StringVar(&lastfmURL, "lastfm-url", "", "Last.fm API base URL")
	rootCmd.PersistentFlags().StringVar(&spotifyTokenURL, "spotify-token-url", "", "Spotify token endpoint")
	rootCmd.PersistentFlags().StringVar(&spotifyAPIURL, "spotify-api-url", "", "Spotify API base URL")
	_ = rootCmd.PersistentFlags().MarkHidden("lastfm-url")
	_ = rootCmd.PersistentFlags().MarkHidden("spotify-token-url")
	_ = rootCmd.PersistentFlags().MarkHidden("spotify-api-url")
}
