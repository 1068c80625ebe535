/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jfmyers9/recap/internal/tags"
	"github.com/jfmyers9/recap/pkg/lastfm"
	"github.com/spf13/cobra"
)

var tagsCmd = &cobra.Command{
	Use:   "tags [user]",
	Short: "Show a user's top tags",
	Long: `Show the tags a Last.fm user listens to most.

Last.fm's own tag chart is used when it has entries. Otherwise recap samples
the user's top albums (or top tracks with --strategy tracks) for the period
and ranks the tags of those items.

The user defaults to lastfm.username from the config.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTags,
}

func init() {
	rootCmd.AddCommand(tagsCmd)

	tagsCmd.Flags().StringP("period", "p", string(lastfm.PeriodOverall), "Chart period (overall, 7day, 1month, 3month, 6month, 12month)")
	tagsCmd.Flags().IntP("limit", "n", 20, "Number of tags to show (0=all)")
	tagsCmd.Flags().String("strategy", "", "Fallback sample: albums or tracks (overrides config)")
	tagsCmd.Flags().IntP("width", "w", 30, "Maximum tag name width in the table")
	tagsCmd.Flags().Bool("json", false, "Print JSON instead of a table")
}

func runTags(cmd *cobra.Command, args []string) error {
	period := lastfm.Period(mustString(cmd, "period"))
	if !period.Valid() {
		return fmt.Errorf("invalid period %q", period)
	}

	strategy, _ := cmd.Flags().GetString("strategy")
	if strategy != "" && !tags.Strategy(strategy).Valid() {
		return fmt.Errorf("invalid strategy %q (albums or tracks)", strategy)
	}

	s, cfg, logger, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	user := cfg.LastFM.Username
	if len(args) == 1 {
		user = args[0]
	}
	if user == "" {
		return fmt.Errorf("no user given and lastfm.username not configured")
	}

	orchestrator := s.Tags
	if strategy != "" && strategy != cfg.Tags.Strategy {
		orchestrator = tags.NewOrchestrator(s.LastFM.User(),
			tags.NewCollector(tags.LastfmSource{Client: s.LastFM}, cfg.HTTPTimeout, logger),
			tags.Config{
				Strategy:    tags.Strategy(strategy),
				AlbumSample: cfg.Tags.AlbumSample,
				TrackSample: cfg.Tags.TrackSample,
				BatchSize:   cfg.Tags.BatchSize,
				BatchDelay:  cfg.Tags.BatchDelay,
				Timeout:     cfg.HTTPTimeout,
				Logger:      logger,
			})
	}

	result, err := orchestrator.TopTags(context.Background(), user, period)
	if errors.Is(err, tags.ErrNoTagsAvailable) {
		return fmt.Errorf("could not load tags for %s: %w", user, err)
	}
	if err != nil {
		return err
	}

	if limit, _ := cmd.Flags().GetInt("limit"); limit > 0 && len(result) > limit {
		result = result[:limit]
	}

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	width, _ := cmd.Flags().GetInt("width")
	return writeTagTable(cmd.OutOrStdout(), result, width)
}

func mustString(cmd *cobra.Command, name string) string {
	v, _ := cmd.Flags().GetString(name)
	return v
}
