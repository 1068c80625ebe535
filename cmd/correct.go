/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var correctCmd = &cobra.Command{
	Use:   "correct <artist>",
	Short: "Show Last.fm's canonical spelling of an artist",
	Long: `Ask Last.fm for the canonical spelling of an artist name.

The name is printed unchanged when Last.fm has no correction or cannot be
reached. With --info the artist's details are fetched using the corrected
name.`,
	Args: cobra.ExactArgs(1),
	RunE: runCorrect,
}

func init() {
	rootCmd.AddCommand(correctCmd)

	correctCmd.Flags().Bool("info", false, "Also show artist details")
}

func runCorrect(cmd *cobra.Command, args []string) error {
	s, _, _, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	ctx := context.Background()
	out := cmd.OutOrStdout()

	showInfo, _ := cmd.Flags().GetBool("info")
	if !showInfo {
		fmt.Fprintln(out, s.Corrections.Correct(ctx, args[0]))
		return nil
	}

	info, err := s.Corrections.ArtistInfo(ctx, args[0])
	if err != nil {
		return fmt.Errorf("failed to get artist info: %w", err)
	}

	fmt.Fprintf(out, "Name:      %s\n", info.Name)
	if info.URL != "" {
		fmt.Fprintf(out, "URL:       %s\n", info.URL)
	}
	fmt.Fprintf(out, "Listeners: %d\n", info.Listeners)
	fmt.Fprintf(out, "Plays:     %d\n", info.Playcount)
	if len(info.Tags) > 0 {
		fmt.Fprintf(out, "Tags:      %s\n", strings.Join(info.Tags, ", "))
	}
	if len(info.Similar) > 0 {
		fmt.Fprintf(out, "Similar:   %s\n", strings.Join(info.Similar, ", "))
	}
	return nil
}
