/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var imagesCmd = &cobra.Command{
	Use:   "images [artist...]",
	Short: "Resolve Spotify artwork for many artists",
	Long: `Resolve Spotify artwork for a list of artists, printing one
"name<TAB>url" line per artist that has an image.

Artists are read from the arguments, or one per line from stdin when no
arguments are given. Lookups run in batches (images.batch_size) with a
pause between batches (images.batch_delay).`,
	RunE: runImages,
}

func init() {
	rootCmd.AddCommand(imagesCmd)
}

func runImages(cmd *cobra.Command, args []string) error {
	names := args
	if len(names) == 0 {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			if name := strings.TrimSpace(scanner.Text()); name != "" {
				names = append(names, name)
			}
		}
		if err := scanner.Err(); err != nil {
			return fmt.Errorf("failed to read artists: %w", err)
		}
	}
	if len(names) == 0 {
		return fmt.Errorf("no artists given")
	}

	s, _, logger, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	resolved, err := s.Images.ResolveBatch(context.Background(), names)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, name := range names {
		if url, ok := resolved[name]; ok {
			fmt.Fprintf(out, "%s\t%s\n", name, url)
		}
	}
	logger.Info().Int("artists", len(names)).Int("resolved", len(resolved)).Msg("Resolved artwork")
	return nil
}
