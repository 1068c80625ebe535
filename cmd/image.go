/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"fmt"

	"github.com/jfmyers9/recap/internal/images"
	"github.com/spf13/cobra"
)

var imageCmd = &cobra.Command{
	Use:   "image <artist|album|track> <name>",
	Short: "Resolve artwork for one artist, album or track",
	Long: `Print the best available artwork URL for an entity.

Spotify is searched first. Without a Spotify match the Last.fm image list
is used (fetched from album.getInfo or artist.getInfo), and a placeholder
when neither has artwork.

Albums and tracks need --artist.`,
	Args: cobra.ExactArgs(2),
	RunE: runImage,
}

func init() {
	rootCmd.AddCommand(imageCmd)

	imageCmd.Flags().StringP("artist", "a", "", "Artist of the album or track")
	imageCmd.Flags().Bool("no-lastfm", false, "Skip the Last.fm image lookup")
}

func runImage(cmd *cobra.Command, args []string) error {
	typ, err := images.ParseEntityType(args[0])
	if err != nil {
		return err
	}
	artist, _ := cmd.Flags().GetString("artist")
	if typ != images.Artist && artist == "" {
		return fmt.Errorf("--artist is required for %s images", typ)
	}

	s, _, logger, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	ctx := context.Background()
	req := images.Request{Type: typ, Name: args[1], Artist: artist}

	if skip, _ := cmd.Flags().GetBool("no-lastfm"); !skip {
		switch typ {
		case images.Album:
			info, err := s.LastFM.Album().GetInfo(ctx, artist, req.Name)
			if err != nil {
				logger.Debug().Err(err).Msg("album.getInfo failed")
			} else {
				req.Images = info.Images
				if info.Name != req.Name {
					req.CorrectedName = info.Name
				}
			}
		case images.Artist:
			info, err := s.Corrections.ArtistInfo(ctx, req.Name)
			if err != nil {
				logger.Debug().Err(err).Msg("artist.getInfo failed")
			} else {
				req.Images = info.Images
			}
		}
	}

	fmt.Fprintln(cmd.OutOrStdout(), s.Images.Resolve(ctx, req))
	return nil
}
