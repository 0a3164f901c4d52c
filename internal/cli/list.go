package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	appcatalog "github.com/preston-bernstein/game-catalog-service/internal/app/catalog"
	"github.com/preston-bernstein/game-catalog-service/internal/domain/games"
	"github.com/preston-bernstein/game-catalog-service/internal/domain/platforms"
)

func newGenresCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "genres",
		Short: "List game genres",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := a.catalog.Service.Genres(cmd.Context())
			if err != nil {
				return err
			}
			if a.jsonOut {
				return writeJSON(a.out, list)
			}
			tw := newTable(a.out)
			fmt.Fprintln(tw, "ID\tNAME\tSLUG")
			for _, g := range list {
				fmt.Fprintf(tw, "%d\t%s\t%s\n", g.ID, g.Name, g.Slug)
			}
			return tw.Flush()
		},
	}
}

func newPlatformsCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "platforms",
		Short: "List platform groups and the platforms they contain",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			groups, err := a.catalog.Service.Groups(cmd.Context())
			if err != nil {
				return err
			}
			if a.jsonOut {
				return writeJSON(a.out, groups)
			}
			tw := newTable(a.out)
			fmt.Fprintln(tw, "KEY\tNAME\tPLATFORMS")
			for _, g := range groups {
				names := lo.Map(g.Platforms, func(p platforms.Platform, _ int) string { return p.Name })
				fmt.Fprintf(tw, "%s\t%s\t%s\n", g.GroupKey, g.DisplayName, strings.Join(names, ", "))
			}
			return tw.Flush()
		},
	}
}

func newGamesCommand(a *app) *cobra.Command {
	var (
		genre    int
		platform string
		search   string
		limit    int
		offset   int
	)
	cmd := &cobra.Command{
		Use:   "games",
		Short: "List games, most rated first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := appcatalog.ListRequest{
				PlatformGroup: platform,
				Search:        search,
				Limit:         limit,
				Offset:        offset,
			}
			if cmd.Flags().Changed("genre") {
				if genre <= 0 {
					return fmt.Errorf("invalid genre id %d", genre)
				}
				req.GenreID = &genre
			}
			page, err := a.catalog.Service.ListGames(cmd.Context(), req)
			if err != nil {
				return err
			}
			if a.jsonOut {
				return writeJSON(a.out, page)
			}
			if len(page.Games) == 0 {
				fmt.Fprintln(a.out, "No games found.")
				return nil
			}
			if err := writeGameRows(a.out, page.Games, page.Offset); err != nil {
				return err
			}
			if page.HasMore {
				fmt.Fprintf(a.out, "\nMore available: --offset %s\n", humanize.Comma(int64(page.Offset+page.Limit)))
			}
			return nil
		},
	}
	flags := cmd.Flags()
	flags.IntVar(&genre, "genre", 0, "genre id")
	flags.StringVar(&platform, "platform", "", "platform group key (playstation, xbox, nintendo, sega, pc, mobile, handheld)")
	flags.StringVarP(&search, "search", "s", "", "case-insensitive name substring")
	flags.IntVar(&limit, "limit", 0, "page size (default from IGDB_PAGE_SIZE)")
	flags.IntVar(&offset, "offset", 0, "number of games to skip")
	return cmd
}

func newGameCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "game <id>",
		Short: "Show one game with its details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil || id <= 0 {
				return fmt.Errorf("invalid game id %q", args[0])
			}
			g, err := a.catalog.Service.Game(cmd.Context(), id)
			if err != nil {
				return err
			}
			if a.jsonOut {
				return writeJSON(a.out, g)
			}
			tw := newTable(a.out)
			fmt.Fprintf(tw, "ID:\t%d\n", g.ID)
			fmt.Fprintf(tw, "Name:\t%s\n", g.Name)
			fmt.Fprintf(tw, "Rating:\t%s (%s ratings)\n", formatRating(g.TotalRating), formatCount(g.TotalRatingCount))
			fmt.Fprintf(tw, "Genres:\t%s\n", formatIDs(g.Genres))
			fmt.Fprintf(tw, "Platforms:\t%s\n", formatIDs(g.Platforms))
			if url := g.CoverURL(games.CoverBig); url != "" {
				fmt.Fprintf(tw, "Cover:\t%s\n", url)
			}
			if len(g.MultiplayerModes) > 0 {
				fmt.Fprintf(tw, "Multiplayer:\t%d mode(s)\n", len(g.MultiplayerModes))
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			if g.Summary != "" {
				fmt.Fprintf(a.out, "\n%s\n", g.Summary)
			}
			if g.Storyline != "" {
				fmt.Fprintf(a.out, "\n%s\n", g.Storyline)
			}
			return nil
		},
	}
}
