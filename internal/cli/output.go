package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	"github.com/preston-bernstein/game-catalog-service/internal/domain/games"
)

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newTable(out io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
}

func formatRating(r *float64) string {
	if r == nil {
		return "-"
	}
	return humanize.FormatFloat("#,###.#", *r)
}

func formatCount(n *int) string {
	if n == nil {
		return "-"
	}
	return humanize.Comma(int64(*n))
}

func formatIDs(ids []int) string {
	if len(ids) == 0 {
		return "-"
	}
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprint(id)
	}
	return strings.Join(parts, ", ")
}

func writeGameRows(out io.Writer, list []games.Game, startIndex int) error {
	tw := newTable(out)
	fmt.Fprintln(tw, "#\tID\tNAME\tRATING\tRATINGS")
	for i, g := range list {
		fmt.Fprintf(tw, "%d\t%d\t%s\t%s\t%s\n",
			startIndex+i+1, g.ID, g.Name, formatRating(g.Rating), formatCount(g.TotalRatingCount))
	}
	return tw.Flush()
}
