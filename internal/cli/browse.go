package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"github.com/preston-bernstein/game-catalog-service/internal/catalog"
)

const browseHelp = `Type text to search by name. Commands:
  :genres          list genres
  :platforms       list platform groups
  :genre <id>      toggle a genre filter
  :platform <key>  toggle a platform group filter
  :clear           clear the search text
  :more            load the next page
  :retry           retry the last failed load
  :help            show this help
  :quit            exit`

func newBrowseCommand(a *app) *cobra.Command {
	var pageSize int
	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse games interactively with filters and paging",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if pageSize <= 0 {
				pageSize = a.cfg.IGDB.PageSize
			}
			return a.browse(cmd.Context(), cmd.InOrStdin(), pageSize)
		},
	}
	cmd.Flags().IntVar(&pageSize, "page-size", 0, "games per page (default from IGDB_PAGE_SIZE)")
	return cmd
}

// console serializes output from the input loop and from debounced loads.
type console struct {
	mu      sync.Mutex
	out     io.Writer
	prev    catalog.State
	printed int
}

func (c *console) printf(format string, args ...any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.out, format, args...)
}

func busy(s catalog.State) bool {
	return s.Loading || s.LoadingMore
}

// onChange prints once per settled load: new rows on success, the message on failure.
func (c *console) onChange(s catalog.State) {
	c.mu.Lock()
	defer c.mu.Unlock()
	settled := busy(c.prev) && !busy(s)
	c.prev = s
	if !settled {
		return
	}
	if s.Err != "" {
		fmt.Fprintf(c.out, "%s Type :retry to try again.\n", s.Err)
		return
	}
	if s.Offset == 0 {
		c.printed = 0
		fmt.Fprintln(c.out, describeFilter(s))
		if len(s.Games) == 0 {
			fmt.Fprintln(c.out, "No games found.")
			return
		}
	}
	if c.printed < len(s.Games) {
		_ = writeGameRows(c.out, s.Games[c.printed:], c.printed)
		c.printed = len(s.Games)
	}
	if s.HasMore {
		fmt.Fprintln(c.out, "Type :more for the next page.")
	}
}

func describeFilter(s catalog.State) string {
	var parts []string
	if id := s.Filter.GenreID; id != nil {
		name := strconv.Itoa(*id)
		for _, g := range s.Genres {
			if g.ID == *id {
				name = g.Name
				break
			}
		}
		parts = append(parts, "genre="+name)
	}
	if s.Filter.PlatformGroup != "" {
		parts = append(parts, "platform="+s.Filter.PlatformGroup)
	}
	if s.Filter.Search != "" {
		parts = append(parts, fmt.Sprintf("search=%q", s.Filter.Search))
	}
	if len(parts) == 0 {
		return "All games:"
	}
	return "Games (" + strings.Join(parts, ", ") + "):"
}

func (a *app) browse(ctx context.Context, in io.Reader, pageSize int) error {
	con := &console{out: a.out}
	b := catalog.NewBrowser(a.catalog.Provider,
		catalog.WithPageSize(pageSize),
		catalog.WithScheduler(a.scheduler),
		catalog.WithLogger(a.logger),
		catalog.WithStaleGuard(),
		catalog.WithOnChange(con.onChange),
	)
	defer b.Close()

	// Failures are already rendered; the user can :retry.
	_ = b.Bootstrap(ctx)

	scanner := bufio.NewScanner(in)
	for {
		if a.tty {
			con.printf("> ")
		}
		if !scanner.Scan() {
			// Piped input ends right after the last line; run its search
			// instead of letting Close drop it.
			if ctx.Err() == nil {
				b.FlushSearch()
			}
			return scanner.Err()
		}
		if ctx.Err() != nil {
			return nil
		}
		quit, err := a.handleBrowseLine(ctx, b, con, strings.TrimSpace(scanner.Text()))
		if err != nil {
			con.printf("%v\n", err)
		}
		if quit {
			return nil
		}
	}
}

func (a *app) handleBrowseLine(ctx context.Context, b *catalog.Browser, con *console, line string) (bool, error) {
	if line == "" {
		return false, nil
	}
	if !strings.HasPrefix(line, ":") {
		b.SetSearch(ctx, line)
		return false, nil
	}

	name, arg, _ := strings.Cut(strings.TrimPrefix(line, ":"), " ")
	arg = strings.TrimSpace(arg)
	switch name {
	case "q", "quit", "exit":
		return true, nil
	case "h", "help":
		con.printf("%s\n", browseHelp)
	case "genres":
		s := b.State()
		var sb strings.Builder
		tw := newTable(&sb)
		for _, g := range s.Genres {
			fmt.Fprintf(tw, "%d\t%s\n", g.ID, g.Name)
		}
		_ = tw.Flush()
		con.printf("%s", sb.String())
	case "platforms":
		s := b.State()
		var sb strings.Builder
		tw := newTable(&sb)
		for _, g := range s.Groups {
			fmt.Fprintf(tw, "%s\t%s\t%d platform(s)\n", g.GroupKey, g.DisplayName, len(g.Platforms))
		}
		_ = tw.Flush()
		con.printf("%s", sb.String())
	case "genre":
		id, err := strconv.Atoi(arg)
		if err != nil || id <= 0 {
			return false, fmt.Errorf("usage: :genre <id>")
		}
		return false, ignoreRendered(b.SelectGenre(ctx, id))
	case "platform":
		if arg == "" {
			return false, fmt.Errorf("usage: :platform <key>")
		}
		return false, ignoreRendered(b.SelectPlatformGroup(ctx, strings.ToLower(arg)))
	case "clear":
		b.SetSearch(ctx, "")
	case "more":
		if !b.State().HasMore {
			return false, errors.New("no more games")
		}
		return false, ignoreRendered(b.LoadMore(ctx))
	case "retry":
		return false, ignoreRendered(b.Retry(ctx))
	default:
		return false, fmt.Errorf("unknown command %q, type :help", line)
	}
	return false, nil
}

// ignoreRendered drops load errors the console already showed. Errors raised
// before any request is made are returned.
func ignoreRendered(err error) error {
	if errors.Is(err, catalog.ErrUnknownPlatformGroup) {
		return err
	}
	return nil
}
