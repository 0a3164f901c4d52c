package catalog

import (
	"slices"

	"github.com/preston-bernstein/game-catalog-service/internal/domain/games"
	"github.com/preston-bernstein/game-catalog-service/internal/domain/genres"
	"github.com/preston-bernstein/game-catalog-service/internal/domain/platforms"
)

// User-facing failure messages. Details go to the log, never to the screen.
const (
	MsgLoadGames = "Failed to load games."
	MsgLoadData  = "Failed to load data."
)

// Filter is the active selection. At most one genre and one platform group are selected.
type Filter struct {
	GenreID       *int
	PlatformGroup string
	Search        string
}

// State is a snapshot of everything the listing screen renders.
// Offset is the offset of the most recently loaded page.
type State struct {
	Genres      []genres.Genre
	Groups      []platforms.Group
	Games       []games.Game
	Filter      Filter
	Offset      int
	Limit       int
	HasMore     bool
	Loading     bool
	LoadingMore bool
	Err         string
}

func (s State) clone() State {
	out := s
	out.Genres = slices.Clone(s.Genres)
	out.Groups = slices.Clone(s.Groups)
	out.Games = slices.Clone(s.Games)
	if s.Filter.GenreID != nil {
		id := *s.Filter.GenreID
		out.Filter.GenreID = &id
	}
	return out
}
