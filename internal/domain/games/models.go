package games

import "strings"

// Cover is the cover art reference attached to a game.
type Cover struct {
	ID  int    `json:"id"`
	URL string `json:"url"`
}

// MultiplayerMode describes multiplayer capabilities reported for a game.
type MultiplayerMode struct {
	ID                int  `json:"id"`
	Platform          int  `json:"platform,omitempty"`
	CampaignCoop      bool `json:"campaignCoop"`
	DropIn            bool `json:"dropIn"`
	LANCoop           bool `json:"lanCoop"`
	OfflineCoop       bool `json:"offlineCoop"`
	OfflineCoopMax    int  `json:"offlineCoopMax,omitempty"`
	OfflineMax        int  `json:"offlineMax,omitempty"`
	OnlineCoop        bool `json:"onlineCoop"`
	OnlineCoopMax     int  `json:"onlineCoopMax,omitempty"`
	OnlineMax         int  `json:"onlineMax,omitempty"`
	SplitScreen       bool `json:"splitScreen"`
	SplitScreenOnline bool `json:"splitScreenOnline"`
}

// Game is the canonical game shape exposed by the service.
// Optional fields are only populated when the query variant requested them.
type Game struct {
	ID               int               `json:"id"`
	Name             string            `json:"name"`
	Cover            *Cover            `json:"cover,omitempty"`
	Rating           *float64          `json:"rating,omitempty"`
	Platforms        []int             `json:"platforms,omitempty"`
	GameType         *int              `json:"gameType,omitempty"`
	TotalRating      *float64          `json:"totalRating,omitempty"`
	TotalRatingCount *int              `json:"totalRatingCount,omitempty"`
	Storyline        string            `json:"storyline,omitempty"`
	Summary          string            `json:"summary,omitempty"`
	Genres           []int             `json:"genres,omitempty"`
	MultiplayerModes []MultiplayerMode `json:"multiplayerModes,omitempty"`
}

// Page is one offset/limit slice of a game listing.
type Page struct {
	Games   []Game `json:"games"`
	Offset  int    `json:"offset"`
	Limit   int    `json:"limit"`
	HasMore bool   `json:"hasMore"`
}

// NewPage builds a Page. HasMore is true only when the page came back full.
func NewPage(games []Game, offset, limit int) Page {
	if games == nil {
		games = []Game{}
	}
	return Page{
		Games:   games,
		Offset:  offset,
		Limit:   limit,
		HasMore: HasMore(len(games), limit),
	}
}

// HasMore reports whether another page may exist after one of size received.
// A short page means the listing is exhausted; a full page may be followed by an empty one.
func HasMore(received, limit int) bool {
	return limit > 0 && received >= limit
}

// Cover image size presets understood by the image CDN.
const (
	CoverThumb = "thumb"
	CoverBig   = "cover_big"
	Cover720p  = "720p"
)

// CoverURL returns an absolute https URL for the cover at the given size preset.
func (g Game) CoverURL(size string) string {
	if g.Cover == nil || g.Cover.URL == "" {
		return ""
	}
	url := g.Cover.URL
	if size != "" && size != CoverThumb {
		url = strings.Replace(url, "t_"+CoverThumb, "t_"+size, 1)
	}
	if strings.HasPrefix(url, "//") {
		url = "https:" + url
	}
	return url
}
