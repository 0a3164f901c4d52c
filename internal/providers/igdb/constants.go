package igdb

const (
	providerName   = "igdb"
	defaultBaseURL = "https://api.igdb.com/v4"
	maxErrorBody   = 512

	genresLimit    = 50
	platformsLimit = 300
	gameSort       = "total_rating_count desc"
)

var (
	genreFields    = []string{"name", "slug"}
	platformFields = []string{"name", "abbreviation", "alternative_name", "platform_type"}
	listFields     = []string{"name", "cover.url", "rating", "total_rating_count", "game_type", "platforms"}
	detailFields   = []string{
		"name", "cover.url", "rating", "total_rating", "total_rating_count",
		"storyline", "summary", "genres", "platforms", "multiplayer_modes.*",
	}
)
