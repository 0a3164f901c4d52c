package testutil

import (
	"github.com/preston-bernstein/game-catalog-service/internal/domain/games"
	"github.com/preston-bernstein/game-catalog-service/internal/domain/genres"
	"github.com/preston-bernstein/game-catalog-service/internal/domain/platforms"
)

// SampleGame returns a minimal game fixture with the provided id.
func SampleGame(id int) games.Game {
	rating := 88.5
	count := 1200
	return games.Game{
		ID:               id,
		Name:             "Sample Game",
		Cover:            &games.Cover{ID: id * 10, URL: "//images.igdb.com/igdb/image/upload/t_thumb/co1abc.jpg"},
		Rating:           &rating,
		TotalRatingCount: &count,
		Platforms:        []int{6, 48},
	}
}

// SampleGenres returns a small genre list.
func SampleGenres() []genres.Genre {
	return []genres.Genre{
		{ID: 5, Name: "Shooter", Slug: "shooter"},
		{ID: 12, Name: "Role-playing (RPG)", Slug: "role-playing-rpg"},
	}
}

// SampleGroups returns platform groups for playstation and pc.
func SampleGroups() []platforms.Group {
	return platforms.GroupPlatforms([]platforms.Platform{
		{ID: 48, Name: "PlayStation 4", Abbreviation: "PS4"},
		{ID: 6, Name: "PC (Microsoft Windows)", Abbreviation: "PC"},
	})
}
