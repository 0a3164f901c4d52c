package fixture

import (
	"github.com/preston-bernstein/game-catalog-service/internal/domain/games"
	"github.com/preston-bernstein/game-catalog-service/internal/domain/genres"
	"github.com/preston-bernstein/game-catalog-service/internal/domain/platforms"
)

func sampleGenres() []genres.Genre {
	return []genres.Genre{
		{ID: 4, Name: "Fighting", Slug: "fighting"},
		{ID: 5, Name: "Shooter", Slug: "shooter"},
		{ID: 8, Name: "Platform", Slug: "platform"},
		{ID: 12, Name: "Role-playing (RPG)", Slug: "role-playing-rpg"},
		{ID: 31, Name: "Adventure", Slug: "adventure"},
	}
}

func samplePlatforms() []platforms.Platform {
	return []platforms.Platform{
		{ID: 6, Name: "PC (Microsoft Windows)", Abbreviation: "PC"},
		{ID: 48, Name: "PlayStation 4", Abbreviation: "PS4"},
		{ID: 167, Name: "PlayStation 5", Abbreviation: "PS5"},
		{ID: 49, Name: "Xbox One", Abbreviation: "XONE"},
		{ID: 130, Name: "Nintendo Switch", Abbreviation: "Switch"},
		{ID: 34, Name: "Android", Abbreviation: "Android"},
	}
}

func sampleGames() []games.Game {
	return []games.Game{
		game(1942, "The Witcher 3: Wild Hunt", "co1wyy", 93.4, 3510, []int{12, 31}, []int{6, 48, 49, 130, 167},
			"An open world role-playing game following Geralt of Rivia."),
		game(1020, "Grand Theft Auto V", "co2lbd", 89.8, 4120, []int{5, 31}, []int{6, 48, 49, 167},
			"A sprawling crime story set in Los Santos."),
		game(472, "The Elder Scrolls V: Skyrim", "co1tnw", 87.9, 3300, []int{12, 31}, []int{6, 48, 49, 130},
			"An open world fantasy adventure in the province of Skyrim."),
		game(7346, "The Legend of Zelda: Breath of the Wild", "co3p2d", 96.2, 2890, []int{8, 31}, []int{130},
			"Link wakes after a hundred years to a ruined Hyrule."),
		game(119133, "Elden Ring", "co4jni", 94.0, 2450, []int{12, 31}, []int{6, 48, 49, 167},
			"A fantasy action role-playing game set in the Lands Between."),
		game(1877, "Cyberpunk 2077", "co2mjs", 78.1, 2100, []int{5, 12}, []int{6, 48, 49, 167},
			"An open world action adventure set in Night City."),
		game(1025, "Street Fighter V", "co1r7h", 74.5, 640, []int{4}, []int{6, 48},
			"Head-to-head fighting with a returning cast of world warriors."),
		game(25076, "Stardew Valley", "co5uds", 90.3, 1500, []int{12}, []int{6, 48, 49, 130, 34},
			"A farming life sim in Pelican Town."),
	}
}

func game(id int, name, coverID string, rating float64, count int, genreIDs, platformIDs []int, summary string) games.Game {
	return games.Game{
		ID:               id,
		Name:             name,
		Cover:            &games.Cover{ID: id, URL: "//images.igdb.com/igdb/image/upload/t_thumb/" + coverID + ".jpg"},
		Rating:           &rating,
		TotalRating:      &rating,
		TotalRatingCount: &count,
		Genres:           genreIDs,
		Platforms:        platformIDs,
		Summary:          summary,
	}
}
