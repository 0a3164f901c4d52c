package igdb

import (
	"github.com/samber/lo"

	"github.com/preston-bernstein/game-catalog-service/internal/domain/games"
	"github.com/preston-bernstein/game-catalog-service/internal/domain/genres"
	"github.com/preston-bernstein/game-catalog-service/internal/domain/platforms"
)

func mapGenre(g genreResponse) genres.Genre {
	return genres.Genre{ID: g.ID, Name: g.Name, Slug: g.Slug}
}

func mapPlatform(p platformResponse) platforms.Platform {
	return platforms.Platform{
		ID:              p.ID,
		Name:            p.Name,
		Abbreviation:    p.Abbreviation,
		AlternativeName: p.AlternativeName,
		PlatformType:    p.PlatformType,
	}
}

func mapGame(g gameResponse) games.Game {
	out := games.Game{
		ID:               g.ID,
		Name:             g.Name,
		Rating:           g.Rating,
		Platforms:        g.Platforms,
		GameType:         g.GameType,
		TotalRating:      g.TotalRating,
		TotalRatingCount: g.TotalRatingCount,
		Storyline:        g.Storyline,
		Summary:          g.Summary,
		Genres:           g.Genres,
	}
	if g.Cover != nil {
		out.Cover = &games.Cover{ID: g.Cover.ID, URL: g.Cover.URL}
	}
	if len(g.MultiplayerModes) > 0 {
		out.MultiplayerModes = lo.Map(g.MultiplayerModes, func(m multiplayerModeResponse, _ int) games.MultiplayerMode {
			return games.MultiplayerMode{
				ID:                m.ID,
				Platform:          m.Platform,
				CampaignCoop:      m.CampaignCoop,
				DropIn:            m.DropIn,
				LANCoop:           m.LANCoop,
				OfflineCoop:       m.OfflineCoop,
				OfflineCoopMax:    m.OfflineCoopMax,
				OfflineMax:        m.OfflineMax,
				OnlineCoop:        m.OnlineCoop,
				OnlineCoopMax:     m.OnlineCoopMax,
				OnlineMax:         m.OnlineMax,
				SplitScreen:       m.SplitScreen,
				SplitScreenOnline: m.SplitScreenOnline,
			}
		})
	}
	return out
}
