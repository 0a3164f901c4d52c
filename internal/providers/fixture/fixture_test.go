package fixture

import (
	"context"
	"errors"
	"testing"

	"github.com/preston-bernstein/game-catalog-service/internal/providers"
)

func TestFetchGamesSortedByRatingCount(t *testing.T) {
	p := New()

	got, err := p.FetchGames(context.Background(), providers.GameQuery{})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(got) != len(p.games) {
		t.Fatalf("expected all %d games, got %d", len(p.games), len(got))
	}
	for i := 1; i < len(got); i++ {
		if *got[i-1].TotalRatingCount < *got[i].TotalRatingCount {
			t.Fatalf("games not sorted by rating count at %d", i)
		}
	}
	if got[0].Name != "Grand Theft Auto V" {
		t.Fatalf("expected most rated first, got %s", got[0].Name)
	}
}

func TestFetchGamesAppliesEveryFilter(t *testing.T) {
	p := New()
	rpg := 12

	got, err := p.FetchGames(context.Background(), providers.GameQuery{
		GenreID:     &rpg,
		PlatformIDs: []int{130},
		Search:      "SKY",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].ID != 472 {
		t.Fatalf("expected only Skyrim, got %+v", got)
	}
}

func TestFetchGamesPaginates(t *testing.T) {
	p := New()

	first, _ := p.FetchGames(context.Background(), providers.GameQuery{Limit: 3})
	second, _ := p.FetchGames(context.Background(), providers.GameQuery{Limit: 3, Offset: 3})
	past, _ := p.FetchGames(context.Background(), providers.GameQuery{Limit: 3, Offset: 100})

	if len(first) != 3 || len(second) != 3 {
		t.Fatalf("expected full pages, got %d and %d", len(first), len(second))
	}
	if first[2].ID == second[0].ID {
		t.Fatalf("pages overlap")
	}
	if past == nil || len(past) != 0 {
		t.Fatalf("expected empty page past the end, got %#v", past)
	}
}

func TestFetchPlatformsGroups(t *testing.T) {
	groups, err := New().FetchPlatforms(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	keys := make([]string, 0, len(groups))
	for _, g := range groups {
		keys = append(keys, g.GroupKey)
	}
	want := []string{"playstation", "xbox", "nintendo", "pc", "mobile"}
	if len(keys) != len(want) {
		t.Fatalf("expected %v, got %v", want, keys)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, keys)
		}
	}
}

func TestFetchGame(t *testing.T) {
	p := New()
	g, err := p.FetchGame(context.Background(), 7346)
	if err != nil || g.Summary == "" {
		t.Fatalf("expected detail, got %+v err %v", g, err)
	}
	if _, err := p.FetchGame(context.Background(), -1); !errors.Is(err, providers.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestFetchGenresReturnsCopy(t *testing.T) {
	p := New()
	got, _ := p.FetchGenres(context.Background())
	got[0].Name = "changed"
	again, _ := p.FetchGenres(context.Background())
	if again[0].Name == "changed" {
		t.Fatal("expected genres to be copied")
	}
}

func TestProviderSatisfiesInterface(t *testing.T) {
	var _ providers.CatalogProvider = New()
}
