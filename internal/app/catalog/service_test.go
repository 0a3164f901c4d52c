package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/preston-bernstein/game-catalog-service/internal/domain/games"
	"github.com/preston-bernstein/game-catalog-service/internal/providers"
	"github.com/preston-bernstein/game-catalog-service/internal/testutil"
	"github.com/preston-bernstein/game-catalog-service/internal/teststubs"
)

func newStub() *teststubs.StubProvider {
	return &teststubs.StubProvider{
		Genres: testutil.SampleGenres(),
		Groups: testutil.SampleGroups(),
		Games:  teststubs.GamesN(1, 3),
	}
}

func TestRefreshLoadsReferenceData(t *testing.T) {
	stub := newStub()
	svc := NewService(stub)
	fixed := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	svc.now = testutil.NowAt(fixed)

	if svc.Ready() {
		t.Fatal("expected not ready before first refresh")
	}
	n, err := svc.Refresh(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 4 {
		t.Fatalf("expected 4 items, got %d", n)
	}
	ref, _ := svc.Reference(context.Background())
	if !ref.LoadedAt.Equal(fixed) || len(ref.Genres) != 2 || len(ref.Groups) != 2 {
		t.Fatalf("unexpected reference %+v", ref)
	}
	if !svc.Ready() {
		t.Fatal("expected ready after refresh")
	}
}

func TestRefreshFailureKeepsPreviousSnapshot(t *testing.T) {
	stub := newStub()
	svc := NewService(stub)
	_, _ = svc.Refresh(context.Background())

	stub.GenresErr = errors.New("upstream 500")
	if _, err := svc.Refresh(context.Background()); !errors.Is(err, stub.GenresErr) {
		t.Fatalf("expected refresh error, got %v", err)
	}
	genres, err := svc.Genres(context.Background())
	if err != nil || len(genres) != 2 {
		t.Fatalf("expected previous genres kept, got %v err %v", genres, err)
	}
}

func TestGenresLoadsLazily(t *testing.T) {
	stub := newStub()
	svc := NewService(stub)

	if _, err := svc.Genres(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.Groups(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stub.GenreCalls.Load() != 1 || stub.PlatformCalls.Load() != 1 {
		t.Fatalf("expected a single lazy load, got %d/%d", stub.GenreCalls.Load(), stub.PlatformCalls.Load())
	}
}

func TestListGamesResolvesPlatformGroup(t *testing.T) {
	stub := newStub()
	svc := NewService(stub, WithPageSize(3))
	genre := 5

	page, err := svc.ListGames(context.Background(), ListRequest{GenreID: &genre, PlatformGroup: "pc", Search: "doom", Offset: 6})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	q, _ := stub.LastQuery()
	if len(q.PlatformIDs) != 4 || q.PlatformIDs[0] != 6 || *q.GenreID != 5 || q.Search != "doom" {
		t.Fatalf("unexpected upstream query %+v", q)
	}
	if q.Limit != 3 || q.Offset != 6 {
		t.Fatalf("unexpected paging %+v", q)
	}
	if len(page.Games) != 3 || !page.HasMore || page.Offset != 6 || page.Limit != 3 {
		t.Fatalf("unexpected page %+v", page)
	}
}

func TestListGamesUnknownGroup(t *testing.T) {
	svc := NewService(newStub())
	if _, err := svc.ListGames(context.Background(), ListRequest{PlatformGroup: "amiga"}); !errors.Is(err, ErrUnknownPlatformGroup) {
		t.Fatalf("expected ErrUnknownPlatformGroup, got %v", err)
	}
}

func TestListGamesClampsLimitAndOffset(t *testing.T) {
	stub := newStub()
	svc := NewService(stub)

	page, err := svc.ListGames(context.Background(), ListRequest{Limit: 10_000, Offset: -3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	q, _ := stub.LastQuery()
	if q.Limit != MaxPageSize || q.Offset != 0 {
		t.Fatalf("expected clamped query, got %+v", q)
	}
	if page.HasMore {
		t.Fatalf("expected short page to have no more")
	}
}

func TestListGamesPropagatesProviderError(t *testing.T) {
	stub := newStub()
	stub.GamesErr = &providers.StatusError{Provider: "igdb", Resource: "games", StatusCode: 500}
	svc := NewService(stub)

	if _, err := svc.ListGames(context.Background(), ListRequest{}); err == nil {
		t.Fatal("expected error")
	}
}

func TestGameDetailIsCached(t *testing.T) {
	stub := newStub()
	stub.Game = &games.Game{ID: 42, Name: "Hitchhiker"}
	svc := NewService(stub, WithGameCache(8, time.Minute))

	for i := 0; i < 3; i++ {
		g, err := svc.Game(context.Background(), 42)
		if err != nil || g.Name != "Hitchhiker" {
			t.Fatalf("unexpected game %+v err %v", g, err)
		}
	}
	if stub.GameCalls.Load() != 1 {
		t.Fatalf("expected one upstream call, got %d", stub.GameCalls.Load())
	}

	svc.Forget()
	_, _ = svc.Game(context.Background(), 42)
	if stub.GameCalls.Load() != 2 {
		t.Fatalf("expected refetch after Forget, got %d", stub.GameCalls.Load())
	}

	if _, err := svc.Game(context.Background(), 7); !errors.Is(err, providers.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
