package ports

import (
	"context"

	"github.com/alejandrodnm/top5sim/internal/domain"
)

// FeedProvider obtiene clasificación y calendario de la Premier League.
type FeedProvider interface {
	// FetchStandings devuelve la clasificación total con la temporada y la jornada actual.
	FetchStandings(ctx context.Context) (domain.LeagueTable, error)

	// FetchMatches devuelve todos los partidos de la temporada, en cualquier estado.
	FetchMatches(ctx context.Context) ([]domain.Match, error)
}
