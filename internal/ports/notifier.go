package ports

import (
	"context"

	"github.com/alejandrodnm/top5sim/internal/domain"
)

// Notifier presenta el estado de la sesión al usuario.
type Notifier interface {
	// NotifyStandings muestra la tabla ordenada con el veredicto (final o provisional).
	// En la implementación de consola, imprime una tabla formateada.
	NotifyStandings(ctx context.Context, q domain.Qualification) error

	// NotifyWeek muestra los partidos de una jornada con su predicción actual.
	NotifyWeek(ctx context.Context, matchweek int, fixtures []domain.Fixture) error

	// NotifyBanner anuncia qué club se queda fuera. Solo se llama con q.Final.
	NotifyBanner(ctx context.Context, q domain.Qualification) error

	// NotifyExplainer muestra la explicación de las reglas del simulador.
	NotifyExplainer(ctx context.Context) error

	// NotifyHelp muestra los comandos disponibles.
	NotifyHelp(ctx context.Context) error

	// NotifyMessage muestra una línea informativa (p. ej. "filled 4 fixtures").
	NotifyMessage(ctx context.Context, msg string) error
}
