package notify

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/alejandrodnm/top5sim/internal/domain"
	"github.com/olekukonko/tablewriter"
)

// Console implementa ports.Notifier.
type Console struct {
	out       io.Writer
	scoreline domain.Scoreline
}

// NewConsole crea un notificador que escribe a stdout.
func NewConsole(sl domain.Scoreline) *Console {
	return &Console{out: os.Stdout, scoreline: sl}
}

// NewConsoleWriter crea un notificador para tests.
func NewConsoleWriter(w io.Writer, sl domain.Scoreline) *Console {
	return &Console{out: w, scoreline: sl}
}

// NotifyStandings imprime la tabla de los cuatro clubes y el estado del veredicto.
func (c *Console) NotifyStandings(_ context.Context, q domain.Qualification) error {
	fmt.Fprintf(c.out, "\n[%s] top-5 race: %s\n", time.Now().Format("15:04:05"), q.Status())

	table := tablewriter.NewWriter(c.out)
	table.Header("Pos", "Global", "Club", "P", "W", "D", "L", "GF", "GA", "GD", "Pts", "")

	for _, r := range q.Rows {
		status := "UCL"
		if !r.Qualifies {
			status = "out"
		}
		table.Append(
			fmt.Sprintf("%d", r.Position),
			fmt.Sprintf("%d", r.GlobalRank),
			truncate(r.Name(), 22),
			fmt.Sprintf("%d", r.Played),
			fmt.Sprintf("%d", r.Won),
			fmt.Sprintf("%d", r.Drawn),
			fmt.Sprintf("%d", r.Lost),
			fmt.Sprintf("%d", r.GoalsFor),
			fmt.Sprintf("%d", r.GoalsAgainst),
			signed(r.GoalDifference),
			fmt.Sprintf("%d", r.Points),
			status,
		)
	}

	table.Render()
	fmt.Fprintln(c.out, "  Global = puesto en la Premier con Arsenal y Man City en 1º-2º | UCL = plaza de Champions")
	return nil
}

// NotifyWeek imprime los partidos de una jornada con su predicción actual.
func (c *Console) NotifyWeek(_ context.Context, mw int, fixtures []domain.Fixture) error {
	fmt.Fprintf(c.out, "\n=== MATCHWEEK %d ===\n", mw)

	table := tablewriter.NewWriter(c.out)
	table.Header("#", "Date", "Home", "Away", "Pick", "H", "D", "A")

	for _, f := range fixtures {
		table.Append(
			fmt.Sprintf("%d", f.ID),
			dateLabel(f.Date),
			truncate(f.Home.Label(), 18),
			truncate(f.Away.Label(), 18),
			pickLabel(f),
			fmt.Sprintf("%.0f%%", f.Probabilities.Home*100),
			fmt.Sprintf("%.0f%%", f.Probabilities.Draw*100),
			fmt.Sprintf("%.0f%%", f.Probabilities.Away*100),
		)
	}

	table.Render()
	return nil
}

// NotifyBanner anuncia quién se queda sin Champions. Solo se llama con veredicto final.
func (c *Console) NotifyBanner(_ context.Context, q domain.Qualification) error {
	names := make([]string, 0, len(q.Rows))
	for _, club := range q.Qualified() {
		names = append(names, club.Team.Name)
	}

	fmt.Fprintf(c.out, "\n========================================================\n")
	fmt.Fprintf(c.out, "  FINAL: %s misses out on the Champions League\n", q.MissesOut.Team.Name)
	fmt.Fprintf(c.out, "  Qualified: %s\n", strings.Join(names, ", "))
	fmt.Fprintf(c.out, "========================================================\n\n")
	return nil
}

// NotifyExplainer explica las reglas del simulador.
func (c *Console) NotifyExplainer(_ context.Context) error {
	sl := c.scoreline
	fmt.Fprintln(c.out, "\n=== HOW IT WORKS ===")
	fmt.Fprintln(c.out, "  Arsenal and Man City are assumed to finish 1st and 2nd.")
	fmt.Fprintln(c.out, "  The top 5 qualify for the Champions League, so 3 of these 4 clubs go through.")
	fmt.Fprintln(c.out, "  Pick H (home win), D (draw) or A (away win) for each remaining fixture.")
	fmt.Fprintf(c.out, "  Picked results count as %d-%d for a win and %d-%d for a draw.\n",
		sl.WinFor, sl.WinAgainst, sl.DrawGoals, sl.DrawGoals)
	fmt.Fprintln(c.out, "  Order: points, then goal difference, then head-to-head, then name.")
	fmt.Fprintln(c.out, "  The verdict stays PROVISIONAL until every fixture has a result.")
	fmt.Fprintln(c.out)
	return nil
}

// NotifyHelp imprime los comandos disponibles.
func (c *Console) NotifyHelp(_ context.Context) error {
	fmt.Fprintln(c.out, "\n=== COMMANDS ===")
	fmt.Fprintln(c.out, "  pick <#> <h|d|a>   predict a fixture (shortcut: <#> <h|d|a>)")
	fmt.Fprintln(c.out, "  clear <#>          remove a prediction")
	fmt.Fprintln(c.out, "  week <mw>          list the fixtures of a matchweek (27-38)")
	fmt.Fprintln(c.out, "  sim <mw>           random results for the open fixtures of a matchweek")
	fmt.Fprintln(c.out, "  sim all            random results for every open fixture")
	fmt.Fprintln(c.out, "  reset              clear every prediction")
	fmt.Fprintln(c.out, "  table | explain | help | quit")
	fmt.Fprintln(c.out)
	return nil
}

// NotifyMessage imprime una línea suelta.
func (c *Console) NotifyMessage(_ context.Context, msg string) error {
	fmt.Fprintf(c.out, "  >> %s\n", msg)
	return nil
}

// PrintRefreshReport imprime el resumen de un -refresh.
func (c *Console) PrintRefreshReport(r domain.RefreshReport) {
	fmt.Fprintf(c.out, "\n=== REFRESH %s (season %s, matchday %d) ===\n", shortID(r.RunID), r.Season, r.Matchday)
	fmt.Fprintf(c.out, "  %d fixtures written to %s (MW%d-MW%d), %d excluded\n",
		r.Fixtures, r.Output, r.FirstMW, r.LastMW, r.Excluded)

	table := tablewriter.NewWriter(c.out)
	table.Header("Club", "Played", "Remaining", "Total")
	for _, cs := range r.Clubs {
		total := fmt.Sprintf("%d", cs.Total())
		if cs.Total() > domain.LastMatchweek {
			total += " !"
		}
		table.Append(
			cs.Team.Name,
			fmt.Sprintf("%d", cs.Played),
			fmt.Sprintf("%d", cs.Remaining),
			total,
		)
	}
	table.Render()

	if len(r.Warnings) == 0 {
		fmt.Fprintln(c.out, "  No warnings.")
		return
	}
	fmt.Fprintf(c.out, "\n  --- WARNINGS (%d) ---\n", len(r.Warnings))
	for _, w := range r.Warnings {
		fmt.Fprintf(c.out, "  >> %s\n", w)
	}
	fmt.Fprintln(c.out)
}

// PrintHistory imprime los refrescos archivados, el más reciente primero.
func (c *Console) PrintHistory(runs []domain.RefreshRun) {
	if len(runs) == 0 {
		fmt.Fprintln(c.out, "\n  No refresh runs archived yet. Run -refresh first.")
		return
	}

	table := tablewriter.NewWriter(c.out)
	table.Header("Run", "Fetched", "Season", "MD", "Fixtures", "Excluded", "Warnings")
	for _, run := range runs {
		table.Append(
			shortID(run.ID),
			run.FetchedAt.UTC().Format("2006-01-02 15:04"),
			run.Season,
			fmt.Sprintf("%d", run.Matchday),
			fmt.Sprintf("%d", run.Fixtures),
			fmt.Sprintf("%d", run.Excluded),
			fmt.Sprintf("%d", len(run.Warnings)),
		)
	}
	table.Render()
}

func pickLabel(f domain.Fixture) string {
	switch f.Outcome {
	case domain.HomeWin:
		return "H " + f.Home.Label()
	case domain.AwayWin:
		return "A " + f.Away.Label()
	case domain.Draw:
		return "D"
	}
	return "-"
}

// dateLabel recorta la fecha ISO del feed a "2006-01-02".
func dateLabel(s string) string {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC().Format("2006-01-02")
	}
	if len(s) > 10 {
		return s[:10]
	}
	if s == "" {
		return "TBD"
	}
	return s
}

func signed(n int) string {
	if n > 0 {
		return fmt.Sprintf("+%d", n)
	}
	return fmt.Sprintf("%d", n)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// truncate corta por runas, nunca a mitad de un carácter UTF-8.
func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}
