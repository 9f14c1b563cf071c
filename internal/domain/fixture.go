package domain

import (
	"fmt"
	"math"
	"strings"
)

// Rango de jornadas que quedan por jugar en el dataset.
const (
	FirstMatchweek = 27
	LastMatchweek  = 38
)

// ValidMatchweek devuelve true si la jornada está dentro del rango simulable.
func ValidMatchweek(mw int) bool {
	return mw >= FirstMatchweek && mw <= LastMatchweek
}

// Outcome es el estado de resolución de un partido.
type Outcome int

const (
	Unresolved Outcome = iota
	HomeWin
	Draw
	AwayWin
)

// Valid devuelve true si el valor es uno de los cuatro estados definidos.
func (o Outcome) Valid() bool {
	return o >= Unresolved && o <= AwayWin
}

// Resolved devuelve true para HomeWin, Draw y AwayWin.
func (o Outcome) Resolved() bool {
	return o == HomeWin || o == Draw || o == AwayWin
}

// String devuelve la forma corta usada en consola.
func (o Outcome) String() string {
	switch o {
	case Unresolved:
		return "-"
	case HomeWin:
		return "H"
	case Draw:
		return "D"
	case AwayWin:
		return "A"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// ParseOutcome acepta la forma corta (h/d/a/-) o larga (home/draw/away/none).
func ParseOutcome(s string) (Outcome, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "h", "1", "home", "homewin":
		return HomeWin, nil
	case "d", "x", "draw":
		return Draw, nil
	case "a", "2", "away", "awaywin":
		return AwayWin, nil
	case "-", "none", "clear", "unresolved":
		return Unresolved, nil
	}
	return Unresolved, fmt.Errorf("domain.ParseOutcome: unknown outcome %q", s)
}

// Probabilities son las probabilidades 1X2 del modelo de Poisson (suman 1.00).
type Probabilities struct {
	Home float64 `yaml:"home"`
	Draw float64 `yaml:"draw"`
	Away float64 `yaml:"away"`
}

// DefaultProbabilities son las que se usan cuando un partido no trae modelo.
var DefaultProbabilities = Probabilities{Home: 0.45, Draw: 0.25, Away: 0.30}

// IsZero devuelve true si el partido no trae probabilidades.
func (p Probabilities) IsZero() bool {
	return p.Home == 0 && p.Draw == 0 && p.Away == 0
}

// Sum devuelve Home + Draw + Away.
func (p Probabilities) Sum() float64 {
	return p.Home + p.Draw + p.Away
}

// Valid exige valores no negativos que sumen 1 (tolerancia de redondeo a 2 decimales).
func (p Probabilities) Valid() bool {
	if p.Home < 0 || p.Draw < 0 || p.Away < 0 {
		return false
	}
	return math.Abs(p.Sum()-1) <= 0.011
}

// Fixture es un partido pendiente con al menos un club seguido.
type Fixture struct {
	ID            int           `yaml:"id"`
	Matchweek     int           `yaml:"matchweek"`
	Date          string        `yaml:"date"`
	Home          Team          `yaml:"home"`
	Away          Team          `yaml:"away"`
	Probabilities Probabilities `yaml:"probabilities"`
	Outcome       Outcome       `yaml:"-"`
}

// Involves devuelve true si el equipo juega el partido.
func (f Fixture) Involves(id TeamID) bool {
	return f.Home.ID == id || f.Away.ID == id
}

// Tracked devuelve true si al menos un participante es un club seguido.
func (f Fixture) Tracked() bool {
	return f.Home.ID.IsTracked() || f.Away.ID.IsTracked()
}

// HeadToHead devuelve true si ambos participantes son clubes seguidos.
func (f Fixture) HeadToHead() bool {
	return f.Home.ID.IsTracked() && f.Away.ID.IsTracked()
}

// Winner devuelve el ganador del partido resuelto. ok=false si está sin resolver o es empate.
func (f Fixture) Winner() (TeamID, bool) {
	switch f.Outcome {
	case HomeWin:
		return f.Home.ID, true
	case AwayWin:
		return f.Away.ID, true
	}
	return 0, false
}

// Result es lo que un partido resuelto aporta a uno de sus participantes.
type Result int

const (
	Loss Result = iota
	DrawResult
	Win
)

// Points devuelve 3/1/0.
func (r Result) Points() int {
	switch r {
	case Win:
		return 3
	case DrawResult:
		return 1
	}
	return 0
}

// ResultFor devuelve el resultado del partido para el equipo dado.
// ok=false si el partido no está resuelto o el equipo no participa.
func (f Fixture) ResultFor(id TeamID) (Result, bool) {
	if !f.Outcome.Resolved() || !f.Involves(id) {
		return Loss, false
	}
	if f.Outcome == Draw {
		return DrawResult, true
	}
	if winner, _ := f.Winner(); winner == id {
		return Win, true
	}
	return Loss, true
}

// Label devuelve "MW30 Liverpool v Chelsea".
func (f Fixture) Label() string {
	return fmt.Sprintf("MW%d %s v %s", f.Matchweek, f.Home.Label(), f.Away.Label())
}

// CountResolved devuelve cuántos partidos tienen Outcome distinto de Unresolved.
func CountResolved(fixtures []Fixture) int {
	n := 0
	for _, f := range fixtures {
		if f.Outcome.Resolved() {
			n++
		}
	}
	return n
}
