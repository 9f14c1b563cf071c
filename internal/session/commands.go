package session

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/alejandrodnm/top5sim/internal/domain"
)

// Event es una acción del usuario sobre la sesión.
type Event interface {
	isEvent()
}

// Pick fija (o borra, con Unresolved) la predicción de un partido.
type Pick struct {
	FixtureID int
	Outcome   domain.Outcome
}

// SimulateWeek rellena al azar los partidos sin predicción de una jornada.
type SimulateWeek struct {
	Matchweek int
}

// SimulateAll rellena al azar todos los partidos sin predicción.
type SimulateAll struct{}

// Reset borra todas las predicciones.
type Reset struct{}

// ShowWeek muestra los partidos de una jornada.
type ShowWeek struct {
	Matchweek int
}

// ShowTable vuelve a mostrar la tabla.
type ShowTable struct{}

// Explain muestra la explicación de las reglas.
type Explain struct{}

// Help muestra los comandos.
type Help struct{}

// Quit termina la sesión.
type Quit struct{}

func (Pick) isEvent()         {}
func (SimulateWeek) isEvent() {}
func (SimulateAll) isEvent()  {}
func (Reset) isEvent()        {}
func (ShowWeek) isEvent()     {}
func (ShowTable) isEvent()    {}
func (Explain) isEvent()      {}
func (Help) isEvent()         {}
func (Quit) isEvent()         {}

// ErrUnknownCommand se devuelve para cualquier línea que no se reconoce.
var ErrUnknownCommand = errors.New("unknown command")

// ParseCommand traduce una línea de la consola a un Event.
// Una línea vacía devuelve (nil, nil).
//
//	pick 12 h | 12 h     predicción del partido 12 (h/d/a)
//	clear 12             borra la predicción del partido 12
//	week 30              muestra la jornada 30
//	sim 30 | sim all     simula la jornada 30 o todo lo pendiente
//	reset | table | explain | help | quit
func ParseCommand(line string) (Event, error) {
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 {
		return nil, nil
	}

	cmd, args := fields[0], fields[1:]

	// "12 h" es un atajo de "pick 12 h".
	if _, err := strconv.Atoi(cmd); err == nil {
		cmd, args = "pick", fields
	}

	switch cmd {
	case "pick", "p":
		if len(args) != 2 {
			return nil, fmt.Errorf("session.ParseCommand: usage: pick <fixture> <h|d|a>: %w", ErrUnknownCommand)
		}
		id, err := parseInt(args[0], "fixture")
		if err != nil {
			return nil, err
		}
		o, err := domain.ParseOutcome(args[1])
		if err != nil {
			return nil, fmt.Errorf("session.ParseCommand: %v: %w", err, ErrUnknownCommand)
		}
		return Pick{FixtureID: id, Outcome: o}, nil

	case "clear", "c":
		if len(args) != 1 {
			return nil, fmt.Errorf("session.ParseCommand: usage: clear <fixture>: %w", ErrUnknownCommand)
		}
		id, err := parseInt(args[0], "fixture")
		if err != nil {
			return nil, err
		}
		return Pick{FixtureID: id, Outcome: domain.Unresolved}, nil

	case "week", "w", "mw":
		if len(args) != 1 {
			return nil, fmt.Errorf("session.ParseCommand: usage: week <matchweek>: %w", ErrUnknownCommand)
		}
		mw, err := parseInt(args[0], "matchweek")
		if err != nil {
			return nil, err
		}
		return ShowWeek{Matchweek: mw}, nil

	case "sim", "simulate", "s":
		if len(args) == 0 || (len(args) == 1 && args[0] == "all") {
			return SimulateAll{}, nil
		}
		if args[0] == "week" {
			args = args[1:]
		}
		if len(args) != 1 {
			return nil, fmt.Errorf("session.ParseCommand: usage: sim <matchweek|all>: %w", ErrUnknownCommand)
		}
		mw, err := parseInt(args[0], "matchweek")
		if err != nil {
			return nil, err
		}
		return SimulateWeek{Matchweek: mw}, nil

	case "reset":
		return Reset{}, nil
	case "table", "t":
		return ShowTable{}, nil
	case "explain", "rules", "?":
		return Explain{}, nil
	case "help":
		return Help{}, nil
	case "quit", "exit", "q":
		return Quit{}, nil
	}
	return nil, fmt.Errorf("session.ParseCommand: %q: %w", cmd, ErrUnknownCommand)
}

func parseInt(s, what string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("session.ParseCommand: %s %q is not a number: %w", what, s, ErrUnknownCommand)
	}
	return n, nil
}
