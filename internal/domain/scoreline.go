package domain

import "fmt"

// Scoreline es la convención de goles asumidos para un partido predicho.
// Los goles son desde el punto de vista del ganador; la derrota es el espejo.
type Scoreline struct {
	WinFor     int `yaml:"win_for"`
	WinAgainst int `yaml:"win_against"`
	DrawGoals  int `yaml:"draw_goals"`
}

// DefaultScoreline: victoria 1-0, empate 1-1, derrota 0-1.
func DefaultScoreline() Scoreline {
	return Scoreline{WinFor: 1, WinAgainst: 0, DrawGoals: 1}
}

// Validate exige goles no negativos y que la victoria sume más GD que el empate.
func (s Scoreline) Validate() error {
	if s.WinFor < 0 || s.WinAgainst < 0 || s.DrawGoals < 0 {
		return fmt.Errorf("domain.Scoreline: negative goals in %+v", s)
	}
	if s.WinFor <= s.WinAgainst {
		return fmt.Errorf("domain.Scoreline: win %d-%d does not beat a draw", s.WinFor, s.WinAgainst)
	}
	return nil
}

// Goals devuelve (gf, ga) para el resultado dado.
func (s Scoreline) Goals(r Result) (gf, ga int) {
	switch r {
	case Win:
		return s.WinFor, s.WinAgainst
	case DrawResult:
		return s.DrawGoals, s.DrawGoals
	}
	return s.WinAgainst, s.WinFor
}
