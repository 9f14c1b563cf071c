package domain

import "fmt"

// QualifyingPlaces es el último puesto global que da plaza de Champions.
const QualifyingPlaces = 5

// Qualification es el veredicto derivado de una tabla ordenada.
// Solo es definitivo cuando todos los partidos están resueltos.
type Qualification struct {
	Rows      []StandingsRow
	Final     bool
	Resolved  int
	Total     int
	MissesOut Club // club en el puesto global 6
}

// Verdict marca los puestos 1-3 de la tabla (globales 3-5) como clasificados
// y el 4º (global 6) como el que se queda fuera.
func Verdict(rows []StandingsRow, fixtures []Fixture) Qualification {
	q := Qualification{
		Rows:     rows,
		Resolved: CountResolved(fixtures),
		Total:    len(fixtures),
	}
	q.Final = q.Resolved == q.Total
	for _, r := range rows {
		if !r.Qualifies {
			q.MissesOut = r.Club
		}
	}
	return q
}

// Qualified devuelve los clubes en plaza de Champions, en orden.
func (q Qualification) Qualified() []Club {
	out := make([]Club, 0, len(q.Rows))
	for _, r := range q.Rows {
		if r.Qualifies {
			out = append(out, r.Club)
		}
	}
	return out
}

// Provisional es lo contrario de Final.
func (q Qualification) Provisional() bool {
	return !q.Final
}

// Status devuelve la etiqueta para la consola.
func (q Qualification) Status() string {
	if q.Final {
		return "FINAL"
	}
	return fmt.Sprintf("PROVISIONAL (%d/%d predicted)", q.Resolved, q.Total)
}
