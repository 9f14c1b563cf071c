package domain

// TeamID es el id de equipo de football-data.org.
type TeamID int

// Clubes seguidos por el simulador. Son los únicos con fila en la tabla.
const (
	AstonVilla TeamID = 58
	ManUnited  TeamID = 66
	Chelsea    TeamID = 61
	Liverpool  TeamID = 64
)

// Clubes que se asumen 1º y 2º; ocupan los puestos globales por encima de la tabla.
const (
	Arsenal TeamID = 57
	ManCity TeamID = 65
)

// TrackedClubs es el conjunto fijo de clubes seguidos.
var TrackedClubs = [4]TeamID{AstonVilla, ManUnited, Chelsea, Liverpool}

// ExcludedClubs son los dos clubes que se asumen por encima de la tabla.
var ExcludedClubs = [2]TeamID{Arsenal, ManCity}

// IsTracked devuelve true si el id pertenece a uno de los cuatro clubes seguidos.
func (id TeamID) IsTracked() bool {
	for _, t := range TrackedClubs {
		if t == id {
			return true
		}
	}
	return false
}

// IsExcluded devuelve true para los dos clubes asumidos en el top 2.
func (id TeamID) IsExcluded() bool {
	return id == Arsenal || id == ManCity
}

// Team es cualquier participante de un partido.
type Team struct {
	ID        TeamID `yaml:"id"`
	Name      string `yaml:"name"`
	ShortName string `yaml:"short_name"`
}

// Label devuelve el nombre corto si existe.
func (t Team) Label() string {
	if t.ShortName != "" {
		return t.ShortName
	}
	return t.Name
}

// Club es el snapshot base de un club seguido a la fecha de corte de los datos.
// No se modifica después de cargarse.
type Club struct {
	Team         Team `yaml:"team"`
	Played       int  `yaml:"played"`
	Won          int  `yaml:"won"`
	Drawn        int  `yaml:"drawn"`
	Lost         int  `yaml:"lost"`
	GoalsFor     int  `yaml:"goals_for"`
	GoalsAgainst int  `yaml:"goals_against"`
	Points       int  `yaml:"points"`
}

// GoalDifference devuelve GF - GA del snapshot base.
func (c Club) GoalDifference() int {
	return c.GoalsFor - c.GoalsAgainst
}
