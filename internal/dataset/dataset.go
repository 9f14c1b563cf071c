// Package dataset carga y escribe los datos horneados de la temporada.
//
// El snapshot por defecto va embebido en el binario (season.yaml), así que el
// modo interactivo nunca hace fetch externo. `simulator -refresh` regenera el
// fichero desde football-data.org.
package dataset

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"sort"

	"github.com/alejandrodnm/top5sim/internal/domain"
	"gopkg.in/yaml.v3"
)

//go:embed season.yaml
var baked []byte

const header = "# Datos horneados de football-data.org. Regenerar con: simulator -refresh\n"

// Baked devuelve el dataset embebido, validado.
func Baked() (domain.Dataset, error) {
	d, err := Parse(baked)
	if err != nil {
		return domain.Dataset{}, fmt.Errorf("dataset.Baked: %w", err)
	}
	return d, nil
}

// Load lee el dataset de path. Si path está vacío devuelve el embebido.
func Load(path string) (domain.Dataset, error) {
	if path == "" {
		return Baked()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Dataset{}, fmt.Errorf("dataset.Load: read %q: %w", path, err)
	}
	d, err := Parse(data)
	if err != nil {
		return domain.Dataset{}, fmt.Errorf("dataset.Load: %q: %w", path, err)
	}
	return d, nil
}

// Parse decodifica y valida un dataset YAML. Los partidos quedan ordenados por
// jornada, fecha e id; todos empiezan sin resolver.
func Parse(data []byte) (domain.Dataset, error) {
	var d domain.Dataset
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&d); err != nil {
		return domain.Dataset{}, fmt.Errorf("parse YAML: %w", err)
	}

	for i := range d.Fixtures {
		d.Fixtures[i].Outcome = domain.Unresolved
		if d.Fixtures[i].Probabilities.IsZero() {
			d.Fixtures[i].Probabilities = domain.DefaultProbabilities
		}
	}
	SortFixtures(d.Fixtures)

	if err := d.Validate(); err != nil {
		return domain.Dataset{}, err
	}
	return d, nil
}

// Marshal serializa el dataset con la cabecera de regeneración.
func Marshal(d domain.Dataset) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(header)
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(d); err != nil {
		return nil, fmt.Errorf("dataset.Marshal: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("dataset.Marshal: close encoder: %w", err)
	}
	return buf.Bytes(), nil
}

// Write valida y escribe el dataset en path.
func Write(path string, d domain.Dataset) error {
	if err := d.Validate(); err != nil {
		return fmt.Errorf("dataset.Write: %w", err)
	}
	data, err := Marshal(d)
	if err != nil {
		return err
	}
	return WriteBytes(path, data)
}

// WriteBytes escribe un dataset ya serializado con Marshal.
func WriteBytes(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("dataset.WriteBytes: write %q: %w", path, err)
	}
	return nil
}

// SortFixtures ordena por jornada, fecha e id.
func SortFixtures(fixtures []domain.Fixture) {
	sort.SliceStable(fixtures, func(i, j int) bool {
		a, b := fixtures[i], fixtures[j]
		if a.Matchweek != b.Matchweek {
			return a.Matchweek < b.Matchweek
		}
		if a.Date != b.Date {
			return a.Date < b.Date
		}
		return a.ID < b.ID
	})
}
