package predictions

import (
	"math/rand"
	"time"

	"github.com/alejandrodnm/top5sim/internal/domain"
)

// Picker elige un resultado resuelto para un partido. Nunca devuelve Unresolved.
type Picker interface {
	Pick(f domain.Fixture) domain.Outcome
}

// PickerFunc adapta una función a Picker.
type PickerFunc func(f domain.Fixture) domain.Outcome

// Pick implementa Picker.
func (fn PickerFunc) Pick(f domain.Fixture) domain.Outcome {
	return fn(f)
}

// Fixed devuelve siempre el mismo resultado. Útil en tests.
func Fixed(o domain.Outcome) Picker {
	return PickerFunc(func(domain.Fixture) domain.Outcome { return o })
}

// UniformPicker elige H/D/A con probabilidad 1/3 cada uno.
type UniformPicker struct {
	rng *rand.Rand
}

// NewUniformPicker crea un picker uniforme. seed 0 = semilla por reloj.
func NewUniformPicker(seed int64) *UniformPicker {
	return &UniformPicker{rng: newRand(seed)}
}

// Pick implementa Picker.
func (p *UniformPicker) Pick(domain.Fixture) domain.Outcome {
	return domain.Outcome(p.rng.Intn(3)) + domain.HomeWin
}

// WeightedPicker elige usando las probabilidades 1X2 del partido.
// Sin probabilidades válidas cae a uniforme.
type WeightedPicker struct {
	rng *rand.Rand
}

// NewWeightedPicker crea un picker ponderado. seed 0 = semilla por reloj.
func NewWeightedPicker(seed int64) *WeightedPicker {
	return &WeightedPicker{rng: newRand(seed)}
}

// Pick implementa Picker.
func (p *WeightedPicker) Pick(f domain.Fixture) domain.Outcome {
	probs := f.Probabilities
	if probs.IsZero() || !probs.Valid() {
		return domain.Outcome(p.rng.Intn(3)) + domain.HomeWin
	}
	return weightedOutcome(probs, p.rng.Float64())
}

// weightedOutcome mapea u ∈ [0,1) a un resultado según las probabilidades normalizadas.
func weightedOutcome(probs domain.Probabilities, u float64) domain.Outcome {
	u *= probs.Sum()
	switch {
	case u < probs.Home:
		return domain.HomeWin
	case u < probs.Home+probs.Draw:
		return domain.Draw
	default:
		return domain.AwayWin
	}
}

func newRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}
