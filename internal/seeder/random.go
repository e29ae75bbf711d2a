package seeder

import (
	"math"
	"math/rand"
	"time"

	"github.com/shopspring/decimal"
)

// Streams carries the two independent pseudo-random sources every stage
// draws from, plus the instant all trailing windows are anchored to.
type Streams struct {
	Rand  *rand.Rand
	Faker *Faker
	Now   time.Time
}

func NewStreams(seed, fakerSeed int64, now time.Time) Streams {
	now = now.UTC().Truncate(time.Second)
	return Streams{
		Rand:  rand.New(rand.NewSource(seed)),
		Faker: NewFaker(fakerSeed, now),
		Now:   now,
	}
}

// intBetween returns an int in [lo, hi], both inclusive.
func intBetween(r *rand.Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + r.Intn(hi-lo+1)
}

func uniform(r *rand.Rand, lo, hi float64) float64 {
	return lo + r.Float64()*(hi-lo)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func money(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(2)
}

type weighted[T any] struct {
	value  T
	weight float64
}

func weightedChoice[T any](r *rand.Rand, choices []weighted[T]) T {
	var total float64
	for _, c := range choices {
		total += c.weight
	}
	x := r.Float64() * total
	for _, c := range choices {
		if x < c.weight {
			return c.value
		}
		x -= c.weight
	}
	return choices[len(choices)-1].value
}
