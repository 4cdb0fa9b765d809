package workload

import (
	"math/rand"
	"os"

	"github.com/cockroachdb/errors"
	"sigs.k8s.io/yaml"
)

// Pattern selects the order in which generated keys arrive.
type Pattern string

const (
	Ascending  Pattern = "ascending"
	Descending Pattern = "descending"
	Random     Pattern = "random"
	// Zigzag alternates between the low and high ends of the key range,
	// driving both left- and right-leaning rotation chains.
	Zigzag Pattern = "zigzag"
	// Sawtooth repeats short ascending runs, so keys recur as duplicates.
	Sawtooth Pattern = "sawtooth"
)

const (
	defaultCount    = 1000
	defaultSeed     = 1
	sawtoothPeriod  = 64
	randomKeyFactor = 4
)

// Spec describes a generated workload. It loads from YAML or JSON.
type Spec struct {
	Pattern Pattern `json:"pattern"`
	// Count is the number of keys inserted. Zero is an empty workload;
	// LoadSpec defaults it to 1000 only when the file leaves it out.
	Count int   `json:"count"`
	Seed  int64 `json:"seed"`
	// EraseRatio is the fraction of inserted keys erased afterwards, in
	// a seeded random order.
	EraseRatio float64 `json:"eraseRatio"`
	// VerifyEvery runs a full invariant check after every N mutations.
	VerifyEvery int `json:"verifyEvery"`
}

// LoadSpec reads a Spec from a YAML or JSON file and applies defaults.
func LoadSpec(path string) (Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Spec{}, errors.Wrap(err, "read workload spec")
	}
	s := Spec{Count: defaultCount}
	if err := yaml.UnmarshalStrict(data, &s); err != nil {
		return Spec{}, errors.Wrapf(err, "parse workload spec %s", path)
	}
	s = s.WithDefaults()
	if err := s.Validate(); err != nil {
		return Spec{}, errors.Wrapf(err, "workload spec %s", path)
	}
	return s, nil
}

// WithDefaults fills a zero Pattern and Seed. Count is left alone.
func (s Spec) WithDefaults() Spec {
	if s.Pattern == "" {
		s.Pattern = Random
	}
	if s.Seed == 0 {
		s.Seed = defaultSeed
	}
	return s
}

func (s Spec) Validate() error {
	switch s.Pattern {
	case Ascending, Descending, Random, Zigzag, Sawtooth:
	default:
		return errors.Newf("unknown pattern %q", s.Pattern)
	}
	if s.Count < 0 {
		return errors.Newf("count %d is negative", s.Count)
	}
	if s.EraseRatio < 0 || s.EraseRatio > 1 {
		return errors.Newf("eraseRatio %v outside [0, 1]", s.EraseRatio)
	}
	if s.VerifyEvery < 0 {
		return errors.Newf("verifyEvery %d is negative", s.VerifyEvery)
	}
	return nil
}

// Keys returns the insertion order for s.
func (s Spec) Keys() []int64 {
	n := s.Count
	keys := make([]int64, n)
	switch s.Pattern {
	case Ascending:
		for i := range keys {
			keys[i] = int64(i)
		}
	case Descending:
		for i := range keys {
			keys[i] = int64(n - 1 - i)
		}
	case Zigzag:
		for i := range keys {
			if i%2 == 0 {
				keys[i] = int64(i / 2)
			} else {
				keys[i] = int64(n - 1 - i/2)
			}
		}
	case Sawtooth:
		for i := range keys {
			keys[i] = int64(i % sawtoothPeriod)
		}
	default:
		rng := rand.New(rand.NewSource(s.Seed))
		span := int64(n)*randomKeyFactor + 1
		for i := range keys {
			keys[i] = rng.Int63n(span)
		}
	}
	return keys
}

// Generate expands s into ops: one insert per key, then an erase for
// EraseRatio of them in seeded random order, then a verify and an export.
func (s Spec) Generate() ([]Op, error) {
	s = s.WithDefaults()
	if err := s.Validate(); err != nil {
		return nil, err
	}

	keys := s.Keys()
	ops := make([]Op, 0, len(keys)+2)
	for _, k := range keys {
		ops = append(ops, Op{Kind: OpInsert, Keys: []int64{k}})
	}

	if erase := int(float64(len(keys)) * s.EraseRatio); erase > 0 {
		victims := append([]int64(nil), keys...)
		rng := rand.New(rand.NewSource(s.Seed + 1))
		rng.Shuffle(len(victims), func(i, j int) { victims[i], victims[j] = victims[j], victims[i] })
		for _, k := range victims[:erase] {
			ops = append(ops, Op{Kind: OpErase, Keys: []int64{k}})
		}
	}
	ops = append(ops, Op{Kind: OpVerify}, Op{Kind: OpExport})
	return ops, nil
}
