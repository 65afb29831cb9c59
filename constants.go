package breedsnp

import (
	"errors"
	"math/rand"
	"time"
)

// Sex is the PED sex code of an individual.
type Sex int

const (
	Unknown Sex = 0
	Male    Sex = 1
	Female  Sex = 2
)

func (s Sex) String() string {
	switch s {
	case Male:
		return "male"
	case Female:
		return "female"
	}
	return "unknown"
}

const (
	// MetaColumns is the number of identity columns preceding the alleles in
	// a PED row.
	MetaColumns = 6

	FounderParentID   = "0"
	StatusPlaceholder = "N"
	OffspringPrefix   = "offSpring"
	MissingAllele     = "0"
	DefaultGenTag     = "G"
)

var (
	ErrMalformedTable = errors.New("malformed genotype table")
	ErrUnknownParent  = errors.New("unknown parent identifier")
	ErrInvalidConfig  = errors.New("invalid configuration")
	ErrNoRandSource   = errors.New("random source is required")
)

// NewRand returns a random source for the given seed. A seed of 0 uses the
// current time (non-deterministic); any other seed gives reproducible runs.
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// coupleRand derives the independent stream used for one couple of a round.
func coupleRand(roundSeed int64, couple int) *rand.Rand {
	return rand.New(rand.NewSource(roundSeed + int64(couple)))
}
