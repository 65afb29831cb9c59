package breedsnp

import "math/rand"

// AssignSex overwrites the sex of every individual with an independent fair
// draw between male and female. Simulated founder cohorts are usually
// single-sex, so this runs once before the first round.
func AssignSex(t *GenotypeTable, rng *rand.Rand) {
	if t == nil {
		return
	}
	for _, in := range t.Individuals {
		in.Sex = randomSex(rng)
	}
}

func randomSex(rng *rand.Rand) Sex {
	return Sex(1 + rng.Intn(2))
}
