package breedsnp

// GenerationReport describes one completed generation. Index 0 is the
// founder cohort.
type GenerationReport struct {
	Index            int
	Label            string
	Couples          int
	Size             int
	Males            int
	Females          int
	MeanMAF          float64
	MeanMateDistance float64
	Frequencies      []SNPFrequency
}

func NewGenerationReport(index int, label string, t *GenotypeTable, couples int, mateDistance float64) *GenerationReport {
	males, females := t.SexCounts()
	freqs := AlleleFrequencies(t)
	return &GenerationReport{
		Index:            index,
		Label:            label,
		Couples:          couples,
		Size:             t.Len(),
		Males:            males,
		Females:          females,
		MeanMAF:          MeanMAF(freqs),
		MeanMateDistance: mateDistance,
		Frequencies:      freqs,
	}
}
