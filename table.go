package breedsnp

import (
	"fmt"
)

// GenotypeTable is a population snapshot: an ordered set of individuals
// sharing one SNP count.
type GenotypeTable struct {
	Individuals []*Individual
}

func NewGenotypeTable(individuals ...*Individual) *GenotypeTable {
	return &GenotypeTable{Individuals: individuals}
}

func (t *GenotypeTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Individuals)
}

// SNPCount infers K from the first row. An empty table has zero SNPs.
func (t *GenotypeTable) SNPCount() int {
	if t.Len() == 0 {
		return 0
	}
	return t.Individuals[0].SNPCount()
}

// Validate checks that every row has the same width and carries complete
// allele pairs.
func (t *GenotypeTable) Validate() error {
	if t.Len() == 0 {
		return nil
	}
	width := 0
	for i, in := range t.Individuals {
		if in == nil {
			return fmt.Errorf("row %d is nil: %w", i, ErrMalformedTable)
		}
		if i == 0 {
			width = in.Width()
		}
		if len(in.Alleles)%2 != 0 {
			return fmt.Errorf("row %d (%s) has an odd allele count %d: %w", i, in.ID, len(in.Alleles), ErrMalformedTable)
		}
		if in.Width() != width {
			return fmt.Errorf("row %d (%s) has width %d, expected %d: %w", i, in.ID, in.Width(), width, ErrMalformedTable)
		}
	}
	return nil
}

// Find returns the first individual with the given identifier.
func (t *GenotypeTable) Find(id string) (*Individual, bool) {
	if t == nil {
		return nil, false
	}
	for _, in := range t.Individuals {
		if in.ID == id {
			return in, true
		}
	}
	return nil, false
}

// IDsBySex lists identifiers of the given sex in table order.
func (t *GenotypeTable) IDsBySex(sex Sex) []string {
	var ids []string
	if t == nil {
		return ids
	}
	for _, in := range t.Individuals {
		if in.Sex == sex {
			ids = append(ids, in.ID)
		}
	}
	return ids
}

// SexCounts returns the number of males and females.
func (t *GenotypeTable) SexCounts() (males, females int) {
	if t == nil {
		return
	}
	for _, in := range t.Individuals {
		switch in.Sex {
		case Male:
			males++
		case Female:
			females++
		}
	}
	return
}

// Clone deep-copies every row so the copy can be mutated independently.
func (t *GenotypeTable) Clone() *GenotypeTable {
	if t == nil {
		return nil
	}
	rows := make([]*Individual, len(t.Individuals))
	for i, in := range t.Individuals {
		rows[i] = in.Clone()
	}
	return &GenotypeTable{Individuals: rows}
}

// Index maps identifiers to individuals, keeping the first row for a
// duplicated identifier so lookups agree with Find.
func (t *GenotypeTable) Index() map[string]*Individual {
	index := make(map[string]*Individual, t.Len())
	if t == nil {
		return index
	}
	for _, in := range t.Individuals {
		if _, ok := index[in.ID]; !ok {
			index[in.ID] = in
		}
	}
	return index
}
