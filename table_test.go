package breedsnp

import (
	"errors"
	test "testing"
)

func TestTableShape(t *test.T) {
	table := makeFounders(3, 2, 4)
	if table.Len() != 5 {
		t.Errorf("Len() = %d, expected 5", table.Len())
	}
	if table.SNPCount() != 4 {
		t.Errorf("SNPCount() = %d, expected 4", table.SNPCount())
	}
	if w := table.Individuals[0].Width(); w != MetaColumns+8 {
		t.Errorf("Width() = %d, expected %d", w, MetaColumns+8)
	}
	if err := table.Validate(); err != nil {
		t.Errorf("Validate() failed on a well formed table: %v", err)
	}

	var empty *GenotypeTable
	if empty.Len() != 0 || empty.SNPCount() != 0 || empty.Validate() != nil {
		t.Errorf("nil table should be empty and valid")
	}
}

func TestTableValidate(t *test.T) {
	ragged := makeFounders(2, 2, 3)
	ragged.Individuals[2].Alleles = ragged.Individuals[2].Alleles[:4]
	if err := ragged.Validate(); !errors.Is(err, ErrMalformedTable) {
		t.Errorf("expected ErrMalformedTable for ragged rows, got %v", err)
	}

	odd := makeFounders(1, 0, 2)
	odd.Individuals[0].Alleles = odd.Individuals[0].Alleles[:3]
	if err := odd.Validate(); !errors.Is(err, ErrMalformedTable) {
		t.Errorf("expected ErrMalformedTable for an odd allele count, got %v", err)
	}

	for _, row := range []int{0, 2} {
		holed := makeFounders(2, 2, 1)
		holed.Individuals[row] = nil
		if err := holed.Validate(); !errors.Is(err, ErrMalformedTable) {
			t.Errorf("expected ErrMalformedTable for nil row %d, got %v", row, err)
		}
	}
}

func TestTableLookup(t *test.T) {
	table := makeFounders(2, 2, 1)
	dup := NewFounder("FAM2", "per1", Female, []string{"T", "T"})
	table.Individuals = append(table.Individuals, dup)

	in, ok := table.Find("per1")
	if !ok || in.Family != "FAM1" {
		t.Errorf("Find() should return the first row for a duplicated ID, got %v", in)
	}
	if _, ok := table.Find("nobody"); ok {
		t.Errorf("Find() found an unknown ID")
	}
	if table.Index()["per1"] != in {
		t.Errorf("Index() disagrees with Find()")
	}

	males, females := table.SexCounts()
	if males != 2 || females != 3 {
		t.Errorf("SexCounts() = %d, %d, expected 2, 3", males, females)
	}
	if ids := table.IDsBySex(Male); len(ids) != 2 || ids[0] != "per0" || ids[1] != "per1" {
		t.Errorf("IDsBySex(Male) = %v", ids)
	}
}

func TestTableClone(t *test.T) {
	table := makeFounders(1, 1, 2)
	clone := table.Clone()

	clone.Individuals[0].Alleles[0] = "X"
	clone.Individuals[1].Sex = Male

	if table.Individuals[0].Alleles[0] == "X" {
		t.Errorf("Clone() shares allele storage with the original")
	}
	if table.Individuals[1].Sex != Female {
		t.Errorf("Clone() shares rows with the original")
	}
	if clone.Individuals[0].ID != table.Individuals[0].ID {
		t.Errorf("Clone() lost identity fields")
	}
}
