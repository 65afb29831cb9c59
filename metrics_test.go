package breedsnp

import (
	"errors"
	"math"
	test "testing"
)

func TestAlleleFrequencies(t *test.T) {
	table := NewGenotypeTable(
		NewFounder("F", "a", Male, []string{"A", "G", "C", "C", "T", "T"}),
		NewFounder("F", "b", Female, []string{"G", "G", "C", "0", "T", "T"}),
		NewFounder("F", "c", Male, []string{"G", "G", "A", "0", "T", "T"}),
	)
	freqs := AlleleFrequencies(table)
	if len(freqs) != 3 {
		t.Fatalf("AlleleFrequencies() returned %d SNPs, expected 3", len(freqs))
	}

	expected := []SNPFrequency{
		{Index: 0, Minor: "A", Major: "G", MAF: 1.0 / 6, Observed: 6},
		{Index: 1, Minor: "A", Major: "C", MAF: 0.25, Observed: 4},
		{Index: 2, Minor: MissingAllele, Major: "T", MAF: 0, Observed: 6},
	}
	for i, e := range expected {
		f := freqs[i]
		if f.Index != e.Index || f.Minor != e.Minor || f.Major != e.Major || f.Observed != e.Observed || math.Abs(f.MAF-e.MAF) > 1e-12 {
			t.Errorf("SNP %d: got %+v, expected %+v", i, f, e)
		}
	}

	if mean := MeanMAF(freqs); math.Abs(mean-(1.0/6+0.25)/3) > 1e-12 {
		t.Errorf("MeanMAF() = %v", mean)
	}
	if MeanMAF(nil) != 0 {
		t.Errorf("MeanMAF(nil) should be 0")
	}
}

func TestAlleleFrequenciesTie(t *test.T) {
	table := NewGenotypeTable(NewFounder("F", "a", Male, []string{"T", "C"}))
	f := AlleleFrequencies(table)[0]
	if f.Major != "C" || f.Minor != "T" || f.MAF != 0.5 {
		t.Errorf("tied alleles should order by name, got %+v", f)
	}
}

func TestMateDistance(t *test.T) {
	dad := NewFounder("F", "dad", Male, []string{"A", "G", "C", "C", "T", "G"})
	cases := []struct {
		alleles  []string
		expected int
	}{
		{[]string{"A", "G", "C", "C", "T", "G"}, 0},
		{[]string{"G", "A", "C", "C", "G", "T"}, 0},
		{[]string{"A", "A", "C", "C", "T", "G"}, 1},
		{[]string{"G", "G", "C", "T", "T", "T"}, 3},
	}
	for _, c := range cases {
		mom := NewFounder("F", "mom", Female, c.alleles)
		d, err := MateDistance(dad, mom)
		if err != nil {
			t.Fatalf("MateDistance() failed: %v", err)
		}
		if d != c.expected {
			t.Errorf("MateDistance() to %v = %d, expected %d", c.alleles, d, c.expected)
		}
	}

	short := NewFounder("F", "mom", Female, []string{"A", "G"})
	if _, err := MateDistance(dad, short); !errors.Is(err, ErrMalformedTable) {
		t.Errorf("expected ErrMalformedTable for unequal SNP counts, got %v", err)
	}
}

func TestMeanMateDistance(t *test.T) {
	parents := NewGenotypeTable(
		NewFounder("F", "m1", Male, []string{"A", "A", "C", "C"}),
		NewFounder("F", "m2", Male, []string{"A", "G", "C", "C"}),
		NewFounder("F", "f1", Female, []string{"A", "A", "C", "C"}),
		NewFounder("F", "f2", Female, []string{"G", "G", "T", "T"}),
	)
	b := &Breeders{Males: []string{"m1", "m2"}, Females: []string{"f1", "f2"}}
	d, err := MeanMateDistance(parents, b)
	if err != nil {
		t.Fatalf("MeanMateDistance() failed: %v", err)
	}
	if d != 1 {
		t.Errorf("MeanMateDistance() = %v, expected 1", d)
	}

	if d, _ := MeanMateDistance(parents, &Breeders{}); d != 0 {
		t.Errorf("no couples should give distance 0, got %v", d)
	}
	b.Females[1] = "ghost"
	if _, err := MeanMateDistance(parents, b); !errors.Is(err, ErrUnknownParent) {
		t.Errorf("expected ErrUnknownParent, got %v", err)
	}
}

func TestGenerationReport(t *test.T) {
	table := makeFounders(3, 4, 5)
	r := NewGenerationReport(2, "offSpringG2", table, 3, 1.5)
	if r.Size != 7 || r.Males != 3 || r.Females != 4 || r.Couples != 3 || r.MeanMateDistance != 1.5 {
		t.Errorf("unexpected report %+v", r)
	}
	if len(r.Frequencies) != 5 || r.MeanMAF != MeanMAF(r.Frequencies) {
		t.Errorf("report frequencies do not match the table")
	}
}
