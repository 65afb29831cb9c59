package breedsnp

import (
	"reflect"
	test "testing"
)

func TestAssignSex(t *test.T) {
	table := makeFounders(200, 0, 3)
	before := table.Clone()

	AssignSex(table, testRand())

	males, females := table.SexCounts()
	if males+females != table.Len() {
		t.Errorf("every row should be male or female, got %d males and %d females of %d", males, females, table.Len())
	}

	for i, in := range table.Individuals {
		in.Sex = before.Individuals[i].Sex
		if !reflect.DeepEqual(in, before.Individuals[i]) {
			t.Errorf("AssignSex() changed more than the sex of row %d", i)
		}
	}
}

func TestAssignSexBalance(t *test.T) {
	table := makeFounders(0, 10000, 1)
	AssignSex(table, testRand())

	males, females := table.SexCounts()
	if males < 4700 || males > 5300 {
		t.Errorf("10000 draws gave %d males and %d females, expected about half each", males, females)
	}
}

func TestOffspringSexBalance(t *test.T) {
	r, _ := NewReproducer(1)
	parents := makeFounders(1, 1, 1)
	rng := testRand()
	males := 0
	for i := 0; i < 10000; i++ {
		child, err := r.Offspring(parents, "G1", "x", "per0", "per1", rng)
		if err != nil {
			t.Fatalf("Offspring() failed: %v", err)
		}
		if child.Sex == Male {
			males++
		}
	}
	if males < 4700 || males > 5300 {
		t.Errorf("10000 offspring include %d males, expected about half", males)
	}
}

func TestAssignSexEmpty(t *test.T) {
	AssignSex(nil, testRand())
	table := NewGenotypeTable()
	AssignSex(table, testRand())
	if table.Len() != 0 {
		t.Errorf("AssignSex() grew an empty table")
	}
}
