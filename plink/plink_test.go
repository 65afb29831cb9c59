package plink

import (
	"bytes"
	"errors"
	"strings"
	test "testing"

	"github.com/stretchr/testify/require"

	"github.com/tamimmurad/breedsnp"
)

const founders = `FAM1 per1 0 0 1 -9 A G C C
FAM1 per2 0 0 2 -9 G G C T

FAM1 per3 0 0 0 -9 A A 0 T
`

func TestReadPED(t *test.T) {
	table, err := ReadPED(strings.NewReader(founders))
	require.NoError(t, err)
	require.Equal(t, 3, table.Len())
	require.Equal(t, 2, table.SNPCount())

	first := table.Individuals[0]
	require.Equal(t, "FAM1", first.Family)
	require.Equal(t, "per1", first.ID)
	require.Equal(t, breedsnp.Male, first.Sex)
	require.Equal(t, "-9", first.Status)
	require.Equal(t, []string{"A", "G", "C", "C"}, first.Alleles)
	require.Equal(t, breedsnp.Unknown, table.Individuals[2].Sex)
}

func TestReadPEDMalformed(t *test.T) {
	for name, input := range map[string]string{
		"short row":   "FAM1 per1 0 0 1\n",
		"odd alleles": "FAM1 per1 0 0 1 N A G C\n",
		"ragged":      "FAM1 per1 0 0 1 N A G\nFAM1 per2 0 0 2 N A G C C\n",
	} {
		_, err := ReadPED(strings.NewReader(input))
		if !errors.Is(err, breedsnp.ErrMalformedTable) {
			t.Errorf("%s: expected ErrMalformedTable, got %v", name, err)
		}
	}
}

func TestPEDRoundTrip(t *test.T) {
	table, err := ReadPED(strings.NewReader(founders))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WritePED(&buf, table))
	require.Equal(t, "FAM1 per1 0 0 1 -9 A G C C\n", strings.SplitAfter(buf.String(), "\n")[0])

	again, err := ReadPED(&buf)
	require.NoError(t, err)
	require.Equal(t, table, again)
}

func TestMAP(t *test.T) {
	input := "1 snp0 0 1\n1 snp1 0.5 1201\n"
	snps, err := ReadMAP(strings.NewReader(input))
	require.NoError(t, err)
	require.Equal(t, []SNP{
		{Chromosome: "1", ID: "snp0", Distance: 0, Position: 1},
		{Chromosome: "1", ID: "snp1", Distance: 0.5, Position: 1201},
	}, snps)

	var buf bytes.Buffer
	require.NoError(t, WriteMAP(&buf, snps))
	require.Equal(t, input, buf.String())

	_, err = ReadMAP(strings.NewReader("1 snp0 0\n"))
	require.ErrorIs(t, err, ErrMalformedMap)
}

func TestWriteFRQ(t *test.T) {
	table, err := ReadPED(strings.NewReader(founders))
	require.NoError(t, err)
	snps := []SNP{{Chromosome: "1", ID: "rs1"}, {Chromosome: "1", ID: "rs2"}}

	var buf bytes.Buffer
	require.NoError(t, WriteFRQ(&buf, table, snps))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	require.Equal(t, []string{"CHR", "SNP", "A1", "A2", "MAF", "NCHROBS"}, strings.Fields(lines[0]))
	// SNP 1: A=3, G=3. The tie makes A major by name.
	require.Equal(t, []string{"1", "rs1", "G", "A", "0.5", "6"}, strings.Fields(lines[1]))
	// SNP 2: C C C T 0 T -> C=3, T=2, one missing call.
	require.Equal(t, []string{"1", "rs2", "T", "C", "0.4", "5"}, strings.Fields(lines[2]))

	err = WriteFRQ(&buf, table, snps[:1])
	require.ErrorIs(t, err, ErrMalformedMap)
}

func TestWriteFRQWithoutMap(t *test.T) {
	table, err := ReadPED(strings.NewReader(founders))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteFRQ(&buf, table, nil))
	require.Contains(t, buf.String(), " snp2 ")
}
