// Package plink reads and writes the plink text formats the simulator
// exchanges with other genetics tools: PED genotype tables, MAP SNP maps and
// FRQ allele frequency reports.
package plink

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/tamimmurad/breedsnp"
)

// ReadPED parses a whitespace delimited PED stream. Sex codes other than 1
// and 2 are read as unknown.
func ReadPED(r io.Reader) (*breedsnp.GenotypeTable, error) {
	t := breedsnp.NewGenotypeTable()
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 64*1024*1024)

	line := 0
	for scanner.Scan() {
		line++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) < breedsnp.MetaColumns {
			return nil, fmt.Errorf("line %d has %d columns, need at least %d: %w", line, len(fields), breedsnp.MetaColumns, breedsnp.ErrMalformedTable)
		}
		alleles := fields[breedsnp.MetaColumns:]
		if len(alleles)%2 != 0 {
			return nil, fmt.Errorf("line %d has an odd allele count %d: %w", line, len(alleles), breedsnp.ErrMalformedTable)
		}
		t.Individuals = append(t.Individuals, &breedsnp.Individual{
			Family:     fields[0],
			ID:         fields[1],
			PaternalID: fields[2],
			MaternalID: fields[3],
			Sex:        parseSex(fields[4]),
			Status:     fields[5],
			Alleles:    append([]string(nil), alleles...),
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading PED: %w", err)
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

func parseSex(field string) breedsnp.Sex {
	code, err := strconv.Atoi(field)
	if err != nil {
		return breedsnp.Unknown
	}
	switch sex := breedsnp.Sex(code); sex {
	case breedsnp.Male, breedsnp.Female:
		return sex
	}
	return breedsnp.Unknown
}

// WritePED writes one single-space delimited row per individual.
func WritePED(w io.Writer, t *breedsnp.GenotypeTable) error {
	bw := bufio.NewWriter(w)
	for _, in := range t.Individuals {
		bw.WriteString(in.Family)
		for _, field := range []string{in.ID, in.PaternalID, in.MaternalID, strconv.Itoa(int(in.Sex)), in.Status} {
			bw.WriteByte(' ')
			bw.WriteString(field)
		}
		for _, allele := range in.Alleles {
			bw.WriteByte(' ')
			bw.WriteString(allele)
		}
		if err := bw.WriteByte('\n'); err != nil {
			return fmt.Errorf("writing PED: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("writing PED: %w", err)
	}
	return nil
}

func ReadPEDFile(path string) (*breedsnp.GenotypeTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	t, err := ReadPED(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

func WritePEDFile(path string, t *breedsnp.GenotypeTable) error {
	return writeFile(path, func(w io.Writer) error { return WritePED(w, t) })
}

// writeFile creates path and removes it again if write fails.
func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("%s: %w", path, err)
	}
	return f.Close()
}
