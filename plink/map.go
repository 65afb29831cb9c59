package plink

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/tamimmurad/breedsnp"
)

// SNP is one row of a MAP file.
type SNP struct {
	Chromosome string
	ID         string
	Distance   float64
	Position   int64
}

var ErrMalformedMap = errors.New("malformed SNP map")

func ReadMAP(r io.Reader) ([]SNP, error) {
	var snps []SNP
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) != 4 {
			return nil, fmt.Errorf("line %d has %d columns, want 4: %w", line, len(fields), ErrMalformedMap)
		}
		distance, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			return nil, fmt.Errorf("line %d genetic distance: %w", line, ErrMalformedMap)
		}
		position, err := strconv.ParseInt(fields[3], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d position: %w", line, ErrMalformedMap)
		}
		snps = append(snps, SNP{
			Chromosome: fields[0],
			ID:         fields[1],
			Distance:   distance,
			Position:   position,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading MAP: %w", err)
	}
	return snps, nil
}

func WriteMAP(w io.Writer, snps []SNP) error {
	bw := bufio.NewWriter(w)
	for _, s := range snps {
		fmt.Fprintf(bw, "%s %s %s %d\n", s.Chromosome, s.ID, strconv.FormatFloat(s.Distance, 'g', -1, 64), s.Position)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("writing MAP: %w", err)
	}
	return nil
}

func ReadMAPFile(path string) ([]SNP, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	snps, err := ReadMAP(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return snps, nil
}

func WriteMAPFile(path string, snps []SNP) error {
	return writeFile(path, func(w io.Writer) error { return WriteMAP(w, snps) })
}

// CheckMAP verifies that snps describes every SNP of t.
func CheckMAP(snps []SNP, t *breedsnp.GenotypeTable) error {
	if t.Len() > 0 && len(snps) != t.SNPCount() {
		return fmt.Errorf("map lists %d SNPs, table carries %d: %w", len(snps), t.SNPCount(), ErrMalformedMap)
	}
	return nil
}
