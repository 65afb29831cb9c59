package breedsnp

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"strconv"

	"github.com/sirupsen/logrus"
)

type EngineConfig struct {
	BreedPer     float64 `toml:"breed_per" yaml:"breed_per" ini:"breed_per"`
	MaxOffspring int     `toml:"max_offspring" yaml:"max_offspring" ini:"max_offspring"`
	Generations  int     `toml:"generations" yaml:"generations" ini:"generations"`
	GenTag       string  `toml:"gen_tag" yaml:"gen_tag" ini:"gen_tag"`
	Workers      int     `toml:"workers" yaml:"workers" ini:"workers" env:"BREEDSNP_WORKERS"`
}

// DefaultEngineConfig mirrors the settings the tool has always run with:
// up to three offspring per couple, generation tags G1, G2, ...
func DefaultEngineConfig() *EngineConfig {
	return &EngineConfig{
		BreedPer:     0.5,
		MaxOffspring: 3,
		Generations:  1,
		GenTag:       DefaultGenTag,
	}
}

func (c *EngineConfig) Validate() error {
	if c == nil {
		return fmt.Errorf("engine config cannot be nil: %w", ErrInvalidConfig)
	}
	if _, err := NewSelector(c.BreedPer); err != nil {
		return err
	}
	if _, err := NewReproducer(c.MaxOffspring); err != nil {
		return err
	}
	if c.Generations < 0 {
		return fmt.Errorf("generations %d cannot be negative: %w", c.Generations, ErrInvalidConfig)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers %d cannot be negative: %w", c.Workers, ErrInvalidConfig)
	}
	return nil
}

// GenerationObserver is notified once for the founders and once after every
// completed round. Returning an error aborts the simulation.
type GenerationObserver interface {
	ObserveGeneration(ctx context.Context, report *GenerationReport, t *GenotypeTable) error
}

// GenerationEngine advances a population round by round: select couples,
// breed them, and make the offspring the next round's parents. It stops
// early, without error, when a round finds no couples.
type GenerationEngine struct {
	Config    *EngineConfig
	Selector  *Selector
	Processor *Processor
	Observers []GenerationObserver
	Log       logrus.FieldLogger
}

func NewGenerationEngine(config *EngineConfig, log logrus.FieldLogger, observers ...GenerationObserver) (*GenerationEngine, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	selector, err := NewSelector(config.BreedPer)
	if err != nil {
		return nil, err
	}
	reproducer, err := NewReproducer(config.MaxOffspring)
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = discardLogger()
	}
	return &GenerationEngine{
		Config:    config,
		Selector:  selector,
		Processor: NewProcessor(reproducer, config.Workers),
		Observers: observers,
		Log:       log,
	}, nil
}

// GenTag is the tag of the generation produced by round k (0-based).
func (ge *GenerationEngine) GenTag(round int) string {
	return ge.Config.GenTag + strconv.Itoa(round+1)
}

// Run produces up to Config.Generations generations from founders, which
// must already carry their sexes. On exhaustion at round k the result holds
// the generation completed by round k-1 (the founders when k is 0) and
// Produced is k.
func (ge *GenerationEngine) Run(ctx context.Context, founders *GenotypeTable, rng *rand.Rand) (*Result, error) {
	if rng == nil {
		return nil, ErrNoRandSource
	}
	if err := founders.Validate(); err != nil {
		return nil, fmt.Errorf("founder table: %w", err)
	}

	result := &Result{
		Final:     founders,
		Requested: ge.Config.Generations,
		State:     Producing,
		Founders:  NewGenerationReport(0, "founders", founders, 0, 0),
	}
	if err := ge.notify(ctx, result.Founders, founders); err != nil {
		return nil, err
	}

	current := founders
	for k := 0; k < ge.Config.Generations; k++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		breeders := ge.Selector.Select(current, rng)
		if breeders.Empty() {
			males, females := current.SexCounts()
			ge.Log.WithFields(logrus.Fields{
				"generation": k + 1,
				"males":      males,
				"females":    females,
				"produced":   k,
			}).Info("no breeders left, stopping")
			result.Final = current
			result.Produced = k
			result.State = Exhausted
			return result, nil
		}

		mateDistance, err := MeanMateDistance(current, breeders)
		if err != nil {
			return nil, fmt.Errorf("generation %d: %w", k+1, err)
		}

		tag := ge.GenTag(k)
		offspring, err := ge.Processor.Run(ctx, current, breeders, k+1, tag, rng.Int63())
		if err != nil {
			return nil, fmt.Errorf("generation %d: %w", k+1, err)
		}

		next := NewGenotypeTable(offspring...)
		report := NewGenerationReport(k+1, OffspringPrefix+tag, next, breeders.Couples(), mateDistance)
		ge.Log.WithFields(logrus.Fields{
			"generation": report.Index,
			"couples":    report.Couples,
			"offspring":  report.Size,
			"males":      report.Males,
			"females":    report.Females,
			"mean_maf":   report.MeanMAF,
		}).Info("generation produced")

		if err := ge.notify(ctx, report, next); err != nil {
			return nil, err
		}

		result.Reports = append(result.Reports, report)
		result.Final = next
		result.Produced = k + 1
		current = next
	}

	result.State = Done
	return result, nil
}

func (ge *GenerationEngine) notify(ctx context.Context, report *GenerationReport, t *GenotypeTable) error {
	for _, o := range ge.Observers {
		if err := o.ObserveGeneration(ctx, report, t); err != nil {
			return fmt.Errorf("observing generation %d: %w", report.Index, err)
		}
	}
	return nil
}

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
