package breedsnp

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

// Population binds a founder cohort to the settings of one simulation.
type Population struct {
	Founders *GenotypeTable
	Config   *EngineConfig
	Seed     int64
	Log      logrus.FieldLogger

	// Observers are notified of every generation after the run store.
	Observers []GenerationObserver

	// RunID is set by Simulate when the run is persisted.
	RunID   string
	persist *Persistence
}

// NewPopulation prepares a simulation. A seed of 0 is replaced by the
// current time so the run can still be reproduced from the recorded seed.
func NewPopulation(founders *GenotypeTable, config *EngineConfig, seed int64) *Population {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Population{
		Founders: founders,
		Config:   config,
		Seed:     seed,
	}
}

// WithPersistence makes Simulate record the run in persist.
func (p *Population) WithPersistence(persist *Persistence) *Population {
	p.persist = persist
	return p
}

// Simulate stamps random sexes onto the founders (in place) and runs the
// generation engine over them. The configuration and the founder table are
// checked before any round starts.
func (p *Population) Simulate(ctx context.Context) (*Result, error) {
	if err := p.Config.Validate(); err != nil {
		return nil, err
	}
	if err := p.Founders.Validate(); err != nil {
		return nil, fmt.Errorf("founder table: %w", err)
	}

	log := p.Log
	if log == nil {
		log = discardLogger()
	}
	log = log.WithField("seed", p.Seed)

	rng := NewRand(p.Seed)
	AssignSex(p.Founders, rng)

	var observers []GenerationObserver
	var run *Run
	if p.persist != nil {
		run = &Run{
			Seed:         p.Seed,
			BreedPer:     p.Config.BreedPer,
			MaxOffspring: p.Config.MaxOffspring,
			Requested:    p.Config.Generations,
			FounderCount: p.Founders.Len(),
			SNPCount:     p.Founders.SNPCount(),
		}
		if err := p.persist.CreateRun(ctx, run); err != nil {
			return nil, err
		}
		p.RunID = run.ID
		observers = append(observers, p.persist.Recorder(run.ID))
		log = log.WithField("run", run.ID)
	}

	observers = append(observers, p.Observers...)

	engine, err := NewGenerationEngine(p.Config, log, observers...)
	if err != nil {
		return nil, p.abort(ctx, run, log, err)
	}

	log.WithFields(logrus.Fields{
		"founders":      p.Founders.Len(),
		"snps":          p.Founders.SNPCount(),
		"breed_per":     p.Config.BreedPer,
		"max_offspring": p.Config.MaxOffspring,
		"generations":   p.Config.Generations,
	}).Info("starting simulation")

	result, err := engine.Run(ctx, p.Founders, rng)
	if err != nil {
		return nil, p.abort(ctx, run, log, err)
	}

	if run != nil {
		if err := p.persist.SaveIndividuals(ctx, run.ID, result.Produced, result.Final); err != nil {
			return nil, err
		}
		if err := p.persist.FinishRun(ctx, run.ID, result); err != nil {
			return nil, err
		}
		run.Produced = result.Produced
		run.State = result.State.String()
	}

	log.WithFields(logrus.Fields{
		"produced": result.Produced,
		"state":    result.State.String(),
		"final":    result.Final.Len(),
	}).Info("simulation finished")

	return result, nil
}

// abort records a persisted run as failed and hands back cause.
func (p *Population) abort(ctx context.Context, run *Run, log logrus.FieldLogger, cause error) error {
	if run == nil {
		return cause
	}
	run.State = Failed.String()
	if err := p.persist.FailRun(ctx, run.ID); err != nil {
		log.WithError(err).Error("unable to mark run as failed")
	}
	return cause
}
