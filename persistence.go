package breedsnp

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"github.com/google/uuid"
	gorm "gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type PersistenceConfig struct {
	Name          string   `toml:"name" yaml:"name" ini:"name" env:"BREEDSNP_DB_NAME"`
	Path          string   `toml:"path" yaml:"path" ini:"path" env:"BREEDSNP_DB_PATH"`
	DSN           string   `toml:"dsn" yaml:"dsn" ini:"dsn" env:"BREEDSNP_DB_DSN"`
	SQLitePragmas []string `toml:"sqlite_pragmas" yaml:"sqlite_pragmas" ini:"sqlite_pragmas" delim:" "`
	SQLiteOptions []string `toml:"sqlite_options" yaml:"sqlite_options" ini:"sqlite_options" delim:" "`
	BatchSize     int      `toml:"batch_size" yaml:"batch_size" ini:"batch_size"`
}

// Run is one simulation as stored in the run database.
type Run struct {
	ID           string `gorm:"primaryKey;size:36"`
	CreatedAt    time.Time
	Seed         int64
	BreedPer     float64
	MaxOffspring int
	Requested    int
	Produced     int
	State        string
	FounderCount int
	SNPCount     int
}

type GenerationRecord struct {
	ID               uint
	RunID            string `gorm:"index;size:36"`
	Generation       int
	Label            string
	Couples          int
	Size             int
	Males            int
	Females          int
	MeanMAF          float64
	MeanMateDistance float64
	Frequencies      []FrequencyRecord
}

type FrequencyRecord struct {
	ID                 uint
	GenerationRecordID uint `gorm:"index"`
	SNP                int
	Minor              string
	Major              string
	MAF                float64
	Observed           int
}

type IndividualRecord struct {
	ID           uint
	RunID        string `gorm:"index;size:36"`
	Generation   int
	Family       string
	IndividualID string
	PaternalID   string
	MaternalID   string
	Sex          int
	Status       string
	Alleles      string
}

// PruneResult counts the rows a prune removed, or would remove on a dry run.
type PruneResult struct {
	Runs        int64
	Generations int64
	Frequencies int64
	Individuals int64
}

type Persistence struct {
	Config *PersistenceConfig
	DB     *gorm.DB
}

var ErrRunNotFound = errors.New("run not found")

func NewPersistence(config *PersistenceConfig) (*Persistence, error) {
	if config == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	dsn, err := config.dataSource()
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", dsn, err)
	}

	batch := config.BatchSize
	if batch <= 0 {
		batch = 1000
	}
	db = db.Session(&gorm.Session{PrepareStmt: true, CreateBatchSize: batch})

	p := &Persistence{Config: config, DB: db}
	if err = p.initialize(); err != nil {
		p.Shutdown()
		return nil, err
	}

	return p, nil
}

// dataSource builds the sqlite DSN from Path/Name plus pragmas and options,
// unless DSN is set explicitly.
func (c *PersistenceConfig) dataSource() (string, error) {
	if c.DSN != "" {
		return c.DSN, nil
	}
	if len(c.Path) == 0 {
		return "", fmt.Errorf("path to database must be defined")
	}
	if len(c.Name) == 0 {
		return "", fmt.Errorf("name of database must be defined")
	}

	params := make([]string, 0, len(c.SQLitePragmas)+len(c.SQLiteOptions))
	for _, prag := range c.SQLitePragmas {
		params = append(params, "_pragma="+prag)
	}
	params = append(params, c.SQLiteOptions...)

	var path strings.Builder
	path.WriteString(filepath.Join(c.Path, c.Name))
	if len(params) > 0 {
		path.WriteRune('?')
		path.WriteString(strings.Join(params, "&"))
	}
	return path.String(), nil
}

func (p *Persistence) initialize() error {
	return p.DB.AutoMigrate(
		&Run{},
		&GenerationRecord{},
		&FrequencyRecord{},
		&IndividualRecord{},
	)
}

func (p *Persistence) Shutdown() {
	if sqldb, err := p.DB.DB(); err == nil {
		sqldb.Close()
	}
}

// CreateRun stores a new run, assigning it a UUID when it has none.
func (p *Persistence) CreateRun(ctx context.Context, run *Run) error {
	if run == nil {
		return fmt.Errorf("run cannot be nil")
	}
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.State == "" {
		run.State = Producing.String()
	}
	if err := p.DB.WithContext(ctx).Create(run).Error; err != nil {
		return fmt.Errorf("creating run: %w", err)
	}
	return nil
}

// FinishRun records how a run ended.
func (p *Persistence) FinishRun(ctx context.Context, runID string, result *Result) error {
	res := p.DB.WithContext(ctx).Model(&Run{}).Where("id = ?", runID).Updates(map[string]interface{}{
		"produced": result.Produced,
		"state":    result.State.String(),
	})
	if res.Error != nil {
		return fmt.Errorf("finishing run %s: %w", runID, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("finishing run %s: %w", runID, ErrRunNotFound)
	}
	return nil
}

// FailRun marks runID as failed. Generations recorded before the failure are
// kept. The update runs even when ctx is already cancelled.
func (p *Persistence) FailRun(ctx context.Context, runID string) error {
	res := p.DB.WithContext(context.WithoutCancel(ctx)).Model(&Run{}).Where("id = ?", runID).
		Update("state", Failed.String())
	if res.Error != nil {
		return fmt.Errorf("failing run %s: %w", runID, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("failing run %s: %w", runID, ErrRunNotFound)
	}
	return nil
}

// Recorder returns an observer that stores every generation summary of
// runID.
func (p *Persistence) Recorder(runID string) GenerationObserver {
	return &runRecorder{persist: p, runID: runID}
}

type runRecorder struct {
	persist *Persistence
	runID   string
}

func (r *runRecorder) ObserveGeneration(ctx context.Context, report *GenerationReport, _ *GenotypeTable) error {
	return r.persist.SaveGeneration(ctx, r.runID, report)
}

func (p *Persistence) SaveGeneration(ctx context.Context, runID string, report *GenerationReport) error {
	record := &GenerationRecord{
		RunID:            runID,
		Generation:       report.Index,
		Label:            report.Label,
		Couples:          report.Couples,
		Size:             report.Size,
		Males:            report.Males,
		Females:          report.Females,
		MeanMAF:          report.MeanMAF,
		MeanMateDistance: report.MeanMateDistance,
		Frequencies:      make([]FrequencyRecord, len(report.Frequencies)),
	}
	for i, f := range report.Frequencies {
		record.Frequencies[i] = FrequencyRecord{
			SNP:      f.Index,
			Minor:    f.Minor,
			Major:    f.Major,
			MAF:      f.MAF,
			Observed: f.Observed,
		}
	}
	if err := p.DB.WithContext(ctx).Create(record).Error; err != nil {
		return fmt.Errorf("saving generation %d of run %s: %w", report.Index, runID, err)
	}
	return nil
}

// SaveIndividuals stores every row of t as generation gen of runID.
func (p *Persistence) SaveIndividuals(ctx context.Context, runID string, gen int, t *GenotypeTable) error {
	if t.Len() == 0 {
		return nil
	}
	records := make([]IndividualRecord, t.Len())
	for i, in := range t.Individuals {
		records[i] = IndividualRecord{
			RunID:        runID,
			Generation:   gen,
			Family:       in.Family,
			IndividualID: in.ID,
			PaternalID:   in.PaternalID,
			MaternalID:   in.MaternalID,
			Sex:          int(in.Sex),
			Status:       in.Status,
			Alleles:      strings.Join(in.Alleles, " "),
		}
	}
	if err := p.DB.WithContext(ctx).Create(&records).Error; err != nil {
		return fmt.Errorf("saving individuals of run %s: %w", runID, err)
	}
	return nil
}

func (p *Persistence) LoadRun(ctx context.Context, runID string) (*Run, error) {
	run := &Run{}
	err := p.DB.WithContext(ctx).Where("id = ?", runID).First(run).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%s: %w", runID, ErrRunNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("loading run %s: %w", runID, err)
	}
	return run, nil
}

// ListRuns returns every stored run, newest first.
func (p *Persistence) ListRuns(ctx context.Context) ([]Run, error) {
	var runs []Run
	if err := p.DB.WithContext(ctx).Order("created_at DESC, rowid DESC").Find(&runs).Error; err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	return runs, nil
}

func (p *Persistence) LoadGenerations(ctx context.Context, runID string) ([]GenerationRecord, error) {
	var gens []GenerationRecord
	err := p.DB.WithContext(ctx).
		Preload("Frequencies", func(db *gorm.DB) *gorm.DB { return db.Order("snp") }).
		Where("run_id = ?", runID).
		Order("generation").
		Find(&gens).Error
	if err != nil {
		return nil, fmt.Errorf("loading generations of run %s: %w", runID, err)
	}
	return gens, nil
}

// LoadIndividuals rebuilds the stored generation of runID as a table.
func (p *Persistence) LoadIndividuals(ctx context.Context, runID string) (*GenotypeTable, error) {
	var records []IndividualRecord
	if err := p.DB.WithContext(ctx).Where("run_id = ?", runID).Order("id").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("loading individuals of run %s: %w", runID, err)
	}
	t := &GenotypeTable{Individuals: make([]*Individual, len(records))}
	for i, r := range records {
		t.Individuals[i] = &Individual{
			Family:     r.Family,
			ID:         r.IndividualID,
			PaternalID: r.PaternalID,
			MaternalID: r.MaternalID,
			Sex:        Sex(r.Sex),
			Status:     r.Status,
			Alleles:    strings.Fields(r.Alleles),
		}
	}
	return t, t.Validate()
}

// Prune deletes every run except the newest keep, together with their
// generations, frequencies and individuals.
func (p *Persistence) Prune(ctx context.Context, keep int, dryRun bool) (*PruneResult, error) {
	if keep < 0 {
		return nil, fmt.Errorf("keep %d cannot be negative", keep)
	}
	var ids []string
	err := p.DB.WithContext(ctx).Model(&Run{}).
		Order("created_at DESC, rowid DESC").
		Pluck("id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("selecting runs to prune: %w", err)
	}
	if keep >= len(ids) {
		return &PruneResult{}, nil
	}
	ids = ids[keep:]

	result := &PruneResult{Runs: int64(len(ids))}

	genIDs := p.DB.Model(&GenerationRecord{}).Select("id").Where("run_id IN ?", ids)

	err = p.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&GenerationRecord{}).Where("run_id IN ?", ids).Count(&result.Generations).Error; err != nil {
			return err
		}
		if err := tx.Model(&FrequencyRecord{}).Where("generation_record_id IN (?)", genIDs).Count(&result.Frequencies).Error; err != nil {
			return err
		}
		if err := tx.Model(&IndividualRecord{}).Where("run_id IN ?", ids).Count(&result.Individuals).Error; err != nil {
			return err
		}
		if dryRun {
			return nil
		}
		if err := tx.Where("generation_record_id IN (?)", genIDs).Delete(&FrequencyRecord{}).Error; err != nil {
			return err
		}
		if err := tx.Where("run_id IN ?", ids).Delete(&GenerationRecord{}).Error; err != nil {
			return err
		}
		if err := tx.Where("run_id IN ?", ids).Delete(&IndividualRecord{}).Error; err != nil {
			return err
		}
		return tx.Where("id IN ?", ids).Delete(&Run{}).Error
	})
	if err != nil {
		return nil, fmt.Errorf("pruning runs: %w", err)
	}
	return result, nil
}
