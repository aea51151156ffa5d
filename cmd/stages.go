package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"

	"github.com/etnz/perfsheet"
	"github.com/etnz/perfsheet/config"
	"github.com/etnz/perfsheet/date"
	"github.com/etnz/perfsheet/sheet"
	"github.com/etnz/perfsheet/workbook"
	"github.com/rs/zerolog"
)

// pipeline runs the stages of the performance sheet. Each stage records
// what it extracted in report, and writes its sheet unless dryRun is set.
type pipeline struct {
	cfg    *config.Config
	today  date.Date // day of the run, names the performance export
	asOf   date.Date // date stamped on the performance rows
	dryRun bool
	log    zerolog.Logger

	report   perfsheet.Report
	holdings *sheet.Grid // raw holdings export, shared by stages 1 and 3
}

func newPipeline(cfg *config.Config, today, asOf date.Date, log zerolog.Logger) *pipeline {
	return &pipeline{
		cfg:    cfg,
		today:  today,
		asOf:   asOf,
		log:    log,
		report: perfsheet.Report{Date: asOf},
	}
}

// stage is one step of the pipeline.
type stage struct {
	name string
	run  func(p *pipeline, ctx context.Context) error
}

var stages = []stage{
	{"holdings", (*pipeline).runHoldings},
	{"performance", (*pipeline).runPerformance},
	{"allocations", (*pipeline).runAllocations},
	{"characteristics", (*pipeline).runCharacteristics},
}

// runAll runs every stage in order. A failing stage is reported to w and
// the next one runs anyway. It returns the number of failed stages.
func (p *pipeline) runAll(ctx context.Context, w io.Writer) int {
	failed := 0
	for _, s := range stages {
		if err := p.runStage(ctx, s); err != nil {
			reportStageError(w, s.name, err)
			failed++
		}
	}
	return failed
}

// runStage runs s, unless ctx is done.
func (p *pipeline) runStage(ctx context.Context, s stage) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	log := p.log.With().Str("stage", s.name).Logger()
	log.Debug().Bool("dry_run", p.dryRun).Msg("stage started")
	if err := s.run(p, ctx); err != nil {
		log.Error().Err(err).Msg("stage failed")
		return err
	}
	log.Info().Msg("stage done")
	return nil
}

// stageByName returns the stage called name.
func stageByName(name string) stage {
	for _, s := range stages {
		if s.name == name {
			return s
		}
	}
	panic("unknown stage " + name)
}

// reportStageError prints a stage failure for the user. A workbook that
// cannot be written is usually open in a spreadsheet application.
func reportStageError(w io.Writer, stage string, err error) {
	var pathErr *fs.PathError
	if isLocked(err) && errors.As(err, &pathErr) {
		fmt.Fprintf(w, "%s: file %s is open, please close it and try again\n", stage, filepath.Base(pathErr.Path))
		return
	}
	fmt.Fprintf(w, "%s: an unexpected error occurred: %v\n", stage, err)
}

// holdingsGrid reads the raw holdings export once.
func (p *pipeline) holdingsGrid() (*sheet.Grid, error) {
	if p.holdings != nil {
		return p.holdings, nil
	}
	g, err := sheet.ReadFile(p.cfg.Path(p.cfg.Files.HoldingsExport), p.cfg.Files.HoldingsSheet)
	if err != nil {
		return nil, err
	}
	p.holdings = g
	return g, nil
}

func (p *pipeline) runHoldings(_ context.Context) error {
	g, err := p.holdingsGrid()
	if err != nil {
		return err
	}
	holdings, err := perfsheet.ExtractHoldings(g, p.cfg.Holdings)
	if err != nil {
		return err
	}
	p.report.Holdings = holdings
	p.log.Debug().Int("holdings", len(holdings)).Str("total_weight", p.report.TotalWeight().String()).Msg("holdings extracted")
	if p.dryRun {
		return nil
	}
	return workbook.WriteHoldings(p.cfg.Path(p.cfg.Files.HoldingsOutput), holdings)
}

func (p *pipeline) runPerformance(_ context.Context) error {
	src := p.cfg.PerformanceSource(p.today)
	p.log.Debug().Str("source", src).Msg("reading performance export")
	g, err := sheet.ReadFile(src, p.cfg.Files.PerformanceSheet)
	if err != nil {
		return err
	}
	rows, err := perfsheet.ExtractPerformance(g, p.cfg.Performance, p.asOf)
	if err != nil {
		return err
	}
	p.report.Performance = rows
	if p.dryRun {
		return nil
	}
	return workbook.WritePerformance(p.cfg.Path(p.cfg.Files.PerformanceOutput), rows)
}

func (p *pipeline) runAllocations(_ context.Context) error {
	g, err := p.holdingsGrid()
	if err != nil {
		return err
	}
	weights, cash, err := perfsheet.CountryWeights(g, p.cfg.Holdings)
	if err != nil {
		return err
	}
	p.report.Cash, p.report.CountryWeights = &cash, weights

	tmpl, err := sheet.ReadFile(p.cfg.Path(p.cfg.Files.AllocationTemplate), p.cfg.Files.AllocationSheet)
	if err != nil {
		return err
	}
	rows := perfsheet.ReadAllocation(tmpl, p.cfg.Allocations)
	u := perfsheet.UpdateAllocation(rows, weights, p.cfg.Allocations.Titles)
	p.report.Allocation = &u
	for _, w := range u.Dropped {
		p.log.Warn().Str("country", w.Country).Str("weight", w.Weight.String()).Msg("country not in the allocation template")
	}
	if p.dryRun {
		return nil
	}
	return workbook.WriteAllocations(p.cfg.Path(p.cfg.Files.AllocationsOutput), u.Rows, p.cfg.Allocations.Titles)
}

func (p *pipeline) runCharacteristics(_ context.Context) error {
	l := p.cfg.Characteristics
	path := p.cfg.Path(p.cfg.Files.CharacteristicsWorkbook)
	f, err := sheet.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	chars, err := sheet.ReadGrid(f, l.CharacteristicsSheet)
	if err != nil {
		return err
	}
	sectors, err := sheet.ReadGrid(f, l.SectorsSheet)
	if err != nil {
		return err
	}
	caps, err := sheet.ReadFile(p.cfg.CapsSource(), l.CapsSheet)
	if err != nil {
		return err
	}

	c, err := perfsheet.ComposeCharacteristics(chars, sectors, caps, l)
	if err != nil {
		return err
	}
	p.report.Characteristics = c
	if p.dryRun {
		return nil
	}

	// the template is filled in memory only, the characteristics workbook
	// is left untouched.
	if err := workbook.FillCharacteristics(f, l.TemplateSheet, c); err != nil {
		return err
	}
	return workbook.PublishCharacteristics(f, l.TemplateSheet, p.cfg.Path(p.cfg.Files.MasterOutput), l.Forbidden)
}
