package jobs

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"CashflowSuite/internal/cashflow"
	"CashflowSuite/internal/config"
	"CashflowSuite/internal/correlation"
	"CashflowSuite/internal/logger"
	"CashflowSuite/internal/render"
	"CashflowSuite/internal/serviceiface"
	"CashflowSuite/internal/tabular"

	"github.com/robfig/cron/v3"
)

// CronService regenerates the cashflow report on a schedule from a watched
// input directory. Same pipeline as the HTTP service; the run is skipped
// when any required input file is absent.
type CronService struct {
	cfg      map[string]interface{}
	resolver *correlation.Resolver
	cron     *cron.Cron

	schedule  string
	inputDir  string
	outputDir string
	universe  cashflow.Universe
}

func NewCronService(cfg map[string]interface{}, resolver *correlation.Resolver) serviceiface.Service {
	s := &CronService{
		cfg:       cfg,
		resolver:  resolver,
		schedule:  config.DefaultRunSchedule,
		inputDir:  config.DefaultInputDir,
		outputDir: config.DefaultOutputDir,
		universe:  cashflow.UniverseBalances,
	}
	if cfg != nil {
		if v, ok := cfg["schedule"].(string); ok && v != "" {
			s.schedule = v
		}
		if v, ok := cfg["input_dir"].(string); ok && v != "" {
			s.inputDir = v
		}
		if v, ok := cfg["output_dir"].(string); ok && v != "" {
			s.outputDir = v
		}
		if v, ok := cfg["universe"].(string); ok && v != "" {
			if u, err := cashflow.ParseUniverse(v); err == nil {
				s.universe = u
			}
		}
	}
	return s
}

func (s *CronService) Name() string {
	return "cron"
}

func (s *CronService) Start() error {
	loc, err := time.LoadLocation(config.DefaultTimeZone)
	if err != nil {
		loc = time.Local
	}
	s.cron = cron.New(cron.WithLocation(loc))
	if _, err := s.cron.AddFunc(s.schedule, s.runOnce); err != nil {
		return fmt.Errorf("invalid report schedule %q: %w", s.schedule, err)
	}
	s.cron.Start()
	log.Printf("Cron service started, report run scheduled %q from %s", s.schedule, s.inputDir)
	return nil
}

func (s *CronService) Stop() error {
	if s.cron != nil {
		<-s.cron.Stop().Done()
	}
	return nil
}

// findInput locates "<stem>.xlsx" (or .xls/.csv) in the input directory.
func (s *CronService) findInput(stem string) string {
	for _, ext := range []string{".xlsx", ".xls", ".csv"} {
		path := filepath.Join(s.inputDir, stem+ext)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

func (s *CronService) runOnce() {
	required := map[string]string{
		"proyeccion": s.findInput("proyeccion"),
		"cheques":    s.findInput("cheques"),
		"saldos":     s.findInput("saldos"),
	}
	for name, path := range required {
		if path == "" {
			log.Printf("[cron] skipping run, missing input file %q in %s", name, s.inputDir)
			return
		}
	}

	in := cashflow.Inputs{}
	var err error
	if in.Projection, err = tabular.ReadFile(required["proyeccion"]); err != nil {
		log.Printf("[cron] proyeccion unreadable: %v", err)
		return
	}
	if in.Checks, err = tabular.ReadFile(required["cheques"]); err != nil {
		log.Printf("[cron] cheques unreadable: %v", err)
		return
	}
	if in.Balances, err = tabular.ReadFile(required["saldos"]); err != nil {
		log.Printf("[cron] saldos unreadable: %v", err)
		return
	}
	if path := s.findInput("impuestos"); path != "" {
		if in.Tax, err = tabular.ReadFile(path); err != nil {
			log.Printf("[cron] impuestos unreadable: %v", err)
			return
		}
	}

	now := time.Now()
	res, err := cashflow.Run(in, cashflow.Options{Today: now, Universe: s.universe}, s.resolver)
	if err != nil {
		log.Printf("[cron] report run failed: %v", err)
		return
	}

	if err := os.MkdirAll(s.outputDir, 0755); err != nil {
		log.Printf("[cron] output dir: %v", err)
		return
	}
	outPath := filepath.Join(s.outputDir,
		fmt.Sprintf("Resumen_Cashflow_%s.xlsx", now.Format("20060102")))
	f, err := os.Create(outPath)
	if err != nil {
		log.Printf("[cron] create %s: %v", outPath, err)
		return
	}
	defer f.Close()
	if err := render.WriteExcel(f, res.Grid, res.Base); err != nil {
		log.Printf("[cron] excel render: %v", err)
		return
	}
	if logger.GlobalLogger != nil {
		logger.GlobalLogger.LogAudit(fmt.Sprintf("scheduled report written to %s (%d records, %d dropped)",
			outPath, len(res.Records), res.Dropped))
	}
}
