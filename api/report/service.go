package report

import (
	"CashflowSuite/internal/config"
	"CashflowSuite/internal/correlation"
	"CashflowSuite/internal/serviceiface"
)

type ReportService struct {
	config   map[string]interface{}
	resolver *correlation.Resolver
}

func NewReportService(cfg map[string]interface{}, resolver *correlation.Resolver) serviceiface.Service {
	return &ReportService{config: cfg, resolver: resolver}
}

func (s *ReportService) Name() string {
	return "report"
}

func (s *ReportService) Start() error {
	port := config.DefaultReportPort
	if s.config != nil {
		switch v := s.config["port"].(type) {
		case int:
			if v > 0 {
				port = v
			}
		case float64:
			if v > 0 {
				port = int(v)
			}
		}
	}
	go StartReportService(port, s.resolver)
	return nil
}

func (s *ReportService) Stop() error {
	// Listener lives for the process; nothing to tear down.
	return nil
}
