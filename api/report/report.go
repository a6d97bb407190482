package report

import (
	"fmt"
	"log"
	"net/http"

	"CashflowSuite/internal/correlation"

	"github.com/gorilla/mux"
)

// NewRouter wires the report routes.
func NewRouter(resolver *correlation.Resolver) *mux.Router {
	router := mux.NewRouter()
	router.HandleFunc("/report/cashflow", GenerateCashflowReport(resolver)).Methods("POST")
	router.HandleFunc("/report/base", GenerateBaseExtract(resolver)).Methods("POST")
	router.HandleFunc("/report/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Report Service OK"))
	}).Methods("GET")
	return router
}

// StartReportService runs the HTTP listener for the report service.
func StartReportService(port int, resolver *correlation.Resolver) {
	addr := fmt.Sprintf(":%d", port)
	log.Printf("Report Service started on %s", addr)
	if err := http.ListenAndServe(addr, NewRouter(resolver)); err != nil {
		log.Fatalf("Report Service failed: %v", err)
	}
}
