package report

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"CashflowSuite/api"
	"CashflowSuite/api/constants"
	"CashflowSuite/internal/cashflow"
	"CashflowSuite/internal/correlation"
	"CashflowSuite/internal/render"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Format selects the response rendering of a report run.
const (
	FormatJSON = "json"
	FormatXLSX = "xlsx"
	FormatPDF  = "pdf"
)

type runRequest struct {
	inputs  cashflow.Inputs
	opts    cashflow.Options
	format  string
	errMsg  string
	errCode int
}

// parseRunRequest reads the multipart form into pipeline inputs. A missing
// required table blocks the run entirely; no partial report is emitted.
func parseRunRequest(r *http.Request, resolver *correlation.Resolver) *runRequest {
	req := &runRequest{}
	fail := func(code int, msg string) *runRequest {
		req.errCode = code
		req.errMsg = msg
		return req
	}

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		return fail(http.StatusBadRequest, constants.ErrFailedToParseMultipartForm)
	}

	req.opts.Today = time.Now()
	if v := strings.TrimSpace(r.FormValue(constants.FieldToday)); v != "" {
		t, err := time.Parse(constants.DateFormat, v)
		if err != nil {
			return fail(http.StatusBadRequest, constants.ErrInvalidTodayDate)
		}
		req.opts.Today = t
	}

	universe, err := cashflow.ParseUniverse(r.FormValue(constants.FieldUniverse))
	if err != nil {
		return fail(http.StatusBadRequest, err.Error())
	}
	req.opts.Universe = universe

	req.format = strings.ToLower(strings.TrimSpace(r.FormValue(constants.FieldFormat)))
	switch req.format {
	case "":
		req.format = FormatJSON
	case FormatJSON, FormatXLSX, FormatPDF:
	default:
		return fail(http.StatusBadRequest, constants.ErrInvalidFormat)
	}

	req.inputs.UnsettledOnly = r.FormValue(constants.FieldUnsettledOnly) != ""

	if v := r.FormValue(constants.FieldManualBalances); v != "" {
		manual, err := parseManualBalances(v, resolver)
		if err != nil {
			return fail(http.StatusBadRequest, constants.ErrInvalidManualBalances)
		}
		req.inputs.ManualBalances = manual
	}

	var present bool
	if req.inputs.Projection, present, err = tableFromForm(r, constants.FieldProjection); !present {
		return fail(http.StatusBadRequest, constants.ErrMissingProjectionFile)
	} else if err != nil {
		return fail(http.StatusBadRequest, fmt.Sprintf(constants.FormatFileUnreadable, constants.FieldProjection, err))
	}
	if req.inputs.Checks, present, err = tableFromForm(r, constants.FieldChecks); !present {
		return fail(http.StatusBadRequest, constants.ErrMissingChecksFile)
	} else if err != nil {
		return fail(http.StatusBadRequest, fmt.Sprintf(constants.FormatFileUnreadable, constants.FieldChecks, err))
	}
	if req.inputs.Balances, present, err = tableFromForm(r, constants.FieldBalances); !present {
		return fail(http.StatusBadRequest, constants.ErrMissingBalancesFile)
	} else if err != nil {
		return fail(http.StatusBadRequest, fmt.Sprintf(constants.FormatFileUnreadable, constants.FieldBalances, err))
	}
	// Tax calendar is optional.
	if tax, present, err := tableFromForm(r, constants.FieldTax); present {
		if err != nil {
			return fail(http.StatusBadRequest, fmt.Sprintf(constants.FormatFileUnreadable, constants.FieldTax, err))
		}
		req.inputs.Tax = tax
	}
	return req
}

// parseManualBalances decodes the user-entered opening balances: a JSON
// object of raw bank label to amount. Labels go through the resolver the
// same way file rows do.
func parseManualBalances(raw string, resolver *correlation.Resolver) ([]cashflow.Balance, error) {
	var m map[string]json.Number
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		return nil, err
	}
	balances := make([]cashflow.Balance, 0, len(m))
	for label, num := range m {
		amount, err := decimal.NewFromString(num.String())
		if err != nil {
			return nil, err
		}
		bank, company := resolver.Resolve(label)
		balances = append(balances, cashflow.Balance{
			Company:     company,
			Bank:        bank,
			BankBalance: amount,
		})
	}
	return balances, nil
}

// GenerateCashflowReport handles POST /report/cashflow: multipart upload of
// the source spreadsheets, one synchronous pipeline run, and the report in
// the requested format.
func GenerateCashflowReport(resolver *correlation.Resolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := parseRunRequest(r, resolver)
		if req.errMsg != "" {
			api.RespondWithError(w, req.errCode, req.errMsg)
			return
		}
		runID := uuid.New().String()
		res, err := cashflow.Run(req.inputs, req.opts, resolver)
		if err != nil {
			api.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		api.LogInfo("report run %s: %d records, %d dropped, universe=%s",
			runID, len(res.Records), res.Dropped, req.opts.Universe)

		switch req.format {
		case FormatXLSX:
			w.Header().Set(constants.ContentTypeHeader, constants.ContentTypeXLSX)
			w.Header().Set("Content-Disposition",
				`attachment; filename="Resumen_Cashflow_Formateado.xlsx"`)
			if err := writeExcelResponse(w, res); err != nil {
				api.LogError("excel render for run %s: %v", runID, err)
			}
		case FormatPDF:
			w.Header().Set(constants.ContentTypeHeader, constants.ContentTypePDF)
			w.Header().Set("Content-Disposition",
				`attachment; filename="Resumen_Cashflow.pdf"`)
			if err := writePDFResponse(w, res); err != nil {
				api.LogError("pdf render for run %s: %v", runID, err)
			}
		default:
			api.RespondWithPayload(w, map[string]interface{}{
				constants.KeyRunID:    runID,
				constants.KeyReport:   res.Grid,
				constants.KeyDropped:  res.Dropped,
				constants.KeyUnmapped: res.Unmapped,
			})
		}
	}
}

func writeExcelResponse(w http.ResponseWriter, res *cashflow.Result) error {
	return render.WriteExcel(w, res.Grid, res.Base)
}

func writePDFResponse(w http.ResponseWriter, res *cashflow.Result) error {
	return render.WritePDF(w, res.Grid)
}

// GenerateBaseExtract handles POST /report/base: same inputs, but returns
// the flat audit extract of every normalized record for traceability back
// to source rows.
func GenerateBaseExtract(resolver *correlation.Resolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := parseRunRequest(r, resolver)
		if req.errMsg != "" {
			api.RespondWithError(w, req.errCode, req.errMsg)
			return
		}
		runID := uuid.New().String()
		res, err := cashflow.Run(req.inputs, req.opts, resolver)
		if err != nil {
			api.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		api.RespondWithPayload(w, map[string]interface{}{
			constants.KeyRunID:    runID,
			constants.KeyBase:     res.Base,
			constants.KeyDropped:  res.Dropped,
			constants.KeyUnmapped: res.Unmapped,
		})
	}
}
