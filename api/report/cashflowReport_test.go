package report

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"CashflowSuite/internal/correlation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testResolver() *correlation.Resolver {
	return correlation.NewResolver([]correlation.Entry{
		{CheckLabel: "BBVA FRANCES BYC", ProjectionLabel: "Bco BBVA BYC SA", Company: "BYC"},
	})
}

// csv builders mirror the real export layouts: projection rows are 12 wide
// with bank, detail, date up front and the amount at column 10, check rows
// are 15 wide, balance rows carry bank, FCI, bank balance.
func projectionCSV() string {
	head := strings.Repeat(",", 11)
	return head + "\n" +
		"Bco BBVA BYC SA,alquiler,2025-06-12,,,,,,,1500,,\n" +
		"Bco BBVA BYC SA,sueldos,2025-06-02,,,,,,,400,,\n"
}

func checksCSV() string {
	head := strings.Repeat(",", 14)
	return head + "\n" +
		"1234,2025-06-30,,BBVA FRANCES BYC,,proveedor,,,,,,,,,250\n"
}

func balancesCSV() string {
	return ",,\nBco BBVA BYC SA,700,5000\n"
}

type formSpec struct {
	files  map[string]string
	values map[string]string
}

func buildForm(t *testing.T, spec formSpec) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for field, content := range spec.files {
		fw, err := mw.CreateFormFile(field, field+".csv")
		require.NoError(t, err)
		_, err = fw.Write([]byte(content))
		require.NoError(t, err)
	}
	for k, v := range spec.values {
		require.NoError(t, mw.WriteField(k, v))
	}
	require.NoError(t, mw.Close())
	return &body, mw.FormDataContentType()
}

func allFiles() map[string]string {
	return map[string]string{
		"proyeccion": projectionCSV(),
		"cheques":    checksCSV(),
		"saldos":     balancesCSV(),
	}
}

func post(t *testing.T, path string, spec formSpec) *httptest.ResponseRecorder {
	t.Helper()
	body, contentType := buildForm(t, spec)
	req := httptest.NewRequest(http.MethodPost, path, body)
	req.Header.Set("Content-Type", contentType)
	rr := httptest.NewRecorder()
	NewRouter(testResolver()).ServeHTTP(rr, req)
	return rr
}

func TestGenerateCashflowReport_JSON(t *testing.T) {
	rr := post(t, "/report/cashflow", formSpec{
		files:  allFiles(),
		values: map[string]string{"today": "2025-06-10"},
	})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var resp struct {
		Success  bool     `json:"success"`
		RunID    string   `json:"run_id"`
		Dropped  int      `json:"dropped_rows"`
		Unmapped []string `json:"unmapped_banks"`
		Report   struct {
			Title  string   `json:"title"`
			Header []string `json:"header"`
			Rows   []struct {
				Label string `json:"label"`
			} `json:"rows"`
		} `json:"report"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.NotEmpty(t, resp.RunID)
	assert.Zero(t, resp.Dropped)
	assert.Empty(t, resp.Unmapped)
	assert.Equal(t, "Resumen Cashflow", resp.Report.Title)
	assert.Equal(t, "Etiquetas de fila", resp.Report.Header[0])
	require.Len(t, resp.Report.Rows, 3)
	assert.Equal(t, "Bco BBVA BYC SA", resp.Report.Rows[0].Label)
	assert.Equal(t, "Total BYC", resp.Report.Rows[1].Label)
	assert.Equal(t, "TOTAL BANCOS", resp.Report.Rows[2].Label)
}

func TestGenerateCashflowReport_XLSXAttachment(t *testing.T) {
	rr := post(t, "/report/cashflow", formSpec{
		files:  allFiles(),
		values: map[string]string{"today": "2025-06-10", "format": "xlsx"},
	})
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Disposition"), "Resumen_Cashflow_Formateado.xlsx")
	// xlsx is a zip container.
	assert.True(t, bytes.HasPrefix(rr.Body.Bytes(), []byte("PK")))
}

func TestGenerateCashflowReport_PDFAttachment(t *testing.T) {
	rr := post(t, "/report/cashflow", formSpec{
		files:  allFiles(),
		values: map[string]string{"today": "2025-06-10", "format": "pdf"},
	})
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Disposition"), "Resumen_Cashflow.pdf")
	assert.True(t, bytes.HasPrefix(rr.Body.Bytes(), []byte("%PDF")))
}

func TestGenerateCashflowReport_MissingRequiredFile(t *testing.T) {
	files := allFiles()
	delete(files, "saldos")
	rr := post(t, "/report/cashflow", formSpec{files: files})
	require.Equal(t, http.StatusBadRequest, rr.Code)

	var resp struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Error, "saldos")
}

func TestGenerateCashflowReport_BadInputs(t *testing.T) {
	cases := []struct {
		name    string
		values  map[string]string
		wantErr string
	}{
		{"bad today", map[string]string{"today": "10/06/2025"}, "invalid today date"},
		{"bad universe", map[string]string{"universe": "everything"}, "invalid universe"},
		{"bad format", map[string]string{"format": "docx"}, "invalid format"},
		{"bad manual balances", map[string]string{"manual_balances": "not json"}, "manual_balances"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			rr := post(t, "/report/cashflow", formSpec{files: allFiles(), values: c.values})
			require.Equal(t, http.StatusBadRequest, rr.Code)
			assert.Contains(t, rr.Body.String(), c.wantErr)
		})
	}
}

func TestGenerateCashflowReport_ManualBalances(t *testing.T) {
	rr := post(t, "/report/cashflow", formSpec{
		files: allFiles(),
		values: map[string]string{
			"today":           "2025-06-10",
			"universe":        "manual",
			"manual_balances": `{"Bco BBVA BYC SA": 42}`,
		},
	})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var resp struct {
		Report struct {
			Rows []struct {
				Label string `json:"label"`
				Cells []struct {
					Value string `json:"value"`
				} `json:"cells"`
			} `json:"rows"`
		} `json:"report"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Report.Rows)
	assert.Equal(t, "42", resp.Report.Rows[0].Cells[0].Value)
}

func TestGenerateBaseExtract(t *testing.T) {
	rr := post(t, "/report/base", formSpec{
		files:  allFiles(),
		values: map[string]string{"today": "2025-06-10"},
	})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var resp struct {
		Success bool `json:"success"`
		Base    []struct {
			Company string `json:"company"`
			Bank    string `json:"bank"`
			Date    string `json:"date"`
			Origin  string `json:"origin"`
		} `json:"base"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	require.Len(t, resp.Base, 3)
	assert.Equal(t, "BYC", resp.Base[0].Company)
	assert.Equal(t, "Cheques", resp.Base[2].Origin)
}

func TestHealthEndpoint(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/report/health", nil)
	rr := httptest.NewRecorder()
	NewRouter(testResolver()).ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Report Service OK", rr.Body.String())
}
