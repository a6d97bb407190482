package constants

// Common error messages
const (
	ErrInvalidJSON                = "invalid json or missing fields"
	ErrInvalidRequestBody         = "Invalid request body"
	ErrMethodNotAllowed           = "Method Not Allowed"
	ErrFailedToParseMultipartForm = "failed to parse multipart form"
	ErrUnsupportedFileType        = "unsupported file type"
	ErrInvalidTodayDate           = "invalid today date, expected YYYY-MM-DD"
	ErrInvalidUniverse            = "invalid universe, expected records, balances or manual"
	ErrInvalidFormat              = "invalid format, expected json, xlsx or pdf"
	ErrInvalidManualBalances      = "invalid manual_balances, expected a JSON object of bank to amount"
)

// Missing-input messages; a missing required table blocks the whole run.
const (
	ErrMissingProjectionFile = "missing required file 'proyeccion' (Proyeccion Pagos)"
	ErrMissingChecksFile     = "missing required file 'cheques' (Cheques)"
	ErrMissingBalancesFile   = "missing required file 'saldos' (Saldos)"
	FormatFileUnreadable     = "file '%s' is not readable: %s"
	FormatMissingColumn      = "input '%s' is missing required column '%s'"
)

// Multipart form field names
const (
	FieldProjection     = "proyeccion"
	FieldChecks         = "cheques"
	FieldBalances       = "saldos"
	FieldTax            = "impuestos"
	FieldToday          = "today"
	FieldUniverse       = "universe"
	FieldFormat         = "format"
	FieldManualBalances = "manual_balances"
	FieldUnsettledOnly  = "solo_pendientes"
)

// Content Types
const (
	ContentTypeHeader = "Content-Type"
	ContentTypeJSON   = "application/json"
	ContentTypeXLSX   = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	ContentTypePDF    = "application/pdf"
)

// Response keys
const (
	ValueSuccess = "success"
	KeyRunID     = "run_id"
	KeyReport    = "report"
	KeyBase      = "base"
	KeyDropped   = "dropped_rows"
	KeyUnmapped  = "unmapped_banks"
)

// Date formats
const (
	DateFormat     = "2006-01-02"
	DateFormatAlt  = "02-01-2006"
	DateFormatUS   = "01/02/2006"
	DateTimeFormat = "2006-01-02 15:04:05"
	DayLabelFormat = "02-Jan"
)

// Report labels (match the reference workbook)
const (
	ReportTitle       = "Resumen Cashflow"
	ReportSheetName   = "Resumen"
	BaseSheetName     = "Base"
	LabelRowHeader    = "Etiquetas de fila"
	LabelGrandTotal   = "TOTAL BANCOS"
	FormatSubtotal    = "Total %s"
	FormatCurrentDate = "Fecha Actual: %s"
	UnknownCompany    = "UNKNOWN"
)
