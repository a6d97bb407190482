package report

import (
	"net/http"
	"path/filepath"
	"strings"

	"CashflowSuite/internal/tabular"
)

// Helper: get file extension
func getFileExt(filename string) string {
	return strings.ToLower(filepath.Ext(filename))
}

// tableFromForm parses one uploaded form file into a Table. present is
// false when the field was not supplied at all, so the caller can tell a
// missing input from an unreadable one.
func tableFromForm(r *http.Request, field string) (t *tabular.Table, present bool, err error) {
	if r.MultipartForm == nil {
		return nil, false, nil
	}
	files := r.MultipartForm.File[field]
	if len(files) == 0 {
		return nil, false, nil
	}
	fh := files[0]
	file, err := fh.Open()
	if err != nil {
		return nil, true, err
	}
	defer file.Close()
	t, err = tabular.ReadTable(file, getFileExt(fh.Filename))
	if err != nil {
		return nil, true, err
	}
	return t, true, nil
}
