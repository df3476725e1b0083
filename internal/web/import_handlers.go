package web

import (
	"fmt"
	"net/http"
)

// maxImportBytes caps uploaded workbook size at 10 MB.
const maxImportBytes = 10 << 20

// handleImport accepts a multipart xlsx upload and bulk-imports its rows.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		apiError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if err := r.ParseMultipartForm(maxImportBytes); err != nil {
		apiError(w, "invalid multipart form", http.StatusBadRequest)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		apiError(w, `missing "file" form field`, http.StatusBadRequest)
		return
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("warning: closing upload: %v\n", closeErr)
		}
	}()

	result, err := s.importer.Import(file)
	if err != nil {
		apiError(w, fmt.Sprintf("parsing workbook: %v", err), http.StatusBadRequest)
		return
	}

	errors := result.Errors
	if errors == nil {
		errors = []string{}
	}

	apiJSON(w, map[string]interface{}{
		"imported": len(result.Valid),
		"errors":   errors,
	}, http.StatusOK)
}
