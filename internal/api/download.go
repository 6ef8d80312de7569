package api

import (
	"bytes"
	"io"
	"mime"
	"net/http"
	"strconv"
)

const docxContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// sendDocx renders into memory first so a failed export still gets a JSON
// error instead of a truncated download.
func (h *Handler) sendDocx(w http.ResponseWriter, r *http.Request, render func(io.Writer) (string, error)) {
	var buf bytes.Buffer
	filename, err := render(&buf)
	if err != nil {
		h.fail(w, r, err, nil)
		return
	}

	w.Header().Set("Content-Type", docxContentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": filename}))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		h.logger.Warn(r.Context(), "Failed to send %s: %v", filename, err)
	}
}
