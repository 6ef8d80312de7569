package api

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/nguyentantai21042004/legal-os/internal/domain"
)

const multipartMemory = 32 << 20

func (h *Handler) parseMultipart(w http.ResponseWriter, r *http.Request) error {
	if r.ContentLength > h.maxUpload {
		return &http.MaxBytesError{Limit: h.maxUpload}
	}
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return err
		}
		return fmt.Errorf("%w: parse form: %w", errBadRequest, err)
	}
	return nil
}

// formFile reads one optional file field. It returns nil when absent.
func formFile(r *http.Request, field string) (*domain.Upload, error) {
	headers := r.MultipartForm.File[field]
	if len(headers) == 0 {
		return nil, nil
	}
	up, err := readPart(headers[0])
	if err != nil {
		return nil, err
	}
	return &up, nil
}

// formFiles reads every file sent under field, in form order.
func formFiles(r *http.Request, field string) ([]domain.Upload, error) {
	headers := r.MultipartForm.File[field]
	uploads := make([]domain.Upload, 0, len(headers))
	for _, fh := range headers {
		up, err := readPart(fh)
		if err != nil {
			return nil, err
		}
		uploads = append(uploads, up)
	}
	return uploads, nil
}

func readPart(fh *multipart.FileHeader) (domain.Upload, error) {
	f, err := fh.Open()
	if err != nil {
		return domain.Upload{}, fmt.Errorf("open %s: %w", fh.Filename, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return domain.Upload{}, fmt.Errorf("read %s: %w", fh.Filename, err)
	}
	return domain.Upload{Filename: fh.Filename, ContentType: fh.Header.Get("Content-Type"), Data: data}, nil
}
