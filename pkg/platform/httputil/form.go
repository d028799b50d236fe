package httputil

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	dErrors "kycscan/pkg/domain-errors"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Upload is a single file read from a multipart form.
type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ParseMultipart parses a multipart form, keeping at most maxMemory bytes in memory.
func ParseMultipart(r *http.Request, maxMemory int64) error {
	if err := r.ParseMultipartForm(maxMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return dErrors.New(dErrors.CodeTooLarge, "upload exceeds size limit")
		}
		return dErrors.Wrap(err, dErrors.CodeBadRequest, "invalid multipart form")
	}
	return nil
}

// FormFile reads the named file from an already parsed multipart form.
func FormFile(r *http.Request, field string) (*Upload, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		return nil, dErrors.New(dErrors.CodeBadRequest, fmt.Sprintf("missing file field %q", field))
	}
	defer file.Close()
	return readUpload(file, header)
}

// FormFiles reads every file uploaded under field.
func FormFiles(r *http.Request, field string) ([]*Upload, error) {
	if r.MultipartForm == nil || len(r.MultipartForm.File[field]) == 0 {
		return nil, dErrors.New(dErrors.CodeBadRequest, fmt.Sprintf("missing file field %q", field))
	}
	headers := r.MultipartForm.File[field]
	uploads := make([]*Upload, 0, len(headers))
	for _, header := range headers {
		file, err := header.Open()
		if err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeBadRequest, "unreadable upload")
		}
		upload, err := readUpload(file, header)
		file.Close()
		if err != nil {
			return nil, err
		}
		uploads = append(uploads, upload)
	}
	return uploads, nil
}

func readUpload(file multipart.File, header *multipart.FileHeader) (*Upload, error) {
	data, err := io.ReadAll(file)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeBadRequest, "unreadable upload")
	}
	return &Upload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

// FormBool parses a boolean form value, returning def when it is absent.
func FormBool(r *http.Request, name string, def bool) (bool, error) {
	raw := strings.TrimSpace(r.FormValue(name))
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, dErrors.New(dErrors.CodeValidation, fmt.Sprintf("%s must be a boolean", name))
	}
	return v, nil
}

// FormFloat parses an optional float form value. ok is false when the value is absent.
func FormFloat(r *http.Request, name string) (v float64, ok bool, err error) {
	raw := strings.TrimSpace(r.FormValue(name))
	if raw == "" {
		return 0, false, nil
	}
	v, err = strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false, dErrors.New(dErrors.CodeValidation, fmt.Sprintf("%s must be a number", name))
	}
	return v, true, nil
}

// Normalizable is implemented by request types that trim or canonicalize their fields.
type Normalizable interface {
	Normalize()
}

// PrepareRequest normalizes a request and validates its struct tags.
func PrepareRequest(req any) error {
	if n, ok := req.(Normalizable); ok {
		n.Normalize()
	}
	if err := validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			first := verrs[0]
			return dErrors.New(dErrors.CodeValidation,
				fmt.Sprintf("%s failed %s validation", strings.ToLower(first.Field()), first.Tag()))
		}
		return dErrors.Wrap(err, dErrors.CodeValidation, "invalid request")
	}
	return nil
}
