package rest

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"path"
	"strings"
)

const uploadField = "file"

var errUploadTooLarge = errors.New("upload too large")

// readUpload accepts either a multipart form with a "file" part or a raw
// request body whose file name comes from the "name" query parameter.
func readUpload(w http.ResponseWriter, r *http.Request, maxBytes int64) (string, []byte, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		file, header, err := r.FormFile(uploadField)
		if err != nil {
			return "", nil, uploadErr(err)
		}
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			return "", nil, uploadErr(err)
		}
		return path.Base(header.Filename), data, nil
	}

	name := strings.TrimSpace(r.URL.Query().Get("name"))
	if name == "" {
		return "", nil, fmt.Errorf("missing file name: pass ?name= or upload multipart field %q", uploadField)
	}
	data, err := io.ReadAll(r.Body)
	if err != nil {
		return "", nil, uploadErr(err)
	}
	return path.Base(name), data, nil
}

func uploadErr(err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return fmt.Errorf("%w: limit %d bytes", errUploadTooLarge, tooLarge.Limit)
	}
	return fmt.Errorf("read upload: %w", err)
}

func writeUploadError(w http.ResponseWriter, err error) {
	if errors.Is(err, errUploadTooLarge) {
		writeError(w, http.StatusRequestEntityTooLarge, "TOO_LARGE", err.Error())
		return
	}
	writeError(w, http.StatusBadRequest, "BAD_UPLOAD", err.Error())
}
