package core

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caasmo/tablebook/crypto"
)

type uploadResult struct {
	Filename string `json:"filename"`
	Path     string `json:"path"`
	Size     int64  `json:"size"`
}

// UploadFileHandler stores one multipart file (field name "file") in the
// uploads directory and returns the path it will be served under.
// Endpoint: POST /file/upload
// Authenticated: Yes
// Allowed Mimetype: multipart/form-data
func (a *App) UploadFileHandler(w http.ResponseWriter, r *http.Request) {
	maxSize := a.Config().Uploads.MaxSize
	r.Body = http.MaxBytesReader(w, r.Body, maxSize)
	if err := r.ParseMultipartForm(maxSize); err != nil {
		WriteJsonError(w, errorInvalidRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		WriteJsonError(w, errorMissingFields)
		return
	}
	defer file.Close()

	name := uploadName(header)
	dst := filepath.Join(a.Config().Uploads.Dir, name)
	size, err := a.saveUpload(dst, file)
	if err != nil {
		a.Logger().Error("failed to store upload", "name", name, "err", err)
		WriteJsonError(w, errorInternal)
		return
	}

	writeJsonWithData(w, JsonWithData{
		JsonBasic: JsonBasic{Status: http.StatusCreated, Code: CodeOkCreated, Message: "File uploaded successfully"},
		Data: uploadResult{
			Filename: name,
			Path:     "/static/" + name,
			Size:     size,
		},
	})
}

// uploadName builds a collision-free name, keeping the original extension
// and dropping everything else from the client-supplied filename.
func uploadName(header *multipart.FileHeader) string {
	ext := strings.ToLower(filepath.Ext(filepath.Base(header.Filename)))
	return fmt.Sprintf("%d-%s%s", time.Now().UnixMilli(), crypto.RandomString(8, crypto.AlphanumericAlphabet), ext)
}

func (a *App) saveUpload(dst string, src io.Reader) (int64, error) {
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return 0, err
	}
	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return 0, err
	}
	defer out.Close()
	return io.Copy(out, src)
}
