package usecase

import (
	"path/filepath"
	"strings"

	"skill-hire/internal/infrastructure/resume"
)

type uploadKind struct {
	folder  string
	exts    map[string]string // extension -> content type
	maxSize int64
}

var imageTypes = map[string]string{
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"png":  "image/png",
	"gif":  "image/gif",
}

var resumeTypes = map[string]string{
	"pdf":  resume.MimePDF,
	"docx": resume.MimeDOCX,
}

// check validates the upload against the kind and returns the extension and
// the content type to store it with.
func (k uploadKind) check(up Upload) (string, string, error) {
	if k.maxSize > 0 && int64(len(up.Data)) > k.maxSize {
		return "", "", ErrFileTooLarge
	}
	if len(up.Data) == 0 {
		return "", "", invalid("Uploaded file is empty")
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(up.Filename), "."))
	ct, ok := k.exts[ext]
	if !ok {
		return "", "", ErrUnsupportedFileType
	}
	// the declared type, when present, has to agree with the extension
	declared := strings.ToLower(strings.TrimSpace(strings.SplitN(up.ContentType, ";", 2)[0]))
	if declared != "" && declared != "application/octet-stream" && declared != ct {
		return "", "", ErrUnsupportedFileType
	}
	return ext, ct, nil
}
