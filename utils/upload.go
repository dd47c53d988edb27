package utils

import (
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

var (
	ErrUploadType = errors.New("file type not allowed")
	ErrUploadSize = errors.New("file too large")
)

var allowedReceiptExtensions = map[string]bool{
	".jpeg": true,
	".jpg":  true,
	".png":  true,
	".pdf":  true,
}

var allowedReceiptMIME = []string{"image/jpeg", "image/png", "application/pdf"}

// ValidateReceipt checks the size, the extension and the sniffed content type
// of an uploaded receipt. It returns the detected MIME type.
func ValidateReceipt(header *multipart.FileHeader, maxSize int64) (string, error) {
	if maxSize > 0 && header.Size > maxSize {
		return "", ErrUploadSize
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedReceiptExtensions[ext] {
		return "", ErrUploadType
	}

	file, err := header.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer file.Close()

	mtype, err := mimetype.DetectReader(file)
	if err != nil {
		return "", fmt.Errorf("detect upload type: %w", err)
	}
	if !mimetype.EqualsAny(mtype.String(), allowedReceiptMIME...) {
		return "", ErrUploadType
	}

	return mtype.String(), nil
}
