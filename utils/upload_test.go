package utils

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00")
	pdfHeader = []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\n")
)

// fileHeader builds a parsed multipart file header the way gin receives it
func fileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("receipt", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))
	return req.MultipartForm.File["receipt"][0]
}

func TestValidateReceipt(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		content  []byte
		maxSize  int64
		wantMIME string
		wantErr  error
	}{
		{"png", "receipt.PNG", pngHeader, 1024, "image/png", nil},
		{"pdf", "invoice.pdf", pdfHeader, 1024, "application/pdf", nil},
		{"wrong extension", "notes.txt", pdfHeader, 1024, "", ErrUploadType},
		{"disguised text", "fake.png", []byte("just some text pretending to be an image"), 1024, "", ErrUploadType},
		{"too large", "big.png", pngHeader, 8, "", ErrUploadSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mime, err := ValidateReceipt(fileHeader(t, tt.filename, tt.content), tt.maxSize)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantMIME, mime)
		})
	}
}
