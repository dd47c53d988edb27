package controllers

import (
	"errors"
	"net/http"
	"strings"

	"iqr-control-backend/services"
	"iqr-control-backend/utils"

	"github.com/gin-gonic/gin"
)

const (
	receiptField = "receipt"
	formOverhead = 1 << 20 // room for the text fields next to the file
)

// UploadController stores receipt files and serves them back
type UploadController struct {
	storage services.ReceiptStorage
	maxSize int64
}

func NewUploadController(storage services.ReceiptStorage, maxSize int64) *UploadController {
	return &UploadController{storage: storage, maxSize: maxSize}
}

// isMultipart reports whether the request carries form data instead of JSON
func isMultipart(c *gin.Context) bool {
	return strings.HasPrefix(c.ContentType(), "multipart/form-data")
}

// parseForm reads a multipart body of at most maxSize plus formOverhead bytes and
// removes empty form fields so optional values bind as unset. It answers the
// request itself and returns false when the body cannot be read.
func (uc *UploadController) parseForm(c *gin.Context, invalidMessage string) bool {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, uc.maxSize+formOverhead)
	if err := c.Request.ParseMultipartForm(uc.maxSize); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			utils.RespondWithError(c, http.StatusBadRequest, utils.MsgUploadTooLarge)
			return false
		}
		utils.RespondWithError(c, http.StatusBadRequest, invalidMessage)
		return false
	}
	for key, values := range c.Request.MultipartForm.Value {
		if len(values) == 0 || strings.TrimSpace(values[0]) == "" {
			delete(c.Request.MultipartForm.Value, key)
			c.Request.PostForm.Del(key)
			c.Request.Form.Del(key)
		}
	}
	return true
}

// saveReceipt stores the optional receipt file of a multipart request.
// It returns nil when no file was sent and false after answering an error.
func (uc *UploadController) saveReceipt(c *gin.Context) (*string, bool) {
	if !isMultipart(c) {
		return nil, true
	}
	header, err := c.FormFile(receiptField)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, true
		}
		utils.RespondWithError(c, http.StatusBadRequest, utils.MsgUploadFail)
		return nil, false
	}

	contentType, err := utils.ValidateReceipt(header, uc.maxSize)
	switch {
	case errors.Is(err, utils.ErrUploadSize):
		utils.RespondWithError(c, http.StatusBadRequest, utils.MsgUploadTooLarge)
		return nil, false
	case errors.Is(err, utils.ErrUploadType):
		utils.RespondWithError(c, http.StatusBadRequest, utils.MsgUploadInvalidType)
		return nil, false
	case err != nil:
		respondServiceError(c, err, utils.MsgFileNotFound, utils.MsgUploadFail)
		return nil, false
	}

	file, err := header.Open()
	if err != nil {
		respondServiceError(c, err, utils.MsgFileNotFound, utils.MsgUploadFail)
		return nil, false
	}
	defer file.Close()

	url, err := uc.storage.Save(c.Request.Context(), header.Filename, contentType, file)
	if err != nil {
		respondServiceError(c, err, utils.MsgFileNotFound, utils.MsgUploadFail)
		return nil, false
	}
	return &url, true
}

// Upload handles POST /api/upload
func (uc *UploadController) Upload(c *gin.Context) {
	if !isMultipart(c) {
		utils.RespondWithError(c, http.StatusBadRequest, utils.MsgUploadFail)
		return
	}
	if !uc.parseForm(c, utils.MsgUploadFail) {
		return
	}
	url, ok := uc.saveReceipt(c)
	if !ok {
		return
	}
	if url == nil {
		utils.RespondWithError(c, http.StatusBadRequest, utils.MsgUploadFail)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"url": *url})
}

// Serve handles GET /uploads/:key
func (uc *UploadController) Serve(c *gin.Context) {
	body, contentType, err := uc.storage.Open(c.Request.Context(), c.Param("key"))
	if err != nil {
		respondServiceError(c, err, utils.MsgFileNotFound, utils.MsgFileNotFound)
		return
	}
	defer body.Close()

	c.DataFromReader(http.StatusOK, -1, contentType, body, map[string]string{
		"Cache-Control": "private, max-age=3600",
	})
}
