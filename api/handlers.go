package api

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"pdf_press/config"
	"pdf_press/pdf"
	"pdf_press/service"
)

// HandleCompress merges the uploaded documents and reduces the result until
// it fits the requested size target.
func HandleCompress(c *gin.Context, cfg *config.Config, proc *service.Processor) {
	buffers, names, ok := readUploads(c, cfg)
	if !ok {
		return
	}
	targetMB := parseTargetMB(c.PostForm("target_mb"), cfg.DefaultTargetMB)

	resp, err := proc.Process(c.Request.Context(), service.Request{
		Op:       service.OpCompress,
		Buffers:  buffers,
		TargetMB: targetMB,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}

	sendDocument(c, resp, downloadName(names, "compressed"))
}

// HandleMerge concatenates the uploaded documents in upload order.
func HandleMerge(c *gin.Context, cfg *config.Config, proc *service.Processor) {
	buffers, names, ok := readUploads(c, cfg)
	if !ok {
		return
	}

	resp, err := proc.Process(c.Request.Context(), service.Request{
		Op:      service.OpMerge,
		Buffers: buffers,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}

	sendDocument(c, resp, downloadName(names, "merged"))
}

// HandleInspect reports the structure of a single uploaded document.
func HandleInspect(c *gin.Context, cfg *config.Config) {
	buf, _, ok := readSingleUpload(c, cfg)
	if !ok {
		return
	}

	info, err := pdf.Inspect(buf)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, info)
}

// HandleResave rewrites a single uploaded document with default options.
func HandleResave(c *gin.Context, cfg *config.Config) {
	buf, name, ok := readSingleUpload(c, cfg)
	if !ok {
		return
	}

	out, err := pdf.Resave(buf)
	if err != nil {
		abortWithError(c, err)
		return
	}
	sendBytes(c, out, downloadName([]string{name}, "resaved"))
}

// HandleRemovePages deletes the pages named in the "pages" form field from a
// single uploaded document.
func HandleRemovePages(c *gin.Context, cfg *config.Config) {
	pagesParam := c.PostForm("pages")
	if pagesParam == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No pages specified"})
		return
	}
	buf, name, ok := readSingleUpload(c, cfg)
	if !ok {
		return
	}

	out, err := pdf.RemovePages(buf, pagesParam)
	if err != nil {
		abortWithError(c, err)
		return
	}
	sendBytes(c, out, downloadName([]string{name}, "pages_removed"))
}

// HandleJobs lists recent processing jobs, newest first.
func HandleJobs(c *gin.Context, proc *service.Processor) {
	limit := JobsDefaultLimit
	if raw := c.Query("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			limit = v
		}
	}

	jobs, err := proc.Jobs(limit)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"jobs": jobs})
}

// readUploads pulls every uploaded document out of the multipart form. On
// failure it writes the error response and reports false.
func readUploads(c *gin.Context, cfg *config.Config) ([][]byte, []string, bool) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid multipart form"})
		return nil, nil, false
	}
	files := form.File[UploadFieldName]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No PDF files uploaded"})
		return nil, nil, false
	}
	if len(files) > MaxInputFiles {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("too many files: %d exceeds limit of %d", len(files), MaxInputFiles),
		})
		return nil, nil, false
	}

	buffers := make([][]byte, 0, len(files))
	names := make([]string, 0, len(files))
	for _, header := range files {
		buf, err := readPDFFile(header, cfg.MaxFileSize)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return nil, nil, false
		}
		buffers = append(buffers, buf)
		names = append(names, header.Filename)
	}
	return buffers, names, true
}

// readSingleUpload reads the one document carried by single file endpoints.
func readSingleUpload(c *gin.Context, cfg *config.Config) ([]byte, string, bool) {
	header, err := c.FormFile(SingleFieldName)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No PDF file provided"})
		return nil, "", false
	}
	buf, err := readPDFFile(header, cfg.MaxFileSize)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, "", false
	}
	return buf, header.Filename, true
}

// readPDFFile validates one uploaded document and reads it fully into memory.
func readPDFFile(header *multipart.FileHeader, maxSize int64) ([]byte, error) {
	if header.Size > maxSize {
		return nil, fmt.Errorf("file size %d exceeds maximum allowed %d bytes", header.Size, maxSize)
	}

	file, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload %s: %w", header.Filename, err)
	}
	defer file.Close()

	buf, err := io.ReadAll(io.LimitReader(file, maxSize+1))
	if err != nil {
		return nil, fmt.Errorf("read upload %s: %w", header.Filename, err)
	}
	if int64(len(buf)) > maxSize {
		return nil, fmt.Errorf("file size %d exceeds maximum allowed %d bytes", int64(len(buf)), maxSize)
	}
	if len(buf) < 4 || string(buf[:4]) != "%PDF" {
		return nil, fmt.Errorf("invalid PDF file: header does not match")
	}
	return buf, nil
}

// parseTargetMB parses the requested size target, falling back to the default
// when the value is missing or unusable.
func parseTargetMB(raw string, defaultTarget float64) float64 {
	if strings.TrimSpace(raw) == "" {
		return defaultTarget
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || v <= 0 {
		return defaultTarget
	}
	return v
}

// abortWithError maps processing failures to HTTP responses. Malformed or
// missing input gets a 400, everything else a 500.
func abortWithError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	var parseErr *pdf.ParseError
	if errors.As(err, &parseErr) || errors.Is(err, pdf.ErrNoInput) {
		status = http.StatusBadRequest
	}

	logrus.WithError(err).Warn("request failed")

	// Truncate long error messages but include key info
	msg := err.Error()
	if len(msg) > maxErrorLength {
		msg = msg[:maxErrorLength] + "..."
	}
	c.JSON(status, gin.H{"error": msg})
}

// sendDocument returns a processed document as a download, with the job
// summary exposed in response headers.
func sendDocument(c *gin.Context, resp *service.Response, filename string) {
	c.Header("X-Job-Id", resp.JobID)
	c.Header("X-Outcome", resp.Outcome.String())
	c.Header("X-Original-Size", strconv.Itoa(resp.MergedSize))
	c.Header("X-Final-Size", strconv.Itoa(resp.FinalSize))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", resp.Bytes)
}

// sendBytes returns document bytes as a download.
func sendBytes(c *gin.Context, out []byte, filename string) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", out)
}

// downloadName derives the download filename from the first uploaded name.
func downloadName(names []string, suffix string) string {
	filename := "document_" + suffix + ".pdf"
	if len(names) > 0 && names[0] != "" {
		originalName := names[0]
		// Remove .pdf extension if present, add suffix
		if strings.HasSuffix(strings.ToLower(originalName), ".pdf") {
			filename = originalName[:len(originalName)-4] + "_" + suffix + ".pdf"
		} else {
			filename = originalName + "_" + suffix + ".pdf"
		}
	}
	return sanitizeFilename(filename)
}

// sanitizeFilename removes path traversal attempts and dangerous characters
func sanitizeFilename(filename string) string {
	// Remove directory separators and path traversal attempts
	filename = strings.ReplaceAll(filename, "..", "")
	filename = strings.ReplaceAll(filename, "/", "_")
	filename = strings.ReplaceAll(filename, "\\", "_")

	// Get just the base filename to prevent path issues
	filename = filepath.Base(filename)

	filename = strings.TrimSpace(filename)

	// If empty after sanitization, use default
	if filename == "" {
		filename = "document.pdf"
	}

	return filename
}
