package handler

import (
	"fmt"
	"io"
	"log"
	"mime/multipart"

	"github.com/gin-gonic/gin"
)

// getFormFile retrieves a file from multipart form data
func getFormFile(c *gin.Context, fieldName string) (multipart.File, *multipart.FileHeader, error) {
	file, header, err := c.Request.FormFile(fieldName)
	if err != nil {
		return nil, nil, fmt.Errorf("no %s provided", fieldName)
	}
	return file, header, nil
}

// readFormFile reads a multipart form file fully into memory
func readFormFile(c *gin.Context, fieldName string) ([]byte, error) {
	file, _, err := getFormFile(c, fieldName)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", fieldName, err)
	}
	return data, nil
}

// logError logs a handler-level error with request context
func logError(c *gin.Context, event string, err error) {
	log.Printf("%s %s: %s: %v", c.Request.Method, c.Request.URL.Path, event, err)
}
