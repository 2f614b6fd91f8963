package vision

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"time"
)

// VisionError represents an error that occurred talking to the food
// analysis service
type VisionError struct {
	Op  string // Operation that caused the error
	Err error  // Original error
}

// Error implements the error interface
func (e *VisionError) Error() string {
	if e.Err == nil {
		return "vision error: " + e.Op
	}
	return "vision error: " + e.Op + ": " + e.Err.Error()
}

// Unwrap returns the underlying error
func (e *VisionError) Unwrap() error {
	return e.Err
}

// Client forwards food photos to the external analysis service. It is
// pure forwarding logic: whatever body the service returns on 200 is
// relayed untouched.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Config holds configuration for the vision client
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// NewClient creates a new vision client
func NewClient(cfg *Config) *Client {
	timeout := 60 * time.Second
	if cfg.Timeout > 0 {
		timeout = cfg.Timeout
	}

	return &Client{
		baseURL: cfg.BaseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// DetectFood submits an image to the /yolo endpoint and returns the
// raw analysis body.
func (c *Client) DetectFood(ctx context.Context, image []byte) ([]byte, error) {
	body, contentType, err := buildForm(image, nil)
	if err != nil {
		return nil, &VisionError{Op: "build_form", Err: err}
	}

	return c.post(ctx, c.baseURL+"/yolo", body, contentType)
}

// EstimateCalories submits an image plus a JSON context document to the
// /calorie endpoint and returns the raw estimation body.
func (c *Client) EstimateCalories(ctx context.Context, image []byte, data []byte) ([]byte, error) {
	body, contentType, err := buildForm(image, data)
	if err != nil {
		return nil, &VisionError{Op: "build_form", Err: err}
	}

	return c.post(ctx, c.baseURL+"/calorie", body, contentType)
}

// post performs the multipart upload and relays the response body
func (c *Client) post(ctx context.Context, url string, body io.Reader, contentType string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return nil, &VisionError{Op: "build_request", Err: err}
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &VisionError{Op: "upload", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &VisionError{Op: "upload", Err: fmt.Errorf("analysis service returned status %d", resp.StatusCode)}
	}

	result, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &VisionError{Op: "read_response", Err: err}
	}

	return result, nil
}

// buildForm assembles the multipart body: an image part, plus an
// optional JSON data part for calorie estimation.
func buildForm(image []byte, data []byte) (io.Reader, string, error) {
	buf := &bytes.Buffer{}
	writer := multipart.NewWriter(buf)

	imageHeader := textproto.MIMEHeader{}
	imageHeader.Set("Content-Disposition", `form-data; name="image"; filename="pic.png"`)
	imageHeader.Set("Content-Type", "image/png")

	imagePart, err := writer.CreatePart(imageHeader)
	if err != nil {
		return nil, "", err
	}
	if _, err := imagePart.Write(image); err != nil {
		return nil, "", err
	}

	if data != nil {
		dataHeader := textproto.MIMEHeader{}
		dataHeader.Set("Content-Disposition", `form-data; name="data"; filename="data.json"`)
		dataHeader.Set("Content-Type", "application/json")

		dataPart, err := writer.CreatePart(dataHeader)
		if err != nil {
			return nil, "", err
		}
		if _, err := dataPart.Write(data); err != nil {
			return nil, "", err
		}
	}

	if err := writer.Close(); err != nil {
		return nil, "", err
	}

	return buf, writer.FormDataContentType(), nil
}
