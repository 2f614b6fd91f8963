package handler

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kencs/dietadvisor-backend/internal/vision"
)

func visionRouter(upstreamURL string) *gin.Engine {
	gin.SetMode(gin.TestMode)

	h := NewVisionHandler(vision.NewClient(&vision.Config{BaseURL: upstreamURL}))

	router := gin.New()
	router.POST("/v1/vision/detect", h.DetectFood)
	router.POST("/v1/vision/calorie", h.EstimateCalories)
	return router
}

func multipartBody(t *testing.T, fields map[string]string, files map[string][]byte) (*bytes.Buffer, string) {
	t.Helper()
	buf := &bytes.Buffer{}
	writer := multipart.NewWriter(buf)

	for name, content := range files {
		part, err := writer.CreateFormFile(name, name+".png")
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	for name, value := range fields {
		require.NoError(t, writer.WriteField(name, value))
	}

	require.NoError(t, writer.Close())
	return buf, writer.FormDataContentType()
}

func TestDetectFoodRelaysUpstreamBody(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/yolo", r.URL.Path)
		w.Write([]byte(`{"items":["noodles"]}`))
	}))
	defer upstream.Close()

	router := visionRouter(upstream.URL)

	body, contentType := multipartBody(t, nil, map[string][]byte{"image": []byte("img-bytes")})
	req := httptest.NewRequest(http.MethodPost, "/v1/vision/detect", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"items":["noodles"]}`, w.Body.String())
}

func TestDetectFoodRequiresImage(t *testing.T) {
	router := visionRouter("http://unreachable.invalid")

	body, contentType := multipartBody(t, map[string]string{"note": "hi"}, nil)
	req := httptest.NewRequest(http.MethodPost, "/v1/vision/detect", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEstimateCaloriesRequiresData(t *testing.T) {
	router := visionRouter("http://unreachable.invalid")

	body, contentType := multipartBody(t, nil, map[string][]byte{"image": []byte("img")})
	req := httptest.NewRequest(http.MethodPost, "/v1/vision/calorie", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestVisionUpstreamFailureIsBadGateway(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer upstream.Close()

	router := visionRouter(upstream.URL)

	body, contentType := multipartBody(t, nil, map[string][]byte{"image": []byte("img")})
	req := httptest.NewRequest(http.MethodPost, "/v1/vision/detect", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadGateway, w.Code)
}
