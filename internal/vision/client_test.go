package vision

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectFoodForwardsImage(t *testing.T) {
	var gotImage []byte
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/yolo", r.URL.Path)

		file, header, err := r.FormFile("image")
		require.NoError(t, err)
		defer file.Close()

		assert.Equal(t, "pic.png", header.Filename)
		gotImage, err = io.ReadAll(file)
		require.NoError(t, err)

		w.Write([]byte(`{"items":["rice","egg"]}`))
	}))
	defer upstream.Close()

	client := NewClient(&Config{BaseURL: upstream.URL})

	result, err := client.DetectFood(context.Background(), []byte("fake-png-bytes"))
	require.NoError(t, err)

	assert.Equal(t, []byte("fake-png-bytes"), gotImage)
	assert.JSONEq(t, `{"items":["rice","egg"]}`, string(result))
}

func TestEstimateCaloriesForwardsImageAndData(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/calorie", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))

		_, _, err := r.FormFile("image")
		require.NoError(t, err)

		dataFile, _, err := r.FormFile("data")
		require.NoError(t, err)
		defer dataFile.Close()

		data, err := io.ReadAll(dataFile)
		require.NoError(t, err)
		assert.JSONEq(t, `{"mealType":"lunch"}`, string(data))

		w.Write([]byte(`{"calorie":450}`))
	}))
	defer upstream.Close()

	client := NewClient(&Config{BaseURL: upstream.URL})

	result, err := client.EstimateCalories(context.Background(), []byte("img"), []byte(`{"mealType":"lunch"}`))
	require.NoError(t, err)
	assert.JSONEq(t, `{"calorie":450}`, string(result))
}

func TestUpstreamFailureSurfacesAsVisionError(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer upstream.Close()

	client := NewClient(&Config{BaseURL: upstream.URL})

	_, err := client.DetectFood(context.Background(), []byte("img"))
	require.Error(t, err)

	var visionErr *VisionError
	require.ErrorAs(t, err, &visionErr)
	assert.Equal(t, "upload", visionErr.Op)
}
