package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestProfile mirrors the profile payload accepted by the API
type TestProfile struct {
	ProviderID   string `json:"providerId,omitempty"`
	DisplayName  string `json:"displayName,omitempty"`
	PersonalInfo struct {
		BirthDate string `json:"birthDate"`
		Gender    string `json:"gender"`
		Language  string `json:"language"`
	} `json:"personalInfo"`
	BodyMeasurements struct {
		Weight           float64 `json:"weight"`
		Height           float64 `json:"height"`
		PhysicalActivity float64 `json:"physicalActivity"`
	} `json:"bodyMeasurements"`
	DietaryInfo struct {
		DietaryGoal       string  `json:"dietaryGoal"`
		DietaryGoalAmount float64 `json:"dietaryGoalAmount"`
		TDEE              float64 `json:"tdee"`
	} `json:"dietaryInfo"`
}

// TestProfileAPI runs the profile CRUD lifecycle against a live server.
// It needs a reachable deployment plus a real bearer token, so it is
// skipped unless both are provided.
func TestProfileAPI(t *testing.T) {
	baseURL := os.Getenv("API_BASE_URL")
	token := os.Getenv("API_BEARER_TOKEN")
	if baseURL == "" || token == "" {
		t.Skip("API_BASE_URL and API_BEARER_TOKEN must be set for integration tests")
	}

	client := &http.Client{Timeout: 10 * time.Second}

	do := func(method, path string, body interface{}) (*http.Response, []byte) {
		var reader *bytes.Reader
		if body != nil {
			data, err := json.Marshal(body)
			require.NoError(t, err)
			reader = bytes.NewReader(data)
		} else {
			reader = bytes.NewReader(nil)
		}

		req, err := http.NewRequest(method, baseURL+path, reader)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
		req.Header.Set("Content-Type", "application/json")

		resp, err := client.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		var buf bytes.Buffer
		_, err = buf.ReadFrom(resp.Body)
		require.NoError(t, err)
		return resp, buf.Bytes()
	}

	profile := TestProfile{}
	profile.PersonalInfo.BirthDate = "1990-01-01"
	profile.PersonalInfo.Gender = "Female"
	profile.PersonalInfo.Language = "English"
	profile.BodyMeasurements.Weight = 60
	profile.BodyMeasurements.Height = 165
	profile.BodyMeasurements.PhysicalActivity = 1.4
	profile.DietaryInfo.DietaryGoal = "Lose weight"
	profile.DietaryInfo.DietaryGoalAmount = 0.5
	profile.DietaryInfo.TDEE = 1900

	// Clean slate: a leftover profile from a previous run is fine to drop
	do(http.MethodDelete, "/v1/profile", nil)

	t.Run("CreateProfile", func(t *testing.T) {
		resp, body := do(http.MethodPost, "/v1/users", profile)
		require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))

		var created TestProfile
		require.NoError(t, json.Unmarshal(body, &created))
		assert.NotEmpty(t, created.ProviderID)
		assert.NotEmpty(t, created.DisplayName)
	})

	t.Run("CreateProfileConflict", func(t *testing.T) {
		resp, _ := do(http.MethodPost, "/v1/users", profile)
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
	})

	t.Run("GetProfile", func(t *testing.T) {
		resp, body := do(http.MethodGet, "/v1/profile", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var got TestProfile
		require.NoError(t, json.Unmarshal(body, &got))
		assert.Equal(t, profile.PersonalInfo, got.PersonalInfo)
		assert.Equal(t, profile.DietaryInfo, got.DietaryInfo)
	})

	t.Run("UpdateProfile", func(t *testing.T) {
		updated := profile
		updated.BodyMeasurements.Weight = 58

		resp, _ := do(http.MethodPut, "/v1/profile", updated)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		resp, body := do(http.MethodGet, "/v1/profile", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var got TestProfile
		require.NoError(t, json.Unmarshal(body, &got))
		assert.Equal(t, float64(58), got.BodyMeasurements.Weight)
	})

	t.Run("DeleteProfile", func(t *testing.T) {
		resp, _ := do(http.MethodDelete, "/v1/profile", nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		resp, _ = do(http.MethodDelete, "/v1/profile", nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("MissingToken", func(t *testing.T) {
		req, err := http.NewRequest(http.MethodGet, baseURL+"/v1/profile", nil)
		require.NoError(t, err)

		resp, err := client.Do(req)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}
