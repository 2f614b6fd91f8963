package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kencs/dietadvisor-backend/internal/imageutil"
	"github.com/kencs/dietadvisor-backend/internal/vision"
)

// VisionHandler proxies food photo uploads to the external analysis
// service. Pure forwarding: no identity check, no invariants of its own.
type VisionHandler struct {
	visionClient *vision.Client
	maxDimension int
}

// NewVisionHandler creates a new vision handler
func NewVisionHandler(visionClient *vision.Client) *VisionHandler {
	return &VisionHandler{
		visionClient: visionClient,
		maxDimension: imageutil.DefaultMaxDimension,
	}
}

// DetectFood handles the POST /v1/vision/detect endpoint
// @Summary Detect food items in a photo
// @Description Forwards the uploaded image to the food detection service and relays its response
// @Tags vision
// @Accept multipart/form-data
// @Produce json
// @Param image formData file true "Food photo"
// @Success 200 {string} string "Detection result from the analysis service"
// @Failure 400 {object} model.ErrorResponse "No image uploaded"
// @Failure 502 {object} model.ErrorResponse "Analysis service failure"
// @Router /v1/vision/detect [post]
func (h *VisionHandler) DetectFood(c *gin.Context) {
	imageData, err := readFormFile(c, "image")
	if err != nil {
		respondBadRequest(c, "No image uploaded", newErrorDetail("image", err.Error()))
		return
	}

	imageData = h.downscale(c, imageData)

	result, err := h.visionClient.DetectFood(c.Request.Context(), imageData)
	if err != nil {
		logError(c, "food_detection_failed", err)
		respondBadGateway(c, ErrUpstreamFailure)
		return
	}

	c.Data(http.StatusOK, "application/json", result)
}

// EstimateCalories handles the POST /v1/vision/calorie endpoint
// @Summary Estimate calories from a photo
// @Description Forwards the uploaded image and meal context to the calorie estimation service and relays its response
// @Tags vision
// @Accept multipart/form-data
// @Produce json
// @Param image formData file true "Food photo"
// @Param data formData string true "Meal context JSON"
// @Success 200 {string} string "Estimation result from the analysis service"
// @Failure 400 {object} model.ErrorResponse "Missing image or data part"
// @Failure 502 {object} model.ErrorResponse "Analysis service failure"
// @Router /v1/vision/calorie [post]
func (h *VisionHandler) EstimateCalories(c *gin.Context) {
	imageData, err := readFormFile(c, "image")
	if err != nil {
		respondBadRequest(c, "No image uploaded", newErrorDetail("image", err.Error()))
		return
	}

	data := c.PostForm("data")
	if data == "" {
		respondBadRequest(c, "No JSON data uploaded", newErrorDetail("data", "meal context is required"))
		return
	}

	imageData = h.downscale(c, imageData)

	result, err := h.visionClient.EstimateCalories(c.Request.Context(), imageData, []byte(data))
	if err != nil {
		logError(c, "calorie_estimation_failed", err)
		respondBadGateway(c, ErrUpstreamFailure)
		return
	}

	c.Data(http.StatusOK, "application/json", result)
}

// downscale shrinks oversized uploads before forwarding. A photo that
// cannot be decoded is forwarded as-is and left for the analysis
// service to reject.
func (h *VisionHandler) downscale(c *gin.Context, imageData []byte) []byte {
	resized, err := imageutil.Downscale(imageData, h.maxDimension)
	if err != nil {
		logError(c, "image_downscale_skipped", err)
		return imageData
	}
	return resized
}
