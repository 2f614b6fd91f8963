package handler

import (
	"encoding/json"
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/kencs/dietadvisor-backend/internal/middleware"
	"github.com/kencs/dietadvisor-backend/internal/model"
	"github.com/kencs/dietadvisor-backend/internal/repository"
	"github.com/kencs/dietadvisor-backend/internal/service"
)

// ProfileHandler handles HTTP requests for profile operations. Identity
// verification happens in the auth middleware; every handler here runs
// with a verified identity already in the request context.
type ProfileHandler struct {
	profileService service.ProfileService
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(profileService service.ProfileService) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
	}
}

// Create handles the POST /v1/users endpoint
// @Summary Create the caller's profile
// @Description Creates a nutrition profile bound to the verified identity. Identity fields in the payload are ignored.
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body model.ProfileRequest true "Profile payload"
// @Success 201 {object} model.ProfileResponse "Created profile"
// @Failure 400 {object} model.ErrorResponse "Missing token or malformed payload"
// @Failure 401 {object} model.ErrorResponse "Token could not be verified"
// @Failure 409 {object} model.ErrorResponse "Profile already exists"
// @Router /v1/users [post]
func (h *ProfileHandler) Create(c *gin.Context) {
	ident := middleware.IdentityFromContext(c)
	if ident == nil {
		respondUnauthorized(c, "User not authenticated")
		return
	}

	var req model.ProfileRequest
	if err := json.NewDecoder(c.Request.Body).Decode(&req); err != nil {
		respondBadRequest(c, ErrInvalidInput, newErrorDetail("body", err.Error()))
		return
	}

	profile, err := h.profileService.CreateProfile(c.Request.Context(), ident, &req)
	if err != nil {
		if errors.Is(err, repository.ErrProfileExists) {
			respondConflict(c, ErrAlreadyExists)
			return
		}
		// Fail-safe, not fail-silent: anything else surfaces with its message
		respondBadRequest(c, err.Error())
		return
	}

	var resp model.ProfileResponse
	resp.FromDomain(profile)
	respondCreated(c, resp)
}

// Get handles the GET /v1/profile endpoint
// @Summary Get the caller's profile
// @Description Returns the profile owned by the verified identity
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.ProfileResponse "Profile"
// @Failure 400 {object} model.ErrorResponse "Missing token"
// @Failure 401 {object} model.ErrorResponse "Token could not be verified"
// @Failure 404 {object} model.ErrorResponse "No profile stored"
// @Router /v1/profile [get]
func (h *ProfileHandler) Get(c *gin.Context) {
	ident := middleware.IdentityFromContext(c)
	if ident == nil {
		respondUnauthorized(c, "User not authenticated")
		return
	}

	if !h.matchDiscriminator(c) {
		return
	}

	profile, err := h.profileService.GetProfile(c.Request.Context(), ident)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			respondNotFound(c, ErrResourceNotFound)
			return
		}
		respondBadRequest(c, err.Error())
		return
	}

	var resp model.ProfileResponse
	resp.FromDomain(profile)
	respondOK(c, resp)
}

// Update handles the PUT /v1/profile endpoint
// @Summary Replace the caller's profile
// @Description Replaces the entire stored profile. No profile is created when none exists.
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body model.ProfileRequest true "Replacement profile payload"
// @Success 200 {object} model.SuccessResponse "Profile replaced"
// @Failure 400 {object} model.ErrorResponse "Missing token or malformed payload"
// @Failure 401 {object} model.ErrorResponse "Token could not be verified"
// @Failure 404 {object} model.ErrorResponse "No profile stored"
// @Router /v1/profile [put]
func (h *ProfileHandler) Update(c *gin.Context) {
	ident := middleware.IdentityFromContext(c)
	if ident == nil {
		respondUnauthorized(c, "User not authenticated")
		return
	}

	if !h.matchDiscriminator(c) {
		return
	}

	var req model.ProfileRequest
	if err := json.NewDecoder(c.Request.Body).Decode(&req); err != nil {
		respondBadRequest(c, ErrInvalidInput, newErrorDetail("body", err.Error()))
		return
	}

	if _, err := h.profileService.UpdateProfile(c.Request.Context(), ident, &req); err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			respondNotFound(c, ErrResourceNotFound)
			return
		}
		respondBadRequest(c, err.Error())
		return
	}

	respondOK(c, model.SuccessResponse{Status: "OK", Message: "Profile updated successfully"})
}

// Delete handles the DELETE /v1/profile endpoint
// @Summary Delete the caller's profile
// @Description Physically removes the profile owned by the verified identity
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.SuccessResponse "Profile deleted"
// @Failure 400 {object} model.ErrorResponse "Missing token"
// @Failure 401 {object} model.ErrorResponse "Token could not be verified"
// @Failure 404 {object} model.ErrorResponse "No profile stored"
// @Router /v1/profile [delete]
func (h *ProfileHandler) Delete(c *gin.Context) {
	ident := middleware.IdentityFromContext(c)
	if ident == nil {
		respondUnauthorized(c, "User not authenticated")
		return
	}

	if !h.matchDiscriminator(c) {
		return
	}

	if _, err := h.profileService.DeleteProfile(c.Request.Context(), ident); err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			respondNotFound(c, ErrResourceNotFound)
			return
		}
		respondBadRequest(c, err.Error())
		return
	}

	respondOK(c, model.SuccessResponse{Status: "OK", Message: "Profile deleted successfully"})
}

// matchDiscriminator guards the legacy /user/:userName routes: a caller
// holding a valid token for identity A must not address identity B's
// record by guessing a path parameter. The identity-scoped routes carry
// no parameter and skip this entirely. Returns false after responding
// when the check fails.
func (h *ProfileHandler) matchDiscriminator(c *gin.Context) bool {
	name := c.Param("userName")
	if name == "" {
		return true
	}

	ident := middleware.IdentityFromContext(c)
	if ident == nil || name != ident.Name {
		respondUnauthorized(c, ErrIdentityMismatch)
		return false
	}
	return true
}
