package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"pocketledger/internal/repository"
	"pocketledger/internal/services"
)

// ProfileHandler handles profile-related requests.
type ProfileHandler struct {
	profileService services.ProfileServicer
	auditService   services.AuditServicer
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(profileService services.ProfileServicer, auditService services.AuditServicer) *ProfileHandler {
	return &ProfileHandler{profileService: profileService, auditService: auditService}
}

// CreateProfileRequest represents the request payload for creating a profile
type CreateProfileRequest struct {
	Name           string          `json:"name" binding:"required,notblank,max=64"`
	Description    string          `json:"description" binding:"max=64"`
	InitialBalance decimal.Decimal `json:"initial_balance" binding:"money"`
}

// UpdateProfileRequest represents the request payload for updating a profile.
// The balance is not part of it.
type UpdateProfileRequest struct {
	Name        *string `json:"name" binding:"omitempty,notblank,max=64"`
	Description *string `json:"description" binding:"omitempty,max=64"`
}

// CreateProfile handles the creation of a new profile
// @Summary     Create a profile
// @Description Create a money pool with an opening balance
// @Tags        profiles
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateProfileRequest true "Profile details"
// @Success     201 {object} models.Profile "Profile created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /profiles [post]
func (h *ProfileHandler) CreateProfile(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, invalidInput(err))
		return
	}

	profile, err := h.profileService.CreateProfile(c.Request.Context(), userID, req.Name, req.Description, req.InitialBalance)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(c.Request.Context(), userID, "CREATE_PROFILE", "profile", profile.ID, c.ClientIP(),
		map[string]interface{}{"name": profile.Name, "opening_balance": profile.OpeningBalance})

	c.JSON(http.StatusCreated, gin.H{"profile": profile})
}

// GetProfiles returns every profile of the user
// @Summary     List profiles
// @Tags        profiles
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array} models.Profile "Profiles"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /profiles [get]
func (h *ProfileHandler) GetProfiles(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	profiles, err := h.profileService.GetProfiles(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"profiles": profiles})
}

// GetProfileByID returns one profile
// @Summary     Get a profile
// @Tags        profiles
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Profile ID"
// @Success     200 {object} models.Profile "Profile"
// @Failure     400 {object} ErrorResponse "Invalid ID"
// @Failure     404 {object} ErrorResponse "Profile not found"
// @Router      /profiles/{id} [get]
func (h *ProfileHandler) GetProfileByID(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	profileID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	profile, err := h.profileService.GetProfileByID(c.Request.Context(), userID, profileID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"profile": profile})
}

// UpdateProfile renames or re-describes a profile
// @Summary     Update a profile
// @Description Update name and description. The balance cannot be set.
// @Tags        profiles
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string               true "Profile ID"
// @Param       request body UpdateProfileRequest true "Fields to update"
// @Success     200 {object} models.Profile "Profile updated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Profile not found"
// @Router      /profiles/{id} [put]
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	profileID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, invalidInput(err))
		return
	}

	profile, err := h.profileService.UpdateProfile(c.Request.Context(), userID, profileID, repository.ProfileFields{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(c.Request.Context(), userID, "UPDATE_PROFILE", "profile", profile.ID, c.ClientIP(),
		map[string]interface{}{"name": profile.Name, "description": profile.Description})

	c.JSON(http.StatusOK, gin.H{"profile": profile})
}

// DeleteProfile deletes a profile and all of its transactions
// @Summary     Delete a profile
// @Tags        profiles
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Profile ID"
// @Success     200 {object} MessageResponse "Profile deleted"
// @Failure     404 {object} ErrorResponse "Profile not found"
// @Failure     409 {object} ErrorResponse "Concurrent change, retry"
// @Failure     503 {object} ErrorResponse "Store unavailable"
// @Router      /profiles/{id} [delete]
func (h *ProfileHandler) DeleteProfile(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	profileID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.profileService.DeleteProfile(c.Request.Context(), userID, profileID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(c.Request.Context(), userID, "DELETE_PROFILE", "profile", profileID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, MessageResponse{Message: "Profile deleted successfully"})
}
