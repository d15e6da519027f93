package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/medibill/billing-api/internal/application/service"
	"github.com/medibill/billing-api/internal/presentation/http/dto/response"
)

// ProfileHandler handles store-profile HTTP requests
type ProfileHandler struct {
	profileService *service.ProfileService
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(profileService *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// GetProfile retrieves the store profile
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	profile, err := h.profileService.GetProfile(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Profile retrieved successfully", profile)
}

// UpdateProfile updates the store profile
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	var req struct {
		StoreName   string `json:"store_name" binding:"required"`
		Address     string `json:"address"`
		Phone       string `json:"phone"`
		AltPhone    string `json:"alt_phone"`
		TaxID       string `json:"tax_id"`
		ManagerName string `json:"manager_name"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	profile, err := h.profileService.UpdateProfile(c.Request.Context(), &service.UpdateProfileInput{
		StoreName:   req.StoreName,
		Address:     req.Address,
		Phone:       req.Phone,
		AltPhone:    req.AltPhone,
		TaxID:       req.TaxID,
		ManagerName: req.ManagerName,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Profile updated successfully", profile)
}
