package main

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/epquotient/epq/internal/content"
	"github.com/epquotient/epq/internal/database"
	"github.com/epquotient/epq/internal/middleware"
	"github.com/epquotient/epq/pkg/models"
)

type profileRequest struct {
	Role            string  `json:"role" binding:"required"`
	SeniorityLevel  string  `json:"seniority_level" binding:"required"`
	YearsExperience *int    `json:"years_experience"`
	Industry        *string `json:"industry"`
	CompanySize     *string `json:"company_size"`
	PrimaryGoal     *string `json:"primary_goal"`
}

func (api *API) createProfile(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	var req profileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "role and seniority_level are required"})
		return
	}

	profile := &models.Profile{
		ID:              "profile_" + uuid.NewString()[:12],
		UserID:          userID,
		Role:            req.Role,
		SeniorityLevel:  req.SeniorityLevel,
		YearsExperience: req.YearsExperience,
		Industry:        req.Industry,
		CompanySize:     req.CompanySize,
		PrimaryGoal:     req.PrimaryGoal,
	}

	if err := api.repo.UpsertProfile(c.Request.Context(), profile); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save profile"})
		return
	}

	c.JSON(http.StatusOK, profile)
}

func (api *API) getProfile(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	profile, err := api.repo.GetProfile(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusOK, gin.H{"has_profile": false})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"has_profile": true, "profile": profile})
}

type coachingRequestBody struct {
	Name           string  `json:"name" binding:"required"`
	Email          string  `json:"email" binding:"required,email"`
	Goal           string  `json:"goal" binding:"required"`
	PreferredTimes string  `json:"preferred_times"`
	Notes          string  `json:"notes"`
	ReportID       *string `json:"report_id"`
}

func (api *API) createCoachingRequest(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	var req coachingRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name, email and goal are required"})
		return
	}

	cr := &models.CoachingRequest{
		UserID:         userID,
		Name:           req.Name,
		Email:          req.Email,
		Goal:           req.Goal,
		PreferredTimes: req.PreferredTimes,
		Notes:          req.Notes,
		ReportID:       req.ReportID,
	}

	if err := api.repo.CreateCoachingRequest(c.Request.Context(), cr); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit coaching request"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"request_id": cr.ID})
}

func (api *API) simulatorScenarios(c *gin.Context) {
	c.JSON(http.StatusOK, content.CurrentScenarios(time.Now().UTC()))
}

func (api *API) trainingModules(c *gin.Context) {
	c.JSON(http.StatusOK, content.CurrentModules(time.Now().UTC()))
}

func (api *API) trainingModuleContent(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	moduleID := c.Param("id")

	profile, err := api.repo.GetProfile(c.Request.Context(), userID)
	if err != nil && !errors.Is(err, database.ErrNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load profile"})
		return
	}

	module, err := api.generator.GenerateModule(c.Request.Context(), moduleID, profile)
	if err != nil {
		api.log.WithField("module_id", moduleID).ErrorWithErr("module generation failed", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate module content"})
		return
	}

	c.JSON(http.StatusOK, module)
}

func (api *API) dailyTip(c *gin.Context) {
	c.JSON(http.StatusOK, content.CurrentTip(time.Now().UTC()))
}

func (api *API) tedTalks(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"talks": content.TEDTalks()})
}
