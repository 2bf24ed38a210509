package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	profileUC "github.com/khoahotran/skillmatch/internal/application/usecase/profile"
	"github.com/khoahotran/skillmatch/internal/domain/account"
	"github.com/khoahotran/skillmatch/internal/domain/profile"
	"github.com/khoahotran/skillmatch/pkg/apperror"
	"github.com/khoahotran/skillmatch/pkg/logger"
)

type ProfileHandler struct {
	getProfileUseCase    *profileUC.GetProfileUseCase
	updateProfileUseCase *profileUC.UpdateProfileUseCase
	resumeProfileUseCase *profileUC.ResumeProfileUseCase
	logger               logger.Logger
}

func NewProfileHandler(
	getUC *profileUC.GetProfileUseCase,
	updateUC *profileUC.UpdateProfileUseCase,
	resumeUC *profileUC.ResumeProfileUseCase,
	log logger.Logger,
) *ProfileHandler {
	return &ProfileHandler{
		getProfileUseCase:    getUC,
		updateProfileUseCase: updateUC,
		resumeProfileUseCase: resumeUC,
		logger:               log,
	}
}

func (h *ProfileHandler) GetProfile(c *gin.Context) {
	sess, ok := GetSessionFromGinContext(c)
	if !ok {
		c.Error(apperror.NewNotAuthenticated("session not found in context"))
		return
	}

	output, err := h.getProfileUseCase.Execute(c.Request.Context(), profileUC.GetProfileInput{AccountID: sess.AccountID})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, ProfileResponse{Success: true, Profile: ToProfileDTO(output.Profile)})
}

func (h *ProfileHandler) UpdateFreelancer(c *gin.Context) {
	h.update(c, account.RoleFreelancer)
}

func (h *ProfileHandler) UpdateCompany(c *gin.Context) {
	h.update(c, account.RoleCompany)
}

// update only accepts the form matching the session's role.
func (h *ProfileHandler) update(c *gin.Context, role account.Role) {
	sess, ok := GetSessionFromGinContext(c)
	if !ok {
		c.Error(apperror.NewNotAuthenticated("session not found in context"))
		return
	}
	if sess.Role != role {
		c.Error(apperror.NewPermissionDenied("this form is for " + string(role) + " accounts"))
		return
	}

	var form profile.FormState
	if err := c.ShouldBindJSON(&form); err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body for profile update", err))
		return
	}

	output, err := h.updateProfileUseCase.Execute(c.Request.Context(), profileUC.UpdateProfileInput{
		AccountID: sess.AccountID,
		Role:      sess.Role,
		Form:      form,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, ProfileResponse{
		Success:  true,
		Profile:  ToProfileDTO(output.Profile),
		IntentID: intentID(output.IntentID),
	})
}

func (h *ProfileHandler) ResumeProfile(c *gin.Context) {
	sess, ok := GetSessionFromGinContext(c)
	if !ok {
		c.Error(apperror.NewNotAuthenticated("session not found in context"))
		return
	}

	var req resumeRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.Error(apperror.NewInvalidInput("invalid JSON body for profile resume", err))
			return
		}
	}

	output, err := h.resumeProfileUseCase.Execute(c.Request.Context(), profileUC.ResumeProfileInput{
		AccountID:       sess.AccountID,
		NewPassword:     req.NewPassword,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		c.Error(err)
		return
	}

	resumed := make([]string, 0, len(output.Resumed))
	for _, s := range output.Resumed {
		resumed = append(resumed, string(s))
	}
	c.JSON(http.StatusOK, ProfileResponse{
		Success:  true,
		Profile:  ToProfileDTO(output.Profile),
		IntentID: intentID(output.IntentID),
		Resumed:  resumed,
	})
}

func intentID(id uuid.UUID) string {
	if id == uuid.Nil {
		return ""
	}
	return id.String()
}
