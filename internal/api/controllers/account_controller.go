package controllers

import (
	"github.com/gin-gonic/gin"

	"scaffold/internal/models/request_models"
	"scaffold/internal/services"
	"scaffold/pkg/middleware"
	"scaffold/pkg/utils"
)

type AccountController struct {
	accountService services.AccountServiceInterface
}

func NewAccountController(accountService services.AccountServiceInterface) *AccountController {
	return &AccountController{
		accountService: accountService,
	}
}

// Register godoc
// @Summary Register a new account
// @Description Create an account, email a verification link and return the user with a token
// @Tags Accounts
// @Accept json
// @Produce json
// @Param request body request_models.SignUpRequest true "Registration payload"
// @Success 200 {object} utils.APIResponse
// @Failure 422 {object} utils.APIResponse
// @Router /register [post]
func (a *AccountController) Register(c *gin.Context) {
	var req request_models.SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationError(c, err)
		return
	}

	account, err := a.accountService.Register(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, account)
}

// Login godoc
// @Summary Login to an account
// @Tags Accounts
// @Accept json
// @Produce json
// @Param request body request_models.LoginRequest true "Login payload"
// @Success 200 {object} utils.APIResponse
// @Failure 422 {object} utils.APIResponse
// @Router /login [post]
func (a *AccountController) Login(c *gin.Context) {
	var req request_models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationError(c, err)
		return
	}

	account, err := a.accountService.Login(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, account)
}

// SendResetEmail godoc
// @Summary Email a password reset link
// @Tags Accounts
// @Accept json
// @Produce json
// @Param request body request_models.RequestResetEmail true "Reset email payload"
// @Success 200 {object} utils.APIResponse
// @Router /password/email [post]
func (a *AccountController) SendResetEmail(c *gin.Context) {
	var req request_models.RequestResetEmail
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationError(c, err)
		return
	}

	if err := a.accountService.SendResetEmail(c.Request.Context(), req.Email); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil)
}

// ResetPassword godoc
// @Summary Reset a password with an emailed sign
// @Tags Accounts
// @Accept json
// @Produce json
// @Param request body request_models.ResetPasswordRequest true "Reset payload"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Router /password/reset [post]
func (a *AccountController) ResetPassword(c *gin.Context) {
	var req request_models.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationError(c, err)
		return
	}

	if err := a.accountService.ResetPassword(c.Request.Context(), req); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil)
}

// SendVerifyEmail godoc
// @Summary Email a verification link to the signed-in user
// @Tags Accounts
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /user/verify-email/send [post]
func (a *AccountController) SendVerifyEmail(c *gin.Context) {
	if err := a.accountService.SendVerifyEmail(c.Request.Context(), c.GetString(middleware.UserIDKey)); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil)
}

// VerifyEmail godoc
// @Summary Confirm an email address
// @Tags Accounts
// @Accept json
// @Produce json
// @Param request body request_models.VerifyEmailRequest true "Verify payload"
// @Success 200 {object} utils.APIResponse
// @Router /verification [post]
func (a *AccountController) VerifyEmail(c *gin.Context) {
	var req request_models.VerifyEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationError(c, err)
		return
	}

	if err := a.accountService.VerifyEmail(c.Request.Context(), req.Sign); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil)
}

// GetProfile godoc
// @Summary Current user profile
// @Tags Accounts
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /user/profile [get]
func (a *AccountController) GetProfile(c *gin.Context) {
	account, err := a.accountService.GetProfile(c.Request.Context(), c.GetString(middleware.UserIDKey))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, account)
}
