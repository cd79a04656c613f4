package api

import (
	"github.com/gin-gonic/gin"

	"scaffold/internal/api/controllers"
	"scaffold/pkg/logger"
	"scaffold/pkg/middleware"
	"scaffold/pkg/utils"
)

func NewRouter(accountController *controllers.AccountController, issuer *utils.TokenIssuer, log logger.Logger) *gin.Engine {
	utils.UseJSONFieldNames()

	r := gin.New()
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.RequestLogger(log))
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware())

	RegisterRoutes(r, accountController, issuer)
	return r
}

func RegisterRoutes(r *gin.Engine, accountController *controllers.AccountController, issuer *utils.TokenIssuer) {
	r.POST("/register", accountController.Register)
	r.POST("/login", accountController.Login)
	r.POST("/verification", accountController.VerifyEmail)

	passwordGroup := r.Group("/password")
	passwordGroup.POST("/email", accountController.SendResetEmail)
	passwordGroup.POST("/reset", accountController.ResetPassword)

	userGroup := r.Group("/user", middleware.JWTAuthMiddleware(issuer))
	userGroup.GET("/profile", accountController.GetProfile)
	userGroup.POST("/verify-email/send", accountController.SendVerifyEmail)
}
