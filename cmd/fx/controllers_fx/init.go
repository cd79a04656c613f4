package controllers_fx

import (
	"go.uber.org/fx"

	"scaffold/internal/api/controllers"
)

var Module = fx.Options(
	fx.Provide(controllers.NewAccountController))
