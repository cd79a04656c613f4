package request_models

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6,max=15"`
}

type SignUpRequest struct {
	Name       string `json:"name" binding:"required,min=6,max=15"`
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required,min=6,max=15"`
	Repassword string `json:"repassword" binding:"required,eqfield=Password"`
}

type RequestResetEmail struct {
	Email string `json:"email" binding:"required,email"`
}

type ResetPasswordRequest struct {
	Email      string `json:"email" binding:"required,email"`
	Sign       string `json:"sign" binding:"required"`
	Password   string `json:"password" binding:"required,min=6,max=15"`
	Repassword string `json:"repassword" binding:"required,eqfield=Password"`
}

type VerifyEmailRequest struct {
	Sign string `json:"sign" binding:"required"`
}
