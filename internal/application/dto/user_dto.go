package dto

// SignupRequest entrada para registro de usuario (password en texto, se hashea en use case).
type SignupRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// SignupResponse salida del registro.
type SignupResponse struct {
	Message string `json:"message"`
	UserID  string `json:"user_id"`
}

// LoginRequest entrada para login: email o username + password.
type LoginRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse salida con el token JWT.
type LoginResponse struct {
	Message  string `json:"message"`
	JWTToken string `json:"jwt_token"`
}
