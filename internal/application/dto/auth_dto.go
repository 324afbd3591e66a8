package dto

// LoginRequest credenciales para POST /api/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse token emitido por el servidor.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
}
