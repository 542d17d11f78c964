package domain

// AuthSession es la sesion devuelta por el proveedor de auth tras un login por password.
type AuthSession struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	TokenType    string `json:"token_type,omitempty"`
	ExpiresIn    int64  `json:"expires_in,omitempty"`
	User         User   `json:"user"`
}
