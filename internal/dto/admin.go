package dto

type AdminLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AdminLoginResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	Name         string `json:"name"`
}

type AdminRefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type AdminRefreshResponse struct {
	AccessToken string `json:"accessToken"`
}
