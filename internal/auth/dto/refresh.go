package dto

type RefreshInput struct {
	RefreshToken string `json:"refresh_token"`
	Fingerprint  string `json:"-"`
	IPAddress    string `json:"-"`
	UserAgent    string `json:"-"`
}

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

type LogoutInput struct {
	RefreshToken string `json:"refresh_token"`
}
