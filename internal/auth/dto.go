package auth

import "github.com/ishoep/pixelpage-backend/internal/users"

// RegisterInput is the signup payload.
type RegisterInput struct {
	Email                string `json:"email"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"passwordConfirmation"`
	DisplayName          string `json:"displayName"`
}

// LoginInput is the credential payload.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RefreshInput rotates an expired session.
type RefreshInput struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// TokenPairDTO is returned on login and refresh.
type TokenPairDTO struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// SessionDTO bundles tokens with the authenticated profile.
type SessionDTO struct {
	User   users.UserDTO `json:"user"`
	Tokens TokenPairDTO  `json:"tokens"`
}
