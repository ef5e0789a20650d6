package dto

import "github.com/princinho/taskbackend/utils"

type CredentialsDTO struct {
	Username string `json:"username" binding:"required,min=6,max=20"`
	Password string `json:"password" binding:"required,min=8,max=100"`
}

// Normalize brings the username to its stored form so the length rules
// apply to what is actually persisted.
func (d *CredentialsDTO) Normalize() {
	d.Username = utils.NormalizeUsername(d.Username)
}

type RefreshTokenDTO struct {
	RefreshToken string `json:"refreshToken"`
}
