package dto

import (
	"naturekids/infras/jwt"
	"naturekids/internal/domains/identity/model"
	"naturekids/shared/constant"
	"naturekids/shared/timezone"
	"strings"
)

type LoginRequest struct {
	Username string `json:"username" validate:"notblank"`
	Password string `json:"password" validate:"notblank"`
}

type RegisterRequest struct {
	Username    string `json:"username"      validate:"notblank,max=50"`
	Email       string `json:"email"         validate:"required,email,max=100"`
	Password    string `json:"password"      validate:"required,min=6,max=72"`
	PhoneNumber string `json:"phone_number"  validate:"omitempty,max=20"`
	Location    string `json:"location"      validate:"omitempty,max=100"`
	DateOfBirth string `json:"date_of_birth" validate:"omitempty,bookingdate"`
	Bio         string `json:"bio"           validate:"omitempty,max=500"`
}

func (r *RegisterRequest) ToRegistration() model.Registration {
	return model.Registration{
		Username:    strings.TrimSpace(r.Username),
		Email:       strings.ToLower(strings.TrimSpace(r.Email)),
		Password:    r.Password,
		PhoneNumber: r.PhoneNumber,
		Location:    r.Location,
		DateOfBirth: r.DateOfBirth,
		Bio:         r.Bio,
	}
}

type UpdateProfileRequest struct {
	Username    string `json:"username"      validate:"notblank,max=50"`
	PhoneNumber string `json:"phone_number"  validate:"omitempty,max=20"`
	Location    string `json:"location"      validate:"omitempty,max=100"`
	DateOfBirth string `json:"date_of_birth" validate:"omitempty,bookingdate"`
	Bio         string `json:"bio"           validate:"omitempty,max=500"`
}

// ToProfile replaces every editable field; omitted fields are cleared.
func (u *UpdateProfileRequest) ToProfile() model.Profile {
	return model.Profile{
		Username:    strings.TrimSpace(u.Username),
		PhoneNumber: u.PhoneNumber,
		Location:    u.Location,
		DateOfBirth: u.DateOfBirth,
		Bio:         u.Bio,
	}
}

type IdentityResponse struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
	Location    string `json:"location"`
	DateOfBirth string `json:"date_of_birth"`
	Bio         string `json:"bio"`
}

func (i *IdentityResponse) FromModel(m model.Identity) {
	i.ID = m.ID
	i.Username = m.Username
	i.Email = m.Email
	i.PhoneNumber = m.PhoneNumber
	i.Location = m.Location
	i.DateOfBirth = m.DateOfBirth
	i.Bio = m.Bio
}

type AuthResponse struct {
	Token     string           `json:"token"`
	TokenType string           `json:"token_type"`
	ExpiresIn int64            `json:"expires_in"`
	ExpiresAt string           `json:"expires_at"`
	User      IdentityResponse `json:"user"`
}

func (a *AuthResponse) FromToken(token *jwt.Token, identity model.Identity) {
	a.Token = token.AccessToken
	a.TokenType = token.TokenType
	a.ExpiresIn = token.ExpiresIn
	a.ExpiresAt = timezone.Format(token.ExpiresAt, constant.DateFormat)
	a.User.FromModel(identity)
}
