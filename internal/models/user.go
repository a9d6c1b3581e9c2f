package models

import "time"

// User is a registered author or reader. PasswordHash never leaves the server.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Bio          string    `json:"bio"`
	ProfilePic   string    `json:"profilePic"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Profile is the self-view returned by /user/me and /user/updateDetail
type Profile struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Details    string `json:"details"`
	ProfilePic string `json:"profilePic"`
	Email      string `json:"email"`
}

// ProfileOf projects a user into its self-view
func ProfileOf(u *User) Profile {
	return Profile{
		ID:         u.ID,
		Name:       u.Name,
		Details:    u.Bio,
		ProfilePic: u.ProfilePic,
		Email:      u.Email,
	}
}

// UserSummary is a user search hit. Fields outside the query's selection stay empty.
type UserSummary struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

type ProfileResponse struct {
	User             User   `json:"user"`
	IsAuthorizedUser bool   `json:"isAuthorizedUser"`
	Message          string `json:"message"`
}

type SignupRequest struct {
	Name     string `json:"name" validate:"max=100"`
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

type SigninRequest struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

// UpdateProfileRequest leaves nil fields untouched
type UpdateProfileRequest struct {
	Name     *string `json:"name" validate:"omitnil,notblank,max=100"`
	Bio      *string `json:"bio" validate:"omitnil,max=2000"`
	ImageURL *string `json:"imageUrl" validate:"omitempty,url,max=2048"`
}

type AuthResponse struct {
	JWT string `json:"jwt"`
}
