package model

import "naturekids/shared/model"

const (
	TableName  = "users"
	EntityName = "user"

	FieldID          = "id"
	FieldUsername    = "username"
	FieldEmail       = "email"
	FieldPhoneNumber = "phone_number"
	FieldLocation    = "location"
	FieldDateOfBirth = "date_of_birth"
	FieldBio         = "bio"
	FieldModifiedAt  = "modified_at"
	FieldModifiedBy  = "modified_by"
)

// DemoIdentityID is the fixed id of the built-in demo account.
const DemoIdentityID = "1"

type User struct {
	ID          string `db:"id"`
	Username    string `db:"username"`
	Email       string `db:"email"`
	Password    string `db:"password"`
	PhoneNumber string `db:"phone_number"`
	Location    string `db:"location"`
	DateOfBirth string `db:"date_of_birth"`
	Bio         string `db:"bio"`
	model.Metadata
}

func (u User) Identity() Identity {
	return Identity{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		PhoneNumber: u.PhoneNumber,
		Location:    u.Location,
		DateOfBirth: u.DateOfBirth,
		Bio:         u.Bio,
	}
}

// Identity is what the session store persists for a signed-in user.
type Identity struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
	Location    string `json:"location"`
	DateOfBirth string `json:"date_of_birth"`
	Bio         string `json:"bio"`
}

func (i Identity) Empty() bool {
	return i.ID == "" || i.Username == ""
}

type Registration struct {
	Username    string
	Email       string
	Password    string
	PhoneNumber string
	Location    string
	DateOfBirth string
	Bio         string
}

// Profile is the editable part of a user. Email and password are not.
type Profile struct {
	Username    string
	PhoneNumber string
	Location    string
	DateOfBirth string
	Bio         string
}

func DemoIdentity(username string) Identity {
	return Identity{
		ID:          DemoIdentityID,
		Username:    username,
		Email:       "test@example.com",
		PhoneNumber: "1234567890",
		Location:    "Test Location",
		DateOfBirth: "2000-01-01",
		Bio:         "Test Bio",
	}
}
