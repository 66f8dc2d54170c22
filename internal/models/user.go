package models

import (
	"strings"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Gender values accepted on registration and profile updates.
const (
	GenderMale        = "male"
	GenderFemale      = "female"
	GenderUnspecified = "prefer not to say"
)

// ValidGender reports whether the supplied value is an accepted gender.
func ValidGender(value string) bool {
	switch value {
	case GenderMale, GenderFemale, GenderUnspecified:
		return true
	}
	return false
}

// User describes a registered account. The password hash, avatar bytes and
// token set never appear in serialized entity responses.
type User struct {
	BaseModel

	FirstName   string         `gorm:"not null" json:"first_name"`
	LastName    string         `gorm:"not null" json:"last_name"`
	DateOfBirth datatypes.Date `gorm:"not null" json:"date_of_birth"`
	Gender      string         `gorm:"not null" json:"gender"`
	PhoneNumber string         `json:"phone_number,omitempty"`
	Email       string         `gorm:"uniqueIndex;not null" json:"email"`
	Password    string         `gorm:"not null" json:"-"`
	Bio         string         `json:"bio,omitempty"`

	Avatar            []byte `gorm:"type:blob" json:"-"`
	AvatarContentType string `json:"-"`

	Tokens        []AuthToken `gorm:"foreignKey:UserID" json:"-"`
	HostedParties []Party     `gorm:"foreignKey:HostID" json:"-"`
	Requests      []Request   `gorm:"foreignKey:RequestorID" json:"-"`
}

// BeforeSave keeps the unique email column canonical.
func (u *User) BeforeSave(tx *gorm.DB) error {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	return nil
}

// HasAvatar reports whether avatar bytes are stored for the user.
func (u *User) HasAvatar() bool {
	return len(u.Avatar) > 0
}
