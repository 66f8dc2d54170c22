package models

// Party categories accepted at creation and on edits.
const (
	CategoryHouseParty    = "house party"
	CategoryBirthdayParty = "birthday party"
	CategoryMovieNight    = "movie night"
	CategoryOther         = "other"
)

// ValidCategory reports whether the supplied value is an accepted party category.
func ValidCategory(value string) bool {
	switch value {
	case CategoryHouseParty, CategoryBirthdayParty, CategoryMovieNight, CategoryOther:
		return true
	}
	return false
}

// Party is an event owned by its host. HostID is immutable after creation
// and every mutation is scoped to the host.
type Party struct {
	BaseModel

	Title       string `gorm:"not null" json:"title"`
	Description string `gorm:"not null" json:"description"`
	Address     string `gorm:"not null" json:"address"`
	Category    string `gorm:"not null" json:"category"`

	HostID string `gorm:"type:uuid;not null;index" json:"host_id"`
	Host   *User  `gorm:"foreignKey:HostID" json:"-"`

	Photos []PartyPhoto `gorm:"foreignKey:PartyID" json:"photos,omitempty"`
}
