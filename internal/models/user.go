package models

type User struct {
	BaseModel
	Username     string `gorm:"uniqueIndex;not null" json:"username"`
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`

	// Relations
	Subscription *Subscription `gorm:"foreignKey:UserID" json:"subscription,omitempty"`
	Trades       []Trade       `gorm:"foreignKey:UserID" json:"-"`
}
