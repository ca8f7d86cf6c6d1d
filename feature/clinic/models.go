package clinic

import (
	"time"

	"gorm.io/gorm"
)

// Doctor is a bookable practitioner.
type Doctor struct {
	ID         uint      `gorm:"column:id;primaryKey" json:"id"`
	Name       string    `gorm:"column:name;size:120;not null" json:"name"`
	Email      string    `gorm:"column:email;size:190;uniqueIndex;not null" json:"email"`
	Image      string    `gorm:"column:image;size:255" json:"image"`
	Speciality string    `gorm:"column:speciality;size:120" json:"speciality"`
	Degree     string    `gorm:"column:degree;size:120" json:"degree"`
	Experience string    `gorm:"column:experience;size:60" json:"experience"`
	About      string    `gorm:"column:about;type:text" json:"about"`
	Fees       int       `gorm:"column:fees" json:"fees"`
	Available  bool      `gorm:"column:available;not null" json:"available"`
	CreatedAt  time.Time `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt  time.Time `gorm:"column:updated_at" json:"updatedAt"`
}

// TableName overrides the table name.
func (Doctor) TableName() string {
	return "doctors"
}

// Patient is an end user of the booking app.
type Patient struct {
	ID        uint      `gorm:"column:id;primaryKey" json:"id"`
	Name      string    `gorm:"column:name;size:120;not null" json:"name"`
	Email     string    `gorm:"column:email;size:190;uniqueIndex;not null" json:"email"`
	Phone     string    `gorm:"column:phone;size:40" json:"phone"`
	Address   string    `gorm:"column:address;size:255" json:"address"`
	Gender    string    `gorm:"column:gender;size:20" json:"gender"`
	DOB       string    `gorm:"column:dob;size:20" json:"dob"`
	Image     string    `gorm:"column:image;size:255" json:"image"`
	CreatedAt time.Time `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updatedAt"`
}

// TableName keeps patients in the "users" table the user route group is named after.
func (Patient) TableName() string {
	return "users"
}

// Migrate creates or updates the tables used by the route groups.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Doctor{}, &Patient{})
}
