package models

// User represents the USERS table. Actor identity for every workflow
// operation resolves through this record.
type User struct {
	UserID      string `db:"USER_ID" json:"userId"`
	Username    string `db:"USERNAME" json:"username"`
	Email       string `db:"EMAIL" json:"email"`
	Role        Role   `db:"ROLE" json:"role"`
	IsActive    bool   `db:"IS_ACTIVE" json:"isActive"`
	CreatedTime int64  `db:"CREATED_TIME" json:"createdTime"`
}

// Pharmacy represents the PHARMACIES table.
type Pharmacy struct {
	PharmacyID  string `db:"PHARMACY_ID" json:"pharmacyId"`
	Name        string `db:"NAME" json:"name"`
	Address     string `db:"ADDRESS" json:"address"`
	City        string `db:"CITY" json:"city"`
	CreatedTime int64  `db:"CREATED_TIME" json:"createdTime"`
}
