package schema

// UserAccountTable represents the 'users.account' table
type UserAccountTable struct {
	Table       string
	ID          string
	Username    string
	Email       string
	Bio         string
	Role        string
	IsStaff     string
	IsSuperuser string
	IsActive    string
	CreatedAt   string
	UpdatedAt   string
}

// UserAccount is the schema definition for users.account
var UserAccount = UserAccountTable{
	Table:       "users.account",
	ID:          "id",
	Username:    "username",
	Email:       "email",
	Bio:         "bio",
	Role:        "role",
	IsStaff:     "isstaff",
	IsSuperuser: "issuperuser",
	IsActive:    "isactive",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
}
