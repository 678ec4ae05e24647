package model

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents a user record as stored in the users collection.
// It is never serialized to a client directly; use Public().
type User struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"` // always stored lowercase
	PasswordHash string `json:"password_hash"`
	Role         string `json:"role"`
}

// PublicUser is the client-facing projection of a User. It has no
// password hash field, so the hash cannot leak through serialization.
type PublicUser struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Public returns the client-facing projection of the user.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Role:  u.Role,
	}
}

// RegisterRequest is the self-registration request body
type RegisterRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=60"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6,max=128"`
}

// LoginRequest is the login request body
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6,max=128"`
}

// AdminCreateUserRequest is the admin-only user creation request body
type AdminCreateUserRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=60"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6,max=128"`
	Role     string `json:"role" binding:"omitempty,oneof=admin user"`
}
