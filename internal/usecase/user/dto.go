package user

// CreateUserRequest represents the request payload for creating a new user.
// Password and UserName presence is checked explicitly by the usecase so
// that the email conflict check runs first.
type CreateUserRequest struct {
	FirstName    string `validate:"required,max=100"`
	LastName     string `validate:"omitempty,max=100"`
	Email        string `validate:"required,email"`
	Password     string
	UserName     string `validate:"omitempty,max=100"`
	ProfilePhoto string
	Bio          string
}

// CreateUserResponse represents the persisted record after creating a user.
// Password holds the stored hash, never the plaintext.
type CreateUserResponse struct {
	User User
}

// GetUserRequest represents the request payload for retrieving a user by ID.
type GetUserRequest struct {
	ID int64
}

// GetUserByUsernameRequest represents the request payload for retrieving
// a user by username.
type GetUserByUsernameRequest struct {
	UserName string
}

// GetUserResponse represents the response payload for user details.
type GetUserResponse struct {
	User User
}

// ListUsersResponse represents the response payload for user listing.
type ListUsersResponse struct {
	Users []User
}

// DeleteUserRequest represents the request payload for deleting a user.
type DeleteUserRequest struct {
	ID int64
}

// DeleteUserResponse represents the response payload after deleting a user.
type DeleteUserResponse struct {
	Deleted int64
}

// User represents a user DTO (Data Transfer Object) for API responses.
type User struct {
	ID           int64
	FirstName    string
	LastName     string
	Email        string
	Password     string
	UserName     string
	ProfilePhoto string
	Bio          string
}
