package user

// User represents a user account in the system.
// Password always holds the bcrypt hash of the secret, never the
// plaintext: hashing happens once at creation time and the original
// value is discarded.
type User struct {
	ID           int64  // ID is the unique identifier for the user
	FirstName    string // FirstName is required
	LastName     string // LastName is optional
	Email        string // Email is the unique email address of the user
	Password     string // Password is the stored bcrypt hash
	UserName     string // UserName is the unique secondary lookup key
	ProfilePhoto string // ProfilePhoto is an optional photo URL
	Bio          string // Bio is optional free-form text
}
