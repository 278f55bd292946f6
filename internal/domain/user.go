package domain

type (
	UserId   = int64
	UserName = string
)

type User struct {
	Id       UserId
	Name     UserName
	Email    string
	PassHash string
}

// Credentials is what the login/register forms submit. Password here is the
// raw user input; it never reaches storage unhashed.
type Credentials struct {
	Name     UserName
	Password string
}
