package apperr

// Field-scoped error messages. Non-field errors go under "non_field".
// The admin-login reasons carry their own keys so that accumulating
// both into one explain map keeps both.
var (
	UserExists        = map[string]string{"email": "User already exists"}
	UserNotExists     = map[string]string{"non_field": "User doesn't exist"}
	FileNotExists     = map[string]string{"non_field": "File doesn't exist"}
	UserNotActive     = map[string]string{"non_field": "User is not active"}
	AdminNotActive    = map[string]string{"is_active": "User is not active"}
	AdminNotAdmin     = map[string]string{"is_superuser": "User is not admin"}
	InvalidToken      = map[string]string{"non_field": "Invalid JWT"}
	WrongToken        = map[string]string{"non_field": "Wrong JWT type"}
	WrongTokenHeader  = map[string]string{"non_field": "Wrong JWT header"}
	IncorrectPassword = map[string]string{"password": "Incorrect password"}
	AuthNeeded        = map[string]string{"non_field": "You need to be logged"}
)
