package models

// Credentials is what the auth forms collect. Name is only sent on signup.
type Credentials struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AdminAuthRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type User struct {
	ID    string `json:"_id"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

type AuthResponse struct {
	Message string `json:"message,omitempty"`
	User    *User  `json:"user"`
}

// AdminAuthResponse is loosely shaped; the backend only promises a JSON object.
type AdminAuthResponse struct {
	Message string `json:"message,omitempty"`
	Token   string `json:"token,omitempty"`
	ID      string `json:"id,omitempty"`
}

type Session struct {
	UserID     string `json:"userId,omitempty"`
	MovieTitle string `json:"movieTitle,omitempty"`
}

func (s Session) LoggedIn() bool {
	return s.UserID != ""
}
