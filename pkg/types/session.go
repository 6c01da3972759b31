package types

// Name holds the display name the remote API attaches to users.
type Name struct {
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
}

// Session is the persisted authenticated user. A nil *Session means signed out.
type Session struct {
	ID       *int   `json:"id,omitempty"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
	Name     *Name  `json:"name,omitempty"`
	Token    string `json:"token,omitempty"`
}

// DisplayName prefers the first/last name pair and falls back to the username.
func (s *Session) DisplayName() string {
	if s == nil {
		return ""
	}
	if s.Name != nil {
		full := s.Name.Firstname
		if s.Name.Lastname != "" {
			full += " " + s.Name.Lastname
		}
		if full != "" {
			return full
		}
	}
	return s.Username
}

// Clone returns a deep copy. A nil session clones to nil.
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	out := *s
	if s.ID != nil {
		id := *s.ID
		out.ID = &id
	}
	if s.Name != nil {
		name := *s.Name
		out.Name = &name
	}
	return &out
}

// LoginRequest carries credentials for the remote login endpoint.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// RegisterRequest carries the sign-up form.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}
