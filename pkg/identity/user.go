package identity

// User is the profile record returned by the identity service. The client
// treats it as opaque: no field is interpreted beyond display.
type User struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Avatar string `json:"avatar,omitempty"`
}

// Grant is a successful authentication result: a bearer credential plus the
// profile it belongs to. The two always travel together.
type Grant struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
