package models

// LoginResponse carries the issued token and the signed-in user.
type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// ApplyBlueprintsResponse reports how many tasks an apply run created.
type ApplyBlueprintsResponse struct {
	Created int    `json:"created"`
	Week    string `json:"week"` // Monday of the expanded week
}
