package types

// ------------------------------
// Response Types
// ------------------------------

// TokenPair is returned by the JWT create endpoint.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// RefreshResponse is returned by the JWT refresh endpoint.
type RefreshResponse struct {
	Access string `json:"access"`
}

// Page is the paginated envelope every list endpoint returns.
type Page[T any] struct {
	Count    int     `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}
