package models

type Pet struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	Species       string `json:"species"`
	Breed         string `json:"breed"`
	Age           int    `json:"age"`
	OwnerID       int64  `json:"owner_id"`
	OwnerUsername string `json:"owner_username,omitempty"`
}

// PetInput is the body sent upstream when creating or updating a pet.
type PetInput struct {
	Name    string `json:"name"`
	Species string `json:"species"`
	Breed   string `json:"breed"`
	Age     int    `json:"age"`
}
