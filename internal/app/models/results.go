package models

// ActionResult is returned to the page after a successful form action.
type ActionResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	ID      string `json:"id,omitempty"`
}

// ActionFailure is returned, together with an HTTP status, when a form
// action could not complete. Exactly one of Error, Errors or APIError is set.
type ActionFailure struct {
	Error    string            `json:"error,omitempty"`
	Errors   map[string]string `json:"errors,omitempty"`
	APIError string            `json:"apiError,omitempty"`
	FormData map[string]string `json:"formData,omitempty"`
}

// DashboardData is the result of loading the dashboard page.
type DashboardData struct {
	User  User   `json:"user"`
	Pets  []Pet  `json:"pets"`
	Users []User `json:"users,omitempty"`
	Error string `json:"error,omitempty"`
}

// AdminData is the result of loading the admin page.
type AdminData struct {
	User  User   `json:"user"`
	Users []User `json:"users"`
	Error string `json:"error,omitempty"`
}
