package model

// Employee is the single resource exposed by the API.
// ID is assigned by the storage backend on creation and never changes afterwards.
type Employee struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Department string `json:"department"`
}

// Apply copies the mutable fields from src, leaving the identifier untouched.
// All three fields are overwritten, including with empty values.
func (e *Employee) Apply(src Employee) {
	e.Name = src.Name
	e.Email = src.Email
	e.Department = src.Department
}
