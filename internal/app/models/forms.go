package models

import "strconv"

// LoginForm is the submitted sign-in form. It is also the upstream login body.
type LoginForm struct {
	Email    string `form:"email" json:"email" validate:"notblank"`
	Password string `form:"password" json:"password" validate:"required"`
}

// Echo returns the fields that are safe to send back to the form.
func (f LoginForm) Echo() map[string]string {
	return map[string]string{"email": f.Email}
}

// RegisterForm is the submitted registration form. It is also the upstream
// registration body.
type RegisterForm struct {
	Username string `form:"username" json:"username" validate:"notblank,min=3,max=50"`
	Email    string `form:"email" json:"email" validate:"notblank,simple_email"`
	Password string `form:"password" json:"password" validate:"required,min=6"`
	Role     Role   `form:"role" json:"role" validate:"oneof=user admin"`
}

func (f RegisterForm) Echo() map[string]string {
	return map[string]string{
		"username": f.Username,
		"email":    f.Email,
		"role":     string(f.Role),
	}
}

// PetForm is the add/update pet form. Age is coerced to a number at binding
// time; an empty age binds as zero.
type PetForm struct {
	ID      string `form:"id"`
	Name    string `form:"name"`
	Species string `form:"species"`
	Breed   string `form:"breed"`
	Age     int    `form:"age" validate:"min=0"`
}

func (f PetForm) Echo() map[string]string {
	return map[string]string{
		"name":    f.Name,
		"species": f.Species,
		"breed":   f.Breed,
		"age":     strconv.Itoa(f.Age),
	}
}

func (f PetForm) Input() PetInput {
	return PetInput{
		Name:    f.Name,
		Species: f.Species,
		Breed:   f.Breed,
		Age:     f.Age,
	}
}
