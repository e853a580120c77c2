package pages

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/FACorreiaa/go-petportal/internal/app/models"
)

// LoginPage renders the sign-in form. failure is nil on first render.
func LoginPage(failure *models.ActionFailure) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		f := orEmpty(failure)
		h := newWriter(ctx, w)
		h.raw("<section class=\"mx-auto max-w-md space-y-6\"><h1 class=\"text-2xl font-bold\">Sign in</h1>")
		h.alert("error", firstNonEmpty(f.APIError, f.Error))
		h.raw("<form method=\"post\" action=\"/login\" class=\"space-y-4\">")
		h.input("email", "email", "Email", f.FormData["email"], f.Errors["email"], "autocomplete", "email", "required", "required")
		h.input("password", "password", "Password", "", f.Errors["password"], "autocomplete", "current-password", "required", "required")
		h.submit("Sign in", "w-full")
		h.raw("</form><p class=\"text-sm text-gray-600\">No account yet? <a href=\"/register\" class=\"text-indigo-600 hover:underline\">Register</a></p></section>")
		return h.err
	})
}

// RegisterPage renders the registration form, echoing back submitted values
// and field errors.
func RegisterPage(failure *models.ActionFailure) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		f := orEmpty(failure)
		h := newWriter(ctx, w)
		h.raw("<section class=\"mx-auto max-w-md space-y-6\"><h1 class=\"text-2xl font-bold\">Create an account</h1>")
		h.alert("error", firstNonEmpty(f.APIError, f.Error))
		h.raw("<form method=\"post\" action=\"/register\" class=\"space-y-4\">")
		h.input("text", "username", "Username", f.FormData["username"], f.Errors["username"], "autocomplete", "username")
		h.input("email", "email", "Email", f.FormData["email"], f.Errors["email"], "autocomplete", "email")
		h.input("password", "password", "Password", "", f.Errors["password"], "autocomplete", "new-password")

		role := models.Role(f.FormData["role"])
		h.raw("<div class=\"space-y-1\"><label for=\"role\"")
		h.attr("class", labelClass)
		h.raw(">Role</label><select id=\"role\" name=\"role\"")
		h.class(inputClass)
		h.raw(">")
		for _, r := range []models.Role{models.RoleUser, models.RoleAdmin} {
			h.raw("<option")
			h.attr("value", string(r))
			if r == role {
				h.raw(" selected")
			}
			h.raw(">")
			h.text(Label(string(r)))
			h.raw("</option>")
		}
		h.raw("</select></div>")

		h.submit("Register", "w-full")
		h.raw("</form><p class=\"text-sm text-gray-600\">Already registered? <a href=\"/login\" class=\"text-indigo-600 hover:underline\">Sign in</a></p></section>")
		return h.err
	})
}

func orEmpty(f *models.ActionFailure) models.ActionFailure {
	if f == nil {
		return models.ActionFailure{}
	}
	return *f
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
