package pages

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"

	"github.com/FACorreiaa/go-petportal/internal/app/models"
)

// DashboardPage renders the caller's pets, the add form and, for admins, the
// user directory. flash is a success message carried over from the last
// action; failure is the result of a rejected action, if any.
func DashboardPage(data models.DashboardData, flash string, failure *models.ActionFailure) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		f := orEmpty(failure)
		admin := data.User.Role.IsAdmin()

		h := newWriter(ctx, w)
		h.raw("<section class=\"space-y-8\"><header class=\"flex items-baseline justify-between\"><h1 class=\"text-2xl font-bold\">Welcome, ")
		h.text(data.User.Username)
		h.raw("</h1><span class=\"text-sm text-gray-500\" data-role>")
		h.text(Label(string(data.User.Role)))
		h.raw("</span></header>")

		h.alert("success", flash)
		h.alert("error", firstNonEmpty(f.APIError, f.Error))
		h.alert("error", data.Error)

		h.raw("<div class=\"space-y-3\"><h2 class=\"text-lg font-semibold\">")
		if admin {
			h.raw("All pets")
		} else {
			h.raw("Your pets")
		}
		h.raw("</h2>")
		if len(data.Pets) == 0 {
			h.raw("<p class=\"text-sm text-gray-500\" data-empty>No pets yet.</p>")
		} else {
			h.raw("<ul class=\"divide-y rounded border bg-white\" data-pets>")
			for _, pet := range data.Pets {
				petRow(h, pet, admin)
			}
			h.raw("</ul>")
		}
		h.raw("</div>")

		h.raw("<div class=\"space-y-3 rounded border bg-white p-4\"><h2 class=\"text-lg font-semibold\">Add a pet</h2>")
		h.raw("<form method=\"post\" action=\"/dashboard/pets\" class=\"grid grid-cols-2 gap-3\" data-form=\"add-pet\">")
		h.input("text", "name", "Name", f.FormData["name"], f.Errors["name"], "required", "required")
		h.input("text", "species", "Species", f.FormData["species"], f.Errors["species"], "required", "required")
		h.input("text", "breed", "Breed", f.FormData["breed"], f.Errors["breed"])
		h.input("number", "age", "Age", f.FormData["age"], f.Errors["age"], "min", "0")
		h.submit("Add pet", "col-span-2")
		h.raw("</form></div>")

		if admin && data.Users != nil {
			h.raw("<div class=\"space-y-3\"><h2 class=\"text-lg font-semibold\">Users</h2>")
			userTable(h, data.Users)
			h.raw("</div>")
		}

		h.raw("</section>")
		return h.err
	})
}

func petRow(h *htmlWriter, pet models.Pet, showOwner bool) {
	id := itoa(pet.ID)
	h.raw("<li class=\"flex flex-wrap items-end gap-3 p-3\"")
	h.attr("data-pet-id", id)
	h.raw("><div class=\"w-40\"><p class=\"font-medium\" data-pet-name>")
	h.text(pet.Name)
	h.raw("</p><p class=\"text-xs text-gray-500\">")
	h.text(Label(pet.Species))
	if pet.Breed != "" {
		h.text(" · " + pet.Breed)
	}
	h.text(", " + strconv.Itoa(pet.Age) + " yrs")
	h.raw("</p>")
	if showOwner && pet.OwnerUsername != "" {
		h.raw("<p class=\"text-xs text-gray-400\" data-owner>")
		h.text(pet.OwnerUsername)
		h.raw("</p>")
	}
	h.raw("</div>")

	h.raw("<form method=\"post\" class=\"flex flex-1 flex-wrap items-end gap-2\" data-form=\"update-pet\"")
	h.attr("action", "/dashboard/pets/"+id)
	h.raw(">")
	h.hidden("id", id)
	for _, field := range []struct{ typ, name, value string }{
		{"text", "name", pet.Name},
		{"text", "species", pet.Species},
		{"text", "breed", pet.Breed},
		{"number", "age", strconv.Itoa(pet.Age)},
	} {
		h.raw("<input")
		h.attr("type", field.typ)
		h.attr("name", field.name)
		h.attr("value", field.value)
		h.attr("aria-label", Label(field.name))
		h.class(inputClass, "w-28 px-2 py-1")
		h.raw(">")
	}
	h.submit("Save", "px-3 py-1")
	h.raw("</form>")

	h.raw("<form method=\"post\" data-form=\"delete-pet\"")
	h.attr("action", "/dashboard/pets/"+id+"/delete")
	h.raw(">")
	h.hidden("id", id)
	h.submit("Delete", "bg-red-600 hover:bg-red-700 px-3 py-1")
	h.raw("</form></li>")
}

func userTable(h *htmlWriter, users []models.User) {
	if len(users) == 0 {
		h.raw("<p class=\"text-sm text-gray-500\" data-empty>No users found.</p>")
		return
	}
	h.raw("<table class=\"w-full rounded border bg-white text-sm\" data-users><thead><tr class=\"text-left text-gray-500\">")
	h.raw("<th class=\"p-2\">Username</th><th class=\"p-2\">Email</th><th class=\"p-2\">Role</th><th class=\"p-2\">Joined</th></tr></thead><tbody>")
	for _, u := range users {
		h.raw("<tr class=\"border-t\"")
		h.attr("data-user-id", itoa(u.ID))
		h.raw("><td class=\"p-2\">")
		h.text(u.Username)
		h.raw("</td><td class=\"p-2\">")
		h.text(u.Email)
		h.raw("</td><td class=\"p-2\">")
		h.text(Label(string(u.Role)))
		h.raw("</td><td class=\"p-2\">")
		h.text(u.CreatedAt)
		h.raw("</td></tr>")
	}
	h.raw("</tbody></table>")
}
