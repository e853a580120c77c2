package pages

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/FACorreiaa/go-petportal/internal/app/models"
)

func ProfilePage(user models.User) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newWriter(ctx, w)
		h.raw("<section class=\"mx-auto max-w-md space-y-4\"><h1 class=\"text-2xl font-bold\">Profile</h1>")
		h.raw("<dl class=\"divide-y rounded border bg-white text-sm\" data-profile>")
		for _, row := range [][2]string{
			{"Username", user.Username},
			{"Email", user.Email},
			{"Role", Label(string(user.Role))},
			{"Member since", user.CreatedAt},
		} {
			if row[1] == "" {
				continue
			}
			h.raw("<div class=\"flex justify-between p-3\"><dt class=\"text-gray-500\">")
			h.text(row[0])
			h.raw("</dt><dd>")
			h.text(row[1])
			h.raw("</dd></div>")
		}
		h.raw("</dl></section>")
		return h.err
	})
}

// AdminPage renders the full user directory.
func AdminPage(data models.AdminData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newWriter(ctx, w)
		h.raw("<section class=\"space-y-4\"><h1 class=\"text-2xl font-bold\">Users</h1>")
		h.alert("error", data.Error)
		userTable(h, data.Users)
		h.raw("</section>")
		return h.err
	})
}
