package models

import "github.com/a-h/templ"

type NavItem struct {
	Name string
	URL  string
}

type Navigation struct {
	Items []NavItem
}

type LayoutTempl struct {
	Title     string
	User      *User
	Nav       Navigation
	ActiveNav string
	Content   templ.Component
}

var MainNav = Navigation{
	Items: []NavItem{
		{Name: "Dashboard", URL: "/dashboard"},
		{Name: "Profile", URL: "/profile"},
	},
}

var AdminNav = Navigation{
	Items: []NavItem{
		{Name: "Dashboard", URL: "/dashboard"},
		{Name: "Profile", URL: "/profile"},
		{Name: "Admin", URL: "/admin"},
	},
}

var OfflineNav = Navigation{
	Items: []NavItem{
		{Name: "Sign in", URL: "/login"},
		{Name: "Register", URL: "/register"},
	},
}

// NavFor picks the navigation matching the caller's session.
func NavFor(user *User) Navigation {
	switch {
	case user == nil:
		return OfflineNav
	case user.Role.IsAdmin():
		return AdminNav
	default:
		return MainNav
	}
}
