package handlers

import (
	"github.com/a-h/templ"

	"github.com/FACorreiaa/go-petportal/internal/app/models"
)

// Response is what a route produces. Route logic builds one of the variants
// below and BaseHandler.Respond is the only place that writes it to the wire.
type Response interface {
	isResponse()
}

// Page is a rendered page. Data is the JSON form of the same page.
type Page struct {
	Status    int
	Title     string
	ActiveNav string
	Content   templ.Component
	Data      any
}

// Success is a completed form action. Browsers are sent to RedirectTo,
// JSON clients receive Result.
type Success struct {
	Result     models.ActionResult
	RedirectTo string
}

// Failure is a rejected form action. Content, when set, re-renders the page
// the form lives on so the browser sees the errors in place.
type Failure struct {
	Status    int
	Payload   models.ActionFailure
	Title     string
	ActiveNav string
	Content   templ.Component
}

// Redirect is a 303 See Other. It is never turned into a failure.
type Redirect struct {
	URL string
}

func (Page) isResponse()     {}
func (Success) isResponse()  {}
func (Failure) isResponse()  {}
func (Redirect) isResponse() {}
