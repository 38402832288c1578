package errors

import (
	"net/http"

	"github.com/a-h/templ"

	"signupweb/internal/view"
)

type ErrorProps struct {
	Code    int
	Message string
}

func GenericError(code int, message string) templ.Component {
	return view.Component("errors/error", ErrorProps{Code: code, Message: message})
}

func Error404() templ.Component {
	return GenericError(http.StatusNotFound, "Nie znaleziono strony.")
}

func Error500() templ.Component {
	return GenericError(http.StatusInternalServerError, "Wystąpił błąd serwera.")
}
