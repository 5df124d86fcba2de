package authhandlers

import "net/http"

// Handlers is the HTTP surface of the auth module.
type Handlers interface {
	Login(w http.ResponseWriter, r *http.Request)
	TestToken(w http.ResponseWriter, r *http.Request)
	RecoverPassword(w http.ResponseWriter, r *http.Request)
	ResetPassword(w http.ResponseWriter, r *http.Request)
	ListUsers(w http.ResponseWriter, r *http.Request)
	CreateUser(w http.ResponseWriter, r *http.Request)

	RequireUser(next http.Handler) http.Handler
	RequireSuperuser(next http.Handler) http.Handler
}
