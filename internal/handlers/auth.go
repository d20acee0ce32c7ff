package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/adekunleadebayo/ticketapp/internal/auth"
	"github.com/adekunleadebayo/ticketapp/internal/models"
	"github.com/gorilla/csrf"
	"github.com/gorilla/sessions"
)

type AuthHandler struct {
	Auth         *auth.Service
	SessionStore *sessions.CookieStore
	Templates    *TemplateCache
}

func (h *AuthHandler) LoginGet(w http.ResponseWriter, r *http.Request) {
	h.renderLogin(w, r, "", nil)
}

func (h *AuthHandler) renderLogin(w http.ResponseWriter, r *http.Request, username string, errs map[string]string) {
	tmpl := h.Templates.Get("login.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	session, _ := h.SessionStore.Get(r, FlashSessionName)
	data := map[string]interface{}{
		"CsrfField": csrf.TemplateField(r),
		"Flashes":   GetFlash(session),
		"Username":  username,
		"Errors":    errs,
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}

func (h *AuthHandler) LoginPost(w http.ResponseWriter, r *http.Request) {
	username := r.FormValue("username")
	password := r.FormValue("password")

	sess, err := h.Auth.Login(w, username, password)
	if err != nil {
		if ve, ok := models.AsValidation(err); ok {
			h.renderLogin(w, r, username, map[string]string{ve.Field: ve.Message})
			return
		}
		if errors.Is(err, models.ErrInvalidCredentials) {
			addFlash(h.SessionStore, w, r, "error", "Invalid credentials")
			http.Redirect(w, r, "/auth/login", http.StatusSeeOther)
			return
		}
		slog.Error("Login failed", "error", err)
		addFlash(h.SessionStore, w, r, "error", "Internal Server Error")
		http.Redirect(w, r, "/auth/login", http.StatusSeeOther)
		return
	}

	slog.Info("Login successful, redirecting to /dashboard", "user", sess.User)
	addFlash(h.SessionStore, w, r, "success", "Login successful")
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

func (h *AuthHandler) SignupGet(w http.ResponseWriter, r *http.Request) {
	h.renderSignup(w, r, nil, nil)
}

func (h *AuthHandler) renderSignup(w http.ResponseWriter, r *http.Request, values map[string]string, errs map[string]string) {
	tmpl := h.Templates.Get("signup.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	session, _ := h.SessionStore.Get(r, FlashSessionName)
	data := map[string]interface{}{
		"CsrfField": csrf.TemplateField(r),
		"Flashes":   GetFlash(session),
		"Values":    values,
		"Errors":    errs,
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}

func (h *AuthHandler) SignupPost(w http.ResponseWriter, r *http.Request) {
	fullname := r.FormValue("fullname")
	username := r.FormValue("username")
	password := r.FormValue("password")
	confirm := r.FormValue("confirm_password")

	sess, err := h.Auth.Signup(w, fullname, username, password, confirm)
	if err != nil {
		if ve, ok := models.AsValidation(err); ok {
			// Passwords are deliberately not echoed back.
			h.renderSignup(w, r,
				map[string]string{"fullname": fullname, "username": username},
				map[string]string{ve.Field: ve.Message})
			return
		}
		slog.Error("Signup failed", "error", err)
		addFlash(h.SessionStore, w, r, "error", "Internal Server Error")
		http.Redirect(w, r, "/auth/signup", http.StatusSeeOther)
		return
	}

	slog.Info("Signup successful, redirecting to /dashboard", "user", sess.User)
	addFlash(h.SessionStore, w, r, "success", "Account created successfully! Welcome "+sess.Fullname)
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.Auth.Logout(w)
	addFlash(h.SessionStore, w, r, "info", "Logged out")
	http.Redirect(w, r, "/auth/login", http.StatusSeeOther)
}
