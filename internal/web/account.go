package web

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/ghaggin/tourpal/internal/auth"
	"github.com/ghaggin/tourpal/internal/guard"
	"github.com/ghaggin/tourpal/internal/service"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const (
	maxUploadSize = 10 << 20
	// English, for lookup tables that are localized server side.
	defaultLang = 1
)

type loginPage struct {
	Email             string
	EmailNotConfirmed bool
}

func (s *Server) loginPage(w http.ResponseWriter, r *http.Request) error {
	if sess := s.sessions.Snapshot(); sess.IsAuthenticated() && sess.User != nil {
		http.Redirect(w, r, guard.DashboardPath(sess.User.UserType), http.StatusSeeOther)
		return nil
	}
	return s.render(w, r, "login.html", "Login", &loginPage{})
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) error {
	if err := r.ParseForm(); err != nil {
		return errors.Wrap(err, "failed to parse login form")
	}

	page := &loginPage{Email: strings.TrimSpace(r.PostFormValue("email"))}

	user, token, err := s.auth.Login(r.Context(), page.Email, r.PostFormValue("password"), r.PostFormValue("rememberMe") != "")
	if err != nil {
		var authErr *auth.Error
		if errors.As(err, &authErr) {
			page.EmailNotConfirmed = authErr.EmailNotConfirmed()
		}
		return s.renderFailure(w, r, "login.html", "Login", page, err)
	}

	if err := s.sessions.Login(r.Context(), user, token); err != nil {
		return errors.Wrap(err, "failed to save session")
	}

	s.log.Info("signed in", zap.String("user_id", user.ID), zap.String("role", string(user.UserType)))
	return s.redirect(w, r, guard.DashboardPath(user.UserType), "Welcome back, "+user.FullName+"!")
}

func (s *Server) logout(w http.ResponseWriter, r *http.Request) error {
	if err := s.sessions.Logout(r.Context()); err != nil {
		s.log.Error("failed to clear session", zap.Error(err))
	}
	return s.redirect(w, r, guard.LoginPath, "You have been signed out.")
}

type registerPage struct {
	UserTypes []service.ListItem
	Cities    []service.ListItem
}

// lookups loads the register dropdowns. The form still renders without
// them.
func (s *Server) lookups(r *http.Request) *registerPage {
	page := &registerPage{}

	var err error
	if page.UserTypes, err = s.lists.UserTypes(r.Context()); err != nil {
		s.log.Warn("failed to load user types", zap.Error(err))
	}
	if page.Cities, err = s.lists.Cities(r.Context(), defaultLang); err != nil {
		s.log.Warn("failed to load cities", zap.Error(err))
	}

	return page
}

func (s *Server) registerPage(w http.ResponseWriter, r *http.Request) error {
	return s.render(w, r, "register.html", "Sign up", s.lookups(r))
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) error {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		return errors.Wrap(err, "failed to parse register form")
	}

	userType, err := strconv.Atoi(r.PostFormValue("UserType"))
	if err != nil {
		return s.renderFailure(w, r, "register.html", "Sign up", s.lookups(r), &auth.Error{Op: "register", Message: "Please choose an account type."})
	}

	p := auth.RegisterPayload{
		FullName:    strings.TrimSpace(r.PostFormValue("FullName")),
		Email:       strings.TrimSpace(r.PostFormValue("Email")),
		Password:    r.PostFormValue("Password"),
		UserType:    userType,
		Phone:       r.PostFormValue("Phone"),
		CityID:      r.PostFormValue("CityId"),
		CompanyName: r.PostFormValue("CompanyName"),
		Address:     r.PostFormValue("Address"),
		CarTypeID:   r.PostFormValue("CarTypeId"),
		CarLicense:  r.PostFormValue("CarLicense"),
	}
	p.IsCompany = p.CompanyName != ""

	for field, headers := range r.MultipartForm.File {
		for _, hdr := range headers {
			f, err := hdr.Open()
			if err != nil {
				return errors.Wrapf(err, "failed to open upload %s", field)
			}
			defer f.Close()
			p.Attachments = append(p.Attachments, auth.Attachment{Field: field, Filename: hdr.Filename, Content: f})
		}
	}

	ack, err := s.auth.Register(r.Context(), p)
	if err != nil {
		return s.renderFailure(w, r, "register.html", "Sign up", s.lookups(r), err)
	}

	return s.redirect(w, r, "/please-confirm?email="+url.QueryEscape(p.Email), orDefault(ack.Message, "Registration successful."))
}

func (s *Server) forgotPasswordPage(w http.ResponseWriter, r *http.Request) error {
	return s.render(w, r, "forgot_password.html", "Forgot password", nil)
}

func (s *Server) forgotPassword(w http.ResponseWriter, r *http.Request) error {
	ack, err := s.auth.ForgotPassword(r.Context(), strings.TrimSpace(r.PostFormValue("email")))
	if err != nil {
		return s.renderFailure(w, r, "forgot_password.html", "Forgot password", nil, err)
	}
	return s.render(w, r, "message.html", "Forgot password", orDefault(ack.Message, "If the email is registered, a reset link is on its way."))
}

type resetPage struct {
	Email string
	Token string
}

func (s *Server) resetPasswordPage(w http.ResponseWriter, r *http.Request) error {
	q := r.URL.Query()
	return s.render(w, r, "reset_password.html", "Reset password", &resetPage{Email: q.Get("email"), Token: q.Get("token")})
}

func (s *Server) resetPassword(w http.ResponseWriter, r *http.Request) error {
	page := &resetPage{Email: r.PostFormValue("email"), Token: r.PostFormValue("token")}

	password := r.PostFormValue("newPassword")
	if password != r.PostFormValue("confirmPassword") {
		return s.renderFailure(w, r, "reset_password.html", "Reset password", page, &auth.Error{Op: "reset password", Message: "Passwords do not match."})
	}

	ack, err := s.auth.ResetPassword(r.Context(), page.Email, page.Token, password)
	if err != nil {
		return s.renderFailure(w, r, "reset_password.html", "Reset password", page, err)
	}

	return s.redirect(w, r, guard.LoginPath, orDefault(ack.Message, "Your password has been reset."))
}

func (s *Server) confirmEmail(w http.ResponseWriter, r *http.Request) error {
	q := r.URL.Query()
	email, code := q.Get("email"), q.Get("code")
	if email == "" || code == "" {
		return s.renderFailure(w, r, "message.html", "Confirm email", nil, &auth.Error{Op: "confirm email", Message: "This confirmation link is incomplete."})
	}

	ack, err := s.auth.ConfirmEmail(r.Context(), email, code)
	if err != nil {
		return s.renderFailure(w, r, "message.html", "Confirm email", nil, err)
	}

	return s.redirect(w, r, guard.LoginPath, orDefault(ack.Message, "Email confirmed. You can sign in now."))
}

func (s *Server) pleaseConfirmPage(w http.ResponseWriter, r *http.Request) error {
	return s.render(w, r, "please_confirm.html", "Confirm email", r.URL.Query().Get("email"))
}

func (s *Server) resendConfirmation(w http.ResponseWriter, r *http.Request) error {
	email := strings.TrimSpace(r.PostFormValue("email"))

	ack, err := s.auth.SendEmailConfirmation(r.Context(), email)
	if err != nil {
		return s.renderFailure(w, r, "please_confirm.html", "Confirm email", email, err)
	}

	return s.redirect(w, r, "/please-confirm?email="+url.QueryEscape(email), orDefault(ack.Message, "Confirmation email sent."))
}

func orDefault(s string, def string) string {
	if s == "" {
		return def
	}
	return s
}
