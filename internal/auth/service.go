package auth

import (
	"context"
	"errors"
	"io"
	"net/url"
	"strconv"

	"github.com/ghaggin/tourpal/internal/api"
	"github.com/ghaggin/tourpal/internal/model"
	"go.uber.org/zap"
)

const (
	registerPath              = "/api/Account/register"
	forgotPasswordPath        = "/api/Account/forgot-password"
	resetPasswordPath         = "/api/Account/reset-password"
	changePasswordPath        = "/api/Account/change-password"
	sendEmailConfirmationPath = "/api/Account/send-email-confirmation"
	confirmEmailPath          = "/api/Account/confirm-email"

	unreachableMessage = "Could not reach the server. Please try again."
)

// Service wraps the account endpoints. It keeps no state of its own.
type Service struct {
	client *api.Client
	log    *zap.Logger
}

func NewService(client *api.Client, log *zap.Logger) *Service {
	return &Service{
		client: client,
		log:    log,
	}
}

// Ack is the generic {success, message} answer of account endpoints.
type Ack struct {
	Success *bool  `json:"success"`
	Message string `json:"message"`
}

func (a *Ack) failed() bool {
	return a.Success != nil && !*a.Success
}

type loginRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	RememberMe bool   `json:"rememberMe"`
}

// Login exchanges credentials for a user and bearer token. Nothing is
// stored; callers hand the pair to the session manager.
func (s *Service) Login(ctx context.Context, email string, password string, rememberMe bool) (*model.User, string, error) {
	const op = "login"

	var resp loginResponse
	err := s.client.Post(ctx, api.LoginPath, loginRequest{
		Email:      email,
		Password:   password,
		RememberMe: rememberMe,
	}, &resp)
	if err != nil {
		fallback := unreachableMessage
		var apiErr *api.Error
		if errors.As(err, &apiErr) {
			fallback = "Invalid email or password."
		}
		return nil, "", wrapError(op, err, fallback)
	}

	if resp.failed() {
		return nil, "", newError(op, firstNonEmpty(resp.Message, "Login failed."))
	}

	token := resp.token()
	if token == "" {
		return nil, "", newError(op, "Login response did not include a token.")
	}

	raw := resp.user()
	if raw == nil {
		return nil, "", newError(op, "Login response did not include user data.")
	}

	user, err := raw.normalize(email)
	if err != nil {
		return nil, "", &Error{Op: op, Message: "Login response had an unknown user type.", Cause: err}
	}

	s.log.Info("logged in", zap.String("user_id", user.ID), zap.String("role", string(user.UserType)))
	return user, token, nil
}

// Attachment is a file sent along with a multipart request.
type Attachment struct {
	Field    string
	Filename string
	Content  io.Reader
}

type RegisterPayload struct {
	FullName    string
	Email       string
	Password    string
	UserType    int
	Phone       string
	CityID      string
	CompanyName string
	Address     string
	IsCompany   bool
	// CarTypeID and CarLicense are only sent for car owners.
	CarTypeID   string
	CarLicense  string
	Attachments []Attachment
}

func (p RegisterPayload) form() *api.Form {
	f := api.NewForm().
		Field("FullName", p.FullName).
		Field("Email", p.Email).
		Field("Password", p.Password).
		Field("UserType", strconv.Itoa(p.UserType)).
		Field("Phone", p.Phone).
		Field("CityId", p.CityID).
		Field("CompanyName", p.CompanyName).
		Field("Address", p.Address).
		Field("IsCompany", strconv.FormatBool(p.IsCompany)).
		Field("IsEmailConfirmed", "false").
		Field("EmailCodeNo", "")

	if p.CarTypeID != "" {
		f.Field("CarTypeId", p.CarTypeID)
	}
	if p.CarLicense != "" {
		f.Field("CarLicense", p.CarLicense)
	}

	for _, a := range p.Attachments {
		f.File(a.Field, a.Filename, a.Content)
	}

	return f
}

func (s *Service) Register(ctx context.Context, p RegisterPayload) (*Ack, error) {
	const op = "register"

	var ack Ack
	if err := s.client.PostForm(ctx, registerPath, p.form(), &ack); err != nil {
		return nil, wrapError(op, err, "Failed to register. Please try again.")
	}
	if ack.failed() {
		return nil, newError(op, firstNonEmpty(ack.Message, "Failed to register. Please try again."))
	}

	s.log.Info("registered account", zap.String("email", p.Email))
	return &ack, nil
}

func (s *Service) ForgotPassword(ctx context.Context, email string) (*Ack, error) {
	return s.call(ctx, "forgot password", forgotPasswordPath, map[string]string{
		"email": email,
	}, "Failed to send the password reset link.")
}

func (s *Service) ResetPassword(ctx context.Context, email string, token string, newPassword string) (*Ack, error) {
	return s.call(ctx, "reset password", resetPasswordPath, map[string]string{
		"email":       email,
		"token":       token,
		"newPassword": newPassword,
	}, "Failed to reset the password.")
}

func (s *Service) ChangePassword(ctx context.Context, currentPassword string, newPassword string) (*Ack, error) {
	return s.call(ctx, "change password", changePasswordPath, map[string]string{
		"currentPassword": currentPassword,
		"newPassword":     newPassword,
	}, "Failed to change the password.")
}

func (s *Service) SendEmailConfirmation(ctx context.Context, email string) (*Ack, error) {
	return s.call(ctx, "send email confirmation", sendEmailConfirmationPath, map[string]string{
		"email": email,
	}, "Failed to resend the confirmation email.")
}

func (s *Service) ConfirmEmail(ctx context.Context, email string, code string) (*Ack, error) {
	q := url.Values{}
	q.Set("email", email)
	q.Set("code", code)

	const op = "confirm email"
	var ack Ack
	if err := s.client.Get(ctx, confirmEmailPath+"?"+q.Encode(), &ack); err != nil {
		return nil, wrapError(op, err, "Email confirmation failed.")
	}
	if ack.failed() {
		return nil, newError(op, firstNonEmpty(ack.Message, "Email confirmation failed."))
	}
	return &ack, nil
}

func (s *Service) call(ctx context.Context, op string, path string, body any, fallback string) (*Ack, error) {
	var ack Ack
	if err := s.client.Post(ctx, path, body, &ack); err != nil {
		return nil, wrapError(op, err, fallback)
	}
	if ack.failed() {
		return nil, newError(op, firstNonEmpty(ack.Message, fallback))
	}
	return &ack, nil
}
