package auth

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/ghaggin/tourpal/internal/model"
)

// flexID accepts ids sent either as strings or as numbers.
type flexID string

func (f *flexID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*f = ""
		return nil
	}

	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = flexID(n.String())
	return nil
}

type rawUser struct {
	ID       flexID `json:"id"`
	UserID   flexID `json:"userId"`
	FullName string `json:"fullName"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	UserType string `json:"userType"`
	Role     string `json:"role"`
}

func (u *rawUser) present() bool {
	return u != nil && (u.ID != "" || u.UserID != "")
}

type tokenFields struct {
	Token       string `json:"token"`
	AccessToken string `json:"accessToken"`
}

func (t tokenFields) token() string {
	if t.Token != "" {
		return t.Token
	}
	return t.AccessToken
}

type loginData struct {
	tokenFields
	User *rawUser `json:"user"`
}

// loginResponse covers every shape the login endpoint has answered with:
// the pair at the top level, nested under "data", or the user fields
// flattened next to the token.
type loginResponse struct {
	Success *bool  `json:"success"`
	Message string `json:"message"`
	tokenFields
	User *rawUser   `json:"user"`
	Data *loginData `json:"data"`
	rawUser
}

func (r *loginResponse) failed() bool {
	return r.Success != nil && !*r.Success
}

func (r *loginResponse) token() string {
	if t := r.tokenFields.token(); t != "" {
		return t
	}
	if r.Data != nil {
		return r.Data.token()
	}
	return ""
}

func (r *loginResponse) user() *rawUser {
	switch {
	case r.User.present():
		return r.User
	case r.Data != nil && r.Data.User.present():
		return r.Data.User
	case r.rawUser.present():
		return &r.rawUser
	}
	return nil
}

func (u *rawUser) normalize(fallbackEmail string) (*model.User, error) {
	role, err := model.ParseRole(firstNonEmpty(u.UserType, u.Role))
	if err != nil {
		return nil, err
	}

	return &model.User{
		ID:       firstNonEmpty(string(u.ID), string(u.UserID)),
		FullName: firstNonEmpty(u.FullName, u.Name),
		Email:    strings.TrimSpace(firstNonEmpty(u.Email, fallbackEmail)),
		UserType: role,
	}, nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
