package service

import (
	"context"
	"io"
	"strconv"

	"github.com/ghaggin/tourpal/internal/api"
)

type Document struct {
	ID               string `json:"id"`
	DocumentTypeName string `json:"documentTypeName"`
	FilePath         string `json:"filePath"`
	IsVerified       bool   `json:"isVerified"`
}

type PendingUser struct {
	UserID    string     `json:"userId"`
	FullName  string     `json:"fullName"`
	UserType  string     `json:"userType"`
	CreatedAt string     `json:"createdAt"`
	Documents []Document `json:"documents"`
}

type Account struct {
	ID       string `json:"id"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	UserType string `json:"userType"`
	Status   string `json:"status"`
}

type ApprovalStatus string

const (
	Approved ApprovalStatus = "Approved"
	Rejected ApprovalStatus = "Rejected"
)

type Approval struct {
	UserID string         `json:"userId"`
	Status ApprovalStatus `json:"status"`
	Notes  string         `json:"notes"`
}

type City struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Profile struct {
	ID          string     `json:"id"`
	FullName    string     `json:"fullName"`
	Email       string     `json:"email"`
	PhoneNumber string     `json:"phoneNumber"`
	CompanyName string     `json:"companyName"`
	Address     string     `json:"address"`
	City        City       `json:"city"`
	Documents   []Document `json:"documents"`
}

type RequiredDocument struct {
	ID           int    `json:"id"`
	DocumentName string `json:"documentName"`
	DocumentType int    `json:"documentType"`
	IsUploaded   bool   `json:"isUploaded"`
	IsVerified   bool   `json:"isVerified"`
}

type DocumentUpload struct {
	Email        string
	DocumentType int
	Filename     string
	File         io.Reader
}

type DocumentVerification struct {
	DocumentID int    `json:"documentId"`
	IsApproved bool   `json:"isApproved"`
	Notes      string `json:"notes"`
}

type Users struct {
	base
}

func NewUsers(client *api.Client) *Users {
	return &Users{base{client}}
}

func (s *Users) PendingApprovals(ctx context.Context) ([]PendingUser, error) {
	var users []PendingUser
	if err := s.client.Get(ctx, "/api/Users/pending", &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *Users) Approve(ctx context.Context, a Approval) error {
	return s.client.Post(ctx, "/api/Users/approve", a, nil)
}

func (s *Users) Suspend(ctx context.Context, userID string) error {
	return s.client.Post(ctx, pathf("/api/Users/%s/suspend", userID), nil, nil)
}

func (s *Users) List(ctx context.Context) ([]Account, error) {
	var users []Account
	if err := s.client.Get(ctx, "/api/Users", &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *Users) Profile(ctx context.Context) (*Profile, error) {
	var p Profile
	if err := s.client.Get(ctx, "/api/Users/profile", &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// CheckDocuments lists the documents a user still has to provide. An empty
// userID means the signed-in user.
func (s *Users) CheckDocuments(ctx context.Context, userID string) ([]RequiredDocument, error) {
	path := "/api/Documents/check"
	if userID != "" {
		path = pathf("/api/Documents/check/%s", userID)
	}

	var docs []RequiredDocument
	if err := s.client.Get(ctx, path, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

func (s *Users) UploadDocument(ctx context.Context, u DocumentUpload) error {
	form := api.NewForm().
		Field("Email", u.Email).
		Field("DocumentType", strconv.Itoa(u.DocumentType)).
		File("File", u.Filename, u.File)
	return s.client.PostForm(ctx, "/api/Documents/upload", form, nil)
}

func (s *Users) DeleteDocument(ctx context.Context, documentID int) error {
	return s.client.Delete(ctx, pathf("/api/Documents/%s", strconv.Itoa(documentID)), nil)
}

func (s *Users) VerifyDocument(ctx context.Context, v DocumentVerification) (*Result, error) {
	var res Result
	if err := s.client.Post(ctx, "/api/Documents/verify", v, &res); err != nil {
		return nil, err
	}
	return &res, nil
}
