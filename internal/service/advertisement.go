package service

import (
	"context"
	"io"
	"strconv"

	"github.com/ghaggin/tourpal/internal/api"
)

type AdStatus int

const (
	AdPending AdStatus = iota + 1
	AdApproved
	AdRejected
)

type Advertisement struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	ImagePath   string   `json:"imagePath"`
	TargetURL   string   `json:"targetUrl"`
	Position    int      `json:"position"`
	StartDate   string   `json:"startDate"`
	EndDate     string   `json:"endDate"`
	Status      AdStatus `json:"status"`
}

type NewAdvertisement struct {
	Title         string
	Description   string
	TargetURL     string
	Position      int
	StartDate     string
	EndDate       string
	ImageFilename string
	Image         io.Reader
}

type Banner struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	ImageURL string `json:"imageUrl"`
	LinkURL  string `json:"linkUrl"`
}

type Advertisements struct {
	base
}

func NewAdvertisements(client *api.Client) *Advertisements {
	return &Advertisements{base{client}}
}

// Create uploads the ad image with its fields; new ads start pending.
func (s *Advertisements) Create(ctx context.Context, ad NewAdvertisement) (*Result, error) {
	form := api.NewForm().
		Field("Title", ad.Title).
		Field("Description", ad.Description).
		Field("TargetUrl", ad.TargetURL).
		Field("Position", strconv.Itoa(ad.Position)).
		Field("StartDate", ad.StartDate).
		Field("EndDate", ad.EndDate)
	if ad.Image != nil {
		form.File("Image", ad.ImageFilename, ad.Image)
	}

	var res Result
	if err := s.client.PostForm(ctx, "/api/Advertisements", form, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (s *Advertisements) Banners(ctx context.Context) ([]Banner, error) {
	var banners []Banner
	if err := s.client.Get(ctx, "/api/Banners", &banners); err != nil {
		return nil, err
	}
	return banners, nil
}

func (s *Advertisements) Pending(ctx context.Context) ([]Advertisement, error) {
	var ads []Advertisement
	if err := s.client.Get(ctx, "/api/Advertisements/pending", &ads); err != nil {
		return nil, err
	}
	return ads, nil
}

type handleAdRequest struct {
	IsApproved bool   `json:"isApproved"`
	Reason     string `json:"reason,omitempty"`
}

func (s *Advertisements) Handle(ctx context.Context, id string, approved bool, reason string) (*Result, error) {
	var res Result
	err := s.client.Post(ctx, pathf("/api/Advertisements/%s/handle", id), handleAdRequest{
		IsApproved: approved,
		Reason:     reason,
	}, &res)
	if err != nil {
		return nil, err
	}
	return &res, nil
}
