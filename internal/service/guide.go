package service

import (
	"context"

	"github.com/ghaggin/tourpal/internal/api"
)

type TourGuide struct {
	ID                string   `json:"id"`
	FullName          string   `json:"fullName"`
	City              string   `json:"city"`
	ExperienceYears   int      `json:"experienceYears"`
	Languages         []string `json:"languages"`
	ProfilePictureURL string   `json:"profilePictureUrl,omitempty"`
}

type TourGuideDetails struct {
	TourGuide
	Bio string `json:"bio"`
}

type GuideRequest struct {
	TourGuideID        string `json:"tourGuideId"`
	StartDate          string `json:"startDate"`
	EndDate            string `json:"endDate"`
	RequestNotes       string `json:"requestNotes"`
	RequiredLanguageID int    `json:"requiredLanguageId"`
}

type Guides struct {
	base
}

func NewGuides(client *api.Client) *Guides {
	return &Guides{base{client}}
}

func (s *Guides) List(ctx context.Context) ([]TourGuide, error) {
	var guides []TourGuide
	if err := s.client.Get(ctx, "/api/TourGuides", &guides); err != nil {
		return nil, err
	}
	return guides, nil
}

func (s *Guides) Get(ctx context.Context, id string) (*TourGuideDetails, error) {
	var g TourGuideDetails
	if err := s.client.Get(ctx, pathf("/api/TourGuides/%s", id), &g); err != nil {
		return nil, err
	}
	return &g, nil
}

func (s *Guides) Request(ctx context.Context, req GuideRequest) (*Result, error) {
	var res Result
	if err := s.client.Post(ctx, "/api/TourGuides/request", req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}
