package service

import (
	"context"

	"github.com/ghaggin/tourpal/internal/api"
)

type CarImage struct {
	ID        string `json:"id"`
	ImageURL  string `json:"imageUrl"`
	IsPrimary bool   `json:"isPrimary"`
}

type Car struct {
	ID          string     `json:"id"`
	Brand       string     `json:"brand"`
	Model       string     `json:"model"`
	Year        int        `json:"year"`
	PricePerDay float64    `json:"pricePerDay"`
	Description string     `json:"description"`
	Status      string     `json:"status,omitempty"`
	CarImages   []CarImage `json:"carImages,omitempty"`
	Features    []string   `json:"features,omitempty"`
}

// PrimaryImage returns the image flagged primary, else the first one.
func (c Car) PrimaryImage() string {
	for _, img := range c.CarImages {
		if img.IsPrimary {
			return img.ImageURL
		}
	}
	if len(c.CarImages) > 0 {
		return c.CarImages[0].ImageURL
	}
	return ""
}

type NewCar struct {
	Brand       string  `json:"brand"`
	Model       string  `json:"model"`
	Year        int     `json:"year"`
	PricePerDay float64 `json:"pricePerDay"`
	CityID      string  `json:"cityId"`
	CarTypeID   string  `json:"carTypeId"`
	Capacity    int     `json:"capacity"`
	PlateNumber string  `json:"plateNumber"`
	Description string  `json:"description"`
	FeatureIDs  []int   `json:"featureIds"`
}

type Cars struct {
	base
}

func NewCars(client *api.Client) *Cars {
	return &Cars{base{client}}
}

func (s *Cars) List(ctx context.Context) ([]Car, error) {
	var cars []Car
	if err := s.client.Get(ctx, "/api/Cars", &cars); err != nil {
		return nil, err
	}
	return cars, nil
}

func (s *Cars) Get(ctx context.Context, id string) (*Car, error) {
	var car Car
	if err := s.client.Get(ctx, pathf("/api/Cars/%s", id), &car); err != nil {
		return nil, err
	}
	return &car, nil
}

// ProviderCars lists the cars of the signed-in provider.
func (s *Cars) ProviderCars(ctx context.Context) ([]Car, error) {
	var cars []Car
	if err := s.client.Get(ctx, "/api/Cars/my-cars", &cars); err != nil {
		return nil, err
	}
	return cars, nil
}

func (s *Cars) Add(ctx context.Context, c NewCar) (*Car, error) {
	var car Car
	if err := s.client.Post(ctx, "/api/Cars", c, &car); err != nil {
		return nil, err
	}
	return &car, nil
}

func (s *Cars) Delete(ctx context.Context, id string) error {
	return s.client.Delete(ctx, pathf("/api/Cars/%s", id), nil)
}
