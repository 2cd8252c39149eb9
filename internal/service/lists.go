package service

import (
	"context"
	"fmt"

	"github.com/ghaggin/tourpal/internal/api"
)

type ListItem struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type RequiredDoc struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	IsMandatory bool   `json:"isMandatory"`
}

// Lists serves the lookup tables behind form dropdowns.
type Lists struct {
	base
}

func NewLists(client *api.Client) *Lists {
	return &Lists{base{client}}
}

func (s *Lists) list(ctx context.Context, path string) ([]ListItem, error) {
	var items []ListItem
	if err := s.client.Get(ctx, path, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Lists) Cities(ctx context.Context, lang int) ([]ListItem, error) {
	return s.list(ctx, fmt.Sprintf("/api/Lists/cities?lang=%d", lang))
}

func (s *Lists) UserTypes(ctx context.Context) ([]ListItem, error) {
	return s.list(ctx, "/api/Lists/user-types")
}

func (s *Lists) RequiredDocuments(ctx context.Context, userType int, lang int) ([]RequiredDoc, error) {
	var docs []RequiredDoc
	path := fmt.Sprintf("/api/Lists/required-documents?userType=%d&lang=%d", userType, lang)
	if err := s.client.Get(ctx, path, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

func (s *Lists) CarTypes(ctx context.Context) ([]ListItem, error) {
	return s.list(ctx, "/api/Lists/car-types")
}

func (s *Lists) CarFeatures(ctx context.Context) ([]ListItem, error) {
	return s.list(ctx, "/api/Lists/car-features")
}

func (s *Lists) DocumentTypes(ctx context.Context) ([]ListItem, error) {
	return s.list(ctx, "/api/Lists/document-types")
}

func (s *Lists) AdPositions(ctx context.Context) ([]ListItem, error) {
	return s.list(ctx, "/api/Lists/ad-positions")
}

// IDByName finds the id of the item called name, as with the "Car Owner"
// user type.
func IDByName(items []ListItem, name string) (int, bool) {
	for _, it := range items {
		if it.Name == name {
			return it.ID, true
		}
	}
	return 0, false
}
