package web

import (
	"net/http"
	"strconv"

	"github.com/ghaggin/tourpal/internal/service"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type homePage struct {
	Banners []service.Banner
	Cars    []service.Car
}

func (s *Server) home(w http.ResponseWriter, r *http.Request) error {
	banners, err := s.ads.Banners(r.Context())
	if err != nil {
		s.log.Warn("failed to load banners", zap.Error(err))
	}

	cars, err := s.cars.List(r.Context())
	if err != nil {
		return err
	}

	return s.render(w, r, "home.html", "Home", &homePage{Banners: banners, Cars: cars})
}

func (s *Server) search(w http.ResponseWriter, r *http.Request) error {
	cars, err := s.cars.List(r.Context())
	if err != nil {
		return err
	}
	return s.render(w, r, "search.html", "Cars", cars)
}

func (s *Server) car(w http.ResponseWriter, r *http.Request) error {
	car, err := s.cars.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		return err
	}
	return s.render(w, r, "car.html", car.Brand+" "+car.Model, car)
}

func (s *Server) bookCar(w http.ResponseWriter, r *http.Request) error {
	id := chi.URLParam(r, "id")
	back := "/car/" + id

	res, err := s.bookings.Request(r.Context(), service.BookingRequest{
		CarID:        id,
		StartDate:    r.PostFormValue("startDate"),
		EndDate:      r.PostFormValue("endDate"),
		RequestNotes: r.PostFormValue("requestNotes"),
	})
	if err != nil {
		return s.fail(w, r, back, err, "Failed to request the booking.")
	}

	return s.redirect(w, r, back, orDefault(res.Message, "Booking requested."))
}

func (s *Server) guideList(w http.ResponseWriter, r *http.Request) error {
	guides, err := s.guides.List(r.Context())
	if err != nil {
		return err
	}
	return s.render(w, r, "guides.html", "Guides", guides)
}

func (s *Server) guide(w http.ResponseWriter, r *http.Request) error {
	g, err := s.guides.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		return err
	}
	return s.render(w, r, "guide.html", g.FullName, g)
}

func (s *Server) requestGuide(w http.ResponseWriter, r *http.Request) error {
	id := chi.URLParam(r, "id")
	back := "/guide/" + id

	lang, err := strconv.Atoi(r.PostFormValue("requiredLanguageId"))
	if err != nil {
		lang = defaultLang
	}

	res, err := s.guides.Request(r.Context(), service.GuideRequest{
		TourGuideID:        id,
		StartDate:          r.PostFormValue("startDate"),
		EndDate:            r.PostFormValue("endDate"),
		RequestNotes:       r.PostFormValue("requestNotes"),
		RequiredLanguageID: lang,
	})
	if err != nil {
		return s.fail(w, r, back, err, "Failed to request the guide.")
	}

	return s.redirect(w, r, back, orDefault(res.Message, "Guide requested."))
}
