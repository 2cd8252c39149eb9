package web

import (
	"net/http"
	"strconv"

	"github.com/ghaggin/tourpal/internal/guard"
	"github.com/ghaggin/tourpal/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type profilePage struct {
	Profile       *service.Profile
	Documents     []service.RequiredDocument
	DocumentTypes []service.ListItem
}

func (s *Server) profile(w http.ResponseWriter, r *http.Request) error {
	profile, err := s.users.Profile(r.Context())
	if err != nil {
		return err
	}

	page := &profilePage{Profile: profile}
	if page.Documents, err = s.users.CheckDocuments(r.Context(), profile.ID); err != nil {
		s.log.Warn("failed to check documents", zap.Error(err))
	}
	if page.DocumentTypes, err = s.lists.DocumentTypes(r.Context()); err != nil {
		s.log.Warn("failed to load document types", zap.Error(err))
	}

	return s.render(w, r, "profile.html", "My Profile", page)
}

func (s *Server) changePassword(w http.ResponseWriter, r *http.Request) error {
	ack, err := s.auth.ChangePassword(r.Context(), r.PostFormValue("currentPassword"), r.PostFormValue("newPassword"))
	if err != nil {
		return s.fail(w, r, "/dashboard/profile", err, "Failed to change the password.")
	}
	return s.redirect(w, r, "/dashboard/profile", orDefault(ack.Message, "Password changed."))
}

func (s *Server) uploadDocument(w http.ResponseWriter, r *http.Request) error {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		return errors.Wrap(err, "failed to parse document upload")
	}

	docType, err := strconv.Atoi(r.PostFormValue("DocumentType"))
	if err != nil {
		return s.fail(w, r, "/dashboard/profile", err, "Please choose a document type.")
	}

	f, hdr, err := r.FormFile("File")
	if err != nil {
		return s.fail(w, r, "/dashboard/profile", err, "Please choose a file to upload.")
	}
	defer f.Close()

	user := s.sessions.Snapshot().User
	if user == nil {
		http.Redirect(w, r, guard.LoginPath, http.StatusSeeOther)
		return nil
	}

	err = s.users.UploadDocument(r.Context(), service.DocumentUpload{
		Email:        user.Email,
		DocumentType: docType,
		Filename:     hdr.Filename,
		File:         f,
	})
	if err != nil {
		return s.fail(w, r, "/dashboard/profile", err, "Failed to upload the document.")
	}

	return s.redirect(w, r, "/dashboard/profile", "Document uploaded.")
}

func (s *Server) userDashboard(w http.ResponseWriter, r *http.Request) error {
	bookings, err := s.bookings.UserBookings(r.Context())
	if err != nil {
		return err
	}
	return s.render(w, r, "dashboard_user.html", "My Bookings", bookings)
}

type providerPage struct {
	Cars     []service.Car
	Cities   []service.ListItem
	CarTypes []service.ListItem
	Features []service.ListItem
}

func (s *Server) providerDashboard(w http.ResponseWriter, r *http.Request) error {
	cars, err := s.cars.ProviderCars(r.Context())
	if err != nil {
		return err
	}

	page := &providerPage{Cars: cars}
	if page.Cities, err = s.lists.Cities(r.Context(), defaultLang); err != nil {
		s.log.Warn("failed to load cities", zap.Error(err))
	}
	if page.CarTypes, err = s.lists.CarTypes(r.Context()); err != nil {
		s.log.Warn("failed to load car types", zap.Error(err))
	}
	if page.Features, err = s.lists.CarFeatures(r.Context()); err != nil {
		s.log.Warn("failed to load car features", zap.Error(err))
	}

	return s.render(w, r, "dashboard_provider.html", "My Vehicles", page)
}

func (s *Server) addCar(w http.ResponseWriter, r *http.Request) error {
	const back = "/dashboard/provider"

	if err := r.ParseForm(); err != nil {
		return errors.Wrap(err, "failed to parse car form")
	}

	year, err := strconv.Atoi(r.PostFormValue("year"))
	if err != nil {
		return s.fail(w, r, back, err, "Year must be a number.")
	}
	price, err := strconv.ParseFloat(r.PostFormValue("pricePerDay"), 64)
	if err != nil {
		return s.fail(w, r, back, err, "Price per day must be a number.")
	}
	capacity, _ := strconv.Atoi(r.PostFormValue("capacity"))

	nc := service.NewCar{
		Brand:       r.PostFormValue("brand"),
		Model:       r.PostFormValue("model"),
		Year:        year,
		PricePerDay: price,
		CityID:      r.PostFormValue("cityId"),
		CarTypeID:   r.PostFormValue("carTypeId"),
		Capacity:    capacity,
		PlateNumber: r.PostFormValue("plateNumber"),
		Description: r.PostFormValue("description"),
	}
	for _, v := range r.PostForm["featureIds"] {
		if id, err := strconv.Atoi(v); err == nil {
			nc.FeatureIDs = append(nc.FeatureIDs, id)
		}
	}

	car, err := s.cars.Add(r.Context(), nc)
	if err != nil {
		return s.fail(w, r, back, err, "Failed to add the car.")
	}

	return s.redirect(w, r, back, car.Brand+" "+car.Model+" added.")
}

func (s *Server) deleteCar(w http.ResponseWriter, r *http.Request) error {
	const back = "/dashboard/provider"

	if err := s.cars.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		return s.fail(w, r, back, err, "Failed to delete the car.")
	}
	return s.redirect(w, r, back, "Car deleted.")
}

type adminPage struct {
	PendingUsers []service.PendingUser
	Users        []service.Account
	Ads          []service.Advertisement
}

func (s *Server) adminDashboard(w http.ResponseWriter, r *http.Request) error {
	var (
		page = &adminPage{}
		err  error
	)

	if page.PendingUsers, err = s.users.PendingApprovals(r.Context()); err != nil {
		return err
	}
	if page.Users, err = s.users.List(r.Context()); err != nil {
		return err
	}
	if page.Ads, err = s.ads.Pending(r.Context()); err != nil {
		return err
	}

	return s.render(w, r, "dashboard_admin.html", "Management", page)
}

func (s *Server) approveUser(w http.ResponseWriter, r *http.Request) error {
	const back = "/dashboard/admin"

	status := service.ApprovalStatus(r.PostFormValue("status"))
	if status != service.Approved && status != service.Rejected {
		return s.fail(w, r, back, errors.Errorf("unknown approval status %q", status), "Unknown approval status.")
	}

	err := s.users.Approve(r.Context(), service.Approval{
		UserID: chi.URLParam(r, "id"),
		Status: status,
		Notes:  r.PostFormValue("notes"),
	})
	if err != nil {
		return s.fail(w, r, back, err, "Failed to update the user.")
	}

	return s.redirect(w, r, back, "User "+string(status)+".")
}

func (s *Server) suspendUser(w http.ResponseWriter, r *http.Request) error {
	const back = "/dashboard/admin"

	if err := s.users.Suspend(r.Context(), chi.URLParam(r, "id")); err != nil {
		return s.fail(w, r, back, err, "Failed to suspend the user.")
	}
	return s.redirect(w, r, back, "User suspended.")
}

func (s *Server) handleAd(w http.ResponseWriter, r *http.Request) error {
	const back = "/dashboard/admin"

	approved := r.PostFormValue("approved") == "true"
	res, err := s.ads.Handle(r.Context(), chi.URLParam(r, "id"), approved, r.PostFormValue("reason"))
	if err != nil {
		return s.fail(w, r, back, err, "Failed to update the advertisement.")
	}

	msg := "Advertisement rejected."
	if approved {
		msg = "Advertisement approved."
	}
	return s.redirect(w, r, back, orDefault(res.Message, msg))
}

func (s *Server) verifyDocument(w http.ResponseWriter, r *http.Request) error {
	const back = "/dashboard/admin"

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		return s.fail(w, r, back, err, "Unknown document.")
	}

	res, err := s.users.VerifyDocument(r.Context(), service.DocumentVerification{
		DocumentID: id,
		IsApproved: r.PostFormValue("approved") == "true",
		Notes:      r.PostFormValue("notes"),
	})
	if err != nil {
		return s.fail(w, r, back, err, "Failed to verify the document.")
	}

	return s.redirect(w, r, back, orDefault(res.Message, "Document reviewed."))
}

func (s *Server) createAdPage(w http.ResponseWriter, r *http.Request) error {
	positions, err := s.lists.AdPositions(r.Context())
	if err != nil {
		s.log.Warn("failed to load ad positions", zap.Error(err))
	}
	return s.render(w, r, "create_ad.html", "Create Ad", positions)
}

func (s *Server) createAd(w http.ResponseWriter, r *http.Request) error {
	const back = "/dashboard/create-ad"

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		return errors.Wrap(err, "failed to parse ad form")
	}

	position, err := strconv.Atoi(r.PostFormValue("position"))
	if err != nil {
		return s.fail(w, r, back, err, "Please choose a position.")
	}

	f, hdr, err := r.FormFile("image")
	if err != nil {
		return s.fail(w, r, back, err, "Please choose an image.")
	}
	defer f.Close()

	res, err := s.ads.Create(r.Context(), service.NewAdvertisement{
		Title:         r.PostFormValue("title"),
		Description:   r.PostFormValue("description"),
		TargetURL:     r.PostFormValue("targetUrl"),
		Position:      position,
		StartDate:     r.PostFormValue("startDate"),
		EndDate:       r.PostFormValue("endDate"),
		ImageFilename: hdr.Filename,
		Image:         f,
	})
	if err != nil {
		return s.fail(w, r, back, err, "Failed to submit the advertisement.")
	}

	return s.redirect(w, r, back, orDefault(res.Message, "Advertisement submitted for review."))
}
