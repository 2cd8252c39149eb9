package web

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/ghaggin/tourpal/internal/auth"
	"github.com/ghaggin/tourpal/internal/config"
	"github.com/ghaggin/tourpal/internal/guard"
	"github.com/ghaggin/tourpal/internal/middleware"
	"github.com/ghaggin/tourpal/internal/service"
	"github.com/ghaggin/tourpal/internal/session"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Server struct {
	log      *zap.Logger
	server   *http.Server
	sessions *session.Manager
	flash    *middleware.SessionManager
	auth     *auth.Service

	cars     *service.Cars
	bookings *service.Bookings
	guides   *service.Guides
	ads      *service.Advertisements
	users    *service.Users
	lists    *service.Lists
}

type Params struct {
	fx.In

	Log      *zap.Logger
	Config   *config.Config
	Sessions *session.Manager
	Flash    *middleware.SessionManager
	Auth     *auth.Service

	Cars     *service.Cars
	Bookings *service.Bookings
	Guides   *service.Guides
	Ads      *service.Advertisements
	Users    *service.Users
	Lists    *service.Lists
}

func New(p Params) (*Server, error) {
	s := &Server{
		log:      p.Log,
		sessions: p.Sessions,
		flash:    p.Flash,
		auth:     p.Auth,
		cars:     p.Cars,
		bookings: p.Bookings,
		guides:   p.Guides,
		ads:      p.Ads,
		users:    p.Users,
		lists:    p.Lists,
	}

	s.server = &http.Server{
		Addr:              fmt.Sprintf("localhost:%d", p.Config.Server.Port),
		Handler:           s.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	return s, nil
}

func (s *Server) routes() http.Handler {
	root := chi.NewRouter()
	root.Use(chimw.Recoverer)
	root.Use(s.flash.Wrap)
	root.Use(middleware.Navigation)

	// No Auth
	root.Group(func(r chi.Router) {
		r.Get("/", s.handle(s.home))
		r.Get("/search", s.handle(s.search))
		r.Get("/car/{id}", s.handle(s.car))
		r.Get("/guides", s.handle(s.guideList))
		r.Get("/guide/{id}", s.handle(s.guide))

		r.Get("/login", s.handle(s.loginPage))
		r.Post("/login", s.handle(s.login))
		r.Post("/logout", s.handle(s.logout))
		r.Get("/register", s.handle(s.registerPage))
		r.Post("/register", s.handle(s.register))
		r.Get("/forgot-password", s.handle(s.forgotPasswordPage))
		r.Post("/forgot-password", s.handle(s.forgotPassword))
		r.Get("/reset-password", s.handle(s.resetPasswordPage))
		r.Post("/reset-password", s.handle(s.resetPassword))
		r.Get("/confirm-email", s.handle(s.confirmEmail))
		r.Get("/please-confirm", s.handle(s.pleaseConfirmPage))
		r.Post("/please-confirm", s.handle(s.resendConfirmation))
	})

	// Auth
	root.Group(func(r chi.Router) {
		r.Use(guard.Require(s.sessions))
		r.Post("/car/{id}/book", s.handle(s.bookCar))
		r.Post("/guide/{id}/request", s.handle(s.requestGuide))
	})

	root.Route("/dashboard", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(guard.Require(s.sessions))
			r.Get("/", s.handle(s.profile))
			r.Post("/documents", s.handle(s.uploadDocument))
			r.Post("/profile/password", s.handle(s.changePassword))
		})

		// By role
		r.With(s.only("/dashboard/profile")).Get("/profile", s.handle(s.profile))
		r.With(s.only("/dashboard/user")).Get("/user", s.handle(s.userDashboard))

		r.Group(func(r chi.Router) {
			r.Use(s.only("/dashboard/provider"))
			r.Get("/provider", s.handle(s.providerDashboard))
			r.Post("/provider/cars", s.handle(s.addCar))
			r.Post("/provider/cars/{id}/delete", s.handle(s.deleteCar))
		})

		r.Group(func(r chi.Router) {
			r.Use(s.only("/dashboard/admin"))
			r.Get("/admin", s.handle(s.adminDashboard))
			r.Post("/admin/users/{id}/approve", s.handle(s.approveUser))
			r.Post("/admin/users/{id}/suspend", s.handle(s.suspendUser))
			r.Post("/admin/ads/{id}", s.handle(s.handleAd))
			r.Post("/admin/documents/{id}/verify", s.handle(s.verifyDocument))
		})

		r.Group(func(r chi.Router) {
			r.Use(s.only("/dashboard/create-ad"))
			r.Get("/create-ad", s.handle(s.createAdPage))
			r.Post("/create-ad", s.handle(s.createAd))
		})
	})

	return root
}

// only guards a dashboard view with the roles bound to it.
func (s *Server) only(path string) func(http.Handler) http.Handler {
	return guard.Require(s.sessions, guard.RolesFor(path)...)
}

func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

func RegisterHooks(lc fx.Lifecycle, s *Server) {
	lc.Append(fx.Hook{
		OnStart: s.Start,
		OnStop:  s.server.Shutdown,
	})
}

func (s *Server) Start(_ context.Context) error {
	go func() {
		s.log.Info("listening", zap.String("addr", s.server.Addr))
		err := s.server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			s.log.Error("error shutting down server", zap.Error(err))
		}
	}()
	return nil
}
