package api

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/venapictures/studio/internal/api/handler"
	"github.com/venapictures/studio/internal/api/middleware"
	"github.com/venapictures/studio/internal/api/validation"
	"github.com/venapictures/studio/internal/crud"
	"github.com/venapictures/studio/internal/entity"
	"github.com/venapictures/studio/internal/store"
	"github.com/venapictures/studio/internal/workspace"
)

// AuthService signs users in and resolves session tokens.
type AuthService interface {
	handler.SessionManager
	middleware.Authenticator
}

// Shells opens, reuses and forgets per-session workspaces.
type Shells interface {
	handler.ShellRegistry
	middleware.Shells
}

// RouterDeps holds all dependencies needed by the router.
type RouterDeps struct {
	DBPinger    handler.DBPinger
	Backend     string
	Version     string
	OpenAPISpec []byte
	Auth        AuthService
	Shells      Shells
	Portal      handler.PortalService
	Console     handler.QueryRunner // nil disables the SQL console
	BcryptCost  int
}

// NewRouter creates and configures a Chi router with all middleware and routes.
func NewRouter(deps RouterDeps) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recovery)
	r.Use(chimiddleware.Logger)

	healthHandler := handler.NewHealthHandler(deps.DBPinger, deps.Version, deps.Backend)
	r.Get("/health", healthHandler.ServeHTTP)

	if len(deps.OpenAPISpec) > 0 {
		openapiHandler := handler.NewOpenAPIHandler(deps.OpenAPISpec)
		r.Get("/openapi.json", openapiHandler.JSON)
		r.Get("/openapi.yaml", openapiHandler.YAML)
	}

	if deps.Portal != nil {
		portalHandler := handler.NewPortalHandler(deps.Portal)
		r.Route("/portal/{accessId}", func(r chi.Router) {
			r.Get("/", portalHandler.Client)
			r.Post("/confirm", portalHandler.Confirm)
			r.Post("/contracts/{id}/sign", portalHandler.SignContract)
		})
		r.Route("/freelancer-portal/{accessId}", func(r chi.Router) {
			r.Get("/", portalHandler.Freelancer)
			r.Post("/revisions", portalHandler.MemberRevision)
		})
		r.Route("/public", func(r chi.Router) {
			r.Post("/booking", portalHandler.Book)
			r.Get("/promo/{code}", portalHandler.CheckPromo)
			r.Post("/leads", portalHandler.Lead)
			r.Post("/suggestions", portalHandler.Suggestion)
			r.Post("/feedback", portalHandler.Feedback)
			r.Post("/revisions", portalHandler.Revision)
		})
	}

	if deps.Auth == nil || deps.Shells == nil {
		return r
	}

	authHandler := handler.NewAuthHandler(deps.Auth, deps.Shells)
	wsHandler := handler.NewWorkspaceHandler(deps.Auth)

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/login", authHandler.Login)
		r.Get("/route", wsHandler.Route)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(deps.Auth, deps.Shells))

			r.Post("/auth/logout", authHandler.Logout)
			r.Get("/auth/me", authHandler.Me)

			r.Get("/workspace", wsHandler.Summary)
			r.Post("/workspace/refresh", wsHandler.Refresh)
			r.Get("/views/{view}", wsHandler.View)
			r.Post("/navigate", wsHandler.Navigate)
			r.Get("/search", wsHandler.Search)
			r.Post("/sign/{kind}/{id}", wsHandler.Sign)

			r.Route("/profile", func(r chi.Router) {
				r.Use(middleware.RequireView(workspace.ViewSettings))
				r.Get("/", wsHandler.GetProfile)
				r.Put("/", wsHandler.UpdateProfile)
			})

			mountEntities(r, deps)

			if deps.Console != nil {
				sqlHandler := handler.NewSQLHandler(deps.Console)
				r.Route("/sql", func(r chi.Router) {
					r.Use(middleware.RequireView(workspace.ViewSQLEditor))
					r.Post("/", sqlHandler.Run)
					r.Get("/quick", sqlHandler.Quick)
					r.Get("/tables", sqlHandler.Tables)
					r.Get("/tables/{table}/columns", sqlHandler.Columns)
					r.Post("/export", sqlHandler.Export)
				})
			}
		})
	})

	return r
}

func mountEntities(r chi.Router, deps RouterDeps) {
	mountEntity(r, "/users", workspace.ViewSettings, handler.NewEntityHandler("user", store.Users,
		func(s *workspace.Shell) *crud.Collection[entity.User] { return s.Users },
		handler.WithValidator(validation.User),
		handler.WithPatchHook[entity.User](handler.PasswordHook(deps.BcryptCost))))
	mountEntity(r, "/clients", workspace.ViewClients, handler.NewEntityHandler("client", store.Clients,
		func(s *workspace.Shell) *crud.Collection[entity.Client] { return s.Clients },
		handler.WithValidator(validation.Client)))
	mountEntity(r, "/projects", workspace.ViewProjects, handler.NewEntityHandler("project", store.Projects,
		func(s *workspace.Shell) *crud.Collection[entity.Project] { return s.Projects },
		handler.WithValidator(validation.Project)))
	mountEntity(r, "/team-members", workspace.ViewTeam, handler.NewEntityHandler("team member", store.TeamMembers,
		func(s *workspace.Shell) *crud.Collection[entity.TeamMember] { return s.TeamMembers },
		handler.WithValidator(validation.TeamMember)))
	mountEntity(r, "/team-project-payments", workspace.ViewTeam, handler.NewEntityHandler("team project payment", store.TeamProjectPayments,
		func(s *workspace.Shell) *crud.Collection[entity.TeamProjectPayment] { return s.TeamProjectPayments },
		handler.WithValidator(validation.TeamProjectPayment)))
	mountEntity(r, "/team-payment-records", workspace.ViewTeam, handler.NewEntityHandler("team payment record", store.TeamPaymentRecords,
		func(s *workspace.Shell) *crud.Collection[entity.TeamPaymentRecord] { return s.TeamPaymentRecords },
		handler.WithValidator(validation.TeamPaymentRecord)))
	mountEntity(r, "/reward-ledger", workspace.ViewTeam, handler.NewEntityHandler("reward entry", store.RewardLedger,
		func(s *workspace.Shell) *crud.Collection[entity.RewardLedgerEntry] { return s.RewardLedger },
		handler.WithValidator(validation.RewardLedgerEntry)))
	mountEntity(r, "/transactions", workspace.ViewFinance, handler.NewEntityHandler("transaction", store.Transactions,
		func(s *workspace.Shell) *crud.Collection[entity.Transaction] { return s.Transactions },
		handler.WithValidator(validation.Transaction)))
	mountEntity(r, "/pockets", workspace.ViewFinance, handler.NewEntityHandler("pocket", store.FinancialPockets,
		func(s *workspace.Shell) *crud.Collection[entity.FinancialPocket] { return s.Pockets },
		handler.WithValidator(validation.Pocket)))
	mountEntity(r, "/cards", workspace.ViewFinance, handler.NewEntityHandler("card", store.Cards,
		func(s *workspace.Shell) *crud.Collection[entity.Card] { return s.Cards },
		handler.WithValidator(validation.Card)))
	mountEntity(r, "/packages", workspace.ViewPackages, handler.NewEntityHandler("package", store.Packages,
		func(s *workspace.Shell) *crud.Collection[entity.Package] { return s.Packages },
		handler.WithValidator(validation.Package)))
	mountEntity(r, "/add-ons", workspace.ViewPackages, handler.NewEntityHandler("add-on", store.AddOns,
		func(s *workspace.Shell) *crud.Collection[entity.AddOn] { return s.AddOns },
		handler.WithValidator(validation.AddOn)))
	mountEntity(r, "/leads", workspace.ViewLeads, handler.NewEntityHandler("lead", store.Leads,
		func(s *workspace.Shell) *crud.Collection[entity.Lead] { return s.Leads },
		handler.WithValidator(validation.Lead)))
	mountEntity(r, "/assets", workspace.ViewAssets, handler.NewEntityHandler("asset", store.Assets,
		func(s *workspace.Shell) *crud.Collection[entity.Asset] { return s.Assets },
		handler.WithValidator(validation.Asset),
		handler.WithPresenter(handler.PresentAsset)),
		func(r chi.Router) { r.Get("/summary", handler.AssetSummary) })
	mountEntity(r, "/client-feedback", workspace.ViewClientReports, handler.NewEntityHandler("feedback", store.ClientFeedback,
		func(s *workspace.Shell) *crud.Collection[entity.ClientFeedback] { return s.ClientFeedback },
		handler.WithValidator(validation.ClientFeedback)))
	mountEntity(r, "/contracts", workspace.ViewContracts, handler.NewEntityHandler("contract", store.Contracts,
		func(s *workspace.Shell) *crud.Collection[entity.Contract] { return s.Contracts },
		handler.WithValidator(validation.Contract)))
	mountEntity(r, "/social-media-posts", workspace.ViewSocialPlanner, handler.NewEntityHandler("post", store.SocialMediaPosts,
		func(s *workspace.Shell) *crud.Collection[entity.SocialMediaPost] { return s.SocialMediaPosts },
		handler.WithValidator(validation.SocialMediaPost)))
	mountEntity(r, "/promo-codes", workspace.ViewPromoCodes, handler.NewEntityHandler("promo code", store.PromoCodes,
		func(s *workspace.Shell) *crud.Collection[entity.PromoCode] { return s.PromoCodes },
		handler.WithValidator(validation.PromoCode)))
	mountEntity(r, "/sops", workspace.ViewSOP, handler.NewEntityHandler("SOP", store.SOPs,
		func(s *workspace.Shell) *crud.Collection[entity.SOP] { return s.SOPs },
		handler.WithValidator(validation.SOP),
		handler.WithPresenter(handler.PresentSOP)))
	mountEntity(r, "/calendar-events", workspace.ViewCalendar, handler.NewEntityHandler("event", store.CalendarEvents,
		func(s *workspace.Shell) *crud.Collection[entity.CalendarEvent] { return s.CalendarEvents },
		handler.WithValidator(validation.CalendarEvent)))

	wsHandler := handler.NewWorkspaceHandler(deps.Auth)
	mountEntity(r, "/notifications", workspace.ViewDashboard, handler.NewEntityHandler("notification", store.Notifications,
		func(s *workspace.Shell) *crud.Collection[entity.Notification] { return s.Notifications },
		handler.WithValidator(validation.Notification)),
		func(r chi.Router) {
			r.Post("/read-all", wsHandler.MarkAllRead)
			r.Post("/{id}/read", wsHandler.MarkRead)
		})
}

// mountEntity registers the CRUD routes of h under path, guarded by view.
// extra registers additional routes on the same subrouter.
func mountEntity[T entity.Record](r chi.Router, path string, view workspace.View, h *handler.EntityHandler[T], extra ...func(chi.Router)) {
	r.Route(path, func(r chi.Router) {
		r.Use(middleware.RequireView(view))
		for _, fn := range extra {
			fn(r)
		}
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Get("/{id}", h.Get)
		r.Patch("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
}
