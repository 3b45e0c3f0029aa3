package http

import (
	"github.com/DRSN-tech/grocery-backend/internal/domain"
	"github.com/DRSN-tech/grocery-backend/internal/usecase"
	"github.com/DRSN-tech/grocery-backend/pkg/logger"
	"github.com/go-chi/chi/v5"
)

type Router struct {
	router *chi.Mux
	logger logger.Logger
}

func NewRouter(router *chi.Mux, logger logger.Logger) *Router {
	return &Router{router: router, logger: logger}
}

// Init регистрирует маршруты API. Админские маршруты каталога и
// клиентское оформление заказа закрыты проверкой роли ещё до ядра.
func (r *Router) Init(catalogUC usecase.CatalogUC, orderUC usecase.OrderUC, authUC usecase.AuthUC) {
	authMW := NewAuthMiddleware(authUC, r.logger)
	authHandler := NewAuthHandler(authUC, r.logger)
	productHandler := NewProductHandler(catalogUC, r.logger)
	orderHandler := NewOrderHandler(orderUC, r.logger)

	r.router.Route("/api/v1", func(v1 chi.Router) {
		v1.Route("/auth", func(auth chi.Router) {
			auth.Post("/register", authHandler.register)
			auth.Post("/login", authHandler.login)

			auth.Group(func(priv chi.Router) {
				priv.Use(authMW.Authenticate)
				priv.Post("/logout", authHandler.logout)
			})
		})

		v1.Group(func(priv chi.Router) {
			priv.Use(authMW.Authenticate)

			priv.Route("/products", func(pr chi.Router) {
				pr.Get("/", productHandler.list)
				pr.Get("/{id}", productHandler.get)

				pr.Group(func(admin chi.Router) {
					admin.Use(authMW.RequireRole(domain.RoleAdmin))
					admin.Post("/", productHandler.create)
					admin.Put("/{id}", productHandler.update)
					admin.Delete("/{id}", productHandler.delete)
				})
			})

			priv.Route("/orders", func(or chi.Router) {
				or.Get("/", orderHandler.list)
				or.Get("/{id}/details", orderHandler.details)

				or.Group(func(customer chi.Router) {
					customer.Use(authMW.RequireRole(domain.RoleCustomer))
					customer.Post("/", orderHandler.placeOrder)
				})
			})
		})
	})
}
