package routes

import (
	"net/http"

	"github.com/gorilla/csrf"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/hwickes/restyle-pos/app/configs"
	"github.com/hwickes/restyle-pos/app/handlers"
	"github.com/hwickes/restyle-pos/app/middlewares"
	"github.com/hwickes/restyle-pos/app/repositories"
	"github.com/hwickes/restyle-pos/app/services"
	"github.com/hwickes/restyle-pos/app/utils/sessions"
)

func NewRouter(db *gorm.DB, keys *configs.SessionKeys) http.Handler {
	env := configs.LoadENV

	userRepo := repositories.NewUserRepository(db)
	productRepo := repositories.NewProductRepository(db)
	supplierRepo := repositories.NewSupplierRepository(db)
	locationRepo := repositories.NewLocationRepository(db)
	saleRepo := repositories.NewSaleRepository(db)
	saleItemRepo := repositories.NewSaleItemRepository(db)
	settlementRepo := repositories.NewSettlementRepository(db)
	stockRepo := repositories.NewStockRepository(db)

	sessionStore := sessions.NewCookieSessionStore(keys.AuthKey, keys.EncKey)

	mailer := services.NewMailer(services.MailerConfig{
		Host:     env.EmailHost,
		Port:     env.EmailPort,
		Username: env.EmailUsername,
		Password: env.EmailPassword,
		From:     env.EmailFrom,
		ShopName: env.ShopName,
	})
	checkoutSvc := services.NewCheckoutService(db, productRepo, saleRepo, saleItemRepo, settlementRepo, stockRepo)
	salesSvc := services.NewSalesService(db, saleRepo, saleItemRepo, productRepo, settlementRepo, stockRepo)
	consignmentSvc := services.NewConsignmentService(productRepo, settlementRepo)

	authHandler := handlers.NewAuthHandler(userRepo, sessionStore)
	productHandler := handlers.NewProductHandler(db, productRepo, stockRepo)
	supplierHandler := handlers.NewSupplierHandler(supplierRepo)
	locationHandler := handlers.NewLocationHandler(locationRepo)
	posHandler := handlers.NewPOSHandler(checkoutSvc, mailer)
	salesHandler := handlers.NewSalesHandler(salesSvc, mailer)
	consignmentHandler := handlers.NewConsignmentHandler(consignmentSvc)
	reportsHandler := handlers.NewReportsHandler(saleRepo, settlementRepo)

	router := mux.NewRouter()
	router.Use(middlewares.Logging)
	router.Use(middlewares.Metrics)

	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods(http.MethodGet)

	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/auth/login", authHandler.Login).Methods(http.MethodPost)
	api.HandleFunc("/auth/logout", authHandler.Logout).Methods(http.MethodPost)

	// Everything below needs a signed-in till account.
	auth := api.NewRoute().Subrouter()
	auth.Use(middlewares.RequireAuth(sessionStore, userRepo))

	auth.HandleFunc("/auth/me", authHandler.Me).Methods(http.MethodGet)

	auth.HandleFunc("/products", productHandler.List).Methods(http.MethodGet)
	auth.HandleFunc("/products", productHandler.Create).Methods(http.MethodPost)
	auth.HandleFunc("/products/filter-options", productHandler.FilterOptions).Methods(http.MethodGet)
	auth.HandleFunc("/products/trade-ins/pending", productHandler.PendingTradeIns).Methods(http.MethodGet)
	auth.HandleFunc("/products/slug/{slug}", productHandler.GetBySlug).Methods(http.MethodGet)
	auth.HandleFunc("/products/{id}", productHandler.Get).Methods(http.MethodGet)
	auth.HandleFunc("/products/{id}", productHandler.Update).Methods(http.MethodPut)
	auth.HandleFunc("/products/{id}", productHandler.Delete).Methods(http.MethodDelete)
	auth.HandleFunc("/products/{id}/stock", productHandler.AdjustStock).Methods(http.MethodPost)
	auth.HandleFunc("/products/{id}/stock-history", productHandler.StockHistory).Methods(http.MethodGet)

	auth.HandleFunc("/suppliers", supplierHandler.List).Methods(http.MethodGet)
	auth.HandleFunc("/suppliers", supplierHandler.Create).Methods(http.MethodPost)
	auth.HandleFunc("/suppliers/{id}", supplierHandler.Update).Methods(http.MethodPut)
	auth.HandleFunc("/locations", locationHandler.List).Methods(http.MethodGet)
	auth.HandleFunc("/locations", locationHandler.Create).Methods(http.MethodPost)

	auth.HandleFunc("/checkout", posHandler.Checkout).Methods(http.MethodPost)

	auth.HandleFunc("/sales", salesHandler.List).Methods(http.MethodGet)
	auth.HandleFunc("/sales/{id}", salesHandler.Get).Methods(http.MethodGet)
	auth.HandleFunc("/sales/{id}/items/{itemID}", salesHandler.EditItem).Methods(http.MethodPatch)
	auth.HandleFunc("/sales/{id}/void", salesHandler.Void).Methods(http.MethodPost)
	auth.HandleFunc("/sales/{id}/email-receipt", salesHandler.EmailReceipt).Methods(http.MethodPost)

	auth.HandleFunc("/consignment/suppliers/{supplierID}", consignmentHandler.SupplierReport).Methods(http.MethodGet)

	// Back-office routes, owner only.
	owner := auth.NewRoute().Subrouter()
	owner.Use(middlewares.RequireOwner)
	owner.HandleFunc("/auth/register", authHandler.Register).Methods(http.MethodPost)
	owner.HandleFunc("/consignment/settlements/{id}/pay", consignmentHandler.MarkPaid).Methods(http.MethodPost)
	owner.HandleFunc("/reports/summary", reportsHandler.Summary).Methods(http.MethodGet)
	owner.HandleFunc("/reports/sales.xlsx", reportsHandler.ExportSales).Methods(http.MethodGet)

	if env.CSRFKey != "" {
		protect := csrf.Protect(
			[]byte(env.CSRFKey),
			csrf.Secure(false),
			csrf.Path("/"),
		)
		return protect(router)
	}
	return router
}
