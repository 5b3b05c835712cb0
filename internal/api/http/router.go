package http

import (
	"github.com/gorilla/mux"

	"github.com/kirish34/teketeke/internal/security"
	"github.com/kirish34/teketeke/internal/service"
)

// NewRouter wires all HTTP routes. Payment-network routes are open (the
// gateway authenticates the network); admin routes require a bearer token.
func NewRouter(
	settlement service.SettlementService,
	ledger service.LedgerService,
	policies service.PolicyService,
	codes service.CodePoolService,
	tokens security.TokenManager,
) *mux.Router {
	router := mux.NewRouter()

	payments := NewPaymentHandler(settlement, ledger)
	router.HandleFunc("/api/v1/payments", payments.HandleInitiate).Methods("POST")
	router.HandleFunc("/api/v1/payments/confirmation", payments.HandleConfirmation).Methods("POST")
	router.HandleFunc("/api/v1/payments/preview", payments.HandlePreview).Methods("GET")
	router.HandleFunc("/api/v1/payments/{ref}", payments.HandleGetTransaction).Methods("GET")
	router.HandleFunc("/api/v1/matatus/{matatu_id}/summary", payments.HandleDailySummary).Methods("GET")

	admin := NewAdminHandler(policies, codes)
	adminRouter := router.PathPrefix("/api/v1/admin").Subrouter()
	adminRouter.Use(AuthMiddleware(tokens))
	adminRouter.HandleFunc("/saccos/{sacco_id}/policy", admin.HandleGetPolicy).Methods("GET")
	adminRouter.HandleFunc("/saccos/{sacco_id}/policy", admin.HandleUpdatePolicy).Methods("PUT")
	adminRouter.HandleFunc("/codes/assign", admin.HandleAssignCode).Methods("POST")
	adminRouter.HandleFunc("/codes/bind", admin.HandleBindCode).Methods("POST")
	adminRouter.HandleFunc("/codes/{code}", admin.HandleReleaseCode).Methods("DELETE")
	adminRouter.HandleFunc("/codes", admin.HandleListCodes).Methods("GET")

	return router
}
