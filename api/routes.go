package api

import (
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humago"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/budget-engine/internal/handlers/v1/account"
	"github.com/carson-networks/budget-engine/internal/handlers/v1/goal"
	"github.com/carson-networks/budget-engine/internal/handlers/v1/status"
	"github.com/carson-networks/budget-engine/internal/handlers/v1/template"
	"github.com/carson-networks/budget-engine/internal/handlers/v1/transaction"
	"github.com/carson-networks/budget-engine/internal/logging"
	"github.com/carson-networks/budget-engine/internal/service"
)

type Rest struct {
	Logger  *logrus.Logger
	Port    string
	Service *service.Service
}

func (r *Rest) Serve() {
	mux := http.NewServeMux()

	statusHandler := status.NewHandler()
	mux.HandleFunc("/status", logging.LoggingWrapper("Status", r.Logger, statusHandler.Handler))

	humaAPI := humago.New(mux, huma.DefaultConfig("budget-engine", "1.0.0"))
	humaAPI.UseMiddleware(func(ctx huma.Context, next func(huma.Context)) {
		logData := logging.NewLogData(r.Logger)
		next(huma.WithValue(ctx, logging.ContextKey(), logData))
	})

	transaction.NewCreateTransactionHandler(r.Service.Transaction).Register(humaAPI)
	transaction.NewUpdateTransactionHandler(r.Service.Transaction).Register(humaAPI)
	transaction.NewDeleteTransactionHandler(r.Service.Transaction).Register(humaAPI)
	transaction.NewListTransactionsHandler(r.Service.Transaction).Register(humaAPI)
	account.NewCreateAccountHandler(r.Service.Account).Register(humaAPI)
	account.NewListAccountsHandler(r.Service.Account).Register(humaAPI)
	goal.NewContributeHandler(r.Service.Goal).Register(humaAPI)
	template.NewCreateTemplateHandler(r.Service.Template).Register(humaAPI)
	template.NewRunTemplatesHandler(r.Service.Scheduler).Register(humaAPI)

	server := http.Server{
		Addr:              ":" + r.Port,
		Handler:           mux,
		ReadTimeout:       time.Duration(30) * time.Second,
		WriteTimeout:      time.Duration(30) * time.Second,
		IdleTimeout:       time.Duration(10) * time.Second,
		ReadHeaderTimeout: time.Duration(10) * time.Second,
	}

	r.Logger.Info("HttpServer.Serve.listening")
	err := server.ListenAndServe()
	if err != nil {
		r.Logger.WithError(err).Error("HttpServer.Serve.listen error")
	}
	r.Logger.Info("HttpServer.Serve.shutting down")
}
