// cmd/server/main.go
package main

import (
    "net/http"

    "github.com/go-chi/chi/v5"

    "github.com/blasthq/blast-backend/internal/config"
    "github.com/blasthq/blast-backend/internal/controller"
    "github.com/blasthq/blast-backend/internal/db"
    "github.com/blasthq/blast-backend/internal/handler"
    "github.com/blasthq/blast-backend/internal/logger"
    "github.com/blasthq/blast-backend/internal/queue"
    "github.com/blasthq/blast-backend/internal/repository"
    "github.com/blasthq/blast-backend/internal/service"
)

func main() {
    log := logger.New("server")

    cfg, err := config.Load()
    if err != nil {
        log.Fatal().Err(err).Msg("failed to load config")
    }

    conn, err := db.Connect(cfg.DatabaseURL)
    if err != nil {
        log.Fatal().Err(err).Msg("failed to connect to database")
    }
    defer conn.Close()

    publisher, err := queue.NewAMQPPublisher(cfg.AMQPURL)
    if err != nil {
        log.Fatal().Err(err).Msg("failed to connect to broker")
    }
    defer publisher.Close()

    clientRepo := &repository.ClientRepository{DB: conn}
    groupRepo := &repository.GroupRepository{DB: conn}
    campaignRepo := &repository.CampaignRepository{DB: conn}
    sendLogRepo := &repository.SendLogRepository{DB: conn}

    campaignService := &service.CampaignService{
        CampaignRepo: campaignRepo,
        SendLogRepo:  sendLogRepo,
        Queue:        publisher,
        Log:          log,
    }
    importer := &service.Importer{Clients: clientRepo, Log: log}

    campaignController := &controller.CampaignController{CampaignService: campaignService}
    clientHandler := &handler.ClientHandler{Repo: clientRepo}
    groupHandler := &handler.GroupHandler{Repo: groupRepo}
    uploadHandler := &handler.UploadHandler{Importer: importer}
    sendLogHandler := &handler.SendLogHandler{Repo: sendLogRepo}

    r := chi.NewRouter()

    // Client routes
    r.Post("/clients", clientHandler.CreateClient)
    r.Get("/clients", clientHandler.ListClients)
    r.Get("/clients/{id}", clientHandler.GetClient)
    r.Put("/clients/{id}", clientHandler.UpdateClient)
    r.Delete("/clients/{id}", clientHandler.DeleteClient)

    // Contact import
    r.Post("/contacts/upload", uploadHandler.UploadContacts)
    r.Get("/contacts/template", clientHandler.DownloadTemplate)

    // Group routes
    r.Post("/groups", groupHandler.CreateGroup)
    r.Get("/groups", groupHandler.ListGroups)
    r.Delete("/groups/{id}", groupHandler.DeleteGroup)
    r.Put("/groups/{id}/members", groupHandler.SetMembers)

    // Campaign routes
    r.Post("/campaigns", campaignController.CreateCampaign)
    r.Get("/campaigns", campaignController.ListCampaigns)
    r.Get("/campaigns/{id}", campaignController.GetCampaign)
    r.Post("/campaigns/{id}/dispatch", campaignController.DispatchCampaign)

    // Send log routes
    r.Get("/sendlogs", sendLogHandler.ListSendLogs)

    log.Info().Str("addr", cfg.HTTPAddr).Msg("server running")
    if err := http.ListenAndServe(cfg.HTTPAddr, r); err != nil {
        log.Fatal().Err(err).Msg("server stopped")
    }
}
