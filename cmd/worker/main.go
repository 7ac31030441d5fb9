// cmd/worker/main.go
package main

import (
    "encoding/json"

    "github.com/streadway/amqp"

    "github.com/blasthq/blast-backend/internal/config"
    "github.com/blasthq/blast-backend/internal/db"
    "github.com/blasthq/blast-backend/internal/logger"
    "github.com/blasthq/blast-backend/internal/queue"
    "github.com/blasthq/blast-backend/internal/repository"
    "github.com/blasthq/blast-backend/internal/service"
    "github.com/blasthq/blast-backend/internal/transport"
)

func main() {
    log := logger.New("worker")

    cfg, err := config.Load()
    if err != nil {
        log.Fatal().Err(err).Msg("failed to load config")
    }

    conn, err := db.Connect(cfg.DatabaseURL)
    if err != nil {
        log.Fatal().Err(err).Msg("failed to connect to database")
    }
    defer conn.Close()

    clientRepo := &repository.ClientRepository{DB: conn}
    campaignRepo := &repository.CampaignRepository{DB: conn}
    sendLogRepo := &repository.SendLogRepository{DB: conn}

    dispatcher := &service.Dispatcher{
        Campaigns: campaignRepo,
        Resolver:  &service.Resolver{Clients: clientRepo},
        Logs:      sendLogRepo,
        Email:     transport.NewMailer(cfg.SMTP),
        WhatsApp:  transport.NewTwilioSender(cfg.Twilio),
        Log:       log,
    }

    mq, err := amqp.Dial(cfg.AMQPURL)
    if err != nil {
        log.Fatal().Err(err).Msg("failed to connect to broker")
    }
    defer mq.Close()

    ch, err := mq.Channel()
    if err != nil {
        log.Fatal().Err(err).Msg("failed to open channel")
    }
    defer ch.Close()

    q, err := ch.QueueDeclare(
        queue.QueueName,
        true,  // durable
        false, // delete when unused
        false, // exclusive
        false, // no-wait
        nil,   // arguments
    )
    if err != nil {
        log.Fatal().Err(err).Msg("failed to declare queue")
    }

    msgs, err := ch.Consume(
        q.Name,
        "",
        false, // manual ack
        false,
        false,
        false,
        nil,
    )
    if err != nil {
        log.Fatal().Err(err).Msg("failed to register consumer")
    }

    log.Info().Str("queue", q.Name).Msg("worker running, waiting for dispatch jobs")

    for d := range msgs {
        var job queue.DispatchJob
        if err := json.Unmarshal(d.Body, &job); err != nil {
            log.Error().Err(err).Msg("invalid job payload, dropping")
            d.Ack(false)
            continue
        }

        // One pass per delivery. A failure here leaves the campaign queued
        // with its partial send logs standing; there is no automatic retry.
        sent, err := dispatcher.Dispatch(job.CampaignID)
        if err != nil {
            log.Error().Err(err).Int("campaign_id", job.CampaignID).Msg("dispatch failed")
        } else {
            log.Info().Int("campaign_id", job.CampaignID).Int("sent", sent).Msg("dispatch complete")
        }
        d.Ack(false)
    }
}
