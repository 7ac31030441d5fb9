package queue

import (
    "encoding/json"
    "sync"

    "github.com/streadway/amqp"
)

// QueueName is the durable queue carrying dispatch jobs.
const QueueName = "campaign_dispatch"

// DispatchJob asks the worker to run the send loop for one campaign.
type DispatchJob struct {
    CampaignID int    `json:"campaign_id"`
    Channel    string `json:"channel"`
}

// Publisher hands dispatch jobs to the worker. No idempotency: publishing
// the same campaign twice dispatches it twice.
type Publisher interface {
    Publish(job DispatchJob) error
    Close() error
}

// AMQPPublisher publishes jobs to RabbitMQ.
type AMQPPublisher struct {
    conn *amqp.Connection
    ch   *amqp.Channel
}

func NewAMQPPublisher(url string) (*AMQPPublisher, error) {
    conn, err := amqp.Dial(url)
    if err != nil {
        return nil, err
    }
    ch, err := conn.Channel()
    if err != nil {
        conn.Close()
        return nil, err
    }

    _, err = ch.QueueDeclare(
        QueueName,
        true,  // durable
        false, // delete when unused
        false, // exclusive
        false, // no-wait
        nil,   // arguments
    )
    if err != nil {
        ch.Close()
        conn.Close()
        return nil, err
    }

    return &AMQPPublisher{conn: conn, ch: ch}, nil
}

func (p *AMQPPublisher) Publish(job DispatchJob) error {
    body, err := json.Marshal(job)
    if err != nil {
        return err
    }
    return p.ch.Publish(
        "",
        QueueName,
        false,
        false,
        amqp.Publishing{
            ContentType:  "application/json",
            DeliveryMode: amqp.Persistent,
            Body:         body,
        },
    )
}

func (p *AMQPPublisher) Close() error {
    p.ch.Close()
    return p.conn.Close()
}

// InMemoryPublisher records jobs instead of publishing them. Used in tests
// and in local runs without a broker.
type InMemoryPublisher struct {
    mu   sync.Mutex
    Jobs []DispatchJob
}

func NewInMemoryPublisher() *InMemoryPublisher {
    return &InMemoryPublisher{}
}

func (p *InMemoryPublisher) Publish(job DispatchJob) error {
    p.mu.Lock()
    defer p.mu.Unlock()
    p.Jobs = append(p.Jobs, job)
    return nil
}

func (p *InMemoryPublisher) Close() error { return nil }

var (
    _ Publisher = (*AMQPPublisher)(nil)
    _ Publisher = (*InMemoryPublisher)(nil)
)
