package controller_test

import (
    "bytes"
    "encoding/json"
    "net/http"
    "net/http/httptest"
    "testing"
    "time"

    "github.com/go-chi/chi/v5"
    "github.com/rs/zerolog"

    "github.com/blasthq/blast-backend/internal/controller"
    appErrors "github.com/blasthq/blast-backend/internal/errors"
    "github.com/blasthq/blast-backend/internal/model"
    "github.com/blasthq/blast-backend/internal/queue"
    "github.com/blasthq/blast-backend/internal/service"
)

// --- Mock Repositories ---

type MockCampaignRepo struct {
    campaigns     map[int]*model.Campaign
    nextID        int
    statusUpdates map[int]string
}

func newMockCampaignRepo() *MockCampaignRepo {
    return &MockCampaignRepo{
        campaigns:     map[int]*model.Campaign{},
        statusUpdates: map[int]string{},
    }
}

func (m *MockCampaignRepo) Create(c *model.Campaign) error {
    m.nextID++
    c.ID = m.nextID
    c.CreatedAt = time.Now()
    m.campaigns[c.ID] = c
    return nil
}

func (m *MockCampaignRepo) GetByID(id int) (*model.Campaign, error) {
    c, ok := m.campaigns[id]
    if !ok {
        return nil, appErrors.NewCampaignNotFound(id)
    }
    return c, nil
}

func (m *MockCampaignRepo) ListCampaigns(offset, limit int, channel, status string) ([]*model.Campaign, int, error) {
    out := []*model.Campaign{}
    for _, c := range m.campaigns {
        if channel != "" && c.Channel != channel {
            continue
        }
        if status != "" && c.Status != status {
            continue
        }
        out = append(out, c)
    }
    return out, len(out), nil
}

func (m *MockCampaignRepo) UpdateStatus(campaignID int, status string) error {
    m.statusUpdates[campaignID] = status
    if c, ok := m.campaigns[campaignID]; ok {
        c.Status = status
    }
    return nil
}

func (m *MockCampaignRepo) MarkDone(campaignID int, sentAt time.Time) error {
    if c, ok := m.campaigns[campaignID]; ok {
        c.Status = model.StatusDone
        c.SentAt = &sentAt
    }
    return nil
}

type MockSendLogRepo struct{}

func (m *MockSendLogRepo) Create(entry *model.SendLog) error { return nil }

func (m *MockSendLogRepo) List(offset, limit int, channel string, success *bool) ([]model.SendLog, int, error) {
    return []model.SendLog{}, 0, nil
}

func (m *MockSendLogRepo) StatsByCampaignName(name string) (map[string]int, error) {
    return map[string]int{"total": 2, "sent": 1, "failed": 1}, nil
}

// --- Helpers ---

func newTestRouter(repo *MockCampaignRepo, pub *queue.InMemoryPublisher) http.Handler {
    svc := &service.CampaignService{
        CampaignRepo: repo,
        SendLogRepo:  &MockSendLogRepo{},
        Queue:        pub,
        Log:          zerolog.Nop(),
    }
    ctrl := &controller.CampaignController{CampaignService: svc}

    r := chi.NewRouter()
    r.Post("/campaigns", ctrl.CreateCampaign)
    r.Get("/campaigns/{id}", ctrl.GetCampaign)
    r.Post("/campaigns/{id}/dispatch", ctrl.DispatchCampaign)
    return r
}

// --- Tests ---

func TestCreateCampaign(t *testing.T) {
    repo := newMockCampaignRepo()
    router := newTestRouter(repo, queue.NewInMemoryPublisher())

    body := map[string]interface{}{
        "name":           "Welcome Blast",
        "channel":        "EMAIL",
        "recipient_mode": "ALL",
        "subject":        "Hi",
        "body_html":      "<p>Hello</p>",
    }
    b, _ := json.Marshal(body)

    req := httptest.NewRequest("POST", "/campaigns", bytes.NewReader(b))
    w := httptest.NewRecorder()
    router.ServeHTTP(w, req)

    if w.Code != http.StatusCreated {
        t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
    }

    var created model.Campaign
    if err := json.NewDecoder(w.Body).Decode(&created); err != nil {
        t.Fatalf("failed to decode response: %v", err)
    }
    if created.ID == 0 || created.Status != model.StatusDraft {
        t.Errorf("expected draft campaign with id, got %+v", created)
    }
}

func TestCreateCampaignRejectsBadMode(t *testing.T) {
    router := newTestRouter(newMockCampaignRepo(), queue.NewInMemoryPublisher())

    body := map[string]interface{}{
        "name":           "Bad",
        "channel":        "EMAIL",
        "recipient_mode": "EVERYONE",
        "subject":        "Hi",
        "body_html":      "<p>Hello</p>",
    }
    b, _ := json.Marshal(body)

    req := httptest.NewRequest("POST", "/campaigns", bytes.NewReader(b))
    w := httptest.NewRecorder()
    router.ServeHTTP(w, req)

    if w.Code != http.StatusBadRequest {
        t.Errorf("expected 400 for invalid recipient mode, got %d", w.Code)
    }
}

func TestDispatchCampaignQueuesJob(t *testing.T) {
    repo := newMockCampaignRepo()
    pub := queue.NewInMemoryPublisher()
    router := newTestRouter(repo, pub)

    repo.Create(&model.Campaign{
        Name:          "WA Promo",
        Channel:       model.ChannelWhatsApp,
        RecipientMode: model.ModeAll,
        MessageText:   "hello",
        Status:        model.StatusDraft,
    })

    req := httptest.NewRequest("POST", "/campaigns/1/dispatch", nil)
    w := httptest.NewRecorder()
    router.ServeHTTP(w, req)

    if w.Code != http.StatusAccepted {
        t.Fatalf("expected 202, got %d: %s", w.Code, w.Body.String())
    }
    if repo.statusUpdates[1] != model.StatusQueued {
        t.Errorf("expected campaign flipped to queued, got %q", repo.statusUpdates[1])
    }
    if len(pub.Jobs) != 1 {
        t.Fatalf("expected 1 published job, got %d", len(pub.Jobs))
    }
    if pub.Jobs[0].CampaignID != 1 || pub.Jobs[0].Channel != model.ChannelWhatsApp {
        t.Errorf("unexpected job: %+v", pub.Jobs[0])
    }

    // Submitting twice dispatches twice; there is no idempotency guard.
    router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("POST", "/campaigns/1/dispatch", nil))
    if len(pub.Jobs) != 2 {
        t.Errorf("expected a second job after re-dispatch, got %d", len(pub.Jobs))
    }
}

func TestDispatchUnknownCampaign(t *testing.T) {
    router := newTestRouter(newMockCampaignRepo(), queue.NewInMemoryPublisher())

    req := httptest.NewRequest("POST", "/campaigns/42/dispatch", nil)
    w := httptest.NewRecorder()
    router.ServeHTTP(w, req)

    if w.Code != http.StatusNotFound {
        t.Errorf("expected 404, got %d", w.Code)
    }
}

func TestGetCampaignWithStats(t *testing.T) {
    repo := newMockCampaignRepo()
    router := newTestRouter(repo, queue.NewInMemoryPublisher())

    repo.Create(&model.Campaign{
        Name:          "Welcome Blast",
        Channel:       model.ChannelEmail,
        RecipientMode: model.ModeAll,
        Status:        model.StatusDone,
    })

    req := httptest.NewRequest("GET", "/campaigns/1", nil)
    w := httptest.NewRecorder()
    router.ServeHTTP(w, req)

    if w.Code != http.StatusOK {
        t.Fatalf("expected 200, got %d", w.Code)
    }

    var res struct {
        ID    int            `json:"id"`
        Stats map[string]int `json:"stats"`
    }
    if err := json.NewDecoder(w.Body).Decode(&res); err != nil {
        t.Fatalf("failed to decode response: %v", err)
    }
    if res.ID != 1 {
        t.Errorf("expected campaign 1, got %d", res.ID)
    }
    if res.Stats["sent"] != 1 || res.Stats["failed"] != 1 {
        t.Errorf("unexpected stats: %+v", res.Stats)
    }
}
