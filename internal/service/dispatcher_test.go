package service_test

import (
    "fmt"
    "testing"
    "time"

    "github.com/rs/zerolog"

    "github.com/blasthq/blast-backend/internal/model"
    "github.com/blasthq/blast-backend/internal/service"
)

type fakeCampaignStore struct {
    campaign   *model.Campaign
    doneID     int
    doneSentAt time.Time
    doneCalls  int
}

func (f *fakeCampaignStore) GetByID(id int) (*model.Campaign, error) {
    return f.campaign, nil
}

func (f *fakeCampaignStore) MarkDone(campaignID int, sentAt time.Time) error {
    f.doneID = campaignID
    f.doneSentAt = sentAt
    f.doneCalls++
    return nil
}

type fakeSendLogStore struct {
    entries []model.SendLog
}

func (f *fakeSendLogStore) Create(entry *model.SendLog) error {
    f.entries = append(f.entries, *entry)
    return nil
}

type fakeEmailSender struct {
    failFor map[string]error // recipient -> error
    sent    []string
}

func (f *fakeEmailSender) Send(from, to, subject, bodyHTML string) error {
    if err, ok := f.failFor[to]; ok {
        return err
    }
    f.sent = append(f.sent, to)
    return nil
}

type fakeWhatsAppSender struct {
    failFor map[string]string // phone -> error detail
    sent    []string
}

func (f *fakeWhatsAppSender) Send(phone, text string) (bool, int, string) {
    if detail, ok := f.failFor[phone]; ok {
        return false, 500, detail
    }
    f.sent = append(f.sent, phone)
    return true, 200, "SM" + phone
}

func strPtr(s string) *string { return &s }

func newDispatcher(campaign *model.Campaign, clients map[int]model.Client, ids []int) (*service.Dispatcher, *fakeCampaignStore, *fakeSendLogStore, *fakeEmailSender, *fakeWhatsAppSender) {
    campaign.RecipientMode = model.ModeSelected
    campaign.SelectedClientIDs = ids

    store := &fakeRecipientStore{clients: clients}
    campaigns := &fakeCampaignStore{campaign: campaign}
    logs := &fakeSendLogStore{}
    email := &fakeEmailSender{failFor: map[string]error{}}
    wa := &fakeWhatsAppSender{failFor: map[string]string{}}

    d := &service.Dispatcher{
        Campaigns: campaigns,
        Resolver:  &service.Resolver{Clients: store},
        Logs:      logs,
        Email:     email,
        WhatsApp:  wa,
        Log:       zerolog.Nop(),
    }
    return d, campaigns, logs, email, wa
}

func TestDispatchSkipsClientsWithoutEmail(t *testing.T) {
    campaign := &model.Campaign{ID: 7, Name: "Promo", Channel: model.ChannelEmail, Subject: "Hi", BodyHTML: "<p>hi</p>"}
    clients := map[int]model.Client{
        1: {ID: 1, Name: "No Email"},
        2: {ID: 2, Name: "Has Email", Email: strPtr("b@x.com")},
    }

    d, campaigns, logs, email, _ := newDispatcher(campaign, clients, []int{1, 2})

    sent, err := d.Dispatch(7)
    if err != nil {
        t.Fatalf("unexpected error: %v", err)
    }
    if sent != 1 {
        t.Errorf("expected 1 successful send, got %d", sent)
    }
    if len(logs.entries) != 1 {
        t.Fatalf("expected exactly 1 send log (skipped client unlogged), got %d", len(logs.entries))
    }
    if logs.entries[0].ClientID != 2 || !logs.entries[0].Success {
        t.Errorf("unexpected log entry: %+v", logs.entries[0])
    }
    if len(email.sent) != 1 || email.sent[0] != "b@x.com" {
        t.Errorf("expected one email to b@x.com, got %v", email.sent)
    }
    if campaigns.doneCalls != 1 || campaigns.doneID != 7 {
        t.Errorf("expected campaign 7 marked done once, got %d calls for %d", campaigns.doneCalls, campaigns.doneID)
    }
}

func TestDispatchContinuesAfterFailure(t *testing.T) {
    campaign := &model.Campaign{ID: 8, Name: "Promo", Channel: model.ChannelEmail, Subject: "Hi", BodyHTML: "<p>hi</p>"}
    clients := map[int]model.Client{
        1: {ID: 1, Name: "A", Email: strPtr("a@x.com")},
        2: {ID: 2, Name: "B", Email: strPtr("b@x.com")},
    }

    d, _, logs, email, _ := newDispatcher(campaign, clients, []int{1, 2})
    email.failFor["a@x.com"] = fmt.Errorf("smtp: connection refused")

    sent, err := d.Dispatch(8)
    if err != nil {
        t.Fatalf("unexpected error: %v", err)
    }
    if sent != 1 {
        t.Errorf("expected success count 1, got %d", sent)
    }
    if len(logs.entries) != 2 {
        t.Fatalf("expected 2 send logs, got %d", len(logs.entries))
    }
    if logs.entries[0].Success || logs.entries[0].ResponseBody != "smtp: connection refused" {
        t.Errorf("expected failure log for A, got %+v", logs.entries[0])
    }
    if !logs.entries[1].Success {
        t.Errorf("expected success log for B, got %+v", logs.entries[1])
    }
}

func TestDispatchWhatsAppLogsTriState(t *testing.T) {
    campaign := &model.Campaign{ID: 9, Name: "WA Promo", Channel: model.ChannelWhatsApp, MessageText: "hello"}
    clients := map[int]model.Client{
        1: {ID: 1, Name: "A", Phone: strPtr("+111")},
        2: {ID: 2, Name: "B", Phone: strPtr("+222")},
        3: {ID: 3, Name: "No Phone", Email: strPtr("c@x.com")},
    }

    d, _, logs, _, wa := newDispatcher(campaign, clients, []int{1, 2, 3})
    wa.failFor["+222"] = "invalid credentials"

    sent, err := d.Dispatch(9)
    if err != nil {
        t.Fatalf("unexpected error: %v", err)
    }
    if sent != 1 {
        t.Errorf("expected success count 1, got %d", sent)
    }
    if len(logs.entries) != 2 {
        t.Fatalf("expected 2 send logs (client without phone skipped), got %d", len(logs.entries))
    }

    ok := logs.entries[0]
    if !ok.Success || ok.ResponseCode != "200" || ok.ResponseBody != "SM+111" {
        t.Errorf("unexpected success entry: %+v", ok)
    }
    failed := logs.entries[1]
    if failed.Success || failed.ResponseCode != "500" || failed.ResponseBody != "invalid credentials" {
        t.Errorf("unexpected failure entry: %+v", failed)
    }
}

func TestDispatchRejectsUnknownChannel(t *testing.T) {
    campaign := &model.Campaign{ID: 10, Name: "Bad", Channel: "SMS"}
    d, campaigns, logs, _, _ := newDispatcher(campaign, map[int]model.Client{}, nil)

    if _, err := d.Dispatch(10); err == nil {
        t.Fatal("expected error for unsupported channel")
    }
    if len(logs.entries) != 0 {
        t.Errorf("expected no send logs, got %d", len(logs.entries))
    }
    if campaigns.doneCalls != 0 {
        t.Errorf("campaign must not be marked done on validation failure")
    }
}
