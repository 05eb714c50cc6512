package service

import (
	"context"
	"sync"
	"time"

	"github.com/workvortex/vortex-api/internal/domain/model"
	"github.com/workvortex/vortex-api/internal/observability/notify"
)

// notifierSpy records notifications synchronously.
type notifierSpy struct {
	mu     sync.Mutex
	events []notify.Event
}

func (n *notifierSpy) Notify(_ context.Context, ev notify.Event) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, ev)
}

func (n *notifierSpy) all() []notify.Event {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]notify.Event(nil), n.events...)
}

// metricsSpy counts statsd emissions by name.
type metricsSpy struct {
	mu     sync.Mutex
	counts map[string]int
}

func (m *metricsSpy) Count(name string, value int64, _ map[string]string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.counts == nil {
		m.counts = make(map[string]int)
	}
	m.counts[name] += int(value)
}

func (m *metricsSpy) Gauge(string, float64, map[string]string)      {}
func (m *metricsSpy) Timing(string, time.Duration, map[string]string) {}

func (m *metricsSpy) count(name string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.counts[name]
}

func strPtr(s string) *string { return &s }

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func candidateAccount(id string) *model.Account {
	return &model.Account{
		ID:        id,
		Email:     id + "@example.com",
		Name:      "Cand " + id,
		Phone:     strPtr("555-0100"),
		Role:      model.RoleCandidate,
		CreatedAt: day(2024, time.January, 1),
	}
}

func employerAccount(id string) *model.Account {
	return &model.Account{
		ID:        id,
		Email:     id + "@corp.example.com",
		Name:      "Emp " + id,
		Role:      model.RoleEmployer,
		CreatedAt: day(2024, time.January, 1),
	}
}

func employerPrincipal(id string) *model.EmployerPrincipal {
	return model.NewEmployerPrincipal(*employerAccount(id), model.EmployerRecord{AccountID: id, Sector: "Logistics"})
}

func candidatePrincipal(id string) *model.CandidatePrincipal {
	return model.NewCandidatePrincipal(*candidateAccount(id), model.CandidateRecord{AccountID: id}, nil)
}
