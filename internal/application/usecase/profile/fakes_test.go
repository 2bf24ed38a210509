package profile

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/khoahotran/skillmatch/internal/application/service"
	"github.com/khoahotran/skillmatch/internal/domain/account"
	"github.com/khoahotran/skillmatch/internal/domain/company"
	"github.com/khoahotran/skillmatch/internal/domain/freelancer"
	"github.com/khoahotran/skillmatch/internal/domain/profile"
	"github.com/khoahotran/skillmatch/internal/domain/skill"
)

var errInjected = errors.New("injected storage failure")

// calls counts writes per kind so tests can tell inserts from updates.
type calls struct {
	inserts, updates int
}

type memAccounts struct {
	mu        sync.Mutex
	rows      map[uuid.UUID]account.Account
	updateErr error
	updates   int
}

func (m *memAccounts) FindByID(_ context.Context, id uuid.UUID) (*account.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.rows[id]
	if !ok {
		return nil, account.ErrAccountNotFound
	}
	return &a, nil
}

func (m *memAccounts) Update(_ context.Context, a *account.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.updateErr != nil {
		return m.updateErr
	}
	cur, ok := m.rows[a.ID]
	if !ok {
		return account.ErrAccountNotFound
	}
	next := *a
	next.Role = cur.Role
	m.rows[a.ID] = next
	m.updates++
	return nil
}

type memFreelancers struct {
	mu      sync.Mutex
	rows    map[uuid.UUID]freelancer.Profile // by account id
	findErr error
	saveErr error
	calls
}

func (m *memFreelancers) FindByAccountID(_ context.Context, accountID uuid.UUID) (*freelancer.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.findErr != nil {
		return nil, m.findErr
	}
	p, ok := m.rows[accountID]
	if !ok {
		return nil, freelancer.ErrFreelancerNotFound
	}
	return &p, nil
}

func (m *memFreelancers) Insert(_ context.Context, p *freelancer.Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.rows[p.AccountID] = *p
	m.inserts++
	return nil
}

func (m *memFreelancers) Update(_ context.Context, p *freelancer.Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.rows[p.AccountID] = *p
	m.updates++
	return nil
}

type memCompanies struct {
	mu   sync.Mutex
	rows map[uuid.UUID]company.Profile
	calls
}

func (m *memCompanies) FindByAccountID(_ context.Context, accountID uuid.UUID) (*company.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.rows[accountID]
	if !ok {
		return nil, company.ErrCompanyNotFound
	}
	return &p, nil
}

func (m *memCompanies) Insert(_ context.Context, p *company.Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows[p.AccountID] = *p
	m.inserts++
	return nil
}

func (m *memCompanies) Update(_ context.Context, p *company.Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows[p.AccountID] = *p
	m.updates++
	return nil
}

type memSkills struct {
	mu      sync.Mutex
	rows    map[uuid.UUID]skill.SkillSet // by freelancer id
	saveErr error
	calls
}

func (m *memSkills) FindByFreelancerID(_ context.Context, freelancerID uuid.UUID) (*skill.SkillSet, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.rows[freelancerID]
	if !ok {
		return nil, skill.ErrSkillSetNotFound
	}
	return &s, nil
}

func (m *memSkills) Insert(_ context.Context, s *skill.SkillSet) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.rows[s.FreelancerID] = *s
	m.inserts++
	return nil
}

func (m *memSkills) Update(_ context.Context, s *skill.SkillSet) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.rows[s.FreelancerID] = *s
	m.updates++
	return nil
}

type memIntents struct {
	mu   sync.Mutex
	rows map[uuid.UUID]*profile.WriteIntent
}

func (m *memIntents) Begin(_ context.Context, w *profile.WriteIntent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, cur := range m.rows {
		if cur.AccountID == w.AccountID && cur.Status == profile.IntentOpen {
			cur.Status = profile.IntentSuperseded
		}
	}
	cp := *w
	cp.Done = append([]profile.Step{}, w.Done...)
	m.rows[w.ID] = &cp
	return nil
}

func (m *memIntents) MarkDone(_ context.Context, id uuid.UUID, step profile.Step) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	w, ok := m.rows[id]
	if !ok {
		return profile.ErrIntentNotFound
	}
	if !w.IsDone(step) {
		w.Done = append(w.Done, step)
	}
	return nil
}

func (m *memIntents) MarkFailed(_ context.Context, id uuid.UUID, step profile.Step, cause string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	w, ok := m.rows[id]
	if !ok {
		return profile.ErrIntentNotFound
	}
	w.FailedStep = step
	w.LastError = cause
	return nil
}

func (m *memIntents) Complete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	w, ok := m.rows[id]
	if !ok {
		return profile.ErrIntentNotFound
	}
	w.Status = profile.IntentCompleted
	return nil
}

func (m *memIntents) FindOpenByAccountID(_ context.Context, accountID uuid.UUID) (*profile.WriteIntent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, w := range m.rows {
		if w.AccountID == accountID && w.Status == profile.IntentOpen {
			cp := *w
			cp.Done = append([]profile.Step{}, w.Done...)
			return &cp, nil
		}
	}
	return nil, profile.ErrIntentNotFound
}

type fakeCredentials struct {
	err       error
	passwords map[uuid.UUID]string
	calls     int
}

func (f *fakeCredentials) UpdatePassword(_ context.Context, accountID uuid.UUID, newSecret string) error {
	f.calls++
	if f.err != nil {
		return f.err
	}
	f.passwords[accountID] = newSecret
	return nil
}

type memCache struct {
	mu    sync.Mutex
	views map[uuid.UUID]profile.View
	gens  map[uuid.UUID]int64
	// beforeFill runs once, ahead of the next SetIfGeneration, with no lock held.
	beforeFill func()
}

func (c *memCache) Get(_ context.Context, id uuid.UUID) (*profile.View, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.views[id]
	if !ok {
		return nil, service.ErrCacheMiss
	}
	return &v, nil
}

func (c *memCache) Generation(_ context.Context, id uuid.UUID) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gens[id], nil
}

func (c *memCache) SetIfGeneration(_ context.Context, v *profile.View, gen int64) (bool, error) {
	if hook := c.beforeFill; hook != nil {
		c.beforeFill = nil
		hook()
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gens[v.AccountID] != gen {
		return false, nil
	}
	c.views[v.AccountID] = *v
	return true, nil
}

func (c *memCache) Invalidate(_ context.Context, id uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gens[id]++
	delete(c.views, id)
	return nil
}

type fakePublisher struct {
	events []service.ProfileEvent
	err    error
}

func (p *fakePublisher) PublishProfileEvent(_ context.Context, evt service.ProfileEvent) error {
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, evt)
	return nil
}

type fixture struct {
	accounts    *memAccounts
	freelancers *memFreelancers
	companies   *memCompanies
	skills      *memSkills
	intents     *memIntents
	credentials *fakeCredentials
	cache       *memCache
	events      *fakePublisher
}

func newFixture() *fixture {
	return &fixture{
		accounts:    &memAccounts{rows: map[uuid.UUID]account.Account{}},
		freelancers: &memFreelancers{rows: map[uuid.UUID]freelancer.Profile{}},
		companies:   &memCompanies{rows: map[uuid.UUID]company.Profile{}},
		skills:      &memSkills{rows: map[uuid.UUID]skill.SkillSet{}},
		intents:     &memIntents{rows: map[uuid.UUID]*profile.WriteIntent{}},
		credentials: &fakeCredentials{passwords: map[uuid.UUID]string{}},
		cache:       &memCache{views: map[uuid.UUID]profile.View{}, gens: map[uuid.UUID]int64{}},
		events:      &fakePublisher{},
	}
}

func (f *fixture) repos() Repositories {
	return Repositories{
		Accounts:    f.accounts,
		Freelancers: f.freelancers,
		Companies:   f.companies,
		Skills:      f.skills,
	}
}

func (f *fixture) deps() UpdateProfileDeps {
	return UpdateProfileDeps{
		Repos:       f.repos(),
		Credentials: f.credentials,
		Intents:     f.intents,
		Cache:       f.cache,
		Events:      f.events,
	}
}

func (f *fixture) seedAccount(role account.Role) uuid.UUID {
	id := uuid.New()
	f.accounts.rows[id] = account.Account{
		ID:       id,
		FullName: "Old Name",
		Email:    "old@example.com",
		Role:     role,
	}
	return id
}
