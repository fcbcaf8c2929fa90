package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/fadilmartias/interview-quiz/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type fakeResponse struct {
	text string
	err  error
}

// fakeGemini replays canned responses in order and records every call.
type fakeGemini struct {
	mu        sync.Mutex
	responses []fakeResponse
	prompts   []string
	calledAt  []time.Time
}

func newFakeGemini(responses ...fakeResponse) *fakeGemini {
	return &fakeGemini{responses: responses}
}

func (f *fakeGemini) GenerateText(_ context.Context, prompt string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.prompts = append(f.prompts, prompt)
	f.calledAt = append(f.calledAt, time.Now())

	if len(f.responses) == 0 {
		return "", errors.New("no canned response")
	}
	resp := f.responses[0]
	f.responses = f.responses[1:]
	return resp.text, resp.err
}

func (f *fakeGemini) CallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.prompts)
}

// quizJSON builds a well-formed model reply with n questions whose correct
// answer is always the first option.
func quizJSON(n int) string {
	type q struct {
		Question      string   `json:"question"`
		Options       []string `json:"options"`
		CorrectAnswer string   `json:"correctAnswer"`
		Explanation   string   `json:"explanation"`
	}
	qs := make([]q, n)
	for i := range qs {
		opts := []string{
			fmt.Sprintf("right %d", i),
			fmt.Sprintf("wrong %d a", i),
			fmt.Sprintf("wrong %d b", i),
			fmt.Sprintf("wrong %d c", i),
		}
		qs[i] = q{
			Question:      fmt.Sprintf("Question %d?", i+1),
			Options:       opts,
			CorrectAnswer: opts[0],
			Explanation:   fmt.Sprintf("Because %d.", i),
		}
	}
	b, _ := json.Marshal(map[string]any{"questions": qs})
	return string(b)
}

type fakeGate struct {
	userID string
}

func (g fakeGate) ResolveCurrentUser(context.Context) (string, bool) {
	return g.userID, g.userID != ""
}

type fakeUsers struct {
	users     map[string]*model.User
	findErr   error
	upsertErr error
}

func newFakeUsers(users ...*model.User) *fakeUsers {
	f := &fakeUsers{users: map[string]*model.User{}}
	for _, u := range users {
		f.users[u.ExternalID] = u
	}
	return f
}

func (f *fakeUsers) FindByExternalID(_ context.Context, externalID string) (*model.User, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	u, ok := f.users[externalID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (f *fakeUsers) UpsertProfile(_ context.Context, externalID, industry string, skills []string) (*model.User, error) {
	if f.upsertErr != nil {
		return nil, f.upsertErr
	}
	u, ok := f.users[externalID]
	if !ok {
		u = &model.User{ID: uuid.New(), ExternalID: externalID}
		f.users[externalID] = u
	}
	u.Industry = industry
	u.Skills = skills
	return u, nil
}

type fakeAssessments struct {
	saved     []model.Assessment
	createErr error
	findErr   error
}

func (f *fakeAssessments) Create(_ context.Context, a *model.Assessment) error {
	if f.createErr != nil {
		return f.createErr
	}
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	f.saved = append(f.saved, *a)
	return nil
}

func (f *fakeAssessments) FindByUser(_ context.Context, userID uuid.UUID) ([]model.Assessment, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	var out []model.Assessment
	for _, a := range f.saved {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

type publishedEvent struct {
	eventType string
	payload   any
}

type fakePublisher struct {
	events []publishedEvent
	err    error
}

func (f *fakePublisher) Publish(_ context.Context, eventType string, payload any) error {
	f.events = append(f.events, publishedEvent{eventType: eventType, payload: payload})
	return f.err
}

func (f *fakePublisher) Close() error { return nil }
