package profile

import (
	"context"
	"errors"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/khoahotran/skillmatch/internal/domain/account"
)

type IntentStatus string

const (
	IntentOpen       IntentStatus = "open"
	IntentCompleted  IntentStatus = "completed"
	IntentSuperseded IntentStatus = "superseded"
)

var ErrIntentNotFound = errors.New("write intent not found")

// WriteIntent records a save sequence so an interrupted one can be resumed.
// Payload never carries password fields.
type WriteIntent struct {
	ID         uuid.UUID    `json:"id"`
	AccountID  uuid.UUID    `json:"account_id"`
	Role       account.Role `json:"role"`
	Payload    FormState    `json:"payload"`
	Steps      []Step       `json:"steps"`
	Done       []Step       `json:"done"`
	FailedStep Step         `json:"failed_step,omitempty"`
	LastError  string       `json:"last_error,omitempty"`
	Status     IntentStatus `json:"status"`
	CreatedAt  time.Time    `json:"created_at"`
	UpdatedAt  time.Time    `json:"updated_at"`
}

func NewWriteIntent(accountID uuid.UUID, role account.Role, form FormState, steps []Step, now time.Time) *WriteIntent {
	form.NewPassword = ""
	form.ConfirmPassword = ""
	return &WriteIntent{
		ID:        uuid.New(),
		AccountID: accountID,
		Role:      role,
		Payload:   form,
		Steps:     steps,
		Done:      []Step{},
		Status:    IntentOpen,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (w *WriteIntent) IsDone(s Step) bool {
	return slices.Contains(w.Done, s)
}

// Pending lists the planned steps not yet done, in order.
func (w *WriteIntent) Pending() []Step {
	out := make([]Step, 0, len(w.Steps))
	for _, s := range w.Steps {
		if !w.IsDone(s) {
			out = append(out, s)
		}
	}
	return out
}

type IntentRepository interface {
	// Begin stores a new open intent and supersedes any older open one for the account.
	Begin(ctx context.Context, w *WriteIntent) error
	MarkDone(ctx context.Context, id uuid.UUID, step Step) error
	MarkFailed(ctx context.Context, id uuid.UUID, step Step, cause string) error
	Complete(ctx context.Context, id uuid.UUID) error
	FindOpenByAccountID(ctx context.Context, accountID uuid.UUID) (*WriteIntent, error)
}
