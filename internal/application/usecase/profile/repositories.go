package profile

import (
	"time"

	"go.opentelemetry.io/otel"

	"github.com/khoahotran/skillmatch/internal/domain/account"
	"github.com/khoahotran/skillmatch/internal/domain/company"
	"github.com/khoahotran/skillmatch/internal/domain/freelancer"
	"github.com/khoahotran/skillmatch/internal/domain/skill"
)

var tracer = otel.Tracer("profile_usecase")

// Repositories groups the stores a profile is split across.
type Repositories struct {
	Accounts    account.Repository
	Freelancers freelancer.Repository
	Companies   company.Repository
	Skills      skill.Repository
}

// Clock returns the current time. Tests pin it.
type Clock func() time.Time

func utcNow() time.Time { return time.Now().UTC() }
