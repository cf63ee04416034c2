package store

import (
	"context"

	"github.com/sessionly/sessionly/api"
)

// Gateway is the slice of the backend client the store depends on.
// *api.Client satisfies it; tests substitute a scripted fake.
type Gateway interface {
	SetToken(token string)

	Signup(ctx context.Context, in api.SignupInput) (*api.AuthResult, error)
	Login(ctx context.Context, in api.LoginInput) (*api.AuthResult, error)
	Me(ctx context.Context) (*api.AuthUser, error)
	FakePayment(ctx context.Context, plan api.Plan) (*api.AuthUser, error)
	DeleteAccount(ctx context.Context) error

	ListLogs(ctx context.Context, view api.LogView) ([]api.LogEntry, error)
	CreateLog(ctx context.Context, in api.CreateLogInput) (*api.LogEntry, error)
	UpdateLog(ctx context.Context, id string, patch api.LogPatch) (*api.LogEntry, error)
	DeleteLog(ctx context.Context, id string) error

	ListSessions(ctx context.Context) ([]api.Session, error)
	CreateSession(ctx context.Context, in api.CreateSessionInput) (*api.Session, []api.HomeworkItem, error)
	UpdateSession(ctx context.Context, id string, patch api.SessionPatch) (*api.Session, error)

	ListHomework(ctx context.Context) ([]api.HomeworkItem, error)
	CreateHomework(ctx context.Context, in api.CreateHomeworkInput) (*api.HomeworkItem, error)
	UpdateHomework(ctx context.Context, id string, patch api.HomeworkPatch) (*api.HomeworkItem, error)

	GetProfile(ctx context.Context) (*api.Profile, error)
	UpdateProfile(ctx context.Context, p api.Profile) (*api.Profile, error)
}
