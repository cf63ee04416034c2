package store

import (
	"context"

	"github.com/sessionly/sessionly/api"
	"golang.org/x/sync/errgroup"
)

// RefreshSession restores a persisted session on startup. With no stored
// token it is a no-op. With one, the lifecycle enters authenticating and the
// token is validated against the backend; rejection clears all persisted and
// in-memory state silently.
func (a *App) RefreshSession(ctx context.Context) error {
	token, user, err := a.creds.Load()
	if err != nil {
		return err
	}
	if token == "" {
		a.mu.Lock()
		a.authState = StateUnauthenticated
		a.mu.Unlock()
		return nil
	}

	a.mu.Lock()
	a.token = token
	a.user = user
	a.authState = StateAuthenticating
	a.mu.Unlock()
	a.gw.SetToken(token)

	me, err := a.gw.Me(ctx)
	if err != nil {
		a.Logout()
		return nil
	}

	a.mu.Lock()
	a.user = me
	a.authState = StateAuthenticated
	a.mu.Unlock()
	_ = a.creds.Save(token, me)

	return a.LoadAll(ctx)
}

// SignUp creates an account and enters the authenticated state.
func (a *App) SignUp(ctx context.Context, in api.SignupInput) error {
	res, err := a.gw.Signup(ctx, in)
	if err != nil {
		return err
	}
	a.persistAuth(res)
	return a.LoadAll(ctx)
}

// Login authenticates and enters the authenticated state.
func (a *App) Login(ctx context.Context, in api.LoginInput) error {
	res, err := a.gw.Login(ctx, in)
	if err != nil {
		return err
	}
	a.persistAuth(res)
	return a.LoadAll(ctx)
}

func (a *App) persistAuth(res *api.AuthResult) {
	a.mu.Lock()
	a.token = res.Token
	user := res.User
	a.user = &user
	a.authState = StateAuthenticated
	if user.Name != "" {
		a.settings.DisplayName = user.Name
	}
	a.mu.Unlock()

	a.gw.SetToken(res.Token)
	_ = a.creds.Save(res.Token, &user)
}

// Logout clears the token, the cached account, and every entity snapshot.
func (a *App) Logout() {
	a.mu.Lock()
	a.token = ""
	a.user = nil
	a.entries = nil
	a.archived = nil
	a.sessions = nil
	a.homework = nil
	a.settings = defaultProfile(a.now())
	a.authState = StateUnauthenticated
	if a.saveTimer != nil {
		a.saveTimer.Stop()
		a.saveTimer = nil
	}
	a.mu.Unlock()

	a.gw.SetToken("")
	_ = a.creds.Clear()
}

// SelectPlan performs the mocked payment and overwrites the cached account.
func (a *App) SelectPlan(ctx context.Context, plan api.Plan) error {
	token := a.currentToken()
	if token == "" {
		return errSessionExpired()
	}
	user, err := a.gw.FakePayment(ctx, plan)
	if err != nil {
		return err
	}
	a.mu.Lock()
	a.user = user
	a.mu.Unlock()
	_ = a.creds.Save(token, user)
	return nil
}

// DeleteAccount purges the account server-side, then logs out locally.
func (a *App) DeleteAccount(ctx context.Context) error {
	if a.currentToken() == "" {
		return errSessionExpired()
	}
	if err := a.gw.DeleteAccount(ctx); err != nil {
		return err
	}
	a.Logout()
	return nil
}

// LoadAll fetches every entity collection in parallel. Individual load
// failures degrade silently, so LoadAll itself only fails on context errors.
func (a *App) LoadAll(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { _ = a.LoadEntries(ctx); return nil })
	g.Go(func() error { a.LoadSessions(ctx); return nil })
	g.Go(func() error { a.LoadHomework(ctx); return nil })
	g.Go(func() error { a.LoadProfile(ctx); return nil })
	return g.Wait()
}
