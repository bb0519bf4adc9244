package backend

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Jorge-Nunes/noty-sub001/internal/core/domain"
	"github.com/Jorge-Nunes/noty-sub001/internal/core/ports"
)

// AuthAPI groups the backend's authentication endpoints. It satisfies
// ports.AuthBackend for the session layer.
type AuthAPI struct {
	c *Client
}

func (c *Client) Auth() AuthAPI { return AuthAPI{c: c} }

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginData struct {
	User  *domain.User `json:"user"`
	Token string       `json:"token"`
}

// Login exchanges credentials for the operator identity and an opaque bearer
// token. Failures, including explicit success:false rejections, are returned
// to the caller untouched.
func (a AuthAPI) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	var data loginData
	err := a.c.do(ctx, call{
		op:     "auth.login",
		method: http.MethodPost,
		path:   "auth/login",
		body:   loginRequest{Email: email, Password: password},
	}, &data)
	if err != nil {
		return nil, "", err
	}
	if data.User == nil || data.Token == "" {
		return nil, "", fmt.Errorf("auth.login: malformed response, user or token missing")
	}
	return data.User, data.Token, nil
}

// Verify checks a persisted token against the backend and returns the user it
// identifies. Used during session restore, never with a live TokenSource: a
// rejected candidate must not trigger the global purge hook twice.
func (a AuthAPI) Verify(ctx context.Context, token string) (*domain.User, error) {
	var data struct {
		User *domain.User `json:"user"`
	}
	err := a.c.do(ctx, call{
		op:     "auth.verify",
		method: http.MethodPost,
		path:   "auth/verify",
		token:  token,
	}, &data)
	if err != nil {
		return nil, err
	}
	if data.User == nil {
		return nil, fmt.Errorf("auth.verify: malformed response, user missing")
	}
	return data.User, nil
}

// Profile re-fetches the current operator with the session's own credential.
func (a AuthAPI) Profile(ctx context.Context, ts ports.TokenSource) (*domain.User, error) {
	var data struct {
		User *domain.User `json:"user"`
	}
	err := a.c.do(ctx, call{
		op:     "auth.profile",
		method: http.MethodGet,
		path:   "auth/me",
		auth:   ts,
	}, &data)
	if err != nil {
		return nil, err
	}
	if data.User == nil {
		return nil, fmt.Errorf("auth.profile: malformed response, user missing")
	}
	return data.User, nil
}
