package api

import (
	"context"
	"net/http"
)

type userResponse struct {
	User User `json:"user"`
}

// Me retrieves the authenticated account profile.
func (s UsersService) Me(ctx context.Context) (*User, error) {
	return getMe(ctx, s)
}

func getMe(ctx context.Context, r Requester) (*User, error) {
	var result userResponse
	if err := r.do(ctx, http.MethodGet, r.apiURL("/api/users/me"), &result); err != nil {
		return nil, err
	}
	return &result.User, nil
}
