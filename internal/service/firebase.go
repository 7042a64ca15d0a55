package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/rocketscienceinc/tictactoe-rooms/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-rooms/internal/entity"
)

// DefaultFirebaseLookupURL - identity toolkit endpoint that resolves an ID token to its account.
const DefaultFirebaseLookupURL = "https://identitytoolkit.googleapis.com/v1/accounts:lookup"

var ErrFirebaseAPIKeyMissing = errors.New("firebase api key is missing")

type firebaseLookupRequest struct {
	IDToken string `json:"idToken"`
}

type firebaseLookupResponse struct {
	Users []struct {
		LocalID     string `json:"localId"`
		DisplayName string `json:"displayName"`
		Email       string `json:"email"`
	} `json:"users"`
}

type firebaseVerifier struct {
	apiKey    string
	lookupURL string
	client    *http.Client
}

func NewFirebaseVerifier(apiKey, lookupURL string, client *http.Client) Verifier {
	if lookupURL == "" {
		lookupURL = DefaultFirebaseLookupURL
	}

	return &firebaseVerifier{
		apiKey:    strings.TrimSpace(apiKey),
		lookupURL: lookupURL,
		client:    client,
	}
}

// Verify - any answer but 200 with an account means the token is not accepted.
func (that *firebaseVerifier) Verify(ctx context.Context, token string) (*entity.User, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, apperror.ErrUnauthorized
	}

	if that.apiKey == "" {
		return nil, ErrFirebaseAPIKeyMissing
	}

	body, err := json.Marshal(firebaseLookupRequest{IDToken: token})
	if err != nil {
		return nil, fmt.Errorf("failed to encode lookup request: %w", err)
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost,
		that.lookupURL+"?key="+url.QueryEscape(that.apiKey), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build lookup request: %w", err)
	}
	request.Header.Set("Content-Type", "application/json")

	response, err := that.client.Do(request)
	if err != nil {
		return nil, fmt.Errorf("failed to look up account: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, response.Body)
		return nil, apperror.ErrUnauthorized
	}

	var lookup firebaseLookupResponse
	if err = json.NewDecoder(response.Body).Decode(&lookup); err != nil {
		return nil, fmt.Errorf("failed to decode lookup response: %w", err)
	}

	if len(lookup.Users) == 0 || lookup.Users[0].LocalID == "" {
		return nil, apperror.ErrUnauthorized
	}

	account := lookup.Users[0]

	return &entity.User{
		UID:  account.LocalID,
		Name: entity.DisplayName(account.DisplayName, account.Email),
	}, nil
}
