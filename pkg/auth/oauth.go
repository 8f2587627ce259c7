package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

const (
	// ClientSecretsFile is the downloaded Google API credentials.json,
	// expected under the app's config directory.
	ClientSecretsFile = "credentials.json"

	// TokenFile stores the obtained OAuth token (access + refresh).
	TokenFile = "token.json"

	// LocalhostAuthPort is the port the local callback server listens on
	// during the authorization flow.
	LocalhostAuthPort = "6789"

	xdgAppName = "todocal"
)

// Scopes covers event read/write plus read access to the todo documents.
var Scopes = []string{
	calendar.CalendarEventsScope,
	calendar.CalendarReadonlyScope,
	drive.DriveScope,
}

// Services bundles the two authenticated API clients a sync pass needs.
type Services struct {
	Calendar *calendar.Service
	Drive    *drive.Service
}

// GetXdgHome returns the app's config directory.
func GetXdgHome() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", xdgAppName), nil
}

// GetConfig builds an oauth2.Config from the client secrets file, forcing
// the redirect URL to the local callback server.
func GetConfig() (*oauth2.Config, error) {
	base, err := GetXdgHome()
	if err != nil {
		return nil, err
	}

	secretsFile := filepath.Join(base, ClientSecretsFile)
	b, err := os.ReadFile(secretsFile)
	if err != nil {
		return nil, fmt.Errorf("unable to read client secret file %s: %w", secretsFile, err)
	}

	cfg, err := google.ConfigFromJSON(b, Scopes...)
	if err != nil {
		return nil, fmt.Errorf("unable to parse client secret file: %w", err)
	}
	cfg.RedirectURL = fmt.Sprintf("http://localhost:%s/oauth2callback", LocalhostAuthPort)
	return cfg, nil
}

// NewServices returns authenticated Calendar and Drive clients sharing one
// HTTP client. It loads the stored token, running the web authorization flow
// if none exists, and persists refreshed tokens as they change.
func NewServices(ctx context.Context) (*Services, error) {
	client, err := GetClient(ctx)
	if err != nil {
		return nil, err
	}

	calSrv, err := calendar.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("unable to create Calendar service: %w", err)
	}
	driveSrv, err := drive.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("unable to create Drive service: %w", err)
	}
	return &Services{Calendar: calSrv, Drive: driveSrv}, nil
}

// GetClient retrieves an authenticated *http.Client. The returned client
// refreshes the access token on expiry; refreshed tokens are written back to
// the token file so the session survives restarts.
func GetClient(ctx context.Context) (*http.Client, error) {
	cfg, err := GetConfig()
	if err != nil {
		return nil, err
	}

	base, err := GetXdgHome()
	if err != nil {
		return nil, err
	}
	tokenFile := filepath.Join(base, TokenFile)

	tok, err := tokenFromFile(tokenFile)
	if err != nil {
		log.Printf("No stored token at %s, starting web authorization flow", tokenFile)
		tok, err = getTokenFromWeb(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to get token from web: %w", err)
		}
		if err := saveToken(tokenFile, tok); err != nil {
			log.Printf("Warning: could not save token: %v", err)
		}
	}

	src := &persistingTokenSource{
		src:  cfg.TokenSource(ctx, tok),
		path: tokenFile,
		last: tok,
	}
	return oauth2.NewClient(ctx, src), nil
}

// persistingTokenSource wraps a refresh-aware token source and writes the
// token file whenever the access or refresh token changes.
type persistingTokenSource struct {
	src  oauth2.TokenSource
	path string

	mu   sync.Mutex
	last *oauth2.Token
}

func (p *persistingTokenSource) Token() (*oauth2.Token, error) {
	tok, err := p.src.Token()
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.last == nil || tok.AccessToken != p.last.AccessToken || tok.RefreshToken != p.last.RefreshToken {
		if err := saveToken(p.path, tok); err != nil {
			log.Printf("Warning: could not persist refreshed token: %v", err)
		}
		p.last = tok
	}
	return tok, nil
}

// getTokenFromWeb runs the OAuth 2.0 authorization code flow via a local
// callback server, waiting up to five minutes for the user to authorize.
func getTokenFromWeb(ctx context.Context, cfg *oauth2.Config) (*oauth2.Token, error) {
	codeCh := make(chan string)
	errCh := make(chan error)

	listener, err := net.Listen("tcp", fmt.Sprintf(":%s", LocalhostAuthPort))
	if err != nil {
		return nil, fmt.Errorf("failed to listen on port %s: %w", LocalhostAuthPort, err)
	}
	defer listener.Close()

	server := &http.Server{
		Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			code := r.URL.Query().Get("code")
			if code == "" {
				http.Error(w, "Authorization code not found", http.StatusBadRequest)
				errCh <- fmt.Errorf("authorization code not found in redirect URL")
				return
			}
			fmt.Fprintf(w, "Authentication successful! You can close this window.")
			codeCh <- code
		}),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		if err := server.Serve(listener); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("callback server error: %w", err)
		}
	}()
	defer server.Shutdown(context.Background())

	authURL := cfg.AuthCodeURL("state-token", oauth2.AccessTypeOffline, oauth2.SetAuthURLParam("prompt", "consent"))
	fmt.Printf("Open the following URL in your browser to authorize todocal:\n%s\n", authURL)
	log.Println("Waiting for authorization code...")

	select {
	case authCode := <-codeCh:
		exCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()
		tok, err := cfg.Exchange(exCtx, authCode)
		if err != nil {
			return nil, fmt.Errorf("unable to exchange authorization code: %w", err)
		}
		return tok, nil
	case err := <-errCh:
		return nil, err
	case <-time.After(5 * time.Minute):
		return nil, fmt.Errorf("authorization timed out, please try again")
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func tokenFromFile(file string) (*oauth2.Token, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	tok := &oauth2.Token{}
	if err := json.NewDecoder(f).Decode(tok); err != nil {
		return nil, fmt.Errorf("failed to decode token from %s: %w", file, err)
	}
	return tok, nil
}

func saveToken(path string, token *oauth2.Token) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer f.Close()
	return json.NewEncoder(f).Encode(token)
}
