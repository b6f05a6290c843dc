package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"html/template"
	"net"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gyazo/gyazo-cli/internal/api"
	"github.com/gyazo/gyazo-cli/internal/browser"
	"github.com/gyazo/gyazo-cli/internal/config"
	"github.com/gyazo/gyazo-cli/internal/validation"
)

// SetupResult contains the result of a browser-based setup
type SetupResult struct {
	Account config.Account
	Email   string
	Error   error
}

// SetupServer handles the browser-based authentication flow
type SetupServer struct {
	result        chan SetupResult
	shutdown      chan struct{}
	pendingResult *SetupResult
	csrfToken     string
	profile       string
}

// NewSetupServer creates a new setup server
func NewSetupServer(profile string) (*SetupServer, error) {
	// Generate CSRF token
	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		return nil, fmt.Errorf("failed to generate CSRF token: %w", err)
	}

	return &SetupServer{
		result:    make(chan SetupResult, 1),
		shutdown:  make(chan struct{}),
		csrfToken: hex.EncodeToString(tokenBytes),
		profile:   profile,
	}, nil
}

// Start starts the setup server and opens the browser
func (s *SetupServer) Start(ctx context.Context) (*SetupResult, error) {
	// Find an available port
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return nil, fmt.Errorf("failed to start server: %w", err)
	}

	port := listener.Addr().(*net.TCPAddr).Port
	baseURL := fmt.Sprintf("http://127.0.0.1:%d", port)

	// Create HTTP server
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleSetup)
	mux.HandleFunc("/validate", s.handleValidate)
	mux.HandleFunc("/submit", s.handleSubmit)
	mux.HandleFunc("/success", s.handleSuccess)
	mux.HandleFunc("/complete", s.handleComplete)

	server := &http.Server{
		Handler:      mux,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	// Start server in background
	go func() {
		_ = server.Serve(listener)
	}()

	// Print URL first so user can open manually if needed
	fmt.Printf("Open this URL in your browser to authenticate:\n  %s\n", baseURL)
	fmt.Println("Attempting to open browser automatically...")
	if err := browser.Open(baseURL); err != nil {
		fmt.Fprintf(os.Stderr, "Could not open browser automatically: %v\n", err)
		fmt.Println("Please open the URL manually in your browser.")
	}

	// Wait for result or context cancellation
	select {
	case result := <-s.result:
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			_ = server.Close() // Force close if graceful shutdown fails
		}
		return &result, nil
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			_ = server.Close() // Force close if graceful shutdown fails
		}
		return nil, ctx.Err()
	case <-s.shutdown:
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			_ = server.Close() // Force close if graceful shutdown fails
		}
		if s.pendingResult != nil {
			return s.pendingResult, nil
		}
		return nil, fmt.Errorf("setup cancelled")
	}
}

// setupRequest is the JSON body posted by the setup form.
type setupRequest struct {
	AccessToken   string `json:"access_token"`
	APIBaseURL    string `json:"api_base_url"`
	UploadBaseURL string `json:"upload_base_url"`
}

// normalize trims whitespace and trailing slashes from the form fields.
func (req *setupRequest) normalize() {
	req.AccessToken = strings.TrimSpace(req.AccessToken)
	req.APIBaseURL = strings.TrimSuffix(strings.TrimSpace(req.APIBaseURL), "/")
	req.UploadBaseURL = strings.TrimSuffix(strings.TrimSpace(req.UploadBaseURL), "/")
}

// buildClient screens the submitted origins and constructs a client for
// them. Origins left blank fall back to the public Gyazo endpoints.
// Both origins must pass validation before the client is built because
// NewWithOrigins panics on unparsable URLs.
func (req setupRequest) buildClient() (*api.Client, error) {
	apiBase := req.APIBaseURL
	if apiBase == "" {
		apiBase = api.DefaultAPIBaseURL
	}
	uploadBase := req.UploadBaseURL
	if uploadBase == "" {
		uploadBase = api.DefaultUploadBaseURL
	}

	for _, origin := range []string{apiBase, uploadBase} {
		if err := validation.ValidateOrigin(origin); err != nil {
			return nil, err
		}
	}

	return api.NewWithOrigins(req.AccessToken, apiBase, uploadBase), nil
}

// handleSetup serves the main setup page
func (s *SetupServer) handleSetup(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	tmpl, err := template.New("setup").Parse(setupTemplate)
	if err != nil {
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	data := map[string]string{
		"CSRFToken": s.csrfToken,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_ = tmpl.Execute(w, data)
}

// handleValidate tests credentials without saving
func (s *SetupServer) handleValidate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	// Verify CSRF token
	if r.Header.Get("X-CSRF-Token") != s.csrfToken {
		http.Error(w, "Invalid CSRF token", http.StatusForbidden)
		return
	}

	var req setupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"success": false,
			"error":   "Invalid request body",
		})
		return
	}
	req.normalize()

	if req.AccessToken == "" {
		writeJSON(w, http.StatusOK, map[string]any{
			"success": false,
			"error":   "Access token is required",
		})
		return
	}

	// Validate origins to prevent SSRF attacks
	client, err := req.buildClient()
	if err != nil {
		writeJSON(w, http.StatusOK, map[string]any{
			"success": false,
			"error":   fmt.Sprintf("Invalid URL: %v", err),
		})
		return
	}

	// Test the credentials by making an API call
	user, err := client.Users().Me(r.Context())
	if err != nil {
		writeJSON(w, http.StatusOK, map[string]any{
			"success": false,
			"error":   fmt.Sprintf("Connection failed: %v", err),
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":    true,
		"message":    "Connection successful!",
		"user_id":    user.UID,
		"user_name":  user.Name,
		"user_email": user.Email,
	})
}

// handleSubmit saves credentials after validation
func (s *SetupServer) handleSubmit(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	// Verify CSRF token
	if r.Header.Get("X-CSRF-Token") != s.csrfToken {
		http.Error(w, "Invalid CSRF token", http.StatusForbidden)
		return
	}

	var req setupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"success": false,
			"error":   "Invalid request body",
		})
		return
	}
	req.normalize()

	if req.AccessToken == "" {
		writeJSON(w, http.StatusOK, map[string]any{
			"success": false,
			"error":   "Access token is required",
		})
		return
	}

	// Validate origins to prevent SSRF attacks
	client, err := req.buildClient()
	if err != nil {
		writeJSON(w, http.StatusOK, map[string]any{
			"success": false,
			"error":   fmt.Sprintf("Invalid URL: %v", err),
		})
		return
	}

	// Validate first
	user, err := client.Users().Me(r.Context())
	if err != nil {
		writeJSON(w, http.StatusOK, map[string]any{
			"success": false,
			"error":   fmt.Sprintf("Connection failed: %v", err),
		})
		return
	}

	// Save to keychain. Custom origins are stored as typed; blank means
	// the defaults at load time.
	account := config.Account{
		AccessToken:   req.AccessToken,
		APIBaseURL:    req.APIBaseURL,
		UploadBaseURL: req.UploadBaseURL,
	}

	if err := config.SaveProfile(s.profile, account); err != nil {
		writeJSON(w, http.StatusOK, map[string]any{
			"success": false,
			"error":   fmt.Sprintf("Failed to save credentials: %v", err),
		})
		return
	}

	// Store pending result
	s.pendingResult = &SetupResult{
		Account: account,
		Email:   user.Email,
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":    true,
		"user_name":  user.Name,
		"user_email": user.Email,
	})
}

// handleSuccess serves the success page
func (s *SetupServer) handleSuccess(w http.ResponseWriter, r *http.Request) {
	tmpl, err := template.New("success").Parse(successTemplate)
	if err != nil {
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	data := map[string]string{
		"UserName":  r.URL.Query().Get("name"),
		"UserEmail": r.URL.Query().Get("email"),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_ = tmpl.Execute(w, data)
}

// handleComplete signals that setup is done
func (s *SetupServer) handleComplete(w http.ResponseWriter, r *http.Request) {
	if s.pendingResult != nil {
		s.result <- *s.pendingResult
	}
	close(s.shutdown)
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// writeJSON writes a JSON response
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

