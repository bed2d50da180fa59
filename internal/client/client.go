package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"movie-collection/internal/models"

	"github.com/goccy/go-json"
)

// APIError is a non-success envelope returned by the server.
type APIError struct {
	Status  int
	Message string
	Details map[string]interface{}
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

type envelope struct {
	Success bool                   `json:"success"`
	Message string                 `json:"message"`
	Data    json.RawMessage        `json:"data"`
	Details map[string]interface{} `json:"details"`
}

// Session is the result of a successful login.
type Session struct {
	User      models.User `json:"user"`
	Token     string      `json:"token"`
	TokenType string      `json:"token_type"`
	ExpiresIn int64       `json:"expires_in"`
	ExpiresAt string      `json:"expires_at"`
}

type Dimensions struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

type ImageInfo struct {
	Filename     string     `json:"filename"`
	OriginalName string     `json:"original_name"`
	FileType     string     `json:"file_type"`
	FileSize     int64      `json:"file_size"`
	Dimensions   Dimensions `json:"dimensions"`
	UploadedAt   string     `json:"uploaded_at"`
}

type UploadedImage struct {
	ImageURL  string    `json:"image_url"`
	ImageID   uint      `json:"image_id"`
	ImageInfo ImageInfo `json:"image_info"`
}

// Client talks to the movie collection API under baseURL (e.g. http://localhost:8010/api/v1).
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// SetToken attaches a bearer token to every following request.
func (c *Client) SetToken(token string) {
	c.token = token
}

func (c *Client) Login(ctx context.Context, username, password string) (*Session, error) {
	body, err := json.Marshal(map[string]string{
		"username": username,
		"password": password,
	})
	if err != nil {
		return nil, err
	}

	var session Session
	if err := c.do(ctx, http.MethodPost, "/auth/login", "application/json", bytes.NewReader(body), &session); err != nil {
		return nil, err
	}
	c.token = session.Token
	return &session, nil
}

// UploadImage sends a poster as multipart form field "image".
func (c *Client) UploadImage(ctx context.Context, name string, data []byte, userID uint) (*UploadedImage, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	part, err := w.CreateFormFile("image", name)
	if err != nil {
		return nil, fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return nil, fmt.Errorf("failed to write form file: %w", err)
	}
	if userID > 0 {
		if err := w.WriteField("user_id", strconv.FormatUint(uint64(userID), 10)); err != nil {
			return nil, err
		}
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	var img UploadedImage
	if err := c.do(ctx, http.MethodPost, "/upload/image", w.FormDataContentType(), &buf, &img); err != nil {
		return nil, err
	}
	return &img, nil
}

// AddMovie posts the form as-is. Call Validate first; the server repeats every check.
func (c *Client) AddMovie(ctx context.Context, form AddMovieForm) (*models.MovieWithStats, error) {
	body, err := json.Marshal(form.payload())
	if err != nil {
		return nil, err
	}

	var out struct {
		Movie models.MovieWithStats `json:"movie"`
	}
	if err := c.do(ctx, http.MethodPost, "/movies/add", "application/json", bytes.NewReader(body), &out); err != nil {
		return nil, err
	}
	return &out.Movie, nil
}

func (c *Client) do(ctx context.Context, method, path, contentType string, body io.Reader, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request %s %s failed: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("unexpected response (status %d): %s", resp.StatusCode, truncate(string(raw), 200))
	}
	if !env.Success || resp.StatusCode >= http.StatusBadRequest {
		return &APIError{Status: resp.StatusCode, Message: env.Message, Details: env.Details}
	}

	if out == nil || len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("failed to decode response data: %w", err)
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
