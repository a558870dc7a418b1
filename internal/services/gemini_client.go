package services

import (
  "bytes"
  "context"
  "encoding/json"
  "fmt"
  "io"
  "net/http"
  "os"
  "strconv"
  "strings"
  "time"

  "github.com/masarhq/masar-backend/internal/logger"
)

// GeminiClient fetches raw generated text for a prompt. A failed call is a
// total failure of that generation attempt; retry policy belongs to the
// caller, not here.
type GeminiClient interface {
  GenerateContent(ctx context.Context, prompt string) (string, error)
}

type geminiClient struct {
  log        *logger.Logger
  baseURL    string
  apiKey     string
  model      string
  httpClient *http.Client
}

func NewGeminiClient(log *logger.Logger) (GeminiClient, error) {
  apiKey := os.Getenv("GEMINI_API_KEY")
  if apiKey == "" {
    return nil, fmt.Errorf("missing GEMINI_API_KEY")
  }

  baseURL := os.Getenv("GEMINI_BASE_URL")
  if baseURL == "" {
    baseURL = "https://generativelanguage.googleapis.com"
  }

  model := os.Getenv("GEMINI_MODEL")
  if model == "" {
    model = "gemini-1.5-flash"
  }

  timeoutSec := 120
  if v := os.Getenv("GEMINI_TIMEOUT_SECONDS"); v != "" {
    if parsed, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && parsed > 0 {
      timeoutSec = parsed
    }
  }

  return &geminiClient{
    log:        log.With("service", "GeminiClient"),
    baseURL:    baseURL,
    apiKey:     apiKey,
    model:      model,
    httpClient: &http.Client{Timeout: time.Duration(timeoutSec) * time.Second},
  }, nil
}

type geminiHTTPError struct {
  StatusCode int
  Body       string
}

func (e *geminiHTTPError) Error() string {
  return fmt.Sprintf("gemini http %d: %s", e.StatusCode, e.Body)
}

type geminiRequest struct {
  Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
  Role  string       `json:"role,omitempty"`
  Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
  Text string `json:"text"`
}

type geminiResponse struct {
  Candidates []struct {
    Content      geminiContent `json:"content"`
    FinishReason string        `json:"finishReason,omitempty"`
  } `json:"candidates"`
}

func (c *geminiClient) GenerateContent(ctx context.Context, prompt string) (string, error) {
  body := geminiRequest{
    Contents: []geminiContent{
      {Role: "user", Parts: []geminiPart{{Text: prompt}}},
    },
  }

  var buf bytes.Buffer
  if err := json.NewEncoder(&buf).Encode(body); err != nil {
    return "", err
  }

  path := fmt.Sprintf("/v1beta/models/%s:generateContent", c.model)
  req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
  if err != nil {
    return "", err
  }
  req.Header.Set("Content-Type", "application/json")
  req.Header.Set("x-goog-api-key", c.apiKey)

  resp, err := c.httpClient.Do(req)
  if err != nil {
    return "", err
  }

  raw, readErr := io.ReadAll(resp.Body)
  _ = resp.Body.Close()
  if readErr != nil {
    return "", readErr
  }
  if resp.StatusCode < 200 || resp.StatusCode >= 300 {
    return "", &geminiHTTPError{StatusCode: resp.StatusCode, Body: string(raw)}
  }

  var decoded geminiResponse
  if err := json.Unmarshal(raw, &decoded); err != nil {
    return "", fmt.Errorf("gemini decode error: %w; raw=%s", err, string(raw))
  }

  var text strings.Builder
  for _, cand := range decoded.Candidates {
    for _, part := range cand.Content.Parts {
      text.WriteString(part.Text)
    }
  }
  if text.Len() == 0 {
    return "", fmt.Errorf("no text in gemini response")
  }
  return text.String(), nil
}
