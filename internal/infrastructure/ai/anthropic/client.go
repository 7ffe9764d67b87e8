// Package anthropic implements the freshness estimator against the Anthropic
// messages API.
package anthropic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/misebox/v1/internal/ports/outbound"
	appErrors "github.com/misebox/v1/pkg/errors"
)

const (
	defaultBaseURL   = "https://api.anthropic.com"
	defaultModel     = "claude-sonnet-4-20250514"
	defaultTimeout   = 30 * time.Second
	apiVersion       = "2023-06-01"
	singleMaxTokens  = 1024
	batchMaxTokens   = 4096
)

// Config holds the estimator's connection settings. An empty APIKey leaves
// the client unconfigured; callers must check IsConfigured before use.
type Config struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
}

// Client implements outbound.FreshnessEstimator using the messages API.
type Client struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

// NewClient creates an estimator client. Missing settings fall back to
// defaults; a missing API key is allowed and reported via IsConfigured.
func NewClient(cfg Config, logger *zap.Logger) *Client {
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}

	logger.Info("estimator client initialized",
		zap.String("model", cfg.Model),
		zap.Duration("timeout", cfg.Timeout),
		zap.Bool("configured", cfg.APIKey != ""))

	return &Client{
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		client:  &http.Client{Timeout: cfg.Timeout},
		logger:  logger.Named("anthropic-client"),
	}
}

// IsConfigured reports whether an API key is present.
func (c *Client) IsConfigured() bool {
	return c.apiKey != ""
}

// Messages API structures.
type messageRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	System    string    `json:"system,omitempty"`
	Messages  []message `json:"messages"`
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type messageResponse struct {
	Content []contentBlock `json:"content"`
	Model   string         `json:"model"`
	Usage   struct {
		InputTokens  int `json:"input_tokens"`
		OutputTokens int `json:"output_tokens"`
	} `json:"usage"`
}

type contentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// EstimateFreshness asks the model to assess one item. The reply is expected
// to be a single JSON object; prose or markdown fencing around it is
// tolerated, anything less fails closed.
func (c *Client) EstimateFreshness(ctx context.Context, item outbound.ItemDescription, rule *outbound.RuleContext) (*outbound.FreshnessEstimate, error) {
	system := "You are a food safety and freshness expert. Estimate the effective remaining shelf life " +
		"of this food item. Consider: storage method, whether it's been opened, category norms, " +
		"and USDA guidelines. Return JSON:\n" +
		`{"freshness_status": "fresh|use_soon|use_today|expired", ` +
		`"effective_expiration_date": "YYYY-MM-DD", ` +
		`"confidence": 0.0-1.0, ` +
		`"reasoning": "brief explanation", ` +
		`"storage_tips": "how to maximize remaining life"}` + "\n" +
		"Return ONLY the JSON."

	text, err := c.complete(ctx, system, buildItemPrompt(item, rule), singleMaxTokens)
	if err != nil {
		return nil, err
	}

	var estimate outbound.FreshnessEstimate
	if err := unmarshalPayload(text, &estimate); err != nil {
		c.logger.Warn("estimator returned unparseable payload",
			zap.String("item", item.Name),
			zap.Error(err))
		return nil, appErrors.NewEstimatorPayloadError(err)
	}
	return &estimate, nil
}

// EstimateFreshnessBatch assesses several items in a single call. The reply
// is a JSON array with one entry per item, keyed back by item_id.
func (c *Client) EstimateFreshnessBatch(ctx context.Context, items []outbound.ItemDescription) ([]outbound.FreshnessEstimate, error) {
	if len(items) == 0 {
		return nil, nil
	}

	system := "You are a food safety expert. Assess freshness for each item in the list. " +
		"Return a JSON array with one entry per item:\n" +
		`[{"item_id": "...", "freshness_status": "fresh|use_soon|use_today|expired", ` +
		`"effective_expiration_date": "YYYY-MM-DD", "confidence": 0.0-1.0, ` +
		`"reasoning": "brief", "storage_tips": "optional tip"}]` + "\n" +
		"Return ONLY the JSON array."

	text, err := c.complete(ctx, system, buildBatchPrompt(items), batchMaxTokens)
	if err != nil {
		return nil, err
	}

	var estimates []outbound.FreshnessEstimate
	if err := unmarshalPayload(text, &estimates); err != nil {
		c.logger.Warn("estimator returned unparseable batch payload",
			zap.Int("items", len(items)),
			zap.Error(err))
		return nil, appErrors.NewEstimatorPayloadError(err)
	}
	return estimates, nil
}

func (c *Client) complete(ctx context.Context, system, userMessage string, maxTokens int) (string, error) {
	if !c.IsConfigured() {
		return "", appErrors.NewEstimatorError("API key not configured", nil)
	}

	reqBody := messageRequest{
		Model:     c.model,
		MaxTokens: maxTokens,
		System:    system,
		Messages:  []message{{Role: "user", Content: userMessage}},
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", appErrors.NewEstimatorError("failed to marshal request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/messages", bytes.NewReader(jsonBody))
	if err != nil {
		return "", appErrors.NewEstimatorError("failed to create request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("anthropic-version", apiVersion)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", appErrors.NewEstimatorError("API request failed", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", appErrors.NewEstimatorError("failed to read response", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", appErrors.NewEstimatorError(
			fmt.Sprintf("API error %d: %s", resp.StatusCode, truncate(string(body), 500)), nil)
	}

	var msgResp messageResponse
	if err := json.Unmarshal(body, &msgResp); err != nil {
		return "", appErrors.NewEstimatorError("failed to unmarshal response", err)
	}
	if len(msgResp.Content) == 0 || msgResp.Content[0].Text == "" {
		return "", appErrors.NewEstimatorError("empty completion", nil)
	}

	c.logger.Debug("estimator completion",
		zap.String("model", msgResp.Model),
		zap.Int("input_tokens", msgResp.Usage.InputTokens),
		zap.Int("output_tokens", msgResp.Usage.OutputTokens))

	return msgResp.Content[0].Text, nil
}

func buildItemPrompt(item outbound.ItemDescription, rule *outbound.RuleContext) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Assess freshness for this item:\n")
	fmt.Fprintf(&b, "- Name: %s\n", valueOr(item.Name, "?"))
	fmt.Fprintf(&b, "- Category: %s\n", valueOr(item.Category, "?"))
	fmt.Fprintf(&b, "- Storage location: %s\n", valueOr(item.Location, "?"))
	fmt.Fprintf(&b, "- Purchase date: %s\n", valueOr(item.PurchaseDate, "unknown"))
	fmt.Fprintf(&b, "- Expiration date: %s\n", valueOr(item.ExpirationDate, "none printed"))
	fmt.Fprintf(&b, "- Opened date: %s\n", valueOr(item.OpenedDate, "not opened"))
	fmt.Fprintf(&b, "- Current quantity: %s %s", quantityText(item.Quantity), item.Unit)

	if rule != nil {
		fmt.Fprintf(&b, "\n\nKnown shelf life data for this item type:\n")
		fmt.Fprintf(&b, "- Sealed shelf life: %s days\n", daysText(rule.SealedShelfLifeDays))
		fmt.Fprintf(&b, "- Opened shelf life: %s days\n", daysText(rule.OpenedShelfLifeDays))
		fmt.Fprintf(&b, "- Optimal storage: %s\n", valueOr(rule.StorageLocation, "?"))
		fmt.Fprintf(&b, "- Freezable: %s\n", boolText(rule.Freezable))
		fmt.Fprintf(&b, "- Storage tips: %s", valueOr(rule.StorageTips, "?"))
	}

	fmt.Fprintf(&b, "\n\nToday's date: %s", valueOr(item.Today, "?"))
	return b.String()
}

func buildBatchPrompt(items []outbound.ItemDescription) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Assess freshness for these items (today's date: %s):\n", valueOr(items[0].Today, "?"))
	for _, item := range items {
		fmt.Fprintf(&b, "- ID=%s: %s | cat=%s | loc=%s | purchased=%s | expires=%s | opened=%s | qty=%s %s\n",
			valueOr(item.ID, "?"),
			valueOr(item.Name, "?"),
			valueOr(item.Category, "?"),
			valueOr(item.Location, "?"),
			valueOr(item.PurchaseDate, "?"),
			valueOr(item.ExpirationDate, "none"),
			valueOr(item.OpenedDate, "no"),
			quantityText(item.Quantity),
			item.Unit)
	}
	return b.String()
}

var fencedJSON = regexp.MustCompile("```(?:json)?\\s*([\\s\\S]*?)```")

// unmarshalPayload digs the structured payload out of a model reply. It
// strips markdown fencing first, then falls back to scanning for the
// outermost braces or brackets.
func unmarshalPayload(text string, v interface{}) error {
	text = strings.TrimSpace(text)
	if m := fencedJSON.FindStringSubmatch(text); m != nil {
		text = strings.TrimSpace(m[1])
	}

	if err := json.Unmarshal([]byte(text), v); err == nil {
		return nil
	}

	start := strings.IndexAny(text, "[{")
	end := strings.LastIndexAny(text, "]}")
	if start == -1 || end <= start {
		return fmt.Errorf("no structured payload in response")
	}
	if err := json.Unmarshal([]byte(text[start:end+1]), v); err != nil {
		return fmt.Errorf("malformed payload: %w", err)
	}
	return nil
}

func valueOr(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

func quantityText(q *float64) string {
	if q == nil {
		return "?"
	}
	return fmt.Sprintf("%v", *q)
}

func daysText(d *int) string {
	if d == nil {
		return "?"
	}
	return fmt.Sprintf("%d", *d)
}

func boolText(b *bool) string {
	if b == nil {
		return "?"
	}
	return fmt.Sprintf("%t", *b)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
