package anthropic

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/misebox/v1/internal/ports/outbound"
	appErrors "github.com/misebox/v1/pkg/errors"
)

func TestUnmarshalPayload(t *testing.T) {
	t.Run("BareJSON", func(t *testing.T) {
		var estimate outbound.FreshnessEstimate
		err := unmarshalPayload(`{"freshness_status": "use_soon", "confidence": 0.9}`, &estimate)

		require.NoError(t, err)
		assert.Equal(t, "use_soon", estimate.FreshnessStatus)
		assert.Equal(t, 0.9, estimate.Confidence)
	})

	t.Run("MarkdownFenced", func(t *testing.T) {
		reply := "Here's my assessment:\n```json\n{\"freshness_status\": \"expired\"}\n```\nLet me know if you need more."

		var estimate outbound.FreshnessEstimate
		err := unmarshalPayload(reply, &estimate)

		require.NoError(t, err)
		assert.Equal(t, "expired", estimate.FreshnessStatus)
	})

	t.Run("FencedWithoutLanguageTag", func(t *testing.T) {
		reply := "```\n{\"freshness_status\": \"fresh\"}\n```"

		var estimate outbound.FreshnessEstimate
		err := unmarshalPayload(reply, &estimate)

		require.NoError(t, err)
		assert.Equal(t, "fresh", estimate.FreshnessStatus)
	})

	t.Run("EmbeddedInProse", func(t *testing.T) {
		reply := `Based on the purchase date, {"freshness_status": "use_today", "reasoning": "opened dairy"} is my assessment.`

		var estimate outbound.FreshnessEstimate
		err := unmarshalPayload(reply, &estimate)

		require.NoError(t, err)
		assert.Equal(t, "use_today", estimate.FreshnessStatus)
		assert.Equal(t, "opened dairy", estimate.Reasoning)
	})

	t.Run("ArrayPayload", func(t *testing.T) {
		reply := "```json\n[{\"item_id\": \"a\", \"freshness_status\": \"fresh\"}, {\"item_id\": \"b\", \"freshness_status\": \"expired\"}]\n```"

		var estimates []outbound.FreshnessEstimate
		err := unmarshalPayload(reply, &estimates)

		require.NoError(t, err)
		require.Len(t, estimates, 2)
		assert.Equal(t, "b", estimates[1].ItemID)
	})

	t.Run("PureProse_FailsClosed", func(t *testing.T) {
		var estimate outbound.FreshnessEstimate
		err := unmarshalPayload("I think the milk is probably still fine.", &estimate)

		assert.Error(t, err)
	})

	t.Run("TruncatedJSON_FailsClosed", func(t *testing.T) {
		var estimate outbound.FreshnessEstimate
		err := unmarshalPayload(`{"freshness_status": "fre`, &estimate)

		assert.Error(t, err)
	})
}

func modelReply(text string) messageResponse {
	var resp messageResponse
	resp.Content = []contentBlock{{Type: "text", Text: text}}
	resp.Model = "test-model"
	return resp
}

func TestEstimateFreshness(t *testing.T) {
	item := outbound.ItemDescription{
		Name:         "Milk",
		Category:     "dairy",
		Location:     "fridge",
		PurchaseDate: "2026-08-20",
		Today:        "2026-08-28",
	}

	t.Run("Success", func(t *testing.T) {
		var gotRequest messageRequest
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/v1/messages", r.URL.Path)
			assert.Equal(t, "secret", r.Header.Get("x-api-key"))
			assert.Equal(t, apiVersion, r.Header.Get("anthropic-version"))
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotRequest))

			_ = json.NewEncoder(w).Encode(modelReply(
				`{"freshness_status": "use_soon", "effective_expiration_date": "2026-09-01", "confidence": 0.85}`))
		}))
		defer server.Close()

		client := NewClient(Config{APIKey: "secret", BaseURL: server.URL}, zap.NewNop())

		estimate, err := client.EstimateFreshness(context.Background(), item, nil)

		require.NoError(t, err)
		assert.Equal(t, "use_soon", estimate.FreshnessStatus)
		assert.Equal(t, "2026-09-01", estimate.EffectiveExpirationDate)

		require.Len(t, gotRequest.Messages, 1)
		assert.Contains(t, gotRequest.Messages[0].Content, "- Name: Milk")
		assert.Contains(t, gotRequest.Messages[0].Content, "- Opened date: not opened")
		assert.Contains(t, gotRequest.Messages[0].Content, "Today's date: 2026-08-28")
	})

	t.Run("KnownRuleContext_IncludedInPrompt", func(t *testing.T) {
		var prompt string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var req messageRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			prompt = req.Messages[0].Content
			_ = json.NewEncoder(w).Encode(modelReply(`{"freshness_status": "fresh"}`))
		}))
		defer server.Close()

		client := NewClient(Config{APIKey: "secret", BaseURL: server.URL}, zap.NewNop())

		sealed := 14
		rule := &outbound.RuleContext{SealedShelfLifeDays: &sealed, StorageLocation: "fridge"}
		_, err := client.EstimateFreshness(context.Background(), item, rule)

		require.NoError(t, err)
		assert.Contains(t, prompt, "Known shelf life data")
		assert.Contains(t, prompt, "Sealed shelf life: 14 days")
	})

	t.Run("UnconfiguredClient_ShouldRefuse", func(t *testing.T) {
		client := NewClient(Config{}, zap.NewNop())

		_, err := client.EstimateFreshness(context.Background(), item, nil)

		require.Error(t, err)
		assert.Equal(t, appErrors.CodeEstimatorUnavailable, appErrors.GetCode(err))
	})

	t.Run("APIError_ShouldSurfaceStatus", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{"error": {"type": "rate_limit_error"}}`))
		}))
		defer server.Close()

		client := NewClient(Config{APIKey: "secret", BaseURL: server.URL}, zap.NewNop())

		_, err := client.EstimateFreshness(context.Background(), item, nil)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "429")
	})

	t.Run("ProseReply_ShouldFailClosed", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(modelReply("The milk should last another week or so."))
		}))
		defer server.Close()

		client := NewClient(Config{APIKey: "secret", BaseURL: server.URL}, zap.NewNop())

		_, err := client.EstimateFreshness(context.Background(), item, nil)

		require.Error(t, err)
		assert.Equal(t, appErrors.CodeEstimatorBadPayload, appErrors.GetCode(err))
	})
}

func TestEstimateFreshnessBatch(t *testing.T) {
	t.Run("EmptyInput_NoCall", func(t *testing.T) {
		client := NewClient(Config{APIKey: "secret", BaseURL: "http://127.0.0.1:1"}, zap.NewNop())

		estimates, err := client.EstimateFreshnessBatch(context.Background(), nil)

		require.NoError(t, err)
		assert.Nil(t, estimates)
	})

	t.Run("Success", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(modelReply(
				`[{"item_id": "one", "freshness_status": "fresh"}, {"item_id": "two", "freshness_status": "use_today"}]`))
		}))
		defer server.Close()

		client := NewClient(Config{APIKey: "secret", BaseURL: server.URL}, zap.NewNop())

		items := []outbound.ItemDescription{
			{ID: "one", Name: "Rice", Today: "2026-08-28"},
			{ID: "two", Name: "Milk", Today: "2026-08-28"},
		}
		estimates, err := client.EstimateFreshnessBatch(context.Background(), items)

		require.NoError(t, err)
		require.Len(t, estimates, 2)
		assert.Equal(t, "one", estimates[0].ItemID)
		assert.Equal(t, "use_today", estimates[1].FreshnessStatus)
	})
}
