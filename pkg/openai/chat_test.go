package openai

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SovicoAssistant/internal/entity"
	"SovicoAssistant/pkg/nlp"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func newTestClient(t *testing.T, content string) IChatGPT {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		body, err := json.Marshal(openai.ChatCompletionResponse{
			Choices: []openai.ChatCompletionChoice{
				{Message: openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: content}},
			},
		})
		require.NoError(t, err)
		_, _ = w.Write(body)
	}))
	t.Cleanup(srv.Close)

	cfg := openai.DefaultConfig("test-key")
	cfg.BaseURL = srv.URL + "/v1"
	return NewChatGPTWithConfig(cfg, "")
}

func TestExtract(t *testing.T) {
	c := newTestClient(t, `{"from":"sài gòn","to":"Hà Nội","date":"ngày mai","passengers":2,"intent_signals":["search","bogus"],"service_type":"","flight_id":"vj 112"}`)

	got, err := c.Extract(context.Background(), "tìm vé sài gòn đi hà nội ngày mai", entity.Slots{})
	require.NoError(t, err)

	assert.Equal(t, nlp.SourceOpenAI, got.Source)
	assert.Equal(t, entity.Locations{From: nlp.CityHoChiMinh, To: nlp.CityHanoi}, got.Slots.Locations)
	assert.Equal(t, "ngày mai", got.Slots.Date)
	assert.Equal(t, 2, got.Slots.Passengers)
	assert.Equal(t, []string{nlp.SignalSearch}, got.IntentSignals)
	assert.Equal(t, "VJ112", got.FlightID)
}

func TestExtractBadJSON(t *testing.T) {
	c := newTestClient(t, "not json")

	_, err := c.Extract(context.Background(), "xin chào", entity.Slots{})
	assert.Error(t, err)
}

func TestSynthesize(t *testing.T) {
	c := newTestClient(t, "Chào bạn!")

	got, err := c.Synthesize(context.Background(), nlp.TurnData{Draft: "Xin chào"})
	require.NoError(t, err)
	assert.Equal(t, "Chào bạn!", got)
}
