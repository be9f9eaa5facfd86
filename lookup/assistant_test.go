package lookup

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/giygas/medic-api/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAssistantFixture(t *testing.T, text string) (*Assistant, *fakeStore, *fakeGenerator) {
	t.Helper()
	logging.InitDiscardLogger()

	store := newFakeStore()
	gen := &fakeGenerator{text: text}
	return NewAssistant(store, gen), store, gen
}

func TestAsk_StoreHitSkipsModel(t *testing.T) {
	a, store, gen := newAssistantFixture(t, `{"name":"should not be used"}`)
	stored := json.RawMessage(`{"name": "Paracetamol", "drug_class": "Analgesic"}`)
	store.docs["paracetamol"] = stored

	answer, err := a.Ask(context.Background(), "PARACETAMOL")

	require.NoError(t, err)
	assert.Equal(t, string(stored), string(answer), "stored document returned unchanged")
	assert.Empty(t, gen.prompts, "model not called on a store hit")
}

func TestAsk_ModelAnswerIsStored(t *testing.T) {
	a, store, gen := newAssistantFixture(t, "```json\n{\n  \"name\": \"Paracetamol\",\n  \"legal_status\": \"OTC\"\n}\n```")

	answer, err := a.Ask(context.Background(), "  Paracetamol ")

	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Paracetamol","legal_status":"OTC"}`, string(answer))
	require.Len(t, gen.prompts, 1)
	assert.Contains(t, gen.prompts[0], `"Paracetamol"`)

	saved, ok := store.docs["paracetamol"]
	require.True(t, ok, "answer persisted under the prompt")
	assert.JSONEq(t, string(answer), string(saved))
}

func TestAsk_SentinelIsNotFound(t *testing.T) {
	a, store, _ := newAssistantFixture(t, "```json\n{\"error\": \"Medicine not found\"}\n```")

	answer, err := a.Ask(context.Background(), "notarealdrug")

	assert.ErrorIs(t, err, ErrNotFound)
	assert.Nil(t, answer)
	assert.Zero(t, store.saveCount(), "sentinel answers are not persisted")
}

func TestAsk_MalformedResponses(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"empty", ""},
		{"prose", "Paracetamol is a common analgesic."},
		{"truncated", `{"name": "Paracetamol"`},
		{"array", `["Paracetamol"]`},
		{"null", "null"},
		{"fenced prose", "```\nnot json\n```"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, store, _ := newAssistantFixture(t, tt.text)

			answer, err := a.Ask(context.Background(), "Paracetamol")

			assert.ErrorIs(t, err, ErrMalformedModelResponse)
			assert.Nil(t, answer)
			assert.Zero(t, store.saveCount())
		})
	}
}

func TestAsk_OtherErrorFieldIsAnAnswer(t *testing.T) {
	a, store, _ := newAssistantFixture(t, `{"error": "Ambiguous name", "suggestions": ["a", "b"]}`)

	answer, err := a.Ask(context.Background(), "ambiguous")

	require.NoError(t, err)
	assert.Contains(t, string(answer), "Ambiguous name")
	assert.Equal(t, 1, store.saveCount())
}

func TestAsk_StoreFailuresDoNotFailTheAnswer(t *testing.T) {
	a, store, gen := newAssistantFixture(t, `{"name": "Ibuprofen"}`)
	store.findErr = errors.New("database is locked")
	store.saveErr = errors.New("disk full")

	answer, err := a.Ask(context.Background(), "Ibuprofen")

	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Ibuprofen"}`, string(answer))
	assert.Len(t, gen.prompts, 1)
}

func TestBuildPrompt(t *testing.T) {
	prompt := BuildPrompt("Metformin")

	assert.Contains(t, prompt, `**"Metformin"**`)
	assert.Contains(t, prompt, `{"error": "Medicine not found"}`)
	assert.Contains(t, prompt, "India-specific names")
	assert.Contains(t, prompt, "strict JSON format")
}

func TestParseModelAnswer(t *testing.T) {
	answer, err := parseModelAnswer("```json{\"a\": 1}```")
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(answer))

	_, err = parseModelAnswer("```json```")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedModelResponse)
	assert.Contains(t, err.Error(), "empty model response")
}
