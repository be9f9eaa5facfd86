package lookup

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/giygas/medic-api/interfaces"
	"github.com/giygas/medic-api/logging"
	"github.com/giygas/medic-api/medicineparser/entities"
	"github.com/giygas/medic-api/metrics"
)

var _ interfaces.Assistant = (*Assistant)(nil)

// notFoundSentinel is the error value the model is told to return for
// unknown medicines
const notFoundSentinel = "Medicine not found"

const promptTemplate = `Provide a **detailed** and **accurate** JSON response about the medicine **"%s"**.

The response **MUST** contain:
- **Name** (Official and generic names)
- **All brand names** available globally (including India-specific names)
- **Drug class**
- **Complete uses** (Pain relief, fever, specific diseases, etc.)
- **Dosage details** (Adult & pediatric, recommended dosage, overdose risks)
- **Side effects** (Common, rare, and severe)
- **Contraindications** (Who should NOT take this)
- **Drug interactions** (List common medications it interacts with)
- **Warnings** (Pregnancy, liver issues, kidney issues, other risks)
- **Legal status** (OTC or prescription-only in different countries)

**Important Instructions:**
- Output must be in **strict JSON format** without markdown or explanations.
- If the medicine is **not found**, return exactly: {"error": "%s"}.
- Do **not** add any introductory text, only return the JSON response.`

// Assistant answers /ai prompts from the store or the generative model
type Assistant struct {
	store     interfaces.RecordStore
	generator interfaces.TextGenerator
}

func NewAssistant(store interfaces.RecordStore, generator interfaces.TextGenerator) *Assistant {
	return &Assistant{store: store, generator: generator}
}

// Ask returns the stored document for prompt, or asks the model and stores
// its answer. Unknown medicines yield ErrNotFound; unusable model output
// yields an error wrapping ErrMalformedModelResponse.
func (a *Assistant) Ask(ctx context.Context, prompt string) (json.RawMessage, error) {
	prompt = strings.TrimSpace(prompt)

	doc, err := a.store.FindDocument(ctx, prompt)
	if err != nil {
		logging.Warn("Record store lookup failed", "prompt", prompt, "error", err)
	} else if doc != nil {
		metrics.MedicineLookups.WithLabelValues(entities.SourceDatabase).Inc()
		return doc, nil
	}

	text := a.generator.Generate(ctx, BuildPrompt(prompt))
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	answer, err := parseModelAnswer(text)
	if err != nil {
		logging.Warn("Unusable model response", "prompt", prompt, "error", err)
		return nil, err
	}

	var sentinel struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(answer, &sentinel); err == nil && sentinel.Error == notFoundSentinel {
		logging.Info("Model does not know medicine", "prompt", prompt)
		return nil, ErrNotFound
	}

	if err := a.store.SaveAnswer(ctx, prompt, answer); err != nil {
		logging.Error("Failed to store model answer", "prompt", prompt, "error", err)
	}
	metrics.MedicineLookups.WithLabelValues(entities.SourceAI).Inc()

	return answer, nil
}

// BuildPrompt renders the structured instruction for name
func BuildPrompt(name string) string {
	return fmt.Sprintf(promptTemplate, name, notFoundSentinel)
}

// parseModelAnswer strips markdown code fences and checks the text is a JSON
// object; the result is compacted
func parseModelAnswer(text string) (json.RawMessage, error) {
	cleaned := strings.ReplaceAll(text, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	cleaned = strings.TrimSpace(cleaned)

	if cleaned == "" {
		return nil, fmt.Errorf("%w: empty model response", ErrMalformedModelResponse)
	}

	var object map[string]json.RawMessage
	if err := json.Unmarshal([]byte(cleaned), &object); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedModelResponse, err)
	}
	if object == nil {
		return nil, fmt.Errorf("%w: model response is not a JSON object", ErrMalformedModelResponse)
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, []byte(cleaned)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedModelResponse, err)
	}
	return buf.Bytes(), nil
}
