// Package validation checks user supplied medicine names, prompts and limits.
package validation

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/giygas/medic-api/interfaces"
)

const (
	// DefaultLimit applies when limit is missing or unusable
	DefaultLimit = 10

	minInputLength = 2
	maxInputLength = 100
	maxInputWords  = 10

	maxPromptLength = 500
	maxPromptWords  = 80
)

var (
	// Input validation: letters (any script), digits and the punctuation found in drug names
	inputRegex = regexp.MustCompile(`^[\p{L}\p{M}\p{N}\s\-\.\+',()/%]+$`)

	// Prompts are free text: sentence punctuation is allowed too
	promptRegex = regexp.MustCompile(`^[\p{L}\p{M}\p{N}\s\-\.\+',()/%?!:;"]+$`)

	// Markup and script patterns, rejected in names and prompts
	markupPatterns = []string{
		"<script", "</script>", "javascript:", "vbscript:", "onload=", "onerror=",
		"onclick=", "onmouseover=", "onfocus=", "onblur=", "onchange=", "onsubmit=",
		"eval(", "expression(", "url(", "@import", "binding(", "behavior(",
	}

	// Dangerous patterns as strings (faster than regex for simple substring matching)
	dangerousPatterns = append(append([]string{}, markupPatterns...),
		// SQL injection patterns
		"' or ", "\" or ", "union select", "drop table", "delete from", "insert into",
		"update set", "--", "/*", "*/", "exec(", "execute(",
		// Command injection patterns
		"; ", "| ", "& ", "`", "$(", "${",
		// Path traversal patterns
		"../", "..\\", "%2e%2e", "file://",
		// NoSQL injection patterns
		"{$ne:", "{$gt:", "{$where:", "{$or:", "{$regex:", "{$expr:",
	)
)

var _ interfaces.InputValidator = (*InputValidatorImpl)(nil)

// InputValidatorImpl implements the interfaces.InputValidator interface
type InputValidatorImpl struct{}

// NewInputValidator creates a new input validator
func NewInputValidator() *InputValidatorImpl {
	return &InputValidatorImpl{}
}

// ValidateInput checks a medicine name
func (v *InputValidatorImpl) ValidateInput(input string) error {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return fmt.Errorf("input cannot be empty")
	}

	length := utf8.RuneCountInString(trimmed)
	if length < minInputLength {
		return fmt.Errorf("input too short: minimum %d characters", minInputLength)
	}
	if length > maxInputLength {
		return fmt.Errorf("input too long: maximum %d characters", maxInputLength)
	}

	// Word count validation to prevent DoS attacks with many short words
	if len(strings.Fields(trimmed)) > maxInputWords {
		return fmt.Errorf("search query too complex: maximum %d words allowed", maxInputWords)
	}

	lowerInput := strings.ToLower(trimmed)
	for _, pattern := range dangerousPatterns {
		if strings.Contains(lowerInput, pattern) {
			return fmt.Errorf("input contains potentially dangerous content")
		}
	}

	if !inputRegex.MatchString(trimmed) {
		return fmt.Errorf("input contains invalid characters. Only letters, numbers, spaces and - . + ' , ( ) / %% are allowed")
	}

	if hasExcessiveRepetition(trimmed) {
		return fmt.Errorf("input contains excessive character repetition")
	}

	return nil
}

// ValidatePrompt checks an /ai prompt. It allows longer sentences and
// question punctuation, but still rejects markup.
func (v *InputValidatorImpl) ValidatePrompt(prompt string) error {
	trimmed := strings.TrimSpace(prompt)
	if trimmed == "" {
		return fmt.Errorf("prompt cannot be empty")
	}

	length := utf8.RuneCountInString(trimmed)
	if length < minInputLength {
		return fmt.Errorf("prompt too short: minimum %d characters", minInputLength)
	}
	if length > maxPromptLength {
		return fmt.Errorf("prompt too long: maximum %d characters", maxPromptLength)
	}
	if len(strings.Fields(trimmed)) > maxPromptWords {
		return fmt.Errorf("prompt too complex: maximum %d words allowed", maxPromptWords)
	}

	lowerPrompt := strings.ToLower(trimmed)
	for _, pattern := range markupPatterns {
		if strings.Contains(lowerPrompt, pattern) {
			return fmt.Errorf("prompt contains potentially dangerous content")
		}
	}

	if !promptRegex.MatchString(trimmed) {
		return fmt.Errorf("prompt contains invalid characters")
	}

	if hasExcessiveRepetition(trimmed) {
		return fmt.Errorf("prompt contains excessive character repetition")
	}

	return nil
}

// ParseLimit returns DefaultLimit for a missing, non-numeric or non-positive
// value and caps the result at maxLimit
func (v *InputValidatorImpl) ParseLimit(raw string, maxLimit int) int {
	limit, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || limit <= 0 {
		limit = DefaultLimit
	}
	if maxLimit > 0 && limit > maxLimit {
		limit = maxLimit
	}
	return limit
}

// hasExcessiveRepetition reports the same byte repeated more than 10 times in a row
func hasExcessiveRepetition(input string) bool {
	run := 1
	for i := 1; i < len(input); i++ {
		if input[i] == input[i-1] {
			run++
			if run > 10 {
				return true
			}
			continue
		}
		run = 1
	}
	return false
}
