package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one role-tagged entry sent to the generation service.
// ImageURL is only honored on user messages.
type Message struct {
	Role     Role   `json:"role"`
	Content  string `json:"content"`
	ImageURL string `json:"image_url,omitempty"`
}

type contentPart struct {
	Type     string `json:"type"`
	Text     string `json:"text"`
	ImageURL *struct {
		URL string `json:"url"`
	} `json:"image_url"`
}

// UnmarshalJSON accepts content either as a plain string or as a list of
// typed parts. Text parts are joined with newlines and the first image_url
// part fills ImageURL unless it is already set.
func (m *Message) UnmarshalJSON(b []byte) error {
	var raw struct {
		Role     Role            `json:"role"`
		Content  json.RawMessage `json:"content"`
		ImageURL string          `json:"image_url"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*m = Message{Role: raw.Role, ImageURL: raw.ImageURL}

	content := bytes.TrimSpace(raw.Content)
	if len(content) == 0 || bytes.Equal(content, []byte("null")) {
		return nil
	}
	if content[0] == '"' {
		return json.Unmarshal(content, &m.Content)
	}

	var parts []contentPart
	if err := json.Unmarshal(content, &parts); err != nil {
		return fmt.Errorf("message content must be a string or a list of parts: %w", err)
	}
	var texts []string
	for _, p := range parts {
		switch p.Type {
		case "text":
			texts = append(texts, p.Text)
		case "image_url":
			if p.ImageURL != nil && m.ImageURL == "" {
				m.ImageURL = p.ImageURL.URL
			}
		}
	}
	m.Content = strings.Join(texts, "\n")
	return nil
}

// ModeFlags are independent toggles that each append a directive block.
type ModeFlags struct {
	Reasoning bool `json:"reasoningEnabled"`
	Quantum   bool `json:"quantumMode"`
	Creative  bool `json:"creativeMode"`
}

// GodMode is the conjunction of quantum and creative mode.
func (m ModeFlags) GodMode() bool {
	return m.Quantum && m.Creative
}

type Tone string

const (
	ToneProfessional Tone = "professional"
	ToneCasual       Tone = "casual"
	ToneTechnical    Tone = "technical"
	ToneFriendly     Tone = "friendly"
	ToneConcise      Tone = "concise"
)

func ValidTone(t string) bool {
	switch Tone(t) {
	case ToneProfessional, ToneCasual, ToneTechnical, ToneFriendly, ToneConcise:
		return true
	}
	return false
}

const (
	// MaxSimulationDepth is the highest accepted simulation depth.
	MaxSimulationDepth = 5
	// MaxTemperature is the highest sampling temperature accepted from a client.
	MaxTemperature = 2.0
)

// ChatDefaults are the server-side values applied to unset ChatOptions fields.
type ChatDefaults struct {
	Model       string
	Temperature float64
}

// ChatOptions is the per-request configuration of a turn.
//
// Defaults (see WithDefaults): Model falls back to ChatDefaults.Model,
// Temperature to ChatDefaults.Temperature, Tone to professional and
// SimulationDepth to 1. An empty SystemPrompt selects the built-in persona.
type ChatOptions struct {
	Model           string    `json:"model,omitempty"`
	Temperature     *float64  `json:"temperature,omitempty"`
	SystemPrompt    string    `json:"systemPrompt,omitempty"`
	Tone            Tone      `json:"tone,omitempty"`
	SimulationDepth int       `json:"simulationDepth,omitempty"`
	Modes           ModeFlags `json:"modes"`
}

// WithDefaults returns a copy of o with every unset field filled in.
func (o ChatOptions) WithDefaults(d ChatDefaults) ChatOptions {
	if strings.TrimSpace(o.Model) == "" {
		o.Model = d.Model
	}
	if o.Temperature == nil {
		t := d.Temperature
		o.Temperature = &t
	}
	if o.Tone == "" {
		o.Tone = ToneProfessional
	}
	if o.SimulationDepth == 0 {
		o.SimulationDepth = 1
	}
	return o
}

// TemperatureValue returns the resolved temperature, or 0 when unset.
func (o ChatOptions) TemperatureValue() float64 {
	if o.Temperature == nil {
		return 0
	}
	return *o.Temperature
}

var errInvalidOption = errors.New("invalid chat option")

// Validate checks resolved options. Call it after WithDefaults.
func (o ChatOptions) Validate() error {
	if strings.TrimSpace(o.Model) == "" {
		return fmt.Errorf("%w: model is required", errInvalidOption)
	}
	if t := o.TemperatureValue(); t < 0 || t > MaxTemperature {
		return fmt.Errorf("%w: temperature must be between 0 and %.1f", errInvalidOption, MaxTemperature)
	}
	if o.Tone != "" && !ValidTone(string(o.Tone)) {
		return fmt.Errorf("%w: unknown tone %q", errInvalidOption, o.Tone)
	}
	if o.SimulationDepth < 1 || o.SimulationDepth > MaxSimulationDepth {
		return fmt.Errorf("%w: simulationDepth must be between 1 and %d", errInvalidOption, MaxSimulationDepth)
	}
	return nil
}

// GenerateRequest is what the core hands to the external generation service.
type GenerateRequest struct {
	Messages    []Message
	Model       string
	Temperature float64
}
