// Package prompt builds the instruction sent to the model for one polish
// request. The output-shape contract it states is the same one the
// decompose package parses; the two are a matched pair, though the model
// is under no obligation to comply.
package prompt

import "fmt"

// Tone is the rewriting direction the user asked for.
type Tone string

const (
	ToneMoreFormal     Tone = "more-formal"
	ToneMoreConcise    Tone = "more-concise"
	ToneMorePolite     Tone = "more-polite"
	ToneMorePersuasive Tone = "more-persuasive"
	ToneMoreCasual     Tone = "more-casual"
)

var toneLabels = map[Tone]string{
	ToneMoreFormal:     "More formal",
	ToneMoreConcise:    "More concise",
	ToneMorePolite:     "More polite",
	ToneMorePersuasive: "More persuasive",
	ToneMoreCasual:     "More casual",
}

// Context is the destination/genre of the text. Email-like contexts are
// the ones the model is asked to produce a subject line for.
type Context string

const (
	ContextEmailToManager  Context = "email-to-manager"
	ContextMessageManager  Context = "message-to-manager"
	ContextMessageTeammate Context = "message-to-teammate"
	ContextEmailExternal   Context = "email-to-external-party"
	ContextSlideText       Context = "slide-text"
	ContextChatMessage     Context = "chat-message"
)

var contextLabels = map[Context]string{
	ContextEmailToManager:  "Email to manager",
	ContextMessageManager:  "Message to manager",
	ContextMessageTeammate: "Message to teammate",
	ContextEmailExternal:   "Email to an external party",
	ContextSlideText:       "Slide text",
	ContextChatMessage:     "Chat message",
}

// ParseTone validates a wire value against the fixed tone set.
func ParseTone(s string) (Tone, error) {
	t := Tone(s)
	if _, ok := toneLabels[t]; !ok {
		return "", fmt.Errorf("unknown tone %q", s)
	}
	return t, nil
}

// ParseContext validates a wire value against the fixed context set.
func ParseContext(s string) (Context, error) {
	c := Context(s)
	if _, ok := contextLabels[c]; !ok {
		return "", fmt.Errorf("unknown context %q", s)
	}
	return c, nil
}

// WantsSubject reports whether the context is an email-like destination,
// i.e. whether the model should be asked for a Subject: line and whether
// the decomposer may extract one.
func (c Context) WantsSubject() bool {
	return c == ContextEmailToManager || c == ContextEmailExternal
}

// Tones lists the valid tones in display order.
func Tones() []Tone {
	return []Tone{ToneMoreFormal, ToneMoreConcise, ToneMorePolite, ToneMorePersuasive, ToneMoreCasual}
}

// Contexts lists the valid contexts in display order.
func Contexts() []Context {
	return []Context{ContextEmailToManager, ContextMessageManager, ContextMessageTeammate, ContextEmailExternal, ContextSlideText, ContextChatMessage}
}

// Label returns the human-readable form used inside the prompt.
func (t Tone) Label() string { return toneLabels[t] }

// Label returns the human-readable form used inside the prompt.
func (c Context) Label() string { return contextLabels[c] }
