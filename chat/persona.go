/*
Copyright 2026 Meetingops, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package chat

import (
	"context"
	"strings"

	"github.com/chainguard-dev/clog"
)

// lineCompleter is the slice of the completion gateway the persona needs.
type lineCompleter interface {
	Complete(ctx context.Context, instructions, input string) (string, error)
}

const personaInstructions = `You generate SHORT in-character chat messages (1-2 sentences max) for the situation described. Return ONLY the message text, nothing else. No markdown formatting, no quotes around the output.`

// Persona generates short in-character announcement lines via the completion
// gateway. Soul is prepended to the instructions and typically holds the
// bot's character sheet.
type Persona struct {
	completer lineCompleter
	soul      string
}

// NewPersona creates a Persona. completer may be nil, in which case Line
// always falls back.
func NewPersona(completer lineCompleter, soul string) *Persona {
	return &Persona{completer: completer, soul: soul}
}

// Line generates a one-liner for the given situation. Generation failure is
// never surfaced: the fallback text is returned instead.
func (p *Persona) Line(ctx context.Context, situation, fallback string) string {
	if p == nil || p.completer == nil {
		return fallback
	}

	instructions := personaInstructions
	if p.soul != "" {
		instructions = p.soul + "\n\n" + instructions
	}

	line, err := p.completer.Complete(ctx, instructions, situation)
	if err != nil {
		clog.FromContext(ctx).With("error", err.Error()).
			Warn("Persona line generation failed, using fallback")
		return fallback
	}
	if line = strings.TrimSpace(line); line == "" {
		return fallback
	}
	return line
}
