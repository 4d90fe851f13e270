package session

import (
	"log"

	"chatd/pkg/types"
)

// render runs the whole turn log through the model's chat template into the
// session's working buffer, growing it and retrying once when the template
// reports a larger size. Caller holds s.mu and the session is resident.
func (s *Session) render(addAssistant bool) (int, error) {
	n, err := s.model.RenderTemplate(s.turns, addAssistant, s.formatted)
	if err != nil {
		return -1, ErrFormat(err.Error())
	}
	if n > len(s.formatted) {
		s.formatted = make([]byte, n)
		n, err = s.model.RenderTemplate(s.turns, addAssistant, s.formatted)
		if err != nil {
			return -1, ErrFormat(err.Error())
		}
	}
	if n < 0 {
		return -1, ErrFormat("template reported negative length")
	}
	return n, nil
}

// isolatePromptLocked appends the turn to the log, re-renders the full
// prompt, and returns only the suffix past the previous watermark.
// Re-formatting must not resend text the runtime has already consumed.
// Caller holds s.mu and the session is resident.
func (s *Session) isolatePromptLocked(turn types.ChatTurn) (string, error) {
	s.turns = append(s.turns, turn)
	n, err := s.render(true)
	if err != nil {
		return "", err
	}
	if n < s.prevLen {
		// A template should only ever grow the rendered prompt.
		return "", ErrFormat("rendered prompt shrank below watermark")
	}
	return string(s.formatted[s.prevLen:n]), nil
}

// commitReply appends the assistant's reply to the log and advances the
// watermark to the length of the log rendered without the assistant opener,
// so the next isolated prompt starts after the reply. The watermark never
// moves backward.
func (s *Session) commitReply(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.turns = append(s.turns, types.ChatTurn{Role: types.RoleAssistant, Text: text})
	if s.model == nil {
		return
	}
	n, err := s.render(false)
	if err != nil {
		// Keep the old watermark; the next turn resends at worst.
		log.Printf("session event=watermark_render_error model=%q err=%v", s.id, err)
		return
	}
	if n > s.prevLen {
		s.prevLen = n
	}
}
