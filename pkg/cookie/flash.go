package cookie

import (
	"encoding/json"
	"errors"
	"net/http"
)

// Flash kinds, matching the Bootstrap alert variants used by the views.
const (
	FlashInfo    = "flash"
	FlashSuccess = "success"
	FlashWarning = "warning"
	FlashDanger  = "danger"
)

// Message is a single flash message.
type Message struct {
	Kind string `json:"kind"`
	Text string `json:"text"`
}

// Flash reads and deletes a flash message.
// Returns ErrNoSecret if no secret is configured.
// Returns ErrNotFound if the flash cookie doesn't exist.
func (m *Manager) Flash(w http.ResponseWriter, r *http.Request, key string, dest any) error {
	if m.secret == nil {
		return ErrNoSecret
	}

	name := "flash_" + key
	raw, err := m.GetEncrypted(r, name)
	if err != nil {
		return err
	}

	m.Delete(w, name)

	return json.Unmarshal([]byte(raw), dest)
}

// SetFlash sets a flash message.
// Returns ErrNoSecret if no secret is configured.
func (m *Manager) SetFlash(w http.ResponseWriter, key string, value any) error {
	if m.secret == nil {
		return ErrNoSecret
	}

	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return m.SetEncrypted(w, "flash_"+key, string(data), 0)
}

// Messages reads and deletes the pending flash messages.
// A missing or unreadable flash cookie yields no messages; the cookie is
// removed either way so a corrupted value does not stick.
func (m *Manager) Messages(w http.ResponseWriter, r *http.Request) ([]Message, error) {
	var msgs []Message
	err := m.Flash(w, r, m.flashName, &msgs)
	switch {
	case err == nil:
		return msgs, nil
	case errors.Is(err, ErrNotFound):
		return nil, nil
	case errors.Is(err, ErrDecrypt):
		m.Delete(w, "flash_"+m.flashName)
		return nil, nil
	default:
		return nil, err
	}
}

// SetMessages stores msgs for the next request.
// An empty list is a no-op.
func (m *Manager) SetMessages(w http.ResponseWriter, msgs []Message) error {
	if len(msgs) == 0 {
		return nil
	}
	return m.SetFlash(w, m.flashName, msgs)
}
