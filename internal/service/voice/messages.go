package voice

import (
	"fmt"

	"golang.org/x/text/language"

	"github.com/seu-repo/smartspeaker-gateway/internal/domain"
)

// Messages is the read-only string table the dispatcher speaks from.
type Messages struct {
	lang  language.Tag
	table map[domain.MessageID]string
}

// NewMessages starts from the default table and applies overrides by message id.
func NewMessages(lang string, overrides map[string]string) (*Messages, error) {
	tag, err := language.Parse(lang)
	if err != nil {
		return nil, fmt.Errorf("invalid message language %q: %w", lang, err)
	}

	table := make(map[domain.MessageID]string, len(domain.DefaultMessages))
	for id, text := range domain.DefaultMessages {
		table[id] = text
	}
	for key, text := range overrides {
		id := domain.MessageID(key)
		if _, ok := table[id]; !ok {
			return nil, fmt.Errorf("unknown message id %q", key)
		}
		if id == domain.MsgLatestTitle {
			if err := domain.CheckTitleTemplate(text); err != nil {
				return nil, err
			}
		}
		table[id] = text
	}

	return &Messages{lang: tag, table: table}, nil
}

// DefaultTable returns the built-in Japanese messages.
func DefaultTable() *Messages {
	m, _ := NewMessages("ja", nil)
	return m
}

func (m *Messages) Text(id domain.MessageID) string {
	return m.table[id]
}

// LatestTitle renders the latest-title sentence around title.
func (m *Messages) LatestTitle(title string) string {
	return fmt.Sprintf(m.table[domain.MsgLatestTitle], title)
}

// Language is the base language subtag, e.g. "ja".
func (m *Messages) Language() string {
	base, _ := m.lang.Base()
	return base.String()
}
