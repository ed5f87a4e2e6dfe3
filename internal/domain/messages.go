package domain

import (
	"errors"
	"fmt"
	"strings"
)

// MessageID keys the fixed spoken strings.
type MessageID string

const (
	MsgIntroduction       MessageID = "introduction"
	MsgHello              MessageID = "hello"
	MsgNotUnderstood      MessageID = "not_understood"
	MsgLatestTitle        MessageID = "latest_title"
	MsgLatestTitleUnknown MessageID = "latest_title_unknown"
)

// DefaultMessages is the Japanese string table. MsgLatestTitle takes the title as its only verb.
var DefaultMessages = map[MessageID]string{
	MsgIntroduction:       "こんにちは、LINEデベロッパー・デイのデモアプリです。最新記事を教えてと聞いてください。",
	MsgHello:              "こんにちは、ちょまどさん！",
	MsgNotUnderstood:      "すみません、わかりませんでした！",
	MsgLatestTitle:        "ちょまどさんのブログの最新記事は %s です。",
	MsgLatestTitleUnknown: "ちょまどさんのブログの最新記事は、わかりませんでした。",
}

// ErrTitleTemplate marks a latest-title template that does not render the title exactly once.
var ErrTitleTemplate = errors.New("latest_title template must render the title exactly once")

// CheckTitleTemplate renders text with a marker title and rejects templates
// that drop it, repeat it, or carry unmatched verbs such as %d or %%s.
func CheckTitleTemplate(text string) error {
	const marker = "\x00title\x00"
	rendered := fmt.Sprintf(text, marker)
	if strings.Count(rendered, marker) != 1 || strings.Contains(rendered, "%!") {
		return fmt.Errorf("%w: %q", ErrTitleTemplate, text)
	}
	return nil
}
