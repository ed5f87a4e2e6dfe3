package voice

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/seu-repo/smartspeaker-gateway/internal/domain"
	"github.com/seu-repo/smartspeaker-gateway/internal/mocks"
)

func newTestDispatcher(title string, ok bool) (*Dispatcher, *mocks.MockFactProvider) {
	facts := &mocks.MockFactProvider{
		FetchLatestTitleFunc: func(ctx context.Context) (string, bool) {
			return title, ok
		},
	}
	return NewDispatcher(facts, DefaultTable(), zap.NewNop()), facts
}

func TestDispatch_SessionStart(t *testing.T) {
	d, facts := newTestDispatcher("", false)

	reply := d.Dispatch(context.Background(), domain.SessionStart())

	if reply.Text != domain.DefaultMessages[domain.MsgIntroduction] {
		t.Errorf("expected introduction text, got %q", reply.Text)
	}
	if reply.EndSession {
		t.Error("expected session to continue after session start")
	}
	if facts.Calls() != 0 {
		t.Errorf("fact provider should not be called, got %d calls", facts.Calls())
	}
}

func TestDispatch_Hello(t *testing.T) {
	d, _ := newTestDispatcher("", false)

	reply := d.Dispatch(context.Background(), domain.IntentInvoked(domain.IntentHello))

	if reply.Text != domain.DefaultMessages[domain.MsgHello] {
		t.Errorf("expected greeting, got %q", reply.Text)
	}
	if !reply.EndSession {
		t.Error("expected session to end after an intent reply")
	}
}

func TestDispatch_UnknownIntentMatchesUnrecognized(t *testing.T) {
	d, _ := newTestDispatcher("", false)
	ctx := context.Background()

	unknown := d.Dispatch(ctx, domain.IntentInvoked("UnknownXYZ"))
	unrecognized := d.Dispatch(ctx, domain.Unrecognized())
	empty := d.Dispatch(ctx, domain.IntentInvoked(""))

	if unknown != unrecognized {
		t.Errorf("expected identical replies, got %+v and %+v", unknown, unrecognized)
	}
	if empty != unrecognized {
		t.Errorf("expected empty intent to fall back, got %+v", empty)
	}
	if unknown.Text != domain.DefaultMessages[domain.MsgNotUnderstood] {
		t.Errorf("expected not-understood text, got %q", unknown.Text)
	}
	if !unknown.EndSession {
		t.Error("expected fallback to end the session")
	}
}

func TestDispatch_LatestTitle(t *testing.T) {
	tests := []struct {
		name  string
		title string
		ok    bool
		want  string
	}{
		{"present", "Post A", true, "Post A"},
		{"absent", "", false, domain.DefaultMessages[domain.MsgLatestTitleUnknown]},
		{"present but empty", "", true, domain.DefaultMessages[domain.MsgLatestTitleUnknown]},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, facts := newTestDispatcher(tt.title, tt.ok)

			reply := d.Dispatch(context.Background(), domain.IntentInvoked(domain.IntentAskLatestTitle))

			if !strings.Contains(reply.Text, tt.want) {
				t.Errorf("expected reply to contain %q, got %q", tt.want, reply.Text)
			}
			if facts.Calls() != 1 {
				t.Errorf("expected one fact lookup, got %d", facts.Calls())
			}
		})
	}
}

func TestDispatch_Deterministic(t *testing.T) {
	d, _ := newTestDispatcher("Post A", true)
	ctx := context.Background()
	event := domain.IntentInvoked(domain.IntentAskLatestTitle)

	first := d.Dispatch(ctx, event)
	second := d.Dispatch(ctx, event)

	if first != second {
		t.Errorf("expected identical replies, got %+v and %+v", first, second)
	}
}

func TestMessages_Overrides(t *testing.T) {
	m, err := NewMessages("en-US", map[string]string{
		"hello":        "Hello there!",
		"latest_title": "The latest post is %s.",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if got := m.Text(domain.MsgHello); got != "Hello there!" {
		t.Errorf("expected override, got %q", got)
	}
	if got := m.LatestTitle("Post A"); got != "The latest post is Post A." {
		t.Errorf("unexpected rendered title %q", got)
	}
	if got := m.Text(domain.MsgNotUnderstood); got != domain.DefaultMessages[domain.MsgNotUnderstood] {
		t.Errorf("expected default for untouched id, got %q", got)
	}
	if got := m.Language(); got != "en" {
		t.Errorf("expected language 'en', got %q", got)
	}
}

func TestMessages_UnknownOverride(t *testing.T) {
	if _, err := NewMessages("ja", map[string]string{"nope": "x"}); err == nil {
		t.Fatal("expected error for unknown message id")
	}
}

func TestMessages_TitleTemplateMustRenderTitle(t *testing.T) {
	for _, text := range []string{"no verb", "Latest: %%s", "Latest: %d", "%s and %s"} {
		_, err := NewMessages("ja", map[string]string{"latest_title": text})
		if !errors.Is(err, domain.ErrTitleTemplate) {
			t.Errorf("%q: expected ErrTitleTemplate, got %v", text, err)
		}
	}
}
