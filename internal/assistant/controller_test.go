package assistant_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"testing"

	"folio-go/internal/assistant"
	"folio-go/pkg/log"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	log.Init("error", "console", "")
	os.Exit(m.Run())
}

// recordingSender 记录每次投递，便于断言调用次数与载荷。
type recordingSender struct {
	mu    sync.Mutex
	calls int
	last  assistant.ContactSubmission
	err   error
}

func (s *recordingSender) Send(_ context.Context, sub assistant.ContactSubmission) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	s.last = sub
	return s.err
}

func newTestController(locale assistant.Locale, sender assistant.Sender) *assistant.Controller {
	return assistant.NewController(locale, assistant.SyncScheduler{}, sender, false)
}

func TestOpenSeedsGreetingExactlyOnce(t *testing.T) {
	c := newTestController(assistant.LocaleEN, &recordingSender{})

	c.Open()
	c.Open()

	msgs := c.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, assistant.RoleAssistant, msgs[0].Role)
	require.Len(t, msgs[0].Options, 4)
	assert.Equal(t, assistant.OptionSchedule, msgs[0].Options[0].Value)
	assert.Equal(t, assistant.OptionQuestion, msgs[0].Options[1].Value)
	assert.Equal(t, assistant.OptionProjects, msgs[0].Options[2].Value)
	assert.Equal(t, assistant.OptionServices, msgs[0].Options[3].Value)
}

func TestReopenAfterMessagesDoesNotReseed(t *testing.T) {
	c := newTestController(assistant.LocaleEN, &recordingSender{})

	c.Open()
	c.SendUserText("hello")
	c.Close()
	c.Open()

	// 问候 + 用户消息 + 助手回复，重新打开不新增
	assert.Len(t, c.Messages(), 3)
}

func TestEmptyTextIsIgnored(t *testing.T) {
	c := newTestController(assistant.LocaleEN, &recordingSender{})
	c.Open()

	c.SendUserText("")
	c.SendUserText("   ")

	assert.Len(t, c.Messages(), 1)
}

func TestRolesAlternateAndIDsAreMonotonic(t *testing.T) {
	c := newTestController(assistant.LocaleEN, &recordingSender{})
	c.Open()

	c.SendUserText("tell me about your projects")
	c.SendUserText("what services do you offer")
	c.SendUserText("anything else")

	msgs := c.Messages()
	require.Len(t, msgs, 7)
	for i := 1; i < len(msgs); i += 2 {
		assert.Equal(t, assistant.RoleUser, msgs[i].Role)
		assert.Equal(t, assistant.RoleAssistant, msgs[i+1].Role)
	}
	for i := 1; i < len(msgs); i++ {
		assert.Greater(t, msgs[i].ID, msgs[i-1].ID)
	}
}

func TestScheduleKeywordBeatsProjectKeyword(t *testing.T) {
	c := newTestController(assistant.LocaleEN, &recordingSender{})
	c.Open()

	c.SendUserText("can we schedule a call about my project")

	msgs := c.Messages()
	require.Len(t, msgs, 3)
	assert.Equal(t, assistant.Strings(assistant.LocaleEN).ScheduleReply, msgs[2].Content)

	_, schedulerVisible, redirectVisible := c.State()
	assert.True(t, schedulerVisible)
	assert.False(t, redirectVisible)
}

func TestFallbackReplyCarriesTwoOptions(t *testing.T) {
	for _, locale := range []assistant.Locale{assistant.LocaleEN, assistant.LocaleFR} {
		c := newTestController(locale, &recordingSender{})
		c.Open()

		c.SendUserText("what's the weather")

		msgs := c.Messages()
		require.Len(t, msgs, 3)
		assert.Equal(t, assistant.Strings(locale).FallbackReply, msgs[2].Content)
		require.Len(t, msgs[2].Options, 2)
		assert.Equal(t, assistant.OptionSchedule, msgs[2].Options[0].Value)
		assert.Equal(t, assistant.OptionQuestion, msgs[2].Options[1].Value)
	}
}

func TestTypedTopicRepliesCarryNoOptions(t *testing.T) {
	c := newTestController(assistant.LocaleEN, &recordingSender{})
	c.Open()

	c.SendUserText("show me your projects")
	c.SendUserText("what services do you offer")

	msgs := c.Messages()
	require.Len(t, msgs, 5)
	assert.Equal(t, assistant.Strings(assistant.LocaleEN).ProjectsReply, msgs[2].Content)
	assert.Empty(t, msgs[2].Options)
	assert.Equal(t, assistant.Strings(assistant.LocaleEN).ServicesReply, msgs[4].Content)
	assert.Empty(t, msgs[4].Options)
}

func TestQuickOptionScheduleShowsRedirectNotInlineForm(t *testing.T) {
	c := newTestController(assistant.LocaleEN, &recordingSender{})
	c.Open()

	c.SelectQuickOption(assistant.OptionSchedule)

	msgs := c.Messages()
	require.Len(t, msgs, 3)
	assert.Equal(t, assistant.RoleUser, msgs[1].Role)
	assert.Equal(t, assistant.Strings(assistant.LocaleEN).LabelSchedule, msgs[1].Content)
	assert.Equal(t, assistant.Strings(assistant.LocaleEN).RedirectReply, msgs[2].Content)

	_, schedulerVisible, redirectVisible := c.State()
	assert.False(t, schedulerVisible)
	assert.True(t, redirectVisible)
}

func TestUnknownQuickOptionIsIgnored(t *testing.T) {
	c := newTestController(assistant.LocaleEN, &recordingSender{})
	c.Open()

	c.SelectQuickOption("bogus")

	assert.Len(t, c.Messages(), 1)
}

func TestSubmitScheduleRoundTrip(t *testing.T) {
	var (
		mu    sync.Mutex
		calls int
		body  map[string]interface{}
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		calls++
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &body)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	c := assistant.NewController(assistant.LocaleEN, assistant.SyncScheduler{}, assistant.NewHTTPSender(server.URL), false)
	c.Open()
	c.SendUserText("I want to schedule a meeting")

	err := c.SubmitSchedule(context.Background(), assistant.ScheduleRequest{
		Name:  "A",
		Email: "a@b.com",
		Date:  "2025-01-01",
		Time:  "10:00",
	})
	require.NoError(t, err)

	mu.Lock()
	assert.Equal(t, 1, calls)
	assert.Equal(t, true, body["wantsCall"])
	assert.Equal(t, "2025-01-01", body["preferredDate"])
	assert.Equal(t, "10:00", body["preferredTime"])
	mu.Unlock()

	_, schedulerVisible, _ := c.State()
	assert.False(t, schedulerVisible)

	msgs := c.Messages()
	last := msgs[len(msgs)-1]
	assert.Equal(t, assistant.RoleAssistant, last.Role)
	assert.Equal(t, assistant.Strings(assistant.LocaleEN).ScheduleDone, last.Content)
	require.Len(t, last.Options, 1)
	assert.Equal(t, assistant.OptionQuestion, last.Options[0].Value)

	assert.Equal(t, assistant.ScheduleRequest{}, c.Form())
}

func TestSubmitScheduleIncompleteFormIsIgnored(t *testing.T) {
	sender := &recordingSender{}
	c := newTestController(assistant.LocaleEN, sender)
	c.Open()

	err := c.SubmitSchedule(context.Background(), assistant.ScheduleRequest{
		Name: "A", Email: "", Date: "2025-01-01", Time: "10:00",
	})
	require.NoError(t, err)
	assert.Equal(t, 0, sender.calls)
	assert.Len(t, c.Messages(), 1)
}

func TestSubmitScheduleRejectsDisallowedTime(t *testing.T) {
	sender := &recordingSender{}
	c := newTestController(assistant.LocaleEN, sender)
	c.Open()

	err := c.SubmitSchedule(context.Background(), assistant.ScheduleRequest{
		Name: "A", Email: "a@b.com", Date: "2025-01-01", Time: "13:37",
	})
	require.NoError(t, err)
	assert.Equal(t, 0, sender.calls)
}

func TestSubmitScheduleFailureLeavesFormOpen(t *testing.T) {
	sender := &recordingSender{err: &assistant.NetworkError{Err: context.DeadlineExceeded}}
	c := newTestController(assistant.LocaleEN, sender)
	c.Open()
	c.SendUserText("schedule please")
	before := len(c.Messages())

	req := assistant.ScheduleRequest{Name: "A", Email: "a@b.com", Date: "2025-01-01", Time: "10:00"}
	err := c.SubmitSchedule(context.Background(), req)
	require.Error(t, err)

	// 失败不向会话追加消息，表单保持打开且内容保留
	assert.Len(t, c.Messages(), before)
	_, schedulerVisible, _ := c.State()
	assert.True(t, schedulerVisible)
	assert.Equal(t, req, c.Form())
}

func TestResetOnCloseClearsHistoryAndReseeds(t *testing.T) {
	c := assistant.NewController(assistant.LocaleEN, assistant.SyncScheduler{}, &recordingSender{}, true)

	c.Open()
	c.SendUserText("hello")
	c.Close()
	assert.Empty(t, c.Messages())

	c.Open()
	msgs := c.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, assistant.Strings(assistant.LocaleEN).Greeting, msgs[0].Content)
}

// manualScheduler 收集回调供测试在任意时刻触发，模拟仍在途的定时回复。
type manualScheduler struct {
	fns []func()
}

func (s *manualScheduler) AfterTyping(fn func()) {
	s.fns = append(s.fns, fn)
}

func (s *manualScheduler) fire() {
	for _, fn := range s.fns {
		fn()
	}
	s.fns = nil
}

func TestCloseDropsInFlightReplyAfterReset(t *testing.T) {
	sched := &manualScheduler{}
	c := assistant.NewController(assistant.LocaleEN, sched, &recordingSender{}, true)

	c.Open()
	c.SendUserText("tell me about your projects")
	c.Close()
	c.Open()

	// 关闭清空会话后才触发延迟回复，过期写入必须被丢弃
	sched.fire()

	msgs := c.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, assistant.Strings(assistant.LocaleEN).Greeting, msgs[0].Content)
}
