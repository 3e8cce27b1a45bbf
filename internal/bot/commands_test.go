package bot

import (
	"context"
	"strings"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/shrimpsizemoose/eduspace/internal/gradebook"
	"github.com/shrimpsizemoose/eduspace/internal/store"
)

const (
	adminID   = 42
	visitorID = 7
	chatID    = 100
)

type MockSender struct {
	mock.Mock
}

func (m *MockSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	args := m.Called(c)
	return tgbotapi.Message{}, args.Error(0)
}

func (m *MockSender) lastText(t *testing.T) string {
	t.Helper()
	require.NotEmpty(t, m.Calls)
	msg, ok := m.Calls[len(m.Calls)-1].Arguments.Get(0).(tgbotapi.MessageConfig)
	require.True(t, ok)
	return msg.Text
}

func command(from int64, text string) *tgbotapi.Message {
	cmd, _, _ := strings.Cut(text, " ")
	return &tgbotapi.Message{
		Text: text,
		Chat: &tgbotapi.Chat{ID: chatID},
		From: &tgbotapi.User{ID: from},
		Entities: []tgbotapi.MessageEntity{
			{Type: "bot_command", Offset: 0, Length: len(cmd)},
		},
	}
}

func setupBot(t *testing.T) (*Bot, *MockSender, *gradebook.Service) {
	t.Helper()
	out := new(MockSender)
	out.On("Send", mock.Anything).Return(nil)
	grades := gradebook.NewService(store.NewMemoryStore())
	return newBot(out, []int64{adminID}, grades), out, grades
}

func TestHelp_DependsOnRole(t *testing.T) {
	b, out, _ := setupBot(t)

	b.handleMessage(command(visitorID, "/help"))
	assert.Equal(t, everyoneHelp, out.lastText(t))

	b.handleMessage(command(adminID, "/help"))
	assert.Equal(t, adminHelp, out.lastText(t))
}

func TestNonCommandGetsHint(t *testing.T) {
	b, out, _ := setupBot(t)
	msg := &tgbotapi.Message{Text: "hello", Chat: &tgbotapi.Chat{ID: chatID}, From: &tgbotapi.User{ID: visitorID}}

	b.handleMessage(msg)
	assert.Contains(t, out.lastText(t), "/help")
}

func TestAdminCommandsIgnoredForVisitors(t *testing.T) {
	b, out, grades := setupBot(t)
	ctx := context.Background()

	b.handleMessage(command(visitorID, "/lock"))
	assert.Contains(t, out.lastText(t), "/help")

	locked, err := grades.Locked(ctx)
	require.NoError(t, err)
	assert.False(t, locked)
}

func TestPA_BroadcastAndStop(t *testing.T) {
	b, out, grades := setupBot(t)
	ctx := context.Background()

	b.handleMessage(command(adminID, "/pa   Assembly moved to the gym  "))
	assert.Equal(t, "✅ Broadcasting: Assembly moved to the gym", out.lastText(t))

	msg, err := grades.Announcement(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Assembly moved to the gym", msg)

	b.handleMessage(command(visitorID, "/status"))
	assert.Contains(t, out.lastText(t), "📢 Assembly moved to the gym")

	b.handleMessage(command(adminID, "/pa stop"))
	msg, err = grades.Announcement(ctx)
	require.NoError(t, err)
	assert.Empty(t, msg)

	b.handleMessage(command(adminID, "/pa"))
	assert.Contains(t, out.lastText(t), "Usage")
}

func TestLockUnlock(t *testing.T) {
	b, out, grades := setupBot(t)
	ctx := context.Background()

	b.handleMessage(command(adminID, "/lock"))
	locked, err := grades.Locked(ctx)
	require.NoError(t, err)
	assert.True(t, locked)

	b.handleMessage(command(visitorID, "/status"))
	assert.Contains(t, out.lastText(t), "Grades are locked")

	b.handleMessage(command(adminID, "/unlock"))
	locked, err = grades.Locked(ctx)
	require.NoError(t, err)
	assert.False(t, locked)
}

func TestGrades(t *testing.T) {
	b, out, grades := setupBot(t)
	ctx := context.Background()

	b.handleMessage(command(adminID, "/grades bob"))
	assert.Equal(t, "bob has no grades yet", out.lastText(t))

	require.NoError(t, grades.AddRow(ctx, "bob"))
	require.NoError(t, grades.UpdateRow(ctx, "bob", 0, "subject", "Math"))
	require.NoError(t, grades.UpdateRow(ctx, "bob", 0, "score", "70"))
	require.NoError(t, grades.UpdateRow(ctx, "bob", 0, "comment", "retake"))

	b.handleMessage(command(adminID, "/grades bob"))
	text := out.lastText(t)
	assert.Contains(t, text, "📝 Math: 70 (retake)")
	assert.Contains(t, text, "Average: 70")

	b.handleMessage(command(adminID, "/grades mallory"))
	assert.Contains(t, out.lastText(t), "Error:")

	b.handleMessage(command(adminID, "/grades"))
	assert.Contains(t, out.lastText(t), "Error:")
}
