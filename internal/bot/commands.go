package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/shrimpsizemoose/eduspace/internal/gradebook"
)

const (
	everyoneHelp = `Available commands:
/status - Show whether grades are locked and the current PA announcement
/help - Show this message`

	adminHelp = `Available commands:
/status - Show whether grades are locked and the current PA announcement
/pa <text> - Broadcast a PA announcement
/pa stop - Take the announcement down
/lock - Hide grades from students
/unlock - Show grades to students again
/grades <student> - Show a student's rows and average
/help - Show this message

Examples:
/pa Buses leave at 3pm today
/grades alice`
)

type commandHandler func(context.Context, *tgbotapi.Message) error

func (b *Bot) routeCommands(cmd string) (commandHandler, bool) {
	commands := map[string]commandHandler{
		"start":  b.handleStart,
		"help":   b.handleHelp,
		"status": b.handleStatus,
	}
	handler, found := commands[cmd]
	return handler, found
}

func (b *Bot) routeAdminCommands(cmd string) (commandHandler, bool) {
	commands := map[string]commandHandler{
		"pa":     b.handlePA,
		"lock":   b.handleLock,
		"unlock": b.handleUnlock,
		"grades": b.handleGrades,
	}
	handler, found := commands[cmd]
	return handler, found
}

func (b *Bot) isAdmin(msg *tgbotapi.Message) bool {
	return msg.From != nil && b.admins[msg.From.ID]
}

func (b *Bot) handleMessage(msg *tgbotapi.Message) {
	if !msg.IsCommand() {
		b.sendHelp(msg.Chat.ID)
		return
	}

	ctx := context.Background()
	cmd := msg.Command()

	handler, ok := b.routeCommands(cmd)
	if !ok && b.isAdmin(msg) {
		handler, ok = b.routeAdminCommands(cmd)
	}
	if !ok {
		b.sendHelp(msg.Chat.ID)
		return
	}

	if err := handler(ctx, msg); err != nil {
		logger.Error.Printf("Command /%s error: %v", cmd, err)
		b.sendMessage(msg.Chat.ID, fmt.Sprintf("Error: %v", err))
	}
}

func (b *Bot) sendHelp(chatID int64) error {
	return b.sendMessage(chatID, "Use commands to talk to the grade book bot. Send /help for the list.")
}

func (b *Bot) handleHelp(_ context.Context, msg *tgbotapi.Message) error {
	text := everyoneHelp
	if b.isAdmin(msg) {
		text = adminHelp
	}
	return b.sendMessage(msg.Chat.ID, text)
}

func (b *Bot) handleStart(_ context.Context, msg *tgbotapi.Message) error {
	text := "Hi! I keep an eye on the class grade book.\n\n"
	if b.isAdmin(msg) {
		text += "You are a teacher here. Use /help to see what you can do."
	} else {
		text += "Use /status to check on announcements."
	}
	return b.sendMessage(msg.Chat.ID, text)
}

func (b *Bot) handleStatus(ctx context.Context, msg *tgbotapi.Message) error {
	locked, err := b.grades.Locked(ctx)
	if err != nil {
		return err
	}
	announcement, err := b.grades.Announcement(ctx)
	if err != nil {
		return err
	}

	var text strings.Builder
	if locked {
		text.WriteString("🔒 Grades are locked\n")
	} else {
		text.WriteString("🔓 Grades are visible to students\n")
	}
	if announcement != "" {
		fmt.Fprintf(&text, "📢 %s", announcement)
	} else {
		text.WriteString("No announcement is up")
	}
	return b.sendMessage(msg.Chat.ID, text.String())
}

func (b *Bot) handlePA(ctx context.Context, msg *tgbotapi.Message) error {
	args := strings.TrimSpace(msg.CommandArguments())
	if args == "" {
		return b.sendMessage(msg.Chat.ID, "Usage:\n/pa <text> - Broadcast\n/pa stop - Take it down")
	}

	if args == "stop" {
		if err := b.grades.ClearAnnouncement(ctx); err != nil {
			return err
		}
		return b.sendMessage(msg.Chat.ID, "✅ Announcement stopped")
	}

	if err := b.grades.Broadcast(ctx, args); err != nil {
		return err
	}
	return b.sendMessage(msg.Chat.ID, fmt.Sprintf("✅ Broadcasting: %s", args))
}

func (b *Bot) handleLock(ctx context.Context, msg *tgbotapi.Message) error {
	if err := b.grades.SetLocked(ctx, true); err != nil {
		return err
	}
	return b.sendMessage(msg.Chat.ID, "🔒 Grades locked")
}

func (b *Bot) handleUnlock(ctx context.Context, msg *tgbotapi.Message) error {
	if err := b.grades.SetLocked(ctx, false); err != nil {
		return err
	}
	return b.sendMessage(msg.Chat.ID, "🔓 Grades unlocked")
}

func (b *Bot) handleGrades(ctx context.Context, msg *tgbotapi.Message) error {
	args := strings.Fields(msg.CommandArguments())
	if len(args) != 1 {
		return fmt.Errorf("name one student: /grades alice")
	}
	student := args[0]
	if !gradebook.IsStudent(student) {
		return fmt.Errorf("%s: %w", student, gradebook.ErrUnknownStudent)
	}

	teacherView, err := b.grades.TeacherView(ctx)
	if err != nil {
		return err
	}
	for _, s := range teacherView.Students {
		if s.Username != student {
			continue
		}
		if len(s.Rows) == 0 {
			return b.sendMessage(msg.Chat.ID, fmt.Sprintf("%s has no grades yet", student))
		}

		var text strings.Builder
		fmt.Fprintf(&text, "Grades for %s:\n\n", student)
		for _, row := range s.Rows {
			fmt.Fprintf(&text, "📝 %s: %s", row.Subject, row.Score)
			if row.Comment != "" {
				fmt.Fprintf(&text, " (%s)", row.Comment)
			}
			text.WriteString("\n")
		}
		if s.HasAverage {
			fmt.Fprintf(&text, "\nAverage: %d", s.Average)
		}
		return b.sendMessage(msg.Chat.ID, text.String())
	}
	return errors.New("student missing from the grade book view")
}

func (b *Bot) sendMessage(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	_, err := b.out.Send(msg)
	return err
}
