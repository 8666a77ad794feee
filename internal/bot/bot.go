package bot

import (
	"context"
	"errors"
	"fmt"
	"html"
	"log"
	"strings"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"higher-pleasures/internal/grid"
	"higher-pleasures/internal/model"
	"higher-pleasures/internal/repository"
	"higher-pleasures/internal/service"
)

type onboardingStage int

const (
	stageNone onboardingStage = iota
	stageFirstName
	stageLastName
	stageEmail
	stageCell
	stageConfirm
)

const (
	cbRegisterConfirm = "register:confirm"
	cbRegisterRestart = "register:restart"
)

const (
	btnSkip    = "⏭ Skip"
	btnConfirm = "✅ Looks good"
	btnRestart = "🔄 Start over"
)

const registerPrompt = "❌ You don't have a configured activity tracker yet. Send /register to get started."

type registration struct {
	stage onboardingStage
	user  model.User
}

// Bot aggregates the Telegram API with the tracking services. It handles
// onboarding, authorization gating and free-text activity messages.
type Bot struct {
	api           *tgbotapi.BotAPI
	userRepo      *repository.UserRepository
	tracker       *service.Tracker
	reportSvc     *service.ReportService
	registrations map[int64]*registration
	mu            sync.Mutex
}

func New(token string, userRepo *repository.UserRepository, tracker *service.Tracker, reportSvc *service.ReportService) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create bot api: %w", err)
	}

	log.Printf("[info] bot authorized on account %s", api.Self.UserName)

	return &Bot{
		api:           api,
		userRepo:      userRepo,
		tracker:       tracker,
		reportSvc:     reportSvc,
		registrations: make(map[int64]*registration),
	}, nil
}

// Start begins polling updates until ctx is cancelled.
func (b *Bot) Start(ctx context.Context) error {
	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 60
	updates := b.api.GetUpdatesChan(updateConfig)

	log.Println("[info] start polling updates")

	go func() {
		<-ctx.Done()
		b.api.StopReceivingUpdates()
	}()

	for update := range updates {
		switch {
		case update.CallbackQuery != nil:
			if err := b.handleCallback(ctx, update.CallbackQuery); err != nil {
				log.Printf("handle callback: %v", err)
			}
		case update.Message != nil:
			if update.Message.Chat == nil {
				continue
			}
			if err := b.handleMessage(ctx, update.Message); err != nil {
				log.Printf("handle message: %v", err)
			}
		}
	}

	return nil
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) error {
	if msg.From == nil {
		return nil
	}

	text := strings.TrimSpace(msg.Text)

	// In group chats the bot only reacts when explicitly mentioned.
	if !msg.Chat.IsPrivate() {
		stripped, mentioned := b.stripMention(text)
		if !mentioned {
			return nil
		}
		text = stripped
	}

	if msg.IsCommand() {
		log.Printf("[info] command from %d: /%s", msg.From.ID, msg.Command())
		return b.handleCommand(ctx, msg)
	}

	if state := b.getRegistration(msg.From.ID); state != nil {
		return b.handleRegistrationStep(ctx, msg, state, text)
	}

	user, err := b.userRepo.FindByTelegramID(ctx, msg.From.ID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return b.sendText(msg.Chat.ID, registerPrompt)
	}
	if err != nil {
		return err
	}

	if text == "" {
		return nil
	}
	return b.trackText(ctx, msg.Chat.ID, user, text)
}

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) error {
	switch msg.Command() {
	case "start":
		return b.handleStart(ctx, msg)
	case "help":
		return b.handleHelp(ctx, msg)
	case "status":
		return b.handleStatus(ctx, msg)
	case "register":
		return b.handleRegister(ctx, msg)
	case "cancel":
		b.clearRegistration(msg.From.ID)
		return b.sendText(msg.Chat.ID, "⏪ Registration cancelled. Send /register whenever you're ready.")
	default:
		return b.sendText(msg.Chat.ID, "Unknown command. Check /help for what I understand.")
	}
}

func (b *Bot) handleStart(ctx context.Context, msg *tgbotapi.Message) error {
	registered, err := b.userRepo.IsRegistered(ctx, msg.From.ID)
	if err != nil {
		return err
	}
	if !registered {
		return b.sendText(msg.Chat.ID, "Welcome to your activity tracker! Send /register to get started.")
	}

	return b.sendText(msg.Chat.ID,
		"👋 Welcome to your activity tracker!\n\n"+
			"Simply send me messages about your activities and I'll track them.\n"+
			"For example: <i>Read for 30 minutes</i> or <i>Went running for an hour</i>\n\n"+
			"Commands:\n"+
			"• /status — today's activities\n"+
			"• /help — how to use me")
}

func (b *Bot) handleHelp(ctx context.Context, msg *tgbotapi.Message) error {
	registered, err := b.userRepo.IsRegistered(ctx, msg.From.ID)
	if err != nil {
		return err
	}
	if !registered {
		return b.sendText(msg.Chat.ID, "You need to register first! Send /register to get started.")
	}

	return b.sendText(msg.Chat.ID,
		"📝 <b>How to use this bot</b>\n\n"+
			"1. Send me messages about your activities\n"+
			"2. Include the duration if possible\n"+
			"3. Be as natural as you like\n\n"+
			"Examples:\n"+
			"• Meditated for 20 minutes\n"+
			"• Just finished a 5k run\n"+
			"• Read War and Peace for 45 mins\n"+
			"• Did yoga this morning")
}

func (b *Bot) handleStatus(ctx context.Context, msg *tgbotapi.Message) error {
	user, err := b.userRepo.FindByTelegramID(ctx, msg.From.ID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return b.sendText(msg.Chat.ID, registerPrompt)
	}
	if err != nil {
		return err
	}

	text, err := b.reportSvc.DailySummary(ctx, *user, time.Now())
	if err != nil {
		return b.sendText(msg.Chat.ID, "Couldn't build today's summary, please try again.")
	}
	return b.sendText(msg.Chat.ID, text)
}

func (b *Bot) handleRegister(ctx context.Context, msg *tgbotapi.Message) error {
	registered, err := b.userRepo.IsRegistered(ctx, msg.From.ID)
	if err != nil {
		return err
	}
	if registered {
		return b.sendText(msg.Chat.ID, "You're already registered. Just send me an activity!")
	}

	b.setRegistration(msg.From.ID, &registration{stage: stageFirstName})
	return b.sendText(msg.Chat.ID, "🆕 Let's set up your tracker.\n<b>Step 1:</b> what's your first name?")
}

func (b *Bot) handleRegistrationStep(ctx context.Context, msg *tgbotapi.Message, state *registration, text string) error {
	switch state.stage {
	case stageFirstName:
		if text == "" {
			return b.sendText(msg.Chat.ID, "I need a first name to continue.")
		}
		state.user.FirstName = text
		state.stage = stageLastName
		return b.sendText(msg.Chat.ID, "<b>Step 2:</b> and your last name?")
	case stageLastName:
		if text == "" {
			return b.sendText(msg.Chat.ID, "I need a last name to continue.")
		}
		state.user.LastName = text
		state.stage = stageEmail
		return b.sendWithReplyMarkup(msg.Chat.ID, "<b>Step 3:</b> your email? (optional)", skipKeyboard())
	case stageEmail:
		if !isSkipInput(text) {
			if !strings.Contains(text, "@") {
				return b.sendWithReplyMarkup(msg.Chat.ID, "That doesn't look like an email. Try again or press Skip.", skipKeyboard())
			}
			state.user.Email = text
		}
		state.stage = stageCell
		return b.sendWithReplyMarkup(msg.Chat.ID, "<b>Step 4:</b> your cell number?", tgbotapi.NewRemoveKeyboard(true))
	case stageCell:
		if text == "" {
			return b.sendText(msg.Chat.ID, "I need a cell number to continue.")
		}
		state.user.Cell = text
		state.stage = stageConfirm
		return b.sendRegistrationSummary(msg.Chat.ID, state)
	case stageConfirm:
		return b.sendText(msg.Chat.ID, "Use the buttons above to confirm or start over.")
	default:
		b.clearRegistration(msg.From.ID)
		return b.sendText(msg.Chat.ID, "Registration reset. Send /register to try again.")
	}
}

func (b *Bot) sendRegistrationSummary(chatID int64, state *registration) error {
	var summary strings.Builder
	summary.WriteString("Here's what I have:\n")
	summary.WriteString(fmt.Sprintf("• <b>Name:</b> %s %s\n", escape(state.user.FirstName), escape(state.user.LastName)))
	if state.user.Email != "" {
		summary.WriteString(fmt.Sprintf("• <b>Email:</b> %s\n", escape(state.user.Email)))
	}
	summary.WriteString(fmt.Sprintf("• <b>Cell:</b> %s\n", escape(state.user.Cell)))

	out := tgbotapi.NewMessage(chatID, summary.String())
	out.ParseMode = tgbotapi.ModeHTML
	out.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(btnConfirm, cbRegisterConfirm),
			tgbotapi.NewInlineKeyboardButtonData(btnRestart, cbRegisterRestart),
		),
	)
	_, err := b.api.Send(out)
	return err
}

func (b *Bot) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) error {
	if cb.From == nil || cb.Message == nil {
		return nil
	}

	if _, err := b.api.Request(tgbotapi.NewCallback(cb.ID, "")); err != nil {
		log.Printf("answer callback: %v", err)
	}

	chatID := cb.Message.Chat.ID
	state := b.getRegistration(cb.From.ID)

	switch cb.Data {
	case cbRegisterConfirm:
		if state == nil || state.stage != stageConfirm {
			return b.sendText(chatID, "Nothing to confirm. Send /register to start.")
		}
		return b.finishRegistration(ctx, cb.From, state, chatID)
	case cbRegisterRestart:
		if state == nil {
			return b.sendText(chatID, "Nothing to restart. Send /register to start.")
		}
		b.setRegistration(cb.From.ID, &registration{stage: stageFirstName})
		return b.sendText(chatID, "🔄 Starting over. What's your first name?")
	default:
		return nil
	}
}

func (b *Bot) finishRegistration(ctx context.Context, from *tgbotapi.User, state *registration, chatID int64) error {
	user := state.user
	user.PublicID = uuid.NewString()
	user.TelegramID = from.ID
	user.SheetName = sheetNameFor(user)

	if err := b.userRepo.Create(ctx, &user); err != nil {
		return b.sendText(chatID, "Couldn't save your registration, please try /register again.")
	}
	b.clearRegistration(from.ID)

	log.Printf("[info] registered user=%s sheet=%q", user.PublicID, user.SheetName)

	if err := b.tracker.EnsureSurface(ctx, &user); err != nil {
		log.Printf("[warn] initialize sheet %q: %v", user.SheetName, err)
		return b.sendText(chatID, "✅ You're registered! Your sheet isn't ready yet — I'll set it up shortly.")
	}

	return b.sendText(chatID,
		"✅ You're all set!\n\nTell me about your activities and I'll track them.\n"+
			"For example: <i>ran for 30 minutes</i>")
}

// sheetNameFor derives the user's sheet tab name from their full name,
// falling back to the telegram id.
func sheetNameFor(user model.User) string {
	name := strings.TrimSpace(user.FirstName + " " + user.LastName)
	if name == "" {
		name = fmt.Sprintf("User %d", user.TelegramID)
	}
	return name
}

func (b *Bot) trackText(ctx context.Context, chatID int64, user *model.User, text string) error {
	results, err := b.tracker.TrackMessage(ctx, user, text)
	if err != nil {
		log.Printf("track activity user=%s: %v", user.PublicID, err)
		return b.sendText(chatID, trackErrorReply(err))
	}
	if len(results) == 0 {
		return b.sendText(chatID, "🤔 I couldn't find an activity in that. Try something like <i>read for 30 minutes</i>.")
	}

	var reply strings.Builder
	reply.WriteString("✅ <b>Activity tracked!</b>\n")
	partial := false
	for _, r := range results {
		reply.WriteString(fmt.Sprintf("• %s — %s on %s\n", escape(r.Category), formatHours(r.Hours), grid.DateLabel(r.Date)))
		if r.Partial() {
			partial = true
		}
	}
	if partial {
		reply.WriteString("\n⚠️ Part of the update didn't go through; it will be reconciled later.")
	}

	return b.sendText(chatID, strings.TrimSpace(reply.String()))
}

// trackErrorReply translates typed tracking errors into user-facing text.
// The grid core never formats messages itself.
func trackErrorReply(err error) string {
	var verr *grid.ValidationError
	if errors.As(err, &verr) {
		return fmt.Sprintf("❌ I couldn't track that: %s.", escape(verr.Error()))
	}
	var nf *grid.RowNotFoundError
	if errors.As(err, &nf) {
		return "❌ That date isn't on your sheet. I only track the current year."
	}
	return "❌ Sorry, I couldn't track that activity. Please try again."
}

func formatHours(hours float64) string {
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", hours), "0"), ".") + "h"
}

// SendDailyReports pushes today's summary to every registered user.
func (b *Bot) SendDailyReports(ctx context.Context) error {
	users, err := b.userRepo.ListAll(ctx)
	if err != nil {
		return err
	}

	for _, user := range users {
		text, err := b.reportSvc.DailySummary(ctx, user, time.Now())
		if err != nil {
			log.Printf("daily report user=%s: %v", user.PublicID, err)
			continue
		}
		if err := b.sendText(user.TelegramID, text); err != nil {
			log.Printf("send report user=%s: %v", user.PublicID, err)
		}
	}
	return nil
}

func (b *Bot) stripMention(text string) (string, bool) {
	mention := "@" + b.api.Self.UserName
	if !strings.Contains(text, mention) {
		return text, false
	}
	return strings.TrimSpace(strings.ReplaceAll(text, mention, "")), true
}

func (b *Bot) sendText(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	_, err := b.api.Send(msg)
	return err
}

func (b *Bot) sendWithReplyMarkup(chatID int64, text string, markup interface{}) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyMarkup = markup
	_, err := b.api.Send(msg)
	return err
}

func (b *Bot) getRegistration(userID int64) *registration {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.registrations[userID]
}

func (b *Bot) setRegistration(userID int64, state *registration) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.registrations[userID] = state
}

func (b *Bot) clearRegistration(userID int64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.registrations, userID)
}

func skipKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(btnSkip)),
	)
	kb.OneTimeKeyboard = true
	kb.ResizeKeyboard = true
	return kb
}

func isSkipInput(text string) bool {
	return text == btnSkip || strings.EqualFold(text, "skip") || text == "-"
}

func escape(s string) string {
	return html.EscapeString(s)
}
