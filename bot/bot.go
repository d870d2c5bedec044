// Package bot is the Telegram front end: it accepts uploaded DOCX files,
// runs the formatting pipeline and sends the reformatted document back.
package bot

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/gost-tools/gostdoc"
	"github.com/gost-tools/gostdoc/config"
	"github.com/gost-tools/gostdoc/format"
	"github.com/gost-tools/gostdoc/style"
)

const (
	startMessage = "Привет! Я оформляю документы по ГОСТ 7.32.\n" +
		"Пришлите файл .docx, и я верну его с исправленным оформлением:\n" +
		"— поля, шрифт и межстрочный интервал;\n" +
		"— заголовки, списки и подписи к рисункам и таблицам;\n" +
		"— нумерация страниц."

	helpMessage = "Пришлите документ в формате .docx.\n" +
		"Титульный лист и содержание не изменяются: форматирование начинается " +
		"после раздела «Содержание».\n" +
		"Команды:\n/start — приветствие\n/help — эта справка"

	wrongTypeMessage = "Я умею работать только с файлами .docx. " +
		"Пересохраните документ в этом формате и пришлите снова."

	notADocumentMessage = "Пришлите документ .docx, и я оформлю его по ГОСТ 7.32. " +
		"Справка: /help"

	failureMessage = "Не получилось обработать документ. " +
		"Проверьте, что файл не поврежден, и попробуйте еще раз."
)

// Bot wraps the Telegram API client and the formatting pipeline.
type Bot struct {
	api    *tgbotapi.BotAPI
	cfg    config.Bot
	style  style.Config
	log    *zap.Logger
	store  *tempStore
	client *http.Client
}

// New creates the bot and authenticates against the Telegram API.
func New(cfg config.Bot, styleCfg style.Config, log *zap.Logger) (*Bot, error) {
	if cfg.Token == "" {
		return nil, fmt.Errorf("bot token is not set (see %s)", config.EnvBotToken)
	}
	api, err := tgbotapi.NewBotAPI(cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("connecting to Telegram: %w", err)
	}

	store, err := newTempStore(cfg.TempDir)
	if err != nil {
		return nil, err
	}

	if log == nil {
		log = zap.NewNop()
	}
	log.Info("bot authorized", zap.String("username", api.Self.UserName))

	return &Bot{
		api:    api,
		cfg:    cfg,
		style:  styleCfg,
		log:    log,
		store:  store,
		client: &http.Client{Timeout: 2 * time.Minute},
	}, nil
}

// Run processes updates until the context is canceled. Each document is
// handled in its own goroutine; the pipeline itself is safe to share.
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return ctx.Err()
		case upd, ok := <-updates:
			if !ok {
				return nil
			}
			if upd.Message == nil {
				continue
			}
			go b.handleMessage(upd.Message)
		}
	}
}

func (b *Bot) handleMessage(msg *tgbotapi.Message) {
	switch {
	case msg.IsCommand():
		b.handleCommand(msg)
	case msg.Document != nil:
		b.handleDocument(msg)
	default:
		b.reply(msg, notADocumentMessage)
	}
}

func (b *Bot) handleCommand(msg *tgbotapi.Message) {
	switch msg.Command() {
	case "start":
		b.reply(msg, startMessage)
	case "help":
		b.reply(msg, helpMessage)
	default:
		b.reply(msg, notADocumentMessage)
	}
}

func (b *Bot) handleDocument(msg *tgbotapi.Message) {
	doc := msg.Document
	log := b.log.With(
		zap.Int64("chat", msg.Chat.ID),
		zap.String("file", doc.FileName),
	)

	if !strings.EqualFold(filepath.Ext(doc.FileName), ".docx") {
		b.reply(msg, wrongTypeMessage)
		return
	}
	if int64(doc.FileSize) > b.cfg.MaxFileSizeMB<<20 {
		b.reply(msg, fmt.Sprintf("Файл слишком большой: лимит %d МБ.", b.cfg.MaxFileSizeMB))
		return
	}

	job, err := b.store.newJob()
	if err != nil {
		log.Error("creating work directory", zap.Error(err))
		b.reply(msg, failureMessage)
		return
	}
	defer job.cleanup()

	inPath := job.path(doc.FileName)
	data, err := b.download(doc.FileID, inPath)
	if err != nil {
		log.Error("downloading document", zap.Error(err))
		b.reply(msg, failureMessage)
		return
	}
	if !format.IsWordDocument(data) {
		log.Info("rejected upload", zap.Stringer("format", format.Sniff(data)))
		b.reply(msg, wrongTypeMessage)
		return
	}

	outPath := job.path(outputName(doc.FileName))
	stats, err := gostdoc.Open(inPath).
		WithConfig(b.style).
		WithLogger(log).
		Format(outPath)
	if err != nil {
		log.Error("formatting document", zap.Error(err))
		b.reply(msg, failureMessage)
		return
	}

	send := tgbotapi.NewDocument(msg.Chat.ID, tgbotapi.FilePath(outPath))
	send.ReplyToMessageID = msg.MessageID
	send.Caption = fmt.Sprintf("Готово. Рисунков: %d, таблиц: %d.", stats.Figures, stats.Tables)
	if _, err := b.api.Send(send); err != nil {
		log.Error("sending document", zap.Error(err))
		b.reply(msg, failureMessage)
		return
	}
	log.Info("document formatted",
		zap.Int("figures", stats.Figures),
		zap.Int("tables", stats.Tables))
}

// download fetches a Telegram file to the given path and returns its content.
func (b *Bot) download(fileID, dest string) ([]byte, error) {
	file, err := b.api.GetFile(tgbotapi.FileConfig{FileID: fileID})
	if err != nil {
		return nil, fmt.Errorf("resolving file: %w", err)
	}
	resp, err := b.client.Get(file.Link(b.api.Token))
	if err != nil {
		return nil, fmt.Errorf("fetching file: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching file: unexpected status %s", resp.Status)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading file body: %w", err)
	}
	return data, writeFile(dest, data)
}

func (b *Bot) reply(msg *tgbotapi.Message, text string) {
	out := tgbotapi.NewMessage(msg.Chat.ID, text)
	out.ReplyToMessageID = msg.MessageID
	if _, err := b.api.Send(out); err != nil {
		b.log.Error("sending reply", zap.Error(err))
	}
}

// outputName derives the result file name: report.docx becomes
// report_gost.docx.
func outputName(name string) string {
	ext := filepath.Ext(name)
	return strings.TrimSuffix(name, ext) + "_gost" + ext
}
