package client

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ryuvi/carchat/chat/wire"
)

// Messages for tea updates.
type (
	replyMsg     wire.Reply
	pollTickMsg  struct{}
	transportErr struct{ err error }
)

type chatLine struct {
	kind string // "assistant", "user", "error", "hint"
	text string
}

// App is the bubbletea model of the chat client.
type App struct {
	conn        *Conn
	pollTimeout time.Duration

	input     textinput.Model
	chat      viewport.Model
	spin      spinner.Model
	results   table.Model
	styles    Styles
	history   []chatLine
	waiting   bool
	dead      bool // transport fault: listen loop terminated
	showTable bool
	width     int
	height    int
	ready     bool
}

// NewApp builds the chat UI over an established connection. conn may be nil
// when the initial dial failed; the UI then renders the connection error
// and stays open so the user can quit or retry by restarting.
func NewApp(conn *Conn, pollTimeout time.Duration, dialErr error) App {
	ti := textinput.New()
	ti.Placeholder = "Digite sua mensagem... (/reset recomeça, Ctrl+C sai)"
	ti.Prompt = "│ "
	ti.CharLimit = 256
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	tbl := table.New(
		table.WithColumns(resultColumns()),
		table.WithHeight(8),
		table.WithFocused(false),
	)

	app := App{
		conn:        conn,
		pollTimeout: pollTimeout,
		input:       ti,
		spin:        sp,
		results:     tbl,
		styles:      DefaultStyles(),
	}

	if dialErr != nil {
		app.dead = true
		app.push("error", fmt.Sprintf("❌ Erro na conexão: %v", dialErr))
	} else {
		app.push("assistant", "✅ Conectado ao servidor de busca de veículos")
		app.push("assistant", "🔹 Olá! Me diga qualquer coisa para começarmos a busca.")
	}
	return app
}

// Init starts the cursor blink and spinner.
func (a App) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, a.spin.Tick)
}

// pollCmd waits one bounded interval for the pending reply. A timeout is
// merely "try again"; the resulting message re-arms the poll so the UI loop
// never blocks on the socket.
func (a App) pollCmd() tea.Cmd {
	conn, timeout := a.conn, a.pollTimeout
	return func() tea.Msg {
		reply, ok, err := conn.Poll(timeout)
		if err != nil {
			return transportErr{err: err}
		}
		if !ok {
			return pollTickMsg{}
		}
		return replyMsg(reply)
	}
}

// Update handles one UI event.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		a.layout()
		return a, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			if a.conn != nil {
				_ = a.conn.Close()
			}
			return a, tea.Quit
		case tea.KeyEnter:
			return a.submit()
		}

	case pollTickMsg:
		if a.waiting && !a.dead {
			return a, a.pollCmd()
		}
		return a, nil

	case replyMsg:
		a.waiting = false
		a.renderReply(wire.Reply(msg))
		return a, nil

	case transportErr:
		a.waiting = false
		a.dead = true
		a.push("error", fmt.Sprintf("❌ Erro ao receber mensagem: %v", msg.err))
		return a, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spin, cmd = a.spin.Update(msg)
		return a, cmd
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

// submit sends the typed line. Sends are refused while a reply is pending:
// the transport is lockstep and a second in-flight request would
// desynchronize the request/reply pairing.
func (a App) submit() (tea.Model, tea.Cmd) {
	text := strings.TrimSpace(a.input.Value())
	if text == "" || a.waiting || a.dead || a.conn == nil {
		return a, nil
	}
	a.input.SetValue("")

	req := wire.Request{Message: text}
	if text == "/reset" {
		req = wire.Request{Action: wire.ActionReset}
		a.push("hint", "🔸 Reiniciando a conversa...")
	} else {
		a.push("user", "🔸 Você: "+text)
	}

	if err := a.conn.Send(req); err != nil {
		a.dead = true
		a.push("error", fmt.Sprintf("❌ Erro: %v", err))
		return a, nil
	}

	a.waiting = true
	return a, a.pollCmd()
}

func (a *App) renderReply(reply wire.Reply) {
	text := reply.Message
	if len(reply.Suggestions) > 0 {
		text += "\nSugestões:\n💡 " + strings.Join(reply.Suggestions, "\n💡 ")
	}
	a.push("assistant", "🔹 Assistente: "+text)

	if len(reply.Results) > 0 {
		a.results.SetRows(resultRows(reply.Results))
		a.showTable = true
	} else {
		a.showTable = false
	}
}

func (a *App) push(kind, text string) {
	a.history = append(a.history, chatLine{kind: kind, text: text})
	if a.ready {
		a.chat.SetContent(a.renderHistory())
		a.chat.GotoBottom()
	}
}

func (a *App) layout() {
	chatHeight := a.height - 14
	if chatHeight < 5 {
		chatHeight = 5
	}
	if !a.ready {
		a.chat = viewport.New(a.width-4, chatHeight)
		a.ready = true
	} else {
		a.chat.Width = a.width - 4
		a.chat.Height = chatHeight
	}
	a.input.Width = a.width - 8
	a.chat.SetContent(a.renderHistory())
	a.chat.GotoBottom()
}

func (a App) renderHistory() string {
	lines := make([]string, 0, len(a.history))
	for _, line := range a.history {
		switch line.kind {
		case "assistant":
			lines = append(lines, a.styles.Assistant.Render(line.text))
		case "user":
			lines = append(lines, a.styles.User.Render(line.text))
		case "error":
			lines = append(lines, a.styles.Error.Render(line.text))
		default:
			lines = append(lines, a.styles.Hint.Render(line.text))
		}
	}
	return strings.Join(lines, "\n")
}

// View renders header, chat history, the results table when present, and
// the input line.
func (a App) View() string {
	if !a.ready {
		return "carregando..."
	}

	var b strings.Builder
	b.WriteString(a.styles.Header.Render("carchat · busca de veículos"))
	b.WriteString("\n")
	b.WriteString(a.styles.ChatBox.Render(a.chat.View()))
	b.WriteString("\n")

	if a.showTable {
		b.WriteString(a.styles.TableBox.Render(a.results.View()))
		b.WriteString("\n")
	}

	if a.waiting {
		b.WriteString(a.spin.View())
		b.WriteString(a.styles.Hint.Render(" aguardando resposta..."))
		b.WriteString("\n")
	}

	b.WriteString(a.input.View())
	b.WriteString("\n")
	b.WriteString(a.styles.Hint.Render("Enter envia · /reset recomeça · Ctrl+C sai"))
	return b.String()
}
