package ui

import (
	"strings"

	"chitchat-client/api"

	"github.com/charmbracelet/glamour"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// showAssistant opens the AI chat panel on top of the main screen.
func (a *App) showAssistant() {
	if a.aiView == nil {
		a.pages.AddPage("assistant", a.createAssistantPage(), true, true)
	}
	a.pages.ShowPage("assistant")
	a.refreshAssistantView()
	if a.app != nil && a.aiInput != nil {
		a.app.SetFocus(a.aiInput)
	}
}

func (a *App) hideAssistant() {
	a.pages.HidePage("assistant")
	if a.app != nil && a.contactsList != nil {
		a.app.SetFocus(a.contactsList)
	}
}

func (a *App) createAssistantPage() tview.Primitive {
	header := tview.NewTextView()
	header.SetBackgroundColor(ColorBg)
	header.SetDynamicColors(true)
	header.SetText(" [blue::b]Assistant[-:-:-]  [gray]ask me anything[-]")

	a.aiView = tview.NewTextView()
	a.aiView.SetBackgroundColor(ColorBg)
	a.aiView.SetTextColor(ColorFg)
	a.aiView.SetDynamicColors(true)
	a.aiView.SetScrollable(true)
	a.aiView.ScrollToEnd()

	a.aiInput = tview.NewInputField()
	a.aiInput.SetLabel("> ")
	a.aiInput.SetFieldWidth(0)
	a.aiInput.SetBackgroundColor(ColorBg)
	a.aiInput.SetFieldBackgroundColor(ColorField)
	a.aiInput.SetFieldTextColor(ColorFg)
	a.aiInput.SetLabelColor(ColorHighlight)
	a.aiInput.SetDoneFunc(func(key tcell.Key) {
		if key != tcell.KeyEnter {
			return
		}
		if a.submitAssistant(a.aiInput.GetText()) {
			a.aiInput.SetText("")
		}
	})

	hint := tview.NewTextView()
	hint.SetBackgroundColor(ColorAccent)
	hint.SetTextColor(ColorTitle)
	hint.SetTextAlign(tview.AlignCenter)
	hint.SetText(" Enter:Ask | Esc:Back to chats ")

	flex := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(header, 1, 0, false).
		AddItem(a.aiView, 0, 1, false).
		AddItem(a.aiInput, 1, 0, true).
		AddItem(hint, 1, 0, false)
	flex.SetBackgroundColor(ColorBg)
	flex.SetBorder(true)
	flex.SetBorderColor(ColorBorder)

	flex.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyEsc {
			a.hideAssistant()
			return nil
		}
		return event
	})

	return flex
}

// submitAssistant sends one prompt. The user's turn is appended locally;
// the assistant's reply arrives from the REST endpoint, not the channel.
func (a *App) submitAssistant(text string) bool {
	if strings.TrimSpace(text) == "" {
		return false
	}

	a.mu.Lock()
	if a.aiBusy {
		a.mu.Unlock()
		return false
	}
	a.aiBusy = true
	history := make([]api.AIMessage, len(a.aiHistory))
	copy(history, a.aiHistory)
	a.aiHistory = append(a.aiHistory, api.AIMessage{Role: "user", Text: text})
	a.mu.Unlock()

	a.refreshAssistantView()

	go func() {
		reply, err := a.backend.AIChat(a.session.Token(), text, history)

		a.mu.Lock()
		a.aiBusy = false
		if err == nil {
			a.aiHistory = append(a.aiHistory, api.AIMessage{Role: "assistant", Text: reply})
		}
		a.mu.Unlock()

		a.draw(func() {
			if err != nil {
				a.notifyError("Assistant request failed: " + err.Error())
			}
			a.refreshAssistantView()
		})
	}()

	return true
}

func (a *App) refreshAssistantView() {
	if a.aiView == nil {
		return
	}
	a.mu.RLock()
	history := make([]api.AIMessage, len(a.aiHistory))
	copy(history, a.aiHistory)
	busy := a.aiBusy
	a.mu.RUnlock()

	var sb strings.Builder
	for _, turn := range history {
		if turn.Role == "user" {
			sb.WriteString("[#e0f2fe]You:[-] " + tviewEscape(turn.Text) + "\n\n")
		} else {
			sb.WriteString("[blue]Assistant:[-]\n" + renderAssistantMarkdown(turn.Text) + "\n")
		}
	}
	if busy {
		sb.WriteString("[gray]thinking…[-]\n")
	}
	a.aiView.SetText(sb.String())
	a.aiView.ScrollToEnd()
}

// renderAssistantMarkdown renders the automated counterpart's formatted
// replies; human messages elsewhere stay plain text.
func renderAssistantMarkdown(text string) string {
	out, err := glamour.Render(text, "dark")
	if err != nil {
		return tviewEscape(text)
	}
	return tview.TranslateANSI(out)
}
