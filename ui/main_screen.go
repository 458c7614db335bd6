package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

func (a *App) showMainScreen() {
	a.pages.RemovePage("background")

	mainPage := a.createMainPage()
	a.pages.AddPage("main", mainPage, true, true)

	a.updateStatusBarText()
	a.refreshChatHeader()
	a.refreshChatView()

	a.setupChannelHandlers()
	a.connectChannel()
	a.loadContacts()

	a.app.SetFocus(a.contactsList)
}

func (a *App) createMainPage() tview.Primitive {
	sidebar := a.createSidebar()
	chatPane := a.createChatPane()

	a.contentFlex = tview.NewFlex()
	a.contentFlex.SetBackgroundColor(ColorBg)

	a.sidebarFlex = sidebar
	a.chatFlex = chatPane
	a.applyLayout()

	a.statusBar = tview.NewTextView()
	a.statusBar.SetBackgroundColor(ColorAccent)
	a.statusBar.SetTextColor(ColorTitle)
	a.statusBar.SetTextAlign(tview.AlignCenter)
	a.statusBar.SetDynamicColors(true)

	a.mainFlex = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(a.contentFlex, 0, 1, true).
		AddItem(a.statusBar, 1, 0, false)
	a.mainFlex.SetBackgroundColor(ColorBg)

	a.mainFlex.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyF1:
			a.showHelp()
			return nil
		case tcell.KeyF5:
			a.loadContacts()
			return nil
		case tcell.KeyF7:
			a.showAssistant()
			return nil
		case tcell.KeyF8:
			a.logout()
			return nil
		case tcell.KeyF10:
			a.quit()
			return nil
		case tcell.KeyTab:
			a.cycleFocus()
			return nil
		case tcell.KeyEsc:
			a.mu.RLock()
			hasSelection := a.selected != nil
			a.mu.RUnlock()
			if hasSelection {
				a.closeChat()
				return nil
			}
			a.quit()
			return nil
		}
		return event
	})

	return a.mainFlex
}

// applyLayout arranges sidebar and thread for the current terminal width.
// Narrow terminals show one pane at a time.
func (a *App) applyLayout() {
	if a.contentFlex == nil {
		return
	}
	a.mu.RLock()
	narrow := a.narrow
	showChat := a.showChatPane
	a.mu.RUnlock()

	a.contentFlex.Clear()
	if !narrow {
		a.contentFlex.AddItem(a.sidebarFlex, 38, 0, true)
		a.contentFlex.AddItem(a.chatFlex, 0, 1, false)
	} else if showChat {
		a.contentFlex.AddItem(a.chatFlex, 0, 1, true)
	} else {
		a.contentFlex.AddItem(a.sidebarFlex, 0, 1, true)
	}
}

func (a *App) cycleFocus() {
	if a.app == nil {
		return
	}
	a.mu.RLock()
	hasSelection := a.selected != nil
	a.mu.RUnlock()

	switch {
	case a.contactsList != nil && a.contactsList.HasFocus():
		if hasSelection && a.messageInput != nil {
			a.app.SetFocus(a.messageInput)
		} else if a.searchInput != nil {
			a.app.SetFocus(a.searchInput)
		}
	case a.messageInput != nil && a.messageInput.HasFocus():
		if a.searchInput != nil {
			a.app.SetFocus(a.searchInput)
		}
	default:
		if a.contactsList != nil {
			a.app.SetFocus(a.contactsList)
		}
	}
}

// connectChannel opens the event connection once a token is known. The
// channel does not retry; a failure only notifies.
func (a *App) connectChannel() {
	token := a.session.Token()
	go func() {
		if err := a.channel.Connect(token); err != nil {
			a.draw(func() { a.notifyError("Realtime connection failed: " + err.Error()) })
		}
	}()
}
