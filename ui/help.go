package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

func (a *App) showHelp() {
	helpText := `
 [yellow]Contacts[-]
 ───────────────────────────────────────────────────────────────
   [white]F1[-]       Show this help
   [white]F5[-]       Refresh contact list
   [white]F7[-]       Open the AI assistant
   [white]F8[-]       Logout
   [white]F10[-]      Quit application
   [white]Enter[-]    Open conversation with contact
   [white]Tab[-]      Cycle focus (list / composer / search)
   [white]↑ ↓[-]      Navigate contacts

 [yellow]Conversation[-]
 ───────────────────────────────────────────────────────────────
   [white]Enter[-]    Send message
   [white]Esc[-]      Back to the contact list

 [yellow]Assistant[-]
 ───────────────────────────────────────────────────────────────
   [white]Enter[-]    Ask the assistant
   [white]Esc[-]      Back to chats

 [yellow]Status Icons[-]
 ───────────────────────────────────────────────────────────────
   [green]●[-] online   Contact is connected
   [gray]○[-] offline  Contact is disconnected

 Messages are delivered over a live connection; your own message
 appears in the thread once the server broadcasts it back.
`

	helpView := tview.NewTextView()
	helpView.SetText(helpText)
	helpView.SetBackgroundColor(ColorBg)
	helpView.SetTextColor(ColorFg)
	helpView.SetDynamicColors(true)
	helpView.SetBorder(true)
	helpView.SetBorderColor(ColorBorder)
	helpView.SetTitle(" Help ")
	helpView.SetTitleColor(ColorTitle)
	helpView.SetScrollable(true)

	statusBar := tview.NewTextView()
	statusBar.SetBackgroundColor(ColorAccent)
	statusBar.SetTextColor(ColorTitle)
	statusBar.SetTextAlign(tview.AlignCenter)
	statusBar.SetText(" ↑↓/PgUp/PgDn: Scroll | Esc/Enter/F1: Close ")

	flex := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(helpView, 0, 1, true).
		AddItem(statusBar, 1, 0, false)
	flex.SetBackgroundColor(ColorBg)

	flex.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyEsc, tcell.KeyEnter, tcell.KeyF1:
			a.pages.RemovePage("help")
			if a.contactsList != nil {
				a.app.SetFocus(a.contactsList)
			}
			return nil
		case tcell.KeyUp:
			row, col := helpView.GetScrollOffset()
			helpView.ScrollTo(row-1, col)
			return nil
		case tcell.KeyDown:
			row, col := helpView.GetScrollOffset()
			helpView.ScrollTo(row+1, col)
			return nil
		case tcell.KeyPgUp:
			row, col := helpView.GetScrollOffset()
			helpView.ScrollTo(row-10, col)
			return nil
		case tcell.KeyPgDn:
			row, col := helpView.GetScrollOffset()
			helpView.ScrollTo(row+10, col)
			return nil
		}
		return event
	})

	a.pages.AddPage("help", flex, true, true)
}
