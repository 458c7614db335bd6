package ui

import (
	"fmt"
	"time"
)

// How long a transient notification stays in the status bar.
const notifyDuration = 4 * time.Second

func (a *App) notifySuccess(msg string) { a.showNotification("[green]" + tviewEscape(msg) + "[-]") }
func (a *App) notifyError(msg string)   { a.showNotification("[red]" + tviewEscape(msg) + "[-]") }
func (a *App) notifyInfo(msg string)    { a.showNotification("[yellow]" + tviewEscape(msg) + "[-]") }

// showNotification writes into the status bar and restores the key hints
// once the newest notification ages out.
func (a *App) showNotification(markup string) {
	if a.statusBar == nil {
		return
	}
	a.mu.Lock()
	a.notifySeq++
	seq := a.notifySeq
	a.mu.Unlock()

	a.statusBar.SetText(fmt.Sprintf(" %s ", markup))

	time.AfterFunc(notifyDuration, func() {
		a.mu.RLock()
		stale := seq != a.notifySeq
		a.mu.RUnlock()
		if stale {
			return
		}
		a.draw(a.updateStatusBarText)
	})
}

func (a *App) updateStatusBarText() {
	if a.statusBar == nil {
		return
	}
	a.statusBar.SetText(" F1:Help | F5:Refresh | F7:Assistant | F8:Logout | F10:Quit ")
}
