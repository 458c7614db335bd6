package ui

import (
	"strings"
	"time"

	"github.com/rivo/tview"
)

var spinnerFrames = []rune("⠋⠙⠹⠸⠼⠴⠦⠧⠇⠏")

// showVerifyingPage renders the blocking spinner shown while the stored
// token is verified server-side.
func (a *App) showVerifyingPage() {
	spinner := tview.NewTextView()
	spinner.SetBackgroundColor(ColorBg)
	spinner.SetTextColor(ColorFg)
	spinner.SetTextAlign(tview.AlignCenter)
	spinner.SetDynamicColors(true)
	spinner.SetText("[blue]⠋[-] Verifying session...")

	page := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(nil, 0, 1, false).
		AddItem(spinner, 1, 0, false).
		AddItem(nil, 0, 1, false)
	page.SetBackgroundColor(ColorBg)

	a.pages.AddPage("verifying", page, true, true)

	done := make(chan struct{})
	a.verifyingDone = done

	go func() {
		ticker := time.NewTicker(120 * time.Millisecond)
		defer ticker.Stop()
		frame := 0
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				frame = (frame + 1) % len(spinnerFrames)
				text := "[blue]" + string(spinnerFrames[frame]) + "[-] Verifying session..."
				a.draw(func() { spinner.SetText(text) })
			}
		}
	}()
}

func (a *App) removeVerifyingPage() {
	if a.verifyingDone != nil {
		close(a.verifyingDone)
		a.verifyingDone = nil
	}
	a.pages.RemovePage("verifying")
}

// contactsSkeletonText mimics the contact rows while the list loads.
func contactsSkeletonText(rows int) string {
	var sb strings.Builder
	for i := 0; i < rows; i++ {
		sb.WriteString("\n [#334155]●[-] [#334155]▇▇▇▇▇▇▇▇▇▇[-]\n")
		sb.WriteString("   [#1e293b]▇▇▇▇▇▇▇▇▇▇▇▇▇▇▇▇[-]\n")
	}
	return sb.String()
}

// chatSkeletonText mimics alternating message bubbles while history loads.
func chatSkeletonText(rows int) string {
	var sb strings.Builder
	for i := 0; i < rows; i++ {
		if i%2 == 0 {
			sb.WriteString("\n [#334155]▇▇▇▇▇▇▇▇▇▇▇▇▇▇▇▇▇▇▇▇▇▇[-]\n")
			sb.WriteString(" [#1e293b]▇▇▇▇▇▇▇▇▇▇▇▇[-]\n")
		} else {
			sb.WriteString("\n[#334155]                    ▇▇▇▇▇▇▇▇▇▇▇▇▇▇▇▇▇▇[-]\n")
			sb.WriteString("[#1e293b]                              ▇▇▇▇▇▇▇▇[-]\n")
		}
	}
	return sb.String()
}
