package ui

import (
	"fmt"
	"sort"
	"strings"

	"chitchat-client/api"
	"chitchat-client/models"

	"github.com/rivo/tview"
)

// filterContacts keeps contacts whose display name contains term,
// case-insensitively. An empty term keeps everything.
func filterContacts(contacts []models.Contact, term string) []models.Contact {
	if term == "" {
		return contacts
	}
	needle := strings.ToLower(term)
	var out []models.Contact
	for _, c := range contacts {
		if strings.Contains(strings.ToLower(c.UserName), needle) {
			out = append(out, c)
		}
	}
	return out
}

// sortContacts orders by most-recent message first; contacts without any
// message sort after all contacts that have one.
func sortContacts(contacts []models.Contact) []models.Contact {
	out := make([]models.Contact, len(contacts))
	copy(out, contacts)
	sort.SliceStable(out, func(i, j int) bool {
		ti, tj := out[i].LastMessageTime, out[j].LastMessageTime
		if ti == nil {
			return false
		}
		if tj == nil {
			return true
		}
		return ti.After(*tj)
	})
	return out
}

// visibleContacts applies the current search term: filtering when one is
// active, recency ordering otherwise.
func (a *App) visibleContacts() []models.Contact {
	a.mu.RLock()
	contacts := make([]models.Contact, len(a.contacts))
	copy(contacts, a.contacts)
	term := a.searchTerm
	a.mu.RUnlock()

	if term != "" {
		return filterContacts(contacts, term)
	}
	return sortContacts(contacts)
}

func (a *App) createSidebar() *tview.Flex {
	title := tview.NewTextView()
	title.SetBackgroundColor(ColorBg)
	title.SetDynamicColors(true)
	title.SetText(" [blue::b]ChitChat[-:-:-]")

	a.searchInput = tview.NewInputField()
	a.searchInput.SetLabel(" Search: ")
	a.searchInput.SetFieldWidth(0)
	a.searchInput.SetBackgroundColor(ColorBg)
	a.searchInput.SetFieldBackgroundColor(ColorField)
	a.searchInput.SetFieldTextColor(ColorFg)
	a.searchInput.SetLabelColor(ColorHighlight)
	a.searchInput.SetPlaceholder("Search contacts...")
	a.searchInput.SetPlaceholderTextColor(ColorMuted)
	a.searchInput.SetChangedFunc(func(text string) {
		a.mu.Lock()
		a.searchTerm = text
		a.mu.Unlock()
		a.refreshSidebar()
	})

	a.contactsList = tview.NewList()
	a.contactsList.SetBackgroundColor(ColorBg)
	a.contactsList.SetMainTextColor(ColorFg)
	a.contactsList.SetSecondaryTextColor(ColorMuted)
	a.contactsList.SetSelectedTextColor(ColorTitle)
	a.contactsList.SetSelectedBackgroundColor(ColorAccent)
	a.contactsList.SetHighlightFullLine(true)
	a.contactsList.SetSelectedFunc(func(index int, mainText, secondaryText string, shortcut rune) {
		visible := a.visibleContacts()
		if index >= 0 && index < len(visible) {
			a.selectContact(visible[index])
		}
	})

	skeleton := tview.NewTextView()
	skeleton.SetBackgroundColor(ColorBg)
	skeleton.SetDynamicColors(true)
	skeleton.SetText(contactsSkeletonText(6))

	empty := tview.NewTextView()
	empty.SetBackgroundColor(ColorBg)
	empty.SetDynamicColors(true)
	empty.SetTextAlign(tview.AlignCenter)
	empty.SetText("\n\n[gray]No contacts found[-]\n[#475569]Try adjusting your search[-]")

	a.sidebarPages = tview.NewPages()
	a.sidebarPages.AddPage("skeleton", skeleton, true, false)
	a.sidebarPages.AddPage("empty", empty, true, false)
	a.sidebarPages.AddPage("list", a.contactsList, true, true)

	a.sidebarFooter = tview.NewTextView()
	a.sidebarFooter.SetBackgroundColor(ColorBg)
	a.sidebarFooter.SetDynamicColors(true)
	a.updateSidebarFooter()

	flex := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(title, 1, 0, false).
		AddItem(a.searchInput, 1, 0, false).
		AddItem(a.sidebarPages, 0, 1, true).
		AddItem(a.sidebarFooter, 1, 0, false)
	flex.SetBackgroundColor(ColorBg)
	flex.SetBorder(true)
	flex.SetBorderColor(ColorBorder)

	return flex
}

func (a *App) updateSidebarFooter() {
	if a.sidebarFooter == nil {
		return
	}
	if user := a.session.User(); user != nil {
		a.sidebarFooter.SetText(fmt.Sprintf(" [white]%s[-] [gray]│ F8 to logout[-]", tviewEscape(user.UserName)))
	} else {
		a.sidebarFooter.SetText(" [gray]F8 to logout[-]")
	}
}

// refreshSidebar switches between skeleton, list and empty states and
// redraws the contact rows.
func (a *App) refreshSidebar() {
	if a.sidebarPages == nil {
		return
	}
	a.mu.RLock()
	loading := a.contactsLoading
	term := a.searchTerm
	a.mu.RUnlock()

	// The search box accepts no input until the initial list is in.
	if a.searchInput != nil {
		a.searchInput.SetDisabled(loading)
	}

	if loading {
		a.sidebarPages.SwitchToPage("skeleton")
		return
	}

	visible := a.visibleContacts()
	if len(visible) == 0 && term != "" {
		a.sidebarPages.SwitchToPage("empty")
		return
	}
	a.sidebarPages.SwitchToPage("list")
	a.refreshContactsList(visible)
}

func (a *App) refreshContactsList(visible []models.Contact) {
	if a.contactsList == nil {
		return
	}
	a.mu.RLock()
	selected := a.selected
	a.mu.RUnlock()

	currentIdx := a.contactsList.GetCurrentItem()
	a.contactsList.Clear()

	for _, c := range visible {
		dot := "[gray]○[-]"
		if c.IsOnline {
			dot = "[green]●[-]"
		}
		mainText := fmt.Sprintf("%s %s", dot, tviewEscape(c.UserName))
		if selected != nil && selected.ID == c.ID {
			mainText += " [blue]◂[-]"
		}

		secondary := " [gray]No messages yet[-]"
		if c.LastMessage != "" {
			when := ""
			if c.LastMessageTime != nil {
				when = " [#475569]· " + formatRelativeTime(*c.LastMessageTime) + "[-]"
			}
			secondary = " [gray]" + tviewEscape(truncate(c.LastMessage, 24)) + "[-]" + when
		}

		a.contactsList.AddItem(mainText, secondary, 0, nil)
	}

	if currentIdx >= 0 && currentIdx < a.contactsList.GetItemCount() {
		a.contactsList.SetCurrentItem(currentIdx)
	}
}

// loadContacts fetches the contact list over REST. One round trip, no
// retry; a failure leaves the previous list in place.
func (a *App) loadContacts() {
	a.mu.Lock()
	a.contactsLoading = true
	a.mu.Unlock()
	a.refreshSidebar()

	go func() {
		resp, err := a.backend.Contacts(a.session.Token())

		var contacts []models.Contact
		failMsg := ""
		switch {
		case err != nil:
			failMsg = "Error fetching users"
		case resp.Status != api.StatusSuccess:
			failMsg = resp.Message
		default:
			contacts = resp.Users
		}

		a.mu.Lock()
		a.contactsLoading = false
		if failMsg == "" {
			a.contacts = contacts
		}
		a.mu.Unlock()

		a.draw(func() {
			if failMsg != "" {
				a.notifyError(failMsg)
			}
			a.refreshSidebar()
		})
	}()
}
