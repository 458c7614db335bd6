package ui

import (
	"sort"
	"strings"

	"chitchat-client/api"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// Field order used when rendering inline validation errors.
var registerFields = []string{"username", "email", "password", "confirm", "avatar"}
var loginFields = []string{"email", "password"}

// validateLoginForm returns per-field errors; an empty map means the form
// may be submitted.
func validateLoginForm(email, password string) map[string]string {
	errs := make(map[string]string)
	if strings.TrimSpace(email) == "" {
		errs["email"] = "Email is required"
	} else if !strings.Contains(email, "@") || !strings.Contains(email, ".") {
		errs["email"] = "Enter a valid email address"
	}
	if password == "" {
		errs["password"] = "Password is required"
	}
	return errs
}

// validateRegisterForm mirrors the register form's inline rules.
func validateRegisterForm(username, email, password, confirm string) map[string]string {
	errs := make(map[string]string)
	if len(strings.TrimSpace(username)) < 3 {
		errs["username"] = "Username must be at least 3 characters"
	}
	if strings.TrimSpace(email) == "" {
		errs["email"] = "Email is required"
	} else if !strings.Contains(email, "@") || !strings.Contains(email, ".") {
		errs["email"] = "Enter a valid email address"
	}
	if len(password) < 6 {
		errs["password"] = "Password must be at least 6 characters"
	}
	if confirm != password {
		errs["confirm"] = "Passwords do not match"
	}
	return errs
}

func formatFieldErrors(errs map[string]string, order []string) string {
	var lines []string
	for _, field := range order {
		if msg, ok := errs[field]; ok {
			lines = append(lines, "[red]"+field+": "+tviewEscape(msg)+"[-]")
		}
	}
	// Anything not in the known order still shows, deterministically.
	var rest []string
	for field, msg := range errs {
		known := false
		for _, f := range order {
			if f == field {
				known = true
				break
			}
		}
		if !known {
			rest = append(rest, "[red]"+field+": "+tviewEscape(msg)+"[-]")
		}
	}
	sort.Strings(rest)
	return strings.Join(append(lines, rest...), "\n")
}

func (a *App) newAuthForm(title string) (*tview.Form, *tview.TextView) {
	form := tview.NewForm()
	form.SetBackgroundColor(ColorBg)
	form.SetFieldBackgroundColor(ColorField)
	form.SetFieldTextColor(ColorFg)
	form.SetLabelColor(ColorHighlight)
	form.SetButtonBackgroundColor(ColorAccent)
	form.SetButtonTextColor(ColorTitle)
	form.SetBorder(true)
	form.SetBorderColor(ColorBorder)
	form.SetTitle(title)
	form.SetTitleColor(ColorTitle)

	status := tview.NewTextView()
	status.SetBackgroundColor(ColorBg)
	status.SetTextAlign(tview.AlignCenter)
	status.SetDynamicColors(true)

	return form, status
}

func (a *App) mountAuthPage(form *tview.Form, status *tview.TextView, height int) {
	formFlex := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(form, 0, 1, true).
		AddItem(status, 5, 0, false)

	width := 56
	modal := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(nil, 0, 1, false).
		AddItem(tview.NewFlex().
			AddItem(nil, 0, 1, false).
			AddItem(formFlex, width, 0, true).
			AddItem(nil, 0, 1, false), height, 0, true).
		AddItem(nil, 0, 1, false)

	a.pages.RemovePage("auth")
	a.pages.AddPage("auth", modal, true, true)
	a.app.SetFocus(form)
}

// showAuthPage renders the sign-in form.
func (a *App) showAuthPage() {
	form, status := a.newAuthForm(" ChitChat — Sign in ")

	emailField := tview.NewInputField()
	emailField.SetLabel("Email: ")
	emailField.SetFieldWidth(34)

	passwordField := tview.NewInputField()
	passwordField.SetLabel("Password: ")
	passwordField.SetFieldWidth(34)
	passwordField.SetMaskCharacter('*')

	form.AddFormItem(emailField)
	form.AddFormItem(passwordField)

	if a.authError != "" {
		status.SetText("[red]" + tviewEscape(a.authError) + "[-]")
		a.authError = ""
	} else if a.authNotice != "" {
		status.SetText("[green]" + tviewEscape(a.authNotice) + "[-]")
		a.authNotice = ""
	}

	form.AddButton("Sign in", func() {
		email := emailField.GetText()
		password := passwordField.GetText()
		if errs := validateLoginForm(email, password); len(errs) > 0 {
			status.SetText(formatFieldErrors(errs, loginFields))
			return
		}
		status.SetText("Signing in...")
		a.doLogin(email, password, status)
	})

	form.AddButton("Register", func() {
		a.showRegisterPage()
	})

	form.AddButton("Quit", func() {
		a.app.Stop()
	})

	a.mountAuthPage(form, status, 13)
}

// showRegisterPage renders the account creation form.
func (a *App) showRegisterPage() {
	form, status := a.newAuthForm(" ChitChat — Create account ")

	usernameField := tview.NewInputField()
	usernameField.SetLabel("Username: ")
	usernameField.SetFieldWidth(34)

	emailField := tview.NewInputField()
	emailField.SetLabel("Email: ")
	emailField.SetFieldWidth(34)

	passwordField := tview.NewInputField()
	passwordField.SetLabel("Password: ")
	passwordField.SetFieldWidth(34)
	passwordField.SetMaskCharacter('*')

	confirmField := tview.NewInputField()
	confirmField.SetLabel("Confirm: ")
	confirmField.SetFieldWidth(34)
	confirmField.SetMaskCharacter('*')

	avatarField := tview.NewInputField()
	avatarField.SetLabel("Avatar file: ")
	avatarField.SetFieldWidth(34)
	avatarField.SetPlaceholder("optional path to an image")
	avatarField.SetPlaceholderTextColor(ColorMuted)

	form.AddFormItem(usernameField)
	form.AddFormItem(emailField)
	form.AddFormItem(passwordField)
	form.AddFormItem(confirmField)
	form.AddFormItem(avatarField)

	form.AddButton("Create", func() {
		username := usernameField.GetText()
		email := emailField.GetText()
		password := passwordField.GetText()
		confirm := confirmField.GetText()
		avatarPath := strings.TrimSpace(avatarField.GetText())

		if errs := validateRegisterForm(username, email, password, confirm); len(errs) > 0 {
			status.SetText(formatFieldErrors(errs, registerFields))
			return
		}
		status.SetText("Creating account...")
		a.doRegister(username, email, password, avatarPath, status)
	})

	form.AddButton("Back", func() {
		a.showAuthPage()
	})

	form.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyEsc {
			a.showAuthPage()
			return nil
		}
		return event
	})

	a.mountAuthPage(form, status, 19)
}

func (a *App) doLogin(email, password string, status *tview.TextView) {
	go func() {
		resp, err := a.backend.Login(email, password)
		if err != nil {
			a.draw(func() { status.SetText("[red]Login failed: " + tviewEscape(err.Error()) + "[-]") })
			return
		}
		if resp.Status != api.StatusSuccess {
			a.draw(func() { status.SetText("[red]" + tviewEscape(resp.Message) + "[-]") })
			return
		}
		if err := a.session.Login(resp.User, resp.Token); err != nil {
			// State is live even if persistence failed; the next start just
			// asks for credentials again.
			a.draw(func() { a.notifyError("Could not persist session: " + err.Error()) })
		}
		a.draw(func() {
			a.pages.RemovePage("auth")
			a.showMainScreen()
			a.notifySuccess("Logged in successfully")
		})
	}()
}

func (a *App) doRegister(username, email, password, avatarPath string, status *tview.TextView) {
	go func() {
		imageURL := ""
		if avatarPath != "" {
			a.draw(func() { status.SetText("Uploading avatar...") })
			url, err := a.uploader.UploadImage(avatarPath)
			if err != nil {
				a.draw(func() { status.SetText("[red]Avatar upload failed: " + tviewEscape(err.Error()) + "[-]") })
				return
			}
			imageURL = url
		}

		resp, err := a.backend.Register(api.RegisterRequest{
			Username: username,
			Email:    email,
			Password: password,
			ImageURL: imageURL,
		})
		if err != nil {
			a.draw(func() { status.SetText("[red]Registration failed: " + tviewEscape(err.Error()) + "[-]") })
			return
		}
		if resp.Status != api.StatusSuccess {
			a.draw(func() { status.SetText("[red]" + tviewEscape(resp.Message) + "[-]") })
			return
		}
		a.draw(func() {
			a.authNotice = "Account created. Please sign in."
			a.showAuthPage()
		})
	}()
}
