package chat

// Button is an inline keyboard button. URL buttons ignore Action.
type Button struct {
	Text   string
	Action Action
	URL    string
}

func CallbackButton(text string, a Action) Button {
	return Button{Text: text, Action: a}
}

func URLButton(text, url string) Button {
	return Button{Text: text, URL: url}
}

// Markup is the keyboard attached to an outgoing message. RequestContact
// shows a one-time reply keyboard with a contact-sharing button labeled with
// its value.
type Markup struct {
	Inline         [][]Button
	RequestContact string
	RemoveKeyboard bool
}

// Inline builds an inline keyboard from rows.
func Inline(rows ...[]Button) *Markup {
	return &Markup{Inline: rows}
}

// Row is a helper for Inline.
func Row(buttons ...Button) []Button {
	return buttons
}

// Columns lays buttons out in rows of n.
func Columns(n int, buttons ...Button) *Markup {
	if n < 1 {
		n = 1
	}
	m := &Markup{}
	for i := 0; i < len(buttons); i += n {
		end := i + n
		if end > len(buttons) {
			end = len(buttons)
		}
		m.Inline = append(m.Inline, buttons[i:end])
	}
	return m
}

// Append adds rows to the keyboard.
func (m *Markup) Append(rows ...[]Button) *Markup {
	m.Inline = append(m.Inline, rows...)
	return m
}

// ContactRequest is a one-time keyboard asking the user to share their
// phone number.
func ContactRequest(label string) *Markup {
	return &Markup{RequestContact: label}
}

// RemoveKeyboard hides a previously shown reply keyboard.
func RemoveKeyboard() *Markup {
	return &Markup{RemoveKeyboard: true}
}
