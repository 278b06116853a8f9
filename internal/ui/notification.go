package ui

import (
	"strings"

	"github.com/coreos/go-systemd/v22/journal"
)

// journal fields attached to every notification
const (
	fieldTitle      = "HUMIDISTAT_TITLE"
	fieldIdentifier = "SYSLOG_IDENTIFIER"
	identifier      = "humidistat"
)

// journalSend is replaced in tests
var journalSend = journal.Send

// journalEnabled is replaced in tests
var journalEnabled = journal.Enabled

func NotifyInfo(title, text string) {
	notify(journal.PriInfo, title, text)
}

func NotifyWarn(title, text string) {
	notify(journal.PriWarning, title, text)
}

func NotifyError(title, text string) {
	notify(journal.PriErr, title, text)
}

// notify forwards a message to the systemd journal, so it is visible while stdout
// is occupied by the display. Without a journal the message is only logged.
func notify(priority journal.Priority, title, text string) {
	if !journalEnabled() {
		Debug("Journal not available, skipping notification: %s", title)
		return
	}
	message := strings.TrimSpace(title + ": " + text)
	err := journalSend(message, priority, map[string]string{
		fieldTitle:      title,
		fieldIdentifier: identifier,
	})
	if err != nil {
		Debug("Error sending notification to journal: %v", err)
	}
}
