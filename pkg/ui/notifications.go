package ui

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

// NotificationSender delivers a desktop notification
type NotificationSender interface {
	Send(title, message string) error
}

type notifySend struct{}

func (notifySend) Send(title, message string) error {
	return exec.Command("notify-send", "--app-name=devscout", title, message).Run()
}

type osascript struct{}

func (osascript) Send(title, message string) error {
	quote := func(s string) string {
		return `"` + strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(s) + `"`
	}
	script := fmt.Sprintf("display notification %s with title %s", quote(message), quote(title))
	return exec.Command("osascript", "-e", script).Run()
}

// Notifier announces finished runs. Long scans take minutes, so a desktop
// notification is sent alongside the console line when enabled.
type Notifier struct {
	sender  NotificationSender
	enabled bool
}

// NewNotifier picks the sender for the current platform. Platforms without
// one only get the console line.
func NewNotifier(enabled bool) *Notifier {
	var sender NotificationSender
	switch runtime.GOOS {
	case "linux":
		sender = notifySend{}
	case "darwin":
		sender = osascript{}
	}
	return &Notifier{sender: sender, enabled: enabled}
}

// NewNotifierWithSender creates a notifier with an explicit sender
func NewNotifierWithSender(sender NotificationSender) *Notifier {
	return &Notifier{sender: sender, enabled: true}
}

// RunComplete announces a finished run of kind
func (n *Notifier) RunComplete(kind string, records, failed int) {
	message := fmt.Sprintf("%d %s found", records, kind)
	if failed > 0 {
		message += fmt.Sprintf(", %d sources failed", failed)
	}
	n.send("DevScout scan complete", message)
}

// Unanswered announces replies that still need an answer
func (n *Notifier) Unanswered(count int) {
	if count == 0 {
		return
	}
	n.send("DevScout replies", unansweredMessage(count))
}

func unansweredMessage(count int) string {
	if count == 1 {
		return "1 reply waiting for an answer"
	}
	return fmt.Sprintf("%d replies waiting for an answer", count)
}

func (n *Notifier) send(title, message string) {
	if !n.enabled || n.sender == nil {
		return
	}
	// notifications are best effort
	_ = n.sender.Send(title, message)
}
