package notify

import (
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/dori/tasklist/internal/model"
)

// Urgency levels for notifications
type Urgency int

const (
	UrgencyLow Urgency = iota
	UrgencyNormal
	UrgencyCritical
)

// Notification represents a desktop notification
type Notification struct {
	Title   string
	Body    string
	Urgency Urgency
	Timeout time.Duration
	Icon    string // Optional icon name
}

// Runner executes an external command. Tests swap it out.
type Runner func(name string, args ...string) error

func execRunner(name string, args ...string) error {
	return exec.Command(name, args...).Run()
}

// Notifier handles sending desktop notifications
type Notifier struct {
	enabled bool
	run     Runner
}

// NewNotifier creates a notifier that shells out to notify-send
func NewNotifier() *Notifier {
	return &Notifier{
		enabled: true,
		run:     execRunner,
	}
}

// NewNotifierWithRunner creates a notifier using run instead of exec
func NewNotifierWithRunner(run Runner) *Notifier {
	return &Notifier{
		enabled: true,
		run:     run,
	}
}

// SetEnabled enables or disables notifications
func (n *Notifier) SetEnabled(enabled bool) {
	n.enabled = enabled
}

// IsEnabled returns whether notifications are enabled
func (n *Notifier) IsEnabled() bool {
	return n.enabled
}

// Send sends a desktop notification using notify-send
func (n *Notifier) Send(notification Notification) error {
	if !n.enabled {
		return nil
	}

	args := []string{}

	switch notification.Urgency {
	case UrgencyLow:
		args = append(args, "-u", "low")
	case UrgencyCritical:
		args = append(args, "-u", "critical")
	default:
		args = append(args, "-u", "normal")
	}

	// Timeout is in milliseconds
	if notification.Timeout > 0 {
		args = append(args, "-t", strconv.Itoa(int(notification.Timeout.Milliseconds())))
	}

	if notification.Icon != "" {
		args = append(args, "-i", notification.Icon)
	}

	args = append(args, "-a", "tasklist")

	args = append(args, notification.Title)
	if notification.Body != "" {
		args = append(args, notification.Body)
	}

	if err := n.run("notify-send", args...); err != nil {
		return fmt.Errorf("failed to send notification: %w", err)
	}
	return nil
}

// SendSimple sends a simple notification with title and body
func (n *Notifier) SendSimple(title, body string) error {
	return n.Send(Notification{
		Title:   title,
		Body:    body,
		Urgency: UrgencyNormal,
		Timeout: 5 * time.Second,
	})
}

// SendDueToday sends one notification listing every task due today.
// Open tasks make it critical; if everything is done it stays low.
// Returns the number of tasks listed.
func (n *Notifier) SendDueToday(projects []model.Project) (int, error) {
	var lines []string
	open := 0
	for _, p := range projects {
		for _, t := range p.Tasks {
			mark := " "
			if t.Done {
				mark = "x"
			} else {
				open++
			}
			lines = append(lines, fmt.Sprintf("[%s] %s: %s", mark, p.Name, t.Description))
		}
	}
	if len(lines) == 0 {
		return 0, nil
	}

	urgency := UrgencyLow
	if open > 0 {
		urgency = UrgencyCritical
	}

	err := n.Send(Notification{
		Title:   fmt.Sprintf("%d task(s) due today", len(lines)),
		Body:    strings.Join(lines, "\n"),
		Urgency: urgency,
		Timeout: 15 * time.Second,
		Icon:    "emblem-important-symbolic",
	})
	return len(lines), err
}
