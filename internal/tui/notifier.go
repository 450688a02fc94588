package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ShayCichocki/jrny/internal/journey"
)

// ToastLevel sets how a toast is styled.
type ToastLevel int

const (
	ToastInfo ToastLevel = iota
	ToastWarn
	ToastError
)

// ToastMsg is a short notification shown in the footer.
type ToastMsg struct {
	Level ToastLevel
	Text  string
}

// ToastNotifier turns coordinator notifications into toasts. Sends never
// block; when the buffer is full the toast is dropped.
type ToastNotifier struct {
	ch chan ToastMsg
}

// NewToastNotifier creates a notifier buffering up to size toasts.
func NewToastNotifier(size int) *ToastNotifier {
	if size <= 0 {
		size = 1
	}
	return &ToastNotifier{ch: make(chan ToastMsg, size)}
}

// Toasts returns the channel the view reads from.
func (n *ToastNotifier) Toasts() <-chan ToastMsg {
	return n.ch
}

func (n *ToastNotifier) send(level ToastLevel, format string, args ...any) {
	select {
	case n.ch <- ToastMsg{Level: level, Text: fmt.Sprintf(format, args...)}:
	default:
	}
}

func (n *ToastNotifier) PrerequisiteBlocked(_ string, _ int, stepText string) {
	n.send(ToastWarn, "%s", journey.BlockedStep{Text: stepText}.Message())
}

func (n *ToastNotifier) SaveFailed(_ string, err error) {
	n.send(ToastError, "Could not save your progress: %v", err)
}

func (n *ToastNotifier) PlanSaved(string) {}

func (n *ToastNotifier) JourneyDeleted(string) {
	n.send(ToastInfo, "Journey deleted")
}

var _ journey.Notifier = (*ToastNotifier)(nil)

func waitForToast(ch <-chan ToastMsg) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		t, ok := <-ch
		if !ok {
			return nil
		}
		return t
	}
}
