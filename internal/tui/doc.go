// Package tui provides the terminal journey view for jrny.
//
// The view shows one journey: its progress, status and plan checklist. Steps
// are toggled through a journey.Coordinator, so the checklist updates
// immediately and rolls back if the save fails. Notifications from the
// coordinator arrive as toasts through a ToastNotifier.
//
// Usage:
//
//	notifier := tui.NewToastNotifier(16)
//	coord := journey.NewCoordinator(store, journey.WithNotifier(notifier))
//	if _, err := coord.Load(ctx, id); err != nil {
//	    return err
//	}
//	err := tui.Run(ctx, tui.Options{
//	    Coordinator: coord,
//	    Toasts:      notifier,
//	    Changes:     watcher.Changes(),
//	})
//
// Keys: j/k or arrows move, space or enter toggles, n jumps to the next open
// step, r reloads, d deletes (asks first), q quits.
package tui
