// Package clockutil holds helpers shared by the clockwork-driven loops.
package clockutil

import "github.com/jonboulle/clockwork"

// StopAndDrain stops a timer that lost a select race. If it already fired,
// the pending tick is discarded so a later receive never sees it.
func StopAndDrain(timer clockwork.Timer) {
	if !timer.Stop() {
		select {
		case <-timer.Chan():
		default:
		}
	}
}
