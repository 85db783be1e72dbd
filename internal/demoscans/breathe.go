package demoscans

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/okian/mindscan/internal/domain/breathing"
	"github.com/okian/mindscan/pkg/metrics"
)

// Breathing session outcomes recorded in metrics.
const (
	OutcomeCompleted  = "completed"
	OutcomeCancelled  = "cancelled"
	OutcomeSafetyStop = "safety_stop"
)

// Breathe runs the default breathing session, printing one line per tick
// to w. interval is the wall-clock time per simulated second.
func Breathe(ctx context.Context, w io.Writer, interval time.Duration) (string, error) {
	runner := breathing.NewRunner(breathing.WithInterval(interval))

	err := runner.Run(ctx, func(st breathing.State) {
		if st.Done() {
			fmt.Fprintf(w, "[%02d:%02d] %s\n", st.Second/60, st.Second%60, st.Text)
			return
		}
		fmt.Fprintf(w, "[%02d:%02d] %-6s %d  %s\n", st.Second/60, st.Second%60, st.Phase, st.Remaining, st.Text)
	})

	outcome := OutcomeCompleted
	switch {
	case errors.Is(err, breathing.ErrSafetyStop):
		outcome = OutcomeSafetyStop
	case err != nil:
		outcome = OutcomeCancelled
	}
	metrics.RecordBreathingSession(outcome)
	return outcome, err
}
