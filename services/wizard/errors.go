package wizard

import "errors"

// ErrNoActiveSession means the client's session key is unknown or expired.
// This is a normal outcome, handled by redirecting to step 1.
var ErrNoActiveSession = errors.New("no active session")

// ErrPreconditionFailed means a step was requested whose prerequisite step
// was never completed. It receives the same treatment as an expired session;
// the distinction is not surfaced to the user.
var ErrPreconditionFailed = errors.New("prior wizard step not completed")
