package breaker

import "errors"

// ErrOpen is returned when the circuit is open and the cooldown has not
// elapsed. The wrapped operation is not invoked and nothing is recorded.
var ErrOpen = errors.New("breaker: circuit breaker is open")
