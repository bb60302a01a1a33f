package quiz

import "time"

// explanationTickMsg polls the tutor for a finished explanation.
type explanationTickMsg time.Time

// explanationPollInterval is how often the tutor is polled while a request
// is in flight.
const explanationPollInterval = 150 * time.Millisecond
