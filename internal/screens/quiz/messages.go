package quiz

import "time"

// feedbackDoneMsg is sent when the answer feedback period ends.
type feedbackDoneMsg struct{}

// feedbackDuration is how long the correct/incorrect flash stays up
// before the next question appears.
const feedbackDuration = 1500 * time.Millisecond
