package main

import "github.com/milk9111/platformer/motion"

const maxRecent = 8

// Feedback keeps the player's latest motion events for the debug overlay.
type Feedback struct {
	recent []string
}

func NewFeedback() *Feedback {
	return &Feedback{}
}

// Handle is used as the player's motion.FeedbackFunc.
func (f *Feedback) Handle(evt motion.Event) {
	f.Note(evt.String())
}

func (f *Feedback) Note(line string) {
	f.recent = append(f.recent, line)
	if len(f.recent) > maxRecent {
		f.recent = f.recent[len(f.recent)-maxRecent:]
	}
}

func (f *Feedback) Recent() []string {
	return f.recent
}
