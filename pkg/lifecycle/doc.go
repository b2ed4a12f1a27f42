// Package lifecycle models the visual lifecycle of an ephemeral
// notification as a small fixed state machine:
//
//	entering --(settle)--> entered
//	entering --(dismiss)-> exiting
//	entered  --(dismiss)-> exiting
//	exiting  --(finish)--> exited
//
// The machine only validates and records transitions; timing (entrance
// settle delays, exit animation durations) belongs to the caller. The toast
// center drives one machine per visible notification and removes the entry
// from its store once the machine reaches the terminal exited state.
package lifecycle
