// Package prompt asks declarative questions and returns the collected answers.
//
// FormQuestionnaire renders the questions as an interactive terminal form, and
// LineQuestionnaire reads one answer per line from any reader, which keeps
// scripted and non-terminal sessions usable.
package prompt
