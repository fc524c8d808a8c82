// Package ui renders git activity as short human-readable console lines while
// the structured diagnostic log keeps the full detail.
package ui
