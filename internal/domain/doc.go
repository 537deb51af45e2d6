// Package domain defines core data models and interfaces shared across the app.
// It contains plain types (tickets, events, targets), the error taxonomy, and
// contracts (interfaces) only.
package domain
