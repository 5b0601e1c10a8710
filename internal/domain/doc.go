// Package domain contains the core entities of the reminder engine:
// tasks with due dates awaiting a one-time reminder, and the users that
// own them. Entities validate themselves and carry no persistence or
// transport concerns.
package domain
