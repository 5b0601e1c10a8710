// Package api implements the HTTP handlers for the reminder service.
package api
