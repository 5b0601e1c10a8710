// Package reminder implements the reminder scheduling and delivery engine:
// a Clock that interprets stored wall-clock due dates in one canonical
// timezone, a Sweeper that evaluates pending tasks against a single
// per-tick reference instant and drives due ones through send and
// mark-complete, and a Scheduler that fires the sweep on a fixed period
// with a non-overlap guarantee.
//
// Delivery is at-least-once: a failed send leaves the task pending for the
// next tick, and only a confirmed send transitions it to completed.
package reminder
