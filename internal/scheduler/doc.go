// Package scheduler repeats loader runs on a cron schedule.
//
// The Scheduler:
//   - Fires runs on a standard five-field cron expression (or a descriptor
//     such as "@every 15m" or "@hourly")
//   - Skips a tick while the previous run is still in progress
//   - Keeps the outcome of the last run for the health endpoint
package scheduler
