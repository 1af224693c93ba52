// Package jobs provides scheduled background tasks for the cargo service.
//
// Jobs use github.com/robfig/cron/v3 and are started and stopped together
// through JobManager:
//
//	manager := jobs.NewJobManager(expirationJob)
//	if err := manager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer manager.StopAll()
//
// # Available Jobs
//
// CargoExpirationJob sweeps CREATED cargo older than the configured ttl into
// EXPIRED, one bounded batch per run. Overlapping runs are skipped.
package jobs
