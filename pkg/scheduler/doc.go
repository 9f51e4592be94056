// Package scheduler runs periodic maintenance tasks on cron schedules,
// such as sweeping idle rate-limit windows or re-warming the stats cache.
//
//	sched := scheduler.New(scheduler.WithLogger(log))
//	_ = sched.Add("ratelimit.sweep", "@every 5m", func(context.Context) error {
//		limiter.Sweep()
//		return nil
//	})
//	app := website.New(
//		website.WithStartupHook(sched.StartFunc()),
//		website.WithShutdownHook(sched.StopFunc()),
//	)
package scheduler
