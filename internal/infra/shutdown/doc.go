// Package shutdown sequences graceful process teardown for synckit.
//
// A Handler waits for SIGINT, SIGTERM or a programmatic Trigger, then
// runs registered hooks in reverse registration order under a shared
// timeout context. Reverse order means the diagnostics server stops
// before the workload it reports on, and the workload stops before
// the queues it drains.
//
// Typical wiring in main:
//
//	h := shutdown.NewHandler(10 * time.Second)
//	h.OnShutdown(func(ctx context.Context) error { cancelRun(); return nil })
//	h.OnShutdown(func(ctx context.Context) error { return srv.Shutdown(ctx) })
//	if err := h.Wait(); err != nil {
//		log.Error("shutdown finished with errors", "error", err)
//	}
//
// @design DS-0501
package shutdown
