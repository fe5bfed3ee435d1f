package server

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	xhttp "DashPull/pkg/http"
	applogger "DashPull/pkg/logger"
)

// Resource is closed on shutdown, in reverse registration order.
type Resource struct {
	Name  string
	Close func() error
}

// Task runs in the background until the app context is cancelled.
type Task struct {
	Name string
	Run  func(ctx context.Context)
}

// App encapsulates the entire application lifecycle.
type App struct {
	logger     *applogger.Logger
	httpServer *xhttp.Server
	resources  []Resource
	tasks      []Task
	wg         sync.WaitGroup
}

// New creates an App around an HTTP server.
func New(logger *applogger.Logger, httpServer *xhttp.Server) *App {
	if logger == nil {
		logger = applogger.Nop()
	}
	return &App{logger: logger, httpServer: httpServer}
}

// AddResource registers something to close on shutdown.
func (a *App) AddResource(name string, closeFn func() error) {
	a.resources = append(a.resources, Resource{Name: name, Close: closeFn})
}

// AddTask registers a background task.
func (a *App) AddTask(name string, run func(ctx context.Context)) {
	a.tasks = append(a.tasks, Task{Name: name, Run: run})
}

// HTTPServer exposes the server, mainly for tests.
func (a *App) HTTPServer() *xhttp.Server { return a.httpServer }

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return a.RunContext(ctx)
}

// RunContext starts the application and blocks until ctx is done.
func (a *App) RunContext(ctx context.Context) error {
	taskCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	for _, t := range a.tasks {
		a.wg.Add(1)
		go func(t Task) {
			defer a.wg.Done()
			t.Run(taskCtx)
		}(t)
		a.logger.Info("task started", applogger.String("task", t.Name))
	}

	if err := a.httpServer.Start(); err != nil {
		a.logger.Error("http server start error", applogger.Error(err))
		cancel()
		a.wg.Wait()
		return err
	}

	<-ctx.Done()
	a.logger.Info("shutdown signal received")

	cancel()
	return a.shutdown()
}

// shutdown gracefully stops all services.
func (a *App) shutdown() error {
	timeout := a.httpServer.ShutdownTimeout()
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	var errs []error
	if err := a.httpServer.Stop(ctx); err != nil {
		a.logger.Error("http shutdown error", applogger.Error(err))
		errs = append(errs, err)
	}

	a.wg.Wait()

	for i := len(a.resources) - 1; i >= 0; i-- {
		r := a.resources[i]
		if err := r.Close(); err != nil {
			a.logger.Warn("close error", applogger.String("resource", r.Name), applogger.Error(err))
			errs = append(errs, err)
		}
	}

	a.logger.Info("shutdown complete")
	return errors.Join(errs...)
}
