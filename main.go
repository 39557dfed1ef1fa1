package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/skratchdot/open-golang/open"
	"golang.org/x/sync/errgroup"

	"github.com/taglme/typist/inject"
	"github.com/taglme/typist/typing"
)

// shutdownTimeout bounds how long exit waits for a job to stop.
const shutdownTimeout = 3 * time.Second

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	config, opts, err := LoadConfig(args)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		return 1
	}

	if opts.ShowVersion {
		fmt.Printf("%s %s\n", AppName, Version)
		return 0
	}

	if opts.SaveConfig {
		if err := SaveConfig(config, opts.ConfigPath); err != nil {
			fmt.Printf("Failed to save configuration: %v\n", err)
			return 1
		}
		fmt.Printf("Configuration written to %s\n", opts.ConfigPath)
		return 0
	}

	logManager := NewLogManager(config)
	defer logManager.Close()

	if opts.OpenLogs {
		if err := open.Run(logManager.LogsDir()); err != nil {
			logManager.LogError("Failed to open logs directory", err, "dir", logManager.LogsDir())
			return 1
		}
		return 0
	}

	fmt.Printf("%s %s - humanized clipboard typing\n", AppName, Version)
	fmt.Println("==================================")

	notificationManager := NewNotificationManager(config, logManager)

	oneShot := opts.Text != ""
	if config.Advanced.SingleInstance && !oneShot {
		instance := NewSingleInstance(AppName, "")
		if err := instance.TryLock(); err != nil {
			logManager.LogError("Cannot start", err)
			notificationManager.NotifyError(err.Error())
			return 1
		}
		defer instance.Release()
	}

	retryManager := NewRetryManager(config.Injection.RetryAttempts, config.RetryDelay(), logManager)
	var injector typing.Injector
	err = retryManager.Retry("initialize "+config.Injection.Backend+" backend", func() error {
		var err error
		injector, err = inject.New(config.Injection.Backend)
		return err
	})
	if err != nil {
		logManager.LogError("Keyboard injection unavailable", err)
		notificationManager.NotifyError(err.Error())
		return 1
	}

	params := typing.NewParams()
	params.SetWPM(config.Typing.WPM)
	params.SetTemperature(config.Typing.Temperature)
	params.SetPauseMultiplier(config.Typing.PauseMultiplier)

	statusBoard := NewStatusBoard(os.Stdout, logManager)
	session := typing.NewSession(injector, params,
		typing.WithObserver(typing.MultiObserver{statusBoard, notificationManager}),
		typing.WithLogger(logManager.Logger().Named("typing")),
		typing.WithSettleDelay(config.SettleDelay()),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if oneShot {
		return typeOnce(ctx, session, opts.Text, logManager)
	}

	hotkeys, err := NewHotkeyMonitor(config, session, NewClipboardReader(retryManager).ReadClipboard, notificationManager, logManager)
	if err != nil {
		logManager.LogError("Invalid hotkeys", err)
		return 1
	}

	statusBoard.DisplayCurrentStatus(params, config)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return hotkeys.Run(gctx)
	})
	if config.Advanced.WatchConfig {
		watcher := NewConfigWatcher(opts.ConfigPath, config, session, logManager)
		g.Go(func() error {
			if err := watcher.Watch(gctx); err != nil {
				logManager.LogWarning("Live configuration reload disabled", "error", err.Error())
			}
			return nil
		})
	}
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return session.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logManager.LogError("Exiting after failure", err)
		return 1
	}
	logManager.LogInfo("Goodbye")
	return 0
}

// typeOnce types text and waits for the job to end.
func typeOnce(ctx context.Context, session *typing.Session, text string, logManager *LogManager) int {
	engine, err := session.Start(ctx, text)
	if err != nil {
		logManager.LogError("Failed to start typing", err)
		return 1
	}
	<-engine.Done()
	if engine.State() == typing.Error {
		return 1
	}
	return 0
}
