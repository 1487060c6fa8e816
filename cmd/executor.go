package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"charm.land/bubbles/v2/key"
	"github.com/gdamore/tcell/v2"
	"github.com/gofrs/flock"
	"golang.org/x/sync/errgroup"

	"cursespp/internal/config"
	"cursespp/internal/console"
	"cursespp/internal/logger"
	"cursespp/internal/paths"
	"cursespp/internal/theme"
	"cursespp/internal/tui"
	"cursespp/internal/tui/screens"
	"cursespp/internal/version"
)

// refreshDelay is how long the directory must stay quiet before the
// browser re-reads it.
const refreshDelay = 250 * time.Millisecond

// Execute runs the command line described by opts and returns the exit code.
func Execute(ctx context.Context, opts Options) int {
	switch {
	case opts.Trace:
		logger.SetLevel(logger.LevelTrace)
	case opts.Debug:
		logger.SetLevel(logger.LevelDebug)
	case opts.Verbose:
		logger.SetLevel(logger.LevelInfo)
	}

	if opts.Version {
		fmt.Printf("%s [%s]\n", console.Colorize(console.CodeBold, version.ApplicationName), version.Version)
		logger.Debug(ctx, "Commit %s, built %s", version.Commit, version.BuildDate)
		return 0
	}

	conf, err := config.LoadAppConfig(opts.ConfigPath)
	if err != nil {
		logger.Error(ctx, "Failed to load configuration: %v", err)
		return 1
	}
	applyOverrides(&conf, opts)

	if opts.ThemeList {
		if err := handleThemeList(ctx, conf); err != nil {
			return 1
		}
		return 0
	}

	if err := run(ctx, conf); err != nil {
		logger.Error(ctx, "%v", err)
		return 1
	}
	return 0
}

// applyOverrides copies command line settings over the loaded configuration.
func applyOverrides(conf *config.AppConfig, opts Options) {
	if opts.Theme != "" {
		conf.UI.Theme = opts.Theme
	}
	if opts.Dir != "" {
		conf.StartDir = config.ExpandVariables(opts.Dir)
	}
	if opts.NoMouse {
		conf.UI.Mouse = false
	}
	if opts.MinWidth > 0 {
		conf.UI.MinWidth = opts.MinWidth
	}
	if opts.MinHeight > 0 {
		conf.UI.MinHeight = opts.MinHeight
	}
	if opts.FocusMode != "" {
		conf.UI.FocusMode = opts.FocusMode
	}
}

// run holds the instance lock and the log file for the lifetime of the
// browser.
func run(ctx context.Context, conf config.AppConfig) error {
	lockPath := paths.GetLockFilePath()
	if err := os.MkdirAll(filepath.Dir(lockPath), 0o755); err != nil {
		return fmt.Errorf("creating state directory: %w", err)
	}
	lock := flock.New(lockPath)
	locked, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("locking %s: %w", lockPath, err)
	}
	if !locked {
		return errors.New("another instance is already running")
	}
	defer func() { _ = lock.Unlock() }()

	logFile, err := logger.OpenLogFile(paths.GetLogFilePath())
	if err != nil {
		logger.Warn(ctx, "Logging to the console only: %v", err)
	} else {
		defer logFile.Close()
	}

	installThemes(ctx)
	th := loadTheme(ctx, conf.UI.Theme)
	return runBrowser(ctx, conf, th)
}

// runBrowser owns the terminal: it runs the event loop, the log pump and the
// directory watcher until the user quits or a signal arrives.
func runBrowser(ctx context.Context, conf config.AppConfig, th *theme.Theme) error {
	browser, err := screens.NewBrowser(conf.StartDir, conf)
	if err != nil {
		return fmt.Errorf("opening %s: %w", conf.StartDir, err)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("creating screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("initializing screen: %w", err)
	}
	var once sync.Once
	shutdown := func() {
		once.Do(func() {
			screen.Fini()
			console.SetTUIEnabled(false)
		})
	}
	console.TUIShutdown = shutdown
	console.SetTUIEnabled(true)
	defer shutdown()

	app := tui.NewApp(screen, th, tui.OptionsFromConfig(conf.UI))
	app.SetRoot(browser)
	app.SetKeyHook(func(k tui.Key) bool {
		if key.Matches(k, app.Keys().ForceQuit) {
			app.Quit()
			return true
		}
		return false
	})

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)

	lines, unsubscribe := logger.SubscribeLogLines()
	defer unsubscribe()
	g.Go(logger.RecoverGo(gctx, func() error {
		return browser.Log().Pump(gctx, app.Queue(), lines)
	}))

	if conf.Browser.Watch {
		w, err := screens.NewDirWatcher(app.Queue(), browser, refreshDelay)
		if err != nil {
			logger.Warn(ctx, "Directory changes will not be picked up: %v", err)
		} else {
			browser.SetWatcher(w)
			g.Go(logger.RecoverGo(gctx, func() error { return w.Run(gctx) }))
		}
	}

	logger.Info(ctx, "Browsing %s", browser.Dir())
	g.Go(logger.RecoverGo(gctx, func() error {
		// The other goroutines stop once the loop returns.
		defer cancel()
		return app.Run(gctx)
	}))
	return g.Wait()
}
