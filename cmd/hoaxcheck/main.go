// Command hoaxcheck classifies news text against the hoax detection backend.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"hoax-detector/client/internal/config"
	"hoax-detector/client/internal/hoaxapi"
	"hoax-detector/client/internal/share"
	"hoax-detector/client/internal/store"
	"hoax-detector/client/internal/ui"
)

// newClipboard is a package-level variable to allow mocking in tests.
var newClipboard = func() ui.Clipboard { return share.SystemClipboard{} }

type options struct {
	configPath string
	profile    string
	logFile    string
	cfg        config.Config
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:          "hoaxcheck",
		Short:        "Periksa apakah teks berita berpotensi hoaks",
		Long:         `Client for the Indonesian hoax detection API. Configure the backend with HOAX_API_BASE_URL or base_url in the config file.`,
		SilenceUsage: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return err
			}
			opts.cfg = cfg
			config.ApplyLogLevel(cfg.LogLevel)
			return nil
		},
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", config.DefaultPath(), "path to the YAML config file")
	root.PersistentFlags().StringVar(&opts.profile, "profile", store.LocalOwner, "preference profile to read and save")

	root.AddCommand(
		newHealthCmd(opts),
		newCheckCmd(opts),
		newTUICmd(opts),
		newThemeCmd(opts),
	)
	return root
}

func (o *options) client() *hoaxapi.Client {
	return hoaxapi.NewClient(hoaxapi.Config{BaseURL: o.cfg.BaseURL, Timeout: o.cfg.Timeout})
}

// openPreferences opens the preference store. Failures are logged and the
// command continues without persistence.
func (o *options) openPreferences() (*store.Database, func()) {
	db, err := store.Open(o.cfg.DBPath, true)
	if err != nil {
		logrus.WithError(err).WithField("path", o.cfg.DBPath).Warn("preferences unavailable")
		return nil, func() {}
	}
	return db.WithOwner(o.profile), func() {
		if err := db.Close(); err != nil {
			logrus.WithError(err).Warn("close preferences")
		}
	}
}

// preferenceStore avoids handing the orchestrator a typed nil.
func preferenceStore(db *store.Database) ui.PreferenceStore {
	if db == nil {
		return nil
	}
	return db
}

// redirectLogs sends logrus output to the log file, or discards it.
func (o *options) redirectLogs() (func(), error) {
	previous := logrus.StandardLogger().Out
	restore := func() { logrus.SetOutput(previous) }
	if o.logFile == "" {
		logrus.SetOutput(io.Discard)
		return restore, nil
	}
	f, err := os.OpenFile(o.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	logrus.SetOutput(f)
	return func() {
		restore()
		_ = f.Close()
	}, nil
}
