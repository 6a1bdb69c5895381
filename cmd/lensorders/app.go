package main

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/diewo77/lens-orders/i18n"
	"github.com/diewo77/lens-orders/internal/config"
	"github.com/diewo77/lens-orders/internal/export"
	"github.com/diewo77/lens-orders/internal/models"
	"github.com/diewo77/lens-orders/internal/services"
	"github.com/diewo77/lens-orders/internal/store"
	"github.com/diewo77/lens-orders/validation"
)

// command handles one "group action" invocation with the remaining arguments.
type command func(args []string) error

// App maps command lines onto store, report and export calls.
type App struct {
	cfg      *config.Config
	store    *store.Store
	reports  *services.ReportService
	out      io.Writer
	lang     string
	commands map[string]command
}

// NewApp creates the application for an initialized database.
func NewApp(cfg *config.Config, out io.Writer) (*App, error) {
	st := store.New(cfg.Database.Path, store.WithDebug(cfg.Database.Debug))
	lang := i18n.DefaultLang
	if cfg.App.Lang != "" {
		lang = i18n.DetectLanguage(cfg.App.Lang)
	} else {
		settings, err := st.GetSettings()
		if err != nil {
			return nil, err
		}
		lang = i18n.DetectLanguage(settings.Language)
	}
	app := &App{
		cfg:      cfg,
		store:    st,
		reports:  services.NewReportService(st, lang).WithExportDir(cfg.App.ExportDir),
		out:      out,
		lang:     lang,
		commands: make(map[string]command),
	}
	app.setupCommands()
	return app, nil
}

func (a *App) handle(name string, c command) { a.commands[name] = c }

// setupCommands configures all command lines.
func (a *App) setupCommands() {
	// ─────────────────────────────────────────────────────────────────────────
	// Database
	// ─────────────────────────────────────────────────────────────────────────
	a.handle("init", a.initDB)
	a.handle("version", a.version)

	// ─────────────────────────────────────────────────────────────────────────
	// Clients and catalogs
	// ─────────────────────────────────────────────────────────────────────────
	a.handle("client add", a.clientAdd)
	a.handle("client list", a.clientList)
	a.handle("client update", a.clientUpdate)
	a.handle("client delete", a.clientDelete)

	a.handle("product add", a.productAdd)
	a.handle("product list", a.productList)
	a.handle("product update", a.productUpdate)
	a.handle("product delete", a.productDelete)

	// ─────────────────────────────────────────────────────────────────────────
	// MKL orders
	// ─────────────────────────────────────────────────────────────────────────
	a.handle("mkl create", a.mklCreate)
	a.handle("mkl list", a.mklList)
	a.handle("mkl update", a.mklUpdate)
	a.handle("mkl status", a.mklStatus)
	a.handle("mkl delete", a.mklDelete)
	a.handle("mkl duplicate", a.mklDuplicate)
	a.handle("mkl items", a.mklItems)
	a.handle("mkl add-item", a.mklAddItem)
	a.handle("mkl update-item", a.mklUpdateItem)
	a.handle("mkl delete-item", a.mklDeleteItem)

	// ─────────────────────────────────────────────────────────────────────────
	// Meridian orders
	// ─────────────────────────────────────────────────────────────────────────
	a.handle("meridian create", a.meridianCreate)
	a.handle("meridian list", a.meridianList)
	a.handle("meridian update", a.meridianUpdate)
	a.handle("meridian delete", a.meridianDelete)
	a.handle("meridian duplicate", a.meridianDuplicate)
	a.handle("meridian items", a.meridianItems)
	a.handle("meridian add-item", a.meridianAddItem)
	a.handle("meridian update-item", a.meridianUpdateItem)
	a.handle("meridian delete-item", a.meridianDeleteItem)
	a.handle("meridian ordered", a.meridianOrdered)
	a.handle("meridian names", a.meridianNames)
	a.handle("meridian add-name", a.meridianAddName)
	a.handle("meridian delete-name", a.meridianDeleteName)

	// ─────────────────────────────────────────────────────────────────────────
	// Lens tools
	// ─────────────────────────────────────────────────────────────────────────
	a.handle("transpose", a.transpose)

	// ─────────────────────────────────────────────────────────────────────────
	// Reports and preferences
	// ─────────────────────────────────────────────────────────────────────────
	a.handle("export mkl", a.exportReport(services.ReportMKL))
	a.handle("export mkl-products", a.exportReport(services.ReportMKLByProduct))
	a.handle("export meridian", a.exportReport(services.ReportMeridian))
	a.handle("settings show", a.settingsShow)
	a.handle("settings set", a.settingsSet)
}

// ErrUsage is returned for an unknown or incomplete command line.
var ErrUsage = errors.New("usage")

// Run dispatches args to the matching command. Commands are looked up by
// their first word, then by their first two words.
func (a *App) Run(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: no command given; commands: %s", ErrUsage, strings.Join(a.Commands(), ", "))
	}
	if c, ok := a.commands[args[0]]; ok {
		return c(args[1:])
	}
	if len(args) > 1 {
		if c, ok := a.commands[args[0]+" "+args[1]]; ok {
			return c(args[2:])
		}
	}
	return fmt.Errorf("%w: unknown command %q; commands: %s", ErrUsage, strings.Join(args, " "), strings.Join(a.Commands(), ", "))
}

// Commands returns the sorted command names.
func (a *App) Commands() []string {
	names := make([]string, 0, len(a.commands))
	for name := range a.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Message renders err for display in the configured language.
func (a *App) Message(err error) string {
	var le *validation.LensError
	if errors.As(err, &le) {
		return i18n.T(a.lang, le.Code())
	}
	var ve validation.ViolationsError
	if errors.As(err, &ve) {
		fields := make([]string, 0, len(ve))
		for f := range ve {
			fields = append(fields, f)
		}
		sort.Strings(fields)
		parts := make([]string, 0, len(fields))
		for _, f := range fields {
			parts = append(parts, f+": "+i18n.T(a.lang, ve[f]))
		}
		return strings.Join(parts, "; ")
	}
	var ee *export.Error
	if errors.As(err, &ee) {
		return i18n.T(a.lang, "export_error") + ": " + err.Error()
	}
	for sentinel, code := range map[error]string{
		store.ErrUnavailable:     "storage_error",
		store.ErrNotFound:        "not_found",
		store.ErrDuplicateNumber: "duplicate_number",
		store.ErrUnknownSetting:  "unknown_setting",
		models.ErrUnknownStatus:  "unknown_status",
		export.ErrUnknownFormat:  "export_error",
	} {
		if errors.Is(err, sentinel) {
			return i18n.T(a.lang, code) + ": " + err.Error()
		}
	}
	return err.Error()
}
