package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/emRival/rekap-absensi/internal/role"
	"github.com/emRival/rekap-absensi/internal/server"
	"github.com/emRival/rekap-absensi/internal/settings"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// AddrEnv names the environment variable holding the default serve address.
const AddrEnv = "REKAP_ADDR"

const defaultAddr = ":8080"

var serveCmd = LeafCommand{
	Use:   "serve",
	Short: "Serve the recap engine over HTTP",
	StrFlags: []StringFlag{
		{Name: "addr", Usage: "listen address (default: $REKAP_ADDR or :8080)"},
		{Name: "roles", Usage: "role file (.json, .yaml or .toml) layered over saved roles"},
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return err
		}

		addr, _ := cmd.Flags().GetString("addr")
		rolesFile, _ := cmd.Flags().GetString("roles")

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return runServe(ctx, cmd, homeDir, resolveAddr(addr), rolesFile, getLogger())
	},
}.Build()

// resolveAddr picks the flag value, then REKAP_ADDR, then :8080.
func resolveAddr(flag string) string {
	if flag != "" {
		return flag
	}
	if env := os.Getenv(AddrEnv); env != "" {
		return env
	}
	return defaultAddr
}

// newServeHandler builds the router for the saved role table.
func newServeHandler(homeDir, rolesFile string, log *zap.Logger) (http.Handler, *role.Table, error) {
	cfg, err := settings.ReadConfig(homeDir)
	if err != nil {
		return nil, nil, err
	}
	table, err := loadRoleTable(cfg, rolesFile, log)
	if err != nil {
		return nil, nil, err
	}

	gin.SetMode(gin.ReleaseMode)
	return server.NewRouter(table, log), table, nil
}

func runServe(ctx context.Context, cmd *cobra.Command, homeDir, addr, rolesFile string, log *zap.Logger) error {
	handler, table, err := newServeHandler(homeDir, rolesFile, log)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\n", Text(fmt.Sprintf("serving on %s (%d roles, default %s)",
		Primary(addr), len(table.Configs()), table.DefaultName())))
	log.Info("server started", zap.String("addr", addr))

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	log.Info("server stopped")
	return nil
}
