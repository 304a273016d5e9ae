package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/gdata-go/internal/adapters/driven/config/file"
	"github.com/custodia-labs/gdata-go/internal/connectors/google"
	"github.com/custodia-labs/gdata-go/internal/gdata"
	"github.com/custodia-labs/gdata-go/internal/logger"
)

var (
	pollInterval    time.Duration
	pollCount       int
	pollMetricsAddr string
)

var pollCmd = &cobra.Command{
	Use:   "poll <feed> [arg]",
	Short: "Watch a feed for changes",
	Long: `Re-fetches the first page of a feed at a fixed interval using
conditional requests, and reports when its content changes.

The configuration file is watched while polling; edits take effect from the
next request. With --metrics-addr, request metrics are served in the
Prometheus text format at /metrics.

Examples:
  gdata poll contacts/contacts --interval 5m
  gdata poll calendar/events --metrics-addr :9090`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runPoll,
}

func init() {
	addParamFlag(pollCmd)
	pollCmd.Flags().DurationVar(&pollInterval, "interval", time.Minute, "time between requests")
	pollCmd.Flags().IntVar(&pollCount, "count", 0, "stop after this many requests (0 polls until interrupted)")
	pollCmd.Flags().StringVar(&pollMetricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address")
	rootCmd.AddCommand(pollCmd)
}

func runPoll(cmd *cobra.Command, args []string) error {
	f, arg, err := feedArgs(args)
	if err != nil {
		return err
	}
	values, err := parseParams(params)
	if err != nil {
		return err
	}
	if pollInterval <= 0 {
		return fmt.Errorf("--interval must be positive")
	}

	q, err := f.buildQuery(values, arg, "")
	if err != nil {
		return fmt.Errorf("invalid query: %w", err)
	}

	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	metrics := google.NewMetrics(reg)
	if pollMetricsAddr != "" {
		srv := serveMetrics(pollMetricsAddr, reg)
		defer srv.Close()
	}

	p := &poller{feed: f, query: q, arg: arg, metrics: metrics}
	p.stale.Store(true)
	if store, err := openConfig(); err != nil {
		logger.Warn("config watch disabled: %v", err)
	} else {
		go watchConfig(ctx, store, &p.stale)
	}

	s := newStyles(cmd.OutOrStdout())
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for n := 1; ; n++ {
		changed, items, err := p.poll(ctx)
		switch {
		case errors.Is(err, context.Canceled):
			return nil
		case err != nil:
			cmd.Println(s.Error.Render("poll failed: " + err.Error()))
		case changed:
			cmd.Printf("%s %s: %d entries\n", formatTime(time.Now().Unix()), s.Success.Render("changed"), items)
		default:
			cmd.Printf("%s %s\n", formatTime(time.Now().Unix()), s.Muted.Render("not modified"))
		}

		if pollCount > 0 && n >= pollCount {
			return nil
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

// poller re-issues one query and tracks whether the service needs
// rebuilding after a configuration change.
type poller struct {
	feed    *feed
	query   gdata.Querier
	arg     string
	metrics *google.Metrics

	svc   *google.Service
	stale atomic.Bool
}

// poll fetches the first page. The query keeps the ETag of the last reply,
// so an unchanged feed costs a 304.
func (p *poller) poll(ctx context.Context) (bool, int, error) {
	if p.stale.Swap(false) {
		svc, err := newService(ctx, p.feed.Service, google.WithMetrics(p.metrics))
		if err != nil {
			p.stale.Store(true)
			return false, 0, err
		}
		p.svc = svc
	}

	page, err := p.feed.Fetch(ctx, p.svc, p.query, p.arg)
	if err != nil {
		return false, 0, err
	}
	if page.NotModified {
		return false, 0, nil
	}
	return true, len(page.Items), nil
}

// watchConfig marks stale whenever the configuration file changes.
func watchConfig(ctx context.Context, store *file.ConfigStore, stale *atomic.Bool) {
	err := store.Watch(ctx, func() {
		logger.Info("configuration changed, reloading")
		stale.Store(true)
	})
	if err != nil {
		logger.Warn("config watch stopped: %v", err)
	}
}

func serveMetrics(addr string, reg *prometheus.Registry) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))

	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Warn("metrics server: %v", err)
		}
	}()
	logger.Info("serving metrics on %s/metrics", addr)
	return srv
}
