package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/rcbilson/mdconvert/usage"
	"github.com/sirupsen/logrus"
	"go.uber.org/automaxprocs/maxprocs"
	"golang.org/x/net/netutil"
)

const shutdownTimeout = 10 * time.Second

func main() {
	spec, err := loadSpec()
	if err != nil {
		logrus.WithField("err", err).Fatal("unable to configure server")
	}
	level, _ := logrus.ParseLevel(spec.LogLevel)
	logrus.SetLevel(level)

	// conversion is CPU bound; match GOMAXPROCS to the container quota
	_, _ = maxprocs.Set(maxprocs.Logger(logrus.Debugf))

	recorder := usage.Discard
	if spec.DbFile != "" {
		db, err := usage.NewRepo(spec.DbFile)
		if err != nil {
			logrus.WithField("err", err).Fatal("error initializing usage database")
		}
		defer db.Close()
		recorder = &db
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := serve(ctx, spec, newRouter(spec, recorder)); err != nil {
		logrus.WithField("err", err).Error("server stopped")
	}
}

// serve runs the HTTP server until ctx is cancelled, then drains in-flight
// requests.
func serve(ctx context.Context, spec specification, handler http.Handler) error {
	addr := net.JoinHostPort(spec.Host, strconv.Itoa(spec.Port))
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	if spec.MaxConnections > 0 {
		ln = netutil.LimitListener(ln, spec.MaxConnections)
	}

	srv := &http.Server{
		Handler:      handler,
		ReadTimeout:  spec.ReadTimeout,
		WriteTimeout: spec.WriteTimeout,
	}
	errc := make(chan error, 1)
	go func() {
		errc <- srv.Serve(ln)
	}()
	logrus.WithField("addr", ln.Addr().String()).Info("server listening")

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	logrus.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
