package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/abhisek/hotsquiz/internal/api"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve one quiz session over HTTP",
	Long: `Serve a JSON API for a single quiz session:

  POST   /quiz                start a quiz {"subject","level","aspiration","count"}
  GET    /quiz                current state and questions
  POST   /quiz/goto           {"index": n}
  PUT    /quiz/answers/{i}    {"letter":"B"}, {"order":[1,0]} or {"value":"1,0,-"}
  POST   /quiz/submit         freeze answers and score
  GET    /quiz/score          score and per-question review
  DELETE /quiz                reset`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (default from config, 127.0.0.1:8080)")
}

func runServe(cmd *cobra.Command, args []string) error {
	rt, err := loadRuntime(cmd)
	if err != nil {
		return err
	}
	defer rt.log.Sync()

	defaults, err := rt.defaults()
	if err != nil {
		return err
	}

	st, err := rt.openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := api.Options{
		Events:         st.EventRepo(),
		Defaults:       defaults,
		AllowedOrigins: rt.cfg.Server.AllowedOrigins,
		Log:            rt.log,
	}
	if gen, err := rt.generator(ctx, st.EventRepo()); err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "POST /quiz will fail until one is set.")
	} else {
		opts.Generator = gen
	}

	addr := rt.cfg.Server.Addr
	if v, _ := cmd.Flags().GetString("addr"); v != "" {
		addr = v
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           api.New(opts).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		rt.log.Info("http server listening", "addr", addr)
		fmt.Fprintf(cmd.OutOrStdout(), "Listening on http://%s\n", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	rt.log.Info("http server shutting down")
	return srv.Shutdown(shutdownCtx)
}
