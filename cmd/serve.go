package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/abhisek/solfa/internal/debug"
	"github.com/abhisek/solfa/internal/piano"
	"github.com/abhisek/solfa/internal/playback"
	"github.com/abhisek/solfa/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the piano as a JSON API for a browser front-end",
	RunE:  runServe,
}

func init() {
	addPianoFlags(serveCmd)
	cfg := server.DefaultConfig()
	serveCmd.Flags().String("addr", cfg.Addr, "Listen address")
	serveCmd.Flags().StringSlice("origin", cfg.AllowedOrigins, "Allowed CORS origins")
}

func runServe(cmd *cobra.Command, args []string) error {
	sink := playback.SinkFunc(func(p playback.Params) {
		debug.Log("audio", "voice", "note", p.Note.String(), "rate", p.PlaybackRate)
	})
	env, err := openPractice(cmd, os.Stderr, sink)
	if err != nil {
		return err
	}
	defer env.Close()

	// The browser plays the sample itself; the server only reports the
	// voice parameters, so it is ready from the start.
	env.sampler.MarkReady(pianoSample)
	env.sampler.Activate()

	cfg := server.DefaultConfig()
	cfg.Addr, _ = cmd.Flags().GetString("addr")
	cfg.AllowedOrigins, _ = cmd.Flags().GetStringSlice("origin")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(env.ctrl, piano.DefaultLayout(), env.events())
	fmt.Fprintf(cmd.OutOrStdout(), "Listening on %s\n", cfg.Addr)
	return srv.ListenAndServe(ctx, cfg)
}
