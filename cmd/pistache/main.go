// Command pistache runs a standalone server with a tiny demo router
// wired to flags, the outer binary surface described in spec.md §6: no
// third-party flags library appears anywhere in the retrieved pack, so
// this uses the standard library's flag package directly (justified in
// DESIGN.md as the one stdlib fallback for this concern).
package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/bthrall/pistache/config"
	"github.com/bthrall/pistache/mime"
	"github.com/bthrall/pistache/parser"
	"github.com/bthrall/pistache/reactor"
	"github.com/bthrall/pistache/response"
	"github.com/bthrall/pistache/router"
	"github.com/bthrall/pistache/status"
)

func main() {
	threads := flag.Int("threads", 1, "number of worker goroutines")
	port := flag.Int("port", 8080, "TCP port to bind")
	backlog := flag.Int("backlog", 128, "listen(2) backlog size")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	r := router.New()
	r.Get("/", func(req *parser.Request, resp *response.Response, params []router.Param) error {
		_, err := resp.SendBody(status.OK, []byte("pistache\n"), mime.TextPlain)
		return err
	})

	opts := config.New(
		config.WithThreads(*threads),
		config.WithAddr([4]byte{0, 0, 0, 0}),
		config.WithPort(*port),
		config.WithBacklog(*backlog),
	)

	rt := reactor.New(opts, &router.Dispatcher{Router: r}, logger)
	if err := rt.Bind(); err != nil {
		logger.Error("bind failed", "err", err)
		os.Exit(1)
	}

	logger.Info("listening", "port", *port, "threads", opts.Threads)
	if err := rt.Run(); err != nil {
		logger.Error("accept loop exited", "err", err)
		os.Exit(1)
	}
}
