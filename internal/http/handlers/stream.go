package handlers

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"time"

	applog "streetsupply/internal/log"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"
)

const keepAlive = 15 * time.Second

// openFeed starts a feed on a context detached from the request, since fiber
// recycles c once the handler returns while the stream keeps writing.
func openFeed[T any](c *fiber.Ctx, action string, start func(ctx context.Context) (<-chan T, error)) error {
	ctx, cancel := context.WithCancel(context.Background())
	feed, err := start(ctx)
	if err != nil {
		cancel()
		return fail(c, action, err)
	}
	applog.Info(c, action+".open", nil)

	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")
	c.Set("X-Accel-Buffering", "no")

	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		defer cancel()
		tick := time.NewTicker(keepAlive)
		defer tick.Stop()
		for {
			select {
			case snap, ok := <-feed:
				if !ok {
					return
				}
				b, err := json.Marshal(snap)
				if err != nil {
					applog.Error(nil, action+".encode", err, nil)
					continue
				}
				fmt.Fprintf(w, "event: snapshot\ndata: %s\n\n", b)
			case <-tick.C:
				fmt.Fprint(w, ": ping\n\n")
			}
			// A failed flush means the client went away.
			if err := w.Flush(); err != nil {
				applog.Info(nil, action+".close", nil)
				return
			}
		}
	}))
	return nil
}
