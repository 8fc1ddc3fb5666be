package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	_ "lintang/congestionnav/docs"
)

//	@title			congestionnav API
//	@version		1.0
//	@description	congestion-aware navigation engine: road graph, moving congestion zones, and agents that replan around them.

//	@contact.name	lintang birda saputra

//	@license.name	GNU Affero General Public License v3.0
//	@license.url	https://www.gnu.org/licenses/gpl-3.0.en.html

// @host		localhost:5000
// @BasePath	/api
// @schemes	http
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := Execute(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
