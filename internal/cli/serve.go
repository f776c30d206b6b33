package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/retouchlab/retouch/internal/codec"
	"github.com/retouchlab/retouch/internal/document"
	"github.com/retouchlab/retouch/internal/logutil"
	"github.com/retouchlab/retouch/internal/server"
)

var (
	servePort     int
	serveDebounce time.Duration
	serveHistory  int
	serveImage    string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve one editing session over HTTP",
	Long: `Starts the HTTP API for a browser front-end: upload an image, post
adjustment changes, fetch the composed preview, histogram and palette,
and drive bake/undo/redo. Pass --image to preload a session.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 8080, "listen port")
	serveCmd.Flags().DurationVar(&serveDebounce, "debounce", server.DefaultDebounce, "recompose debounce window (0 = synchronous)")
	serveCmd.Flags().IntVar(&serveHistory, "history", document.DefaultHistoryCapacity, "undo history capacity")
	serveCmd.Flags().StringVarP(&serveImage, "image", "i", "", "image file to preload")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	log := logutil.NewLogger(verbose)
	defer log.Sync()

	doc := document.New(
		document.WithLogger(log),
		document.WithHistoryCapacity(serveHistory),
	)
	if serveImage != "" {
		buf, err := codec.Load(serveImage)
		if err != nil {
			return err
		}
		if err := doc.LoadOriginal(buf); err != nil {
			return err
		}
	}

	s := server.New(doc,
		server.WithLogger(log),
		server.WithDebounce(serveDebounce),
	)
	return s.Run(servePort)
}
