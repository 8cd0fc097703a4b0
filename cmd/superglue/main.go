package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync/atomic"
	"time"

	"github.com/gosuri/uilive"
	"github.com/mattn/go-isatty"

	"github.com/chessturo/super-glue/hashtable"
	"github.com/chessturo/super-glue/internal/args"
)

const version = "0.1.0"

func main() {
	os.Exit(run(os.Args))
}

func run(argv []string) int {
	state, files, res, err := args.Parse(argv)
	defer files.Close()

	switch res {
	case args.OK:
	case args.None:
		usage(argv[0])
		return 1
	case args.NoFiles:
		if !state.VersionRequested {
			usage(argv[0])
			return 1
		}
		printVersion()
		return 0
	default:
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	table := hashtable.New[[]byte]()
	defer table.Destroy(nil)

	if state.Interactive && isatty.IsTerminal(os.Stdout.Fd()) {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		loadLive(ctx, table, files)
		stop()
	} else {
		for i := 0; i < files.Count(); i++ {
			loadInput(table, files.Data(i))
		}
	}

	fmt.Printf("Loaded %d entries from %d files\n", table.Len(), files.Count())
	return 0
}

// loadLive loads the inputs while rendering a live status to the terminal.
// It only returns once the loader goroutine has stopped touching the table,
// even when ctx is cancelled mid-load, so the caller may destroy the table
// immediately afterwards.
func loadLive(ctx context.Context, table *hashtable.Table[[]byte], files *args.Files) {
	var filesRead, entries atomic.Int64

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < files.Count(); i++ {
			if ctx.Err() != nil {
				return
			}
			entries.Add(int64(loadInput(table, files.Data(i))))
			filesRead.Add(1)
		}
	}()

	writer := uilive.New()
	filesLine := writer.Newline()
	entriesLine := writer.Newline()

	writer.Start()
	defer writer.Stop()

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	render := func() {
		fmt.Fprintf(filesLine, "Files read: %d/%d\n", filesRead.Load(), files.Count())
		fmt.Fprintf(entriesLine, "Entries:    %d\n", entries.Load())
	}

	for {
		select {
		case <-ctx.Done():
			// The loader owns the table until it exits; wait it out.
			<-done
			return
		case <-done:
			render()
			return
		case <-ticker.C:
			render()
		}
	}
}

// loadInput inserts every "key=value" line of data into table. Blank lines
// and lines without a separator are skipped. Returns the number of lines
// loaded.
func loadInput(table *hashtable.Table[[]byte], data []byte) (n int) {
	for _, line := range bytes.Split(data, []byte("\n")) {
		key, value, found := bytes.Cut(line, []byte("="))
		if !found || len(key) == 0 {
			continue
		}
		// The value slice aliases the input mapping; copy it so the
		// table outlives Close.
		table.Set(key, len(key), append([]byte(nil), value...))
		n++
	}
	return
}

func usage(progName string) {
	fmt.Fprintf(os.Stderr, "Usage: \n")
	fmt.Fprintf(os.Stderr, "\t%s [-i] [-p port_num] files ...\n", progName)
}

func printVersion() {
	fmt.Printf("super-glue version %s\n", version)
	fmt.Println("Copyright 2021 Mitchell Levy")
	fmt.Println("super-glue is free software, licensed under the AGPLv3.")
	fmt.Println("You should have received a copy of the GNU Affero General Public License " +
		"along with super-glue. If not, see <https://www.gnu.org/licenses/>.")
}
