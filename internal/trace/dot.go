// Package trace renders the first plies of a move search as a Graphviz digraph.
package trace

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/tictactoe-bot/internal/tictactoe"
)

// DotRecorder - collects search edges and writes them as DOT. Safe for concurrent use.
type DotRecorder struct {
	mu    sync.Mutex
	id    string
	edges bytes.Buffer
}

func NewDotRecorder() *DotRecorder {
	return &DotRecorder{
		id: uuid.NewString(),
	}
}

// ID - unique id of this trace, used in file names and logs.
func (that *DotRecorder) ID() string {
	return that.id
}

func (that *DotRecorder) RecordEdge(parent, child tictactoe.Board, score int) {
	that.mu.Lock()
	defer that.mu.Unlock()

	fmt.Fprintf(&that.edges, "%s -> %s [label=\"%d\"]\n", quote(parent), quote(child), score)
}

func (that *DotRecorder) RecordBest(parent, child tictactoe.Board, score int) {
	that.mu.Lock()
	defer that.mu.Unlock()

	fmt.Fprintf(&that.edges, "%s -> %s [label=\"%d\" color=\"red\"]\n", quote(parent), quote(child), score)
}

// WriteTo - writes the complete digraph.
func (that *DotRecorder) WriteTo(w io.Writer) (int64, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	var graph bytes.Buffer
	graph.WriteString("digraph G {\n")
	graph.Write(that.edges.Bytes())
	graph.WriteString("}\n")

	return graph.WriteTo(w)
}

// Save - writes the digraph to dir as turn-<game>-<turn>-<id>.dot and returns the path.
func (that *DotRecorder) Save(dir string, gameID, turn int) (string, error) {
	path := filepath.Join(dir, fmt.Sprintf("turn-%d-%d-%s.dot", gameID, turn, that.id))

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("could not create trace file: %w", err)
	}
	defer file.Close()

	if _, err = that.WriteTo(file); err != nil {
		return "", fmt.Errorf("could not write trace: %w", err)
	}

	return path, nil
}

// quote - DOT node id for a board; rows are separated by the DOT line break escape.
func quote(board tictactoe.Board) string {
	return `"` + strings.ReplaceAll(board.String(), "\n", `\n`) + `"`
}
