package console

import (
	"bytes"
	"context"
	"errors"
	"io"
	"runtime"
	"strings"
	"testing"
	"testing/iotest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	testifysuite "github.com/stretchr/testify/suite"

	"github.com/rocketscienceinc/uttt-engine/internal/entity"
	"github.com/rocketscienceinc/uttt-engine/internal/tictactoe"
	"github.com/rocketscienceinc/uttt-engine/internal/usecase"
	"github.com/rocketscienceinc/uttt-engine/testing/suite"
)

type ServerSuite struct {
	testifysuite.Suite

	ctx     context.Context
	st      *suite.Suite
	engine  *tictactoe.Engine
	manager *usecase.GameManager
	out     *bytes.Buffer
	server  *Server
}

func TestServerSuite(t *testing.T) {
	testifysuite.Run(t, new(ServerSuite))
}

func (s *ServerSuite) SetupTest() {
	s.ctx, s.st = suite.New(s.T())
	s.engine = tictactoe.NewDefault()
	s.manager = usecase.NewGameManager(s.st.Logger, s.engine)
	s.out = &bytes.Buffer{}
	s.server = New(s.st.Logger, s.manager, NewRenderer(entity.DefaultPlayers, true), s.out)
}

func (s *ServerSuite) run(input string) {
	s.T().Helper()

	s.Require().NoError(s.server.Run(s.ctx, strings.NewReader(input)))
}

func (s *ServerSuite) TestMoveAndRejection() {
	// Given: X plays the corner, then O ignores the mandate
	// When: the session runs
	s.run("0 0\n4 4\nquit\n")

	// Then: the first move is drawn and the second is refused
	out := s.out.String()
	s.Contains(out, "0 | X . . |")
	s.Contains(out, "Invalid move:")
	s.Contains(out, "Bye.")

	snap := s.manager.Snapshot()
	s.Equal(entity.PlayerO, snap.Active.Label)
	s.Equal(entity.EmptyCell, snap.Board[4][4])
}

func (s *ServerSuite) TestMoveKeyword() {
	// Given/When: a move written with the keyword
	s.run("MOVE 4 4\n")

	// Then: it is played
	s.Equal(entity.PlayerX, s.manager.Snapshot().Board[4][4])
}

func (s *ServerSuite) TestBadInput() {
	// Given/When: malformed commands
	s.run("move a b\nmove 1\nfoo\n\n")

	// Then: each is explained and nothing is played
	out := s.out.String()
	s.Contains(out, `Row and column must be numbers, got "a" "b".`)
	s.Contains(out, "Usage: move <row> <col>")
	s.Contains(out, `Unknown command "foo"`)
	s.Equal(entity.PlayerX, s.manager.Snapshot().Active.Label)
}

func (s *ServerSuite) TestHelpAndBoard() {
	// Given/When: help then board
	s.run("help\nboard\n")

	// Then: both are printed
	out := s.out.String()
	s.Contains(out, "Commands:")
	s.Equal(2, strings.Count(out, "Sub-boards:"))
}

func (s *ServerSuite) TestReset() {
	// Given: one move played
	previous := s.manager.GameID()

	// When: the game is reset
	s.run("4 4\nreset\n")

	// Then: the board is empty and a new game id is issued
	s.Contains(s.out.String(), "New game started.")
	s.Equal(entity.EmptyCell, s.manager.Snapshot().Board[4][4])
	s.NotEqual(previous, s.manager.GameID())

	_, ok := s.st.FindLog("game reset")
	s.True(ok)
}

func (s *ServerSuite) TestWinningMove() {
	// Given: X holds the (0,0) and (1,1) sub-boards and two cells of (2,2), which is mandated
	for _, move := range [][2]int{{0, 0}, {1, 1}, {2, 2}, {3, 3}, {4, 4}, {5, 5}, {6, 6}, {7, 7}} {
		s.Require().NoError(s.engine.ProcessMove(move[0], move[1], entity.PlayerX))
	}
	s.Require().NoError(s.engine.ProcessMove(1, 2, entity.PlayerO))
	s.Require().NoError(s.engine.ProcessMove(5, 8, entity.PlayerX))

	// When: X completes the diagonal and someone tries to keep playing
	s.run("8 8\n0 3\n")

	// Then: the win is announced and further moves are refused
	out := s.out.String()
	s.Contains(out, "Player X wins!")
	s.Contains(out, "Type reset to play again or quit to exit.")
	s.Contains(out, "The game is over.")
	s.Equal(entity.StatusWon, s.manager.Snapshot().Status)

	won := 0
	for _, entry := range s.st.LogEntries() {
		if entry["msg"] == "game won" {
			won++
		}
	}
	s.Equal(1, won)
}

func TestServer_Run(t *testing.T) {
	t.Run("Stops when the context is canceled", func(t *testing.T) {
		// Given: input that never arrives
		ctx, st := suite.New(t)
		ctx, cancel := context.WithCancel(ctx)

		reader, writer := io.Pipe()
		t.Cleanup(func() { _ = writer.Close() })

		server := New(st.Logger, usecase.NewGameManager(st.Logger, tictactoe.NewDefault()),
			NewRenderer(entity.DefaultPlayers, true), &bytes.Buffer{})

		done := make(chan error, 1)
		go func() { done <- server.Run(ctx, reader) }()

		// When: the context is canceled
		cancel()

		// Then: Run returns without error
		select {
		case err := <-done:
			require.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Fatal("Run did not return after cancel")
		}
	})

	t.Run("Reader stops when quit leaves input unread", func(t *testing.T) {
		// Given: sessions whose input continues after quit, on a context nobody cancels
		_, st := suite.New(t)
		before := runtime.NumGoroutine()

		// When: several sessions run to quit
		for i := 0; i < 20; i++ {
			server := New(st.Logger, usecase.NewGameManager(st.Logger, tictactoe.NewDefault()),
				NewRenderer(entity.DefaultPlayers, true), &bytes.Buffer{})
			require.NoError(t, server.Run(context.Background(), strings.NewReader("quit\n0 0\n1 1\n")))
		}

		// Then: no reader goroutine is left behind
		assert.Eventually(t, func() bool {
			return runtime.NumGoroutine() <= before
		}, 2*time.Second, 10*time.Millisecond)
	})

	t.Run("Reports read errors", func(t *testing.T) {
		// Given: a reader that fails
		ctx, st := suite.New(t)
		boom := errors.New("boom")

		server := New(st.Logger, usecase.NewGameManager(st.Logger, tictactoe.NewDefault()),
			NewRenderer(entity.DefaultPlayers, true), &bytes.Buffer{})

		// When: the session runs
		err := server.Run(ctx, iotest.ErrReader(boom))

		// Then: the read error is returned
		require.ErrorIs(t, err, boom)
	})

	t.Run("Stops on write errors", func(t *testing.T) {
		// Given: an output that rejects writes
		ctx, st := suite.New(t)
		broken := errors.New("broken pipe")

		server := New(st.Logger, usecase.NewGameManager(st.Logger, tictactoe.NewDefault()),
			NewRenderer(entity.DefaultPlayers, true), failingWriter{err: broken})

		// When: the session runs
		err := server.Run(ctx, strings.NewReader("board\n"))

		// Then: the write error is returned
		assert.ErrorIs(t, err, broken)
	})
}

type failingWriter struct {
	err error
}

func (that failingWriter) Write(_ []byte) (int, error) {
	return 0, that.err
}
