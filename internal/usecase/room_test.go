package usecase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/rocketscienceinc/tictactoe-rooms/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-rooms/internal/entity"
	"github.com/rocketscienceinc/tictactoe-rooms/internal/repository"
	mockedUseCase "github.com/rocketscienceinc/tictactoe-rooms/mocks/usecase"
)

var errRedisDown = errors.New("redis down")

var (
	ann = &entity.User{UID: "ann", Name: "Ann"}
	bob = &entity.User{UID: "bob", Name: "Bob"}
	eve = &entity.User{UID: "eve", Name: "Eve"}
)

var startTime = time.Date(2026, 10, 15, 10, 0, 0, 0, time.UTC)

func newTestUseCase(repo roomRepo, codes ...string) *RoomUseCase {
	useCase := NewRoomUseCase(slog.New(slog.NewJSONHandler(io.Discard, nil)), repo)

	var (
		mutex sync.Mutex
		next  int
		ticks int
	)

	useCase.generateCode = func() (string, error) {
		mutex.Lock()
		defer mutex.Unlock()

		if next >= len(codes) {
			return "", fmt.Errorf("no more codes after %d", next)
		}

		code := codes[next]
		next++

		return code, nil
	}

	useCase.now = func() time.Time {
		mutex.Lock()
		defer mutex.Unlock()

		ticks++

		return startTime.Add(time.Duration(ticks) * time.Second)
	}

	return useCase
}

// playingRoom - ann as X and bob as O in room ABC234.
func playingRoom(t *testing.T) (context.Context, *RoomUseCase) {
	t.Helper()

	ctx := context.Background()
	useCase := newTestUseCase(repository.NewMemoryRoomRepository(), "ABC234")

	_, err := useCase.Create(ctx, ann)
	require.NoError(t, err)

	_, err = useCase.Join(ctx, bob, "ABC234")
	require.NoError(t, err)

	return ctx, useCase
}

func TestRoomUseCase_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("Seats the owner as X", func(t *testing.T) {
		// Given: an empty store
		useCase := newTestUseCase(repository.NewMemoryRoomRepository(), "ABC234")

		// When: ann creates a room
		view, err := useCase.Create(ctx, ann)

		// Then: she holds X in a waiting room
		require.NoError(t, err)
		assert.Equal(t, entity.RoleX, view.Role)
		assert.Equal(t, "ABC234", view.Room.Code)
		assert.Equal(t, entity.StatusWaiting, view.Room.Status)
		assert.Equal(t, entity.MarkX, view.Room.CurrentTurn)
		assert.Equal(t, 1, view.Room.Round)
		assert.Equal(t, &entity.PlayerRef{UID: "ann", Name: "Ann"}, view.Room.Players.X)
		assert.Nil(t, view.Room.Players.O)

		stored, err := useCase.Get(ctx, ann, "ABC234")
		require.NoError(t, err)
		assert.Equal(t, view.Room, stored.Room)
	})

	t.Run("Draws another code on collision", func(t *testing.T) {
		// Given: a store where ABC234 is taken
		repo := repository.NewMemoryRoomRepository()
		_, err := newTestUseCase(repo, "ABC234").Create(ctx, bob)
		require.NoError(t, err)

		useCase := newTestUseCase(repo, "ABC234", "XYZ789")

		// When: ann creates a room
		view, err := useCase.Create(ctx, ann)

		// Then: the second code is used and the first room is untouched
		require.NoError(t, err)
		assert.Equal(t, "XYZ789", view.Room.Code)

		taken, err := useCase.Get(ctx, bob, "ABC234")
		require.NoError(t, err)
		assert.Equal(t, entity.RoleX, taken.Role)
	})

	t.Run("Gives up after eight taken codes", func(t *testing.T) {
		// Given: a store where every insert collides
		mockRoomRepo := mockedUseCase.NewMockroomRepo(t)
		useCase := newTestUseCase(mockRoomRepo, "AAAAAA", "BBBBBB", "CCCCCC", "DDDDDD", "EEEEEE", "FFFFFF", "GGGGGG", "HHHHHH", "JJJJJJ")

		mockRoomRepo.EXPECT().
			Insert(mock.Anything, mock.AnythingOfType("*entity.Room")).
			Return(false, nil).
			Times(maxCreateAttempts)

		// When: ann creates a room
		view, err := useCase.Create(ctx, ann)

		// Then: creation fails after exactly eight attempts
		require.ErrorIs(t, err, apperror.ErrRoomCreateExhausted)
		assert.Nil(t, view)
	})

	t.Run("Returns storage errors", func(t *testing.T) {
		mockRoomRepo := mockedUseCase.NewMockroomRepo(t)
		useCase := newTestUseCase(mockRoomRepo, "ABC234")

		mockRoomRepo.EXPECT().
			Insert(mock.Anything, mock.AnythingOfType("*entity.Room")).
			Return(false, errRedisDown).
			Once()

		_, err := useCase.Create(ctx, ann)

		require.ErrorIs(t, err, errRedisDown)
	})
}

func TestRoomUseCase_Get(t *testing.T) {
	ctx, useCase := playingRoom(t)

	t.Run("Derives the caller's role", func(t *testing.T) {
		for user, role := range map[*entity.User]entity.Role{ann: entity.RoleX, bob: entity.RoleO, eve: entity.RoleNone} {
			view, err := useCase.Get(ctx, user, "ABC234")

			require.NoError(t, err)
			assert.Equal(t, role, view.Role, user.UID)
		}
	})

	t.Run("Unknown room", func(t *testing.T) {
		_, err := useCase.Get(ctx, ann, "NONE23")

		require.ErrorIs(t, err, apperror.ErrRoomNotFound)
	})
}

func TestRoomUseCase_Join(t *testing.T) {
	t.Run("Second user takes O and starts the game", func(t *testing.T) {
		ctx := context.Background()
		useCase := newTestUseCase(repository.NewMemoryRoomRepository(), "ABC234")
		_, err := useCase.Create(ctx, ann)
		require.NoError(t, err)

		view, err := useCase.Join(ctx, bob, "ABC234")

		require.NoError(t, err)
		assert.Equal(t, entity.RoleO, view.Role)
		assert.False(t, view.Spectator)
		assert.Equal(t, entity.StatusPlaying, view.Room.Status)
		assert.Equal(t, &entity.PlayerRef{UID: "bob", Name: "Bob"}, view.Room.Players.O)
	})

	t.Run("Seated users get their seat back", func(t *testing.T) {
		ctx, useCase := playingRoom(t)
		before, err := useCase.Get(ctx, ann, "ABC234")
		require.NoError(t, err)

		view, err := useCase.Join(ctx, ann, "ABC234")

		require.NoError(t, err)
		assert.Equal(t, entity.RoleX, view.Role)
		assert.False(t, view.Spectator)
		assert.Equal(t, before.Room, view.Room)
	})

	t.Run("Third user becomes a spectator", func(t *testing.T) {
		ctx, useCase := playingRoom(t)

		view, err := useCase.Join(ctx, eve, "ABC234")

		require.NoError(t, err)
		assert.Equal(t, entity.RoleNone, view.Role)
		assert.True(t, view.Spectator)
		assert.Equal(t, "bob", view.Room.Players.O.UID)
	})

	t.Run("Unknown room", func(t *testing.T) {
		ctx, useCase := playingRoom(t)

		_, err := useCase.Join(ctx, eve, "NONE23")

		require.ErrorIs(t, err, apperror.ErrRoomNotFound)
	})

	t.Run("Concurrent joiners get one O seat", func(t *testing.T) {
		// Given: a waiting room
		ctx := context.Background()
		useCase := newTestUseCase(repository.NewMemoryRoomRepository(), "ABC234")
		_, err := useCase.Create(ctx, ann)
		require.NoError(t, err)

		// When: many users join at once
		var seated atomic.Int32

		group, groupCtx := errgroup.WithContext(ctx)
		for i := range 16 {
			user := &entity.User{UID: fmt.Sprintf("user-%d", i)}
			group.Go(func() error {
				view, joinErr := useCase.Join(groupCtx, user, "ABC234")
				if joinErr != nil {
					return joinErr
				}
				if view.Role == entity.RoleO {
					seated.Add(1)
				}
				return nil
			})
		}
		require.NoError(t, group.Wait())

		// Then: exactly one of them holds O
		assert.Equal(t, int32(1), seated.Load())

		view, err := useCase.Get(ctx, ann, "ABC234")
		require.NoError(t, err)
		assert.Equal(t, "Player O", view.Room.Players.O.Name)
	})
}

func TestRoomUseCase_Move(t *testing.T) {
	t.Run("Plays a round to a win", func(t *testing.T) {
		ctx, useCase := playingRoom(t)

		// When: X takes the top row while O plays the middle row
		var view *RoomView
		for i, move := range []struct {
			user  *entity.User
			index int
		}{{ann, 0}, {bob, 3}, {ann, 1}, {bob, 4}, {ann, 2}} {
			var err error
			view, err = useCase.Move(ctx, move.user, "ABC234", move.index)
			require.NoError(t, err, i)
		}

		// Then: X wins with the top row
		assert.Equal(t, entity.StatusFinished, view.Room.Status)
		assert.Equal(t, entity.OutcomeX, view.Room.Winner)
		assert.Equal(t, []int{0, 1, 2}, view.Room.WinnerLine)
		assert.Equal(t, entity.Scores{X: 1}, view.Room.Scores)
		assert.Equal(t, entity.RoleX, view.Role)
	})

	t.Run("Illegal move keeps the stored row", func(t *testing.T) {
		// Given: a playing room where X has moved
		ctx, useCase := playingRoom(t)
		_, err := useCase.Move(ctx, ann, "ABC234", 4)
		require.NoError(t, err)

		before, err := useCase.Get(ctx, ann, "ABC234")
		require.NoError(t, err)

		// When: X moves out of turn, O plays a taken cell and a spectator moves
		for _, move := range []struct {
			user  *entity.User
			index int
		}{{ann, 0}, {bob, 4}, {eve, 0}, {bob, 9}} {
			view, moveErr := useCase.Move(ctx, move.user, "ABC234", move.index)

			// Then: nothing changes, not even the timestamp
			require.NoError(t, moveErr)
			assert.Equal(t, before.Room, view.Room)
		}
	})

	t.Run("Saves a fresh timestamp", func(t *testing.T) {
		ctx, useCase := playingRoom(t)
		before, err := useCase.Get(ctx, ann, "ABC234")
		require.NoError(t, err)

		view, err := useCase.Move(ctx, ann, "ABC234", 0)

		require.NoError(t, err)
		assert.True(t, view.Room.UpdatedAt.After(before.Room.UpdatedAt))
		assert.Equal(t, time.UTC, view.Room.UpdatedAt.Location())
	})

	t.Run("Concurrent moves by the same player apply once", func(t *testing.T) {
		ctx, useCase := playingRoom(t)

		group, groupCtx := errgroup.WithContext(ctx)
		for index := range entity.BoardSize {
			group.Go(func() error {
				_, moveErr := useCase.Move(groupCtx, ann, "ABC234", index)
				return moveErr
			})
		}
		require.NoError(t, group.Wait())

		view, err := useCase.Get(ctx, ann, "ABC234")
		require.NoError(t, err)

		marks := 0
		for _, cell := range view.Room.Board {
			if cell != entity.EmptyCell {
				marks++
			}
		}
		assert.Equal(t, 1, marks)
		assert.Equal(t, entity.MarkO, view.Room.CurrentTurn)
	})

	t.Run("Logs a finished round once", func(t *testing.T) {
		// Given: a playing room logging into a buffer
		ctx, useCase := playingRoom(t)

		var logs bytes.Buffer
		useCase.logger = slog.New(slog.NewJSONHandler(&logs, nil))

		// When: X wins and both players keep sending stale moves
		for _, move := range []struct {
			user  *entity.User
			index int
		}{{ann, 0}, {bob, 3}, {ann, 1}, {bob, 4}, {ann, 2}, {bob, 5}, {ann, 8}, {bob, 7}} {
			_, err := useCase.Move(ctx, move.user, "ABC234", move.index)
			require.NoError(t, err)
		}

		// Then: only the winning move is logged
		assert.Equal(t, 1, strings.Count(logs.String(), `"msg":"round finished"`))
	})

	t.Run("Returns storage errors", func(t *testing.T) {
		mockRoomRepo := mockedUseCase.NewMockroomRepo(t)
		useCase := newTestUseCase(mockRoomRepo)

		mockRoomRepo.EXPECT().
			Mutate(mock.Anything, "ABC234", mock.Anything).
			Return(nil, errRedisDown).
			Once()

		_, err := useCase.Move(context.Background(), ann, "ABC234", 0)

		require.ErrorIs(t, err, errRedisDown)
	})
}

func TestRoomUseCase_NextRound(t *testing.T) {
	// Given: a round X has won
	ctx, useCase := playingRoom(t)
	for _, move := range []struct {
		user  *entity.User
		index int
	}{{ann, 0}, {bob, 3}, {ann, 1}, {bob, 4}, {ann, 2}} {
		_, err := useCase.Move(ctx, move.user, "ABC234", move.index)
		require.NoError(t, err)
	}

	t.Run("Spectators cannot start a round", func(t *testing.T) {
		view, err := useCase.NextRound(ctx, eve, "ABC234")

		require.NoError(t, err)
		assert.Equal(t, 1, view.Room.Round)
		assert.Equal(t, entity.StatusFinished, view.Room.Status)
	})

	t.Run("O opens the second round", func(t *testing.T) {
		view, err := useCase.NextRound(ctx, bob, "ABC234")

		require.NoError(t, err)
		assert.Equal(t, 2, view.Room.Round)
		assert.Equal(t, entity.StatusPlaying, view.Room.Status)
		assert.Equal(t, entity.MarkO, view.Room.CurrentTurn)
		assert.Equal(t, entity.Board{}, view.Room.Board)
		assert.Equal(t, entity.OutcomeNone, view.Room.Winner)
		assert.Nil(t, view.Room.WinnerLine)
		assert.Equal(t, entity.Scores{X: 1}, view.Room.Scores)
		assert.Equal(t, entity.RoleO, view.Role)
	})

	t.Run("A playing room ignores the request", func(t *testing.T) {
		view, err := useCase.NextRound(ctx, ann, "ABC234")

		require.NoError(t, err)
		assert.Equal(t, 2, view.Room.Round)
	})
}

func TestRoomUseCase_Leave(t *testing.T) {
	t.Run("X leaves and O takes over", func(t *testing.T) {
		// Given: a room with a score
		ctx, useCase := playingRoom(t)
		for _, move := range []struct {
			user  *entity.User
			index int
		}{{ann, 0}, {bob, 3}, {ann, 1}, {bob, 4}, {ann, 2}} {
			_, err := useCase.Move(ctx, move.user, "ABC234", move.index)
			require.NoError(t, err)
		}

		// When: X leaves
		view, err := useCase.Leave(ctx, ann, "ABC234")

		// Then: bob moves to X and the room starts over
		require.NoError(t, err)
		assert.False(t, view.Deleted)
		assert.Equal(t, &entity.PlayerRef{UID: "bob", Name: "Bob"}, view.Room.Players.X)
		assert.Nil(t, view.Room.Players.O)
		assert.Equal(t, entity.StatusWaiting, view.Room.Status)
		assert.Equal(t, entity.Scores{}, view.Room.Scores)
		assert.Equal(t, 1, view.Room.Round)
	})

	t.Run("Last player deletes the room", func(t *testing.T) {
		ctx, useCase := playingRoom(t)

		_, err := useCase.Leave(ctx, bob, "ABC234")
		require.NoError(t, err)

		view, err := useCase.Leave(ctx, ann, "ABC234")

		require.NoError(t, err)
		assert.True(t, view.Deleted)
		assert.Nil(t, view.Room)

		_, err = useCase.Get(ctx, ann, "ABC234")
		require.ErrorIs(t, err, apperror.ErrRoomNotFound)
	})

	t.Run("Spectator leaving changes nothing", func(t *testing.T) {
		ctx, useCase := playingRoom(t)
		before, err := useCase.Get(ctx, ann, "ABC234")
		require.NoError(t, err)

		view, err := useCase.Leave(ctx, eve, "ABC234")

		require.NoError(t, err)
		assert.False(t, view.Deleted)
		assert.Equal(t, before.Room, view.Room)
	})
}
