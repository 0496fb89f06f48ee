package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	config "task-board.com/task-board/internal/configs"
	"task-board.com/task-board/internal/constants"
	apperrors "task-board.com/task-board/internal/errors"
	model "task-board.com/task-board/internal/models"
	"task-board.com/task-board/internal/position"
	repository "task-board.com/task-board/internal/repositories"
)

func setupTestDB(t *testing.T) *gorm.DB {
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared&_foreign_keys=on"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err, "failed to connect database")

	require.NoError(t, db.AutoMigrate(model.All()...), "failed to migrate database")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	return db
}

type fixture struct {
	db      *gorm.DB
	store   *repository.Store
	boards  *BoardService
	columns *ColumnService
	tasks   *TaskService
	user    *model.User
}

func newFixture(t *testing.T) *fixture {
	return newFixtureWithDB(t, setupTestDB(t))
}

func newFixtureWithDB(t *testing.T, db *gorm.DB) *fixture {
	store := repository.NewStore(db)
	log := zap.NewNop()

	user, err := store.Users().Create(context.Background(), "owner@example.com", nil)
	require.NoError(t, err)

	return &fixture{
		db:      db,
		store:   store,
		boards:  NewBoardService(store, log),
		columns: NewColumnService(store, log),
		tasks:   NewTaskService(store, log),
		user:    user,
	}
}

func intPtr(v int) *int { return &v }

func (f *fixture) board(t *testing.T) *model.Board {
	board, err := f.boards.CreateBoard(context.Background(), f.user.ID, CreateBoardInput{Name: "Sprint"})
	require.NoError(t, err)
	return board
}

func (f *fixture) addTasks(t *testing.T, columnID string, n int) []string {
	ids := make([]string, n)
	for i := range ids {
		task, err := f.tasks.CreateTask(context.Background(), CreateTaskInput{ColumnID: columnID, Title: fmt.Sprintf("task %d", i)})
		require.NoError(t, err)
		ids[i] = task.ID
	}
	return ids
}

// columnOrder returns the board's column ids in position order and checks
// that the positions are contiguous.
func (f *fixture) columnOrder(t *testing.T, boardID string) []string {
	columns, err := f.store.Columns().ListByBoard(context.Background(), boardID)
	require.NoError(t, err)

	ids := make([]string, len(columns))
	positions := make([]int, len(columns))
	for i, c := range columns {
		ids[i] = c.ID
		positions[i] = c.Position
	}
	require.NoError(t, position.Check(positions), "columns of board %s", boardID)
	return ids
}

func (f *fixture) taskOrder(t *testing.T, columnID string) []string {
	tasks, err := f.store.Tasks().ListByColumn(context.Background(), columnID)
	require.NoError(t, err)

	ids := make([]string, len(tasks))
	positions := make([]int, len(tasks))
	for i, task := range tasks {
		ids[i] = task.ID
		positions[i] = task.Position
	}
	require.NoError(t, position.Check(positions), "tasks of column %s", columnID)
	return ids
}

func TestCreateBoardSeedsDefaultColumns(t *testing.T) {
	f := newFixture(t)

	board := f.board(t)
	assert.Equal(t, constants.DefaultBoardColor, board.Color)

	detailed, err := f.boards.GetBoard(context.Background(), board.ID)
	require.NoError(t, err)
	require.Len(t, detailed.Columns, 3)
	for i, name := range []string{"To Do", "In Progress", "Done"} {
		assert.Equal(t, name, detailed.Columns[i].Name)
		assert.Equal(t, i, detailed.Columns[i].Position)
	}
}

func TestCreateBoardRequiresKnownOwner(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.boards.CreateBoard(ctx, "", CreateBoardInput{Name: "x"})
	assert.ErrorIs(t, err, apperrors.ErrOwnerRequired)

	_, err = f.boards.CreateBoard(ctx, uuid.NewString(), CreateBoardInput{Name: "x"})
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)

	boards, err := f.boards.ListBoards(ctx, f.user.ID)
	require.NoError(t, err)
	assert.Empty(t, boards)
}

func TestUpdateAndDeleteBoard(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	board := f.board(t)

	name, color := "Renamed", "#000000"
	updated, err := f.boards.UpdateBoard(ctx, board.ID, UpdateBoardInput{Name: &name, Color: &color})
	require.NoError(t, err)
	assert.Equal(t, name, updated.Name)
	assert.Equal(t, color, updated.Color)
	assert.Len(t, updated.Columns, 3)

	_, err = f.boards.UpdateBoard(ctx, "missing", UpdateBoardInput{Name: &name})
	assert.ErrorIs(t, err, apperrors.ErrBoardNotFound)

	f.addTasks(t, board.Columns[0].ID, 2)
	require.NoError(t, f.boards.DeleteBoard(ctx, board.ID))
	_, err = f.boards.GetBoard(ctx, board.ID)
	assert.ErrorIs(t, err, apperrors.ErrBoardNotFound)
	assert.ErrorIs(t, f.boards.DeleteBoard(ctx, board.ID), apperrors.ErrBoardNotFound)
}

func TestCreateColumnAppendsAtEnd(t *testing.T) {
	f := newFixture(t)
	board := f.board(t)

	column, err := f.columns.CreateColumn(context.Background(), board.ID, CreateColumnInput{Name: "Review"})
	require.NoError(t, err)
	assert.Equal(t, 3, column.Position)
	assert.Len(t, f.columnOrder(t, board.ID), 4)

	_, err = f.columns.CreateColumn(context.Background(), "missing", CreateColumnInput{Name: "x"})
	assert.ErrorIs(t, err, apperrors.ErrBoardNotFound)
}

func TestCreateColumnAtRequestedPositionOpensSlot(t *testing.T) {
	f := newFixture(t)
	board := f.board(t)
	before := f.columnOrder(t, board.ID)

	column, err := f.columns.CreateColumn(context.Background(), board.ID, CreateColumnInput{Name: "Blocked", Position: intPtr(1)})
	require.NoError(t, err)
	assert.Equal(t, 1, column.Position)
	assert.Equal(t, []string{before[0], column.ID, before[1], before[2]}, f.columnOrder(t, board.ID))

	tail, err := f.columns.CreateColumn(context.Background(), board.ID, CreateColumnInput{Name: "Far", Position: intPtr(99)})
	require.NoError(t, err)
	assert.Equal(t, 4, tail.Position)
}

func TestReorderColumnToTheRight(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	board := f.board(t)
	_, err := f.columns.CreateColumn(ctx, board.ID, CreateColumnInput{Name: "Archive"})
	require.NoError(t, err)

	c := f.columnOrder(t, board.ID)
	moved, err := f.columns.ReorderColumn(ctx, c[1], 3)
	require.NoError(t, err)
	assert.Equal(t, 3, moved.Position)
	assert.Equal(t, []string{c[0], c[2], c[3], c[1]}, f.columnOrder(t, board.ID))
}

func TestReorderColumnToTheLeftAndOntoItself(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	board := f.board(t)
	c := f.columnOrder(t, board.ID)

	_, err := f.columns.ReorderColumn(ctx, c[2], 0)
	require.NoError(t, err)
	assert.Equal(t, []string{c[2], c[0], c[1]}, f.columnOrder(t, board.ID))

	_, err = f.columns.ReorderColumn(ctx, c[0], 1)
	require.NoError(t, err)
	assert.Equal(t, []string{c[2], c[0], c[1]}, f.columnOrder(t, board.ID))

	_, err = f.columns.ReorderColumn(ctx, "missing", 0)
	assert.ErrorIs(t, err, apperrors.ErrColumnNotFound)
}

func TestUpdateColumnPositionShiftsSiblings(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	board := f.board(t)
	c := f.columnOrder(t, board.ID)

	name := "Doing"
	updated, err := f.columns.UpdateColumn(ctx, board.ID, c[1], UpdateColumnInput{Name: &name, Position: intPtr(0)})
	require.NoError(t, err)
	assert.Equal(t, name, updated.Name)
	assert.Equal(t, []string{c[1], c[0], c[2]}, f.columnOrder(t, board.ID))

	other := f.board(t)
	_, err = f.columns.UpdateColumn(ctx, other.ID, c[1], UpdateColumnInput{Name: &name})
	assert.ErrorIs(t, err, apperrors.ErrColumnNotFound)
}

func TestDeleteColumnClosesGap(t *testing.T) {
	f := newFixture(t)
	board := f.board(t)
	c := f.columnOrder(t, board.ID)

	require.NoError(t, f.columns.DeleteColumn(context.Background(), "", c[1]))
	assert.Equal(t, []string{c[0], c[2]}, f.columnOrder(t, board.ID))
}

func TestDeleteColumnWithTasksIsRefused(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	board := f.board(t)
	c := f.columnOrder(t, board.ID)
	tasks := f.addTasks(t, c[0], 2)

	err := f.columns.DeleteColumn(ctx, board.ID, c[0])
	assert.ErrorIs(t, err, apperrors.ErrColumnHasTasks)
	assert.True(t, apperrors.IsKind(err, apperrors.KindInvalidOperation))

	assert.Equal(t, c, f.columnOrder(t, board.ID))
	assert.Equal(t, tasks, f.taskOrder(t, c[0]))
}

func TestCreateTaskDefaultsAndPosition(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	board := f.board(t)
	columnID := board.Columns[0].ID

	first, err := f.tasks.CreateTask(ctx, CreateTaskInput{ColumnID: columnID, Title: "first"})
	require.NoError(t, err)
	assert.Equal(t, 0, first.Position)
	assert.Equal(t, constants.StatusTodo, first.Status)
	assert.Equal(t, constants.PriorityMedium, first.Priority)
	assert.Nil(t, first.DueDate)

	due := "2026-03-01"
	urgent := constants.PriorityUrgent
	second, err := f.tasks.CreateTask(ctx, CreateTaskInput{ColumnID: columnID, Title: "second", DueDate: &due, Priority: &urgent})
	require.NoError(t, err)
	assert.Equal(t, 1, second.Position)
	assert.Equal(t, urgent, second.Priority)
	require.NotNil(t, second.DueDate)
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), *second.DueDate)

	bad := "next tuesday"
	_, err = f.tasks.CreateTask(ctx, CreateTaskInput{ColumnID: columnID, Title: "bad", DueDate: &bad})
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidationFailed))

	_, err = f.tasks.CreateTask(ctx, CreateTaskInput{ColumnID: "missing", Title: "x"})
	assert.ErrorIs(t, err, apperrors.ErrColumnNotFound)
}

func TestDeleteTaskClosesGap(t *testing.T) {
	f := newFixture(t)
	board := f.board(t)
	columnID := board.Columns[0].ID
	ids := f.addTasks(t, columnID, 3)

	require.NoError(t, f.tasks.DeleteTask(context.Background(), ids[1]))
	assert.Equal(t, []string{ids[0], ids[2]}, f.taskOrder(t, columnID))

	last, err := f.tasks.GetTask(context.Background(), ids[2])
	require.NoError(t, err)
	assert.Equal(t, 1, last.Position)

	assert.ErrorIs(t, f.tasks.DeleteTask(context.Background(), ids[1]), apperrors.ErrTaskNotFound)
}

func TestMoveTaskAcrossColumns(t *testing.T) {
	f := newFixture(t)
	board := f.board(t)
	a, b := board.Columns[0].ID, board.Columns[1].ID
	inA := f.addTasks(t, a, 3)
	inB := f.addTasks(t, b, 2)

	moved, err := f.tasks.MoveTask(context.Background(), inA[1], b, 1)
	require.NoError(t, err)
	assert.Equal(t, b, moved.ColumnID)
	assert.Equal(t, 1, moved.Position)

	assert.Equal(t, []string{inA[0], inA[2]}, f.taskOrder(t, a))
	assert.Equal(t, []string{inB[0], inA[1], inB[1]}, f.taskOrder(t, b))
}

func TestMoveTaskWithinColumn(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	board := f.board(t)
	columnID := board.Columns[0].ID
	ids := f.addTasks(t, columnID, 4)

	_, err := f.tasks.MoveTask(ctx, ids[0], columnID, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{ids[1], ids[2], ids[0], ids[3]}, f.taskOrder(t, columnID))

	_, err = f.tasks.MoveTask(ctx, ids[0], columnID, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{ids[1], ids[2], ids[0], ids[3]}, f.taskOrder(t, columnID))

	_, err = f.tasks.MoveTask(ctx, ids[0], "missing", 0)
	assert.ErrorIs(t, err, apperrors.ErrTargetColumnNotFound)
	_, err = f.tasks.MoveTask(ctx, "missing", columnID, 0)
	assert.ErrorIs(t, err, apperrors.ErrTaskNotFound)
}

func TestUpdateTaskColumnChangeShiftsBothColumns(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	board := f.board(t)
	a, b := board.Columns[0].ID, board.Columns[1].ID
	inA := f.addTasks(t, a, 3)
	inB := f.addTasks(t, b, 1)

	title := "renamed"
	done := constants.StatusDone
	updated, err := f.tasks.UpdateTask(ctx, inA[0], UpdateTaskInput{Title: &title, Status: &done, ColumnID: &b})
	require.NoError(t, err)
	assert.Equal(t, title, updated.Title)
	assert.Equal(t, done, updated.Status)
	assert.Equal(t, 1, updated.Position)

	assert.Equal(t, []string{inA[1], inA[2]}, f.taskOrder(t, a))
	assert.Equal(t, []string{inB[0], inA[0]}, f.taskOrder(t, b))

	_, err = f.tasks.UpdateTask(ctx, inA[1], UpdateTaskInput{Position: intPtr(5)})
	require.NoError(t, err)
	assert.Equal(t, []string{inA[2], inA[1]}, f.taskOrder(t, a))

	missing := "missing"
	_, err = f.tasks.UpdateTask(ctx, inA[1], UpdateTaskInput{ColumnID: &missing})
	assert.ErrorIs(t, err, apperrors.ErrTargetColumnNotFound)
}

func TestUpdateTaskClearsDueDate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	board := f.board(t)

	due := "2026-05-01T10:00:00Z"
	task, err := f.tasks.CreateTask(ctx, CreateTaskInput{ColumnID: board.Columns[0].ID, Title: "t", DueDate: &due})
	require.NoError(t, err)
	require.NotNil(t, task.DueDate)

	empty := ""
	updated, err := f.tasks.UpdateTask(ctx, task.ID, UpdateTaskInput{DueDate: &empty})
	require.NoError(t, err)
	assert.Nil(t, updated.DueDate)
}

func TestMoveTaskRollsBackWhenPlacementFails(t *testing.T) {
	f := newFixture(t)
	board := f.board(t)
	a, b := board.Columns[0].ID, board.Columns[1].ID
	inA := f.addTasks(t, a, 3)
	inB := f.addTasks(t, b, 2)

	errInjected := errors.New("injected placement failure")
	err := f.db.Callback().Update().Before("gorm:update").Register("test:fail_task_placement", func(tx *gorm.DB) {
		if fields, ok := tx.Statement.Dest.(map[string]interface{}); ok {
			if _, ok := fields["column_id"]; ok {
				_ = tx.AddError(errInjected)
			}
		}
	})
	require.NoError(t, err)

	_, err = f.tasks.MoveTask(context.Background(), inA[0], b, 0)
	assert.ErrorIs(t, err, errInjected)

	assert.Equal(t, inA, f.taskOrder(t, a))
	assert.Equal(t, inB, f.taskOrder(t, b))
}

func TestConcurrentMovesKeepPositionsContiguous(t *testing.T) {
	f := newFixture(t)
	board := f.board(t)
	columns := []string{board.Columns[0].ID, board.Columns[1].ID, board.Columns[2].ID}

	var ids []string
	for _, c := range columns {
		ids = append(ids, f.addTasks(t, c, 4)...)
	}

	const workers = 8
	var wg sync.WaitGroup
	errs := make(chan error, workers*10)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(seed))
			for i := 0; i < 10; i++ {
				id := ids[rng.Intn(len(ids))]
				target := columns[rng.Intn(len(columns))]
				if _, err := f.tasks.MoveTask(context.Background(), id, target, rng.Intn(6)); err != nil {
					errs <- err
				}
			}
		}(int64(w))
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("concurrent move failed: %v", err)
	}

	total := 0
	for _, c := range columns {
		total += len(f.taskOrder(t, c))
	}
	assert.Equal(t, len(ids), total)
}

// TestConcurrentMixedOperationsOnFileDatabase uses the production DSN and the
// default connection pool, so transactions really run on separate
// connections and rely on the immediate lock to serialize.
func TestConcurrentMixedOperationsOnFileDatabase(t *testing.T) {
	db, err := config.NewDatabase(filepath.Join(t.TempDir(), "board.db"), true)
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	f := newFixtureWithDB(t, db)
	ctx := context.Background()
	board := f.board(t)
	columns := []string{board.Columns[0].ID, board.Columns[1].ID, board.Columns[2].ID}

	var (
		mu  sync.Mutex
		ids []string
	)
	for _, c := range columns {
		ids = append(ids, f.addTasks(t, c, 3)...)
	}
	pick := func(rng *rand.Rand) string {
		mu.Lock()
		defer mu.Unlock()
		return ids[rng.Intn(len(ids))]
	}

	const (
		workers = 16
		steps   = 20
	)
	var wg sync.WaitGroup
	errs := make(chan error, workers*steps)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(seed))
			for i := 0; i < steps; i++ {
				var err error
				switch rng.Intn(3) {
				case 0:
					_, err = f.tasks.MoveTask(ctx, pick(rng), columns[rng.Intn(len(columns))], rng.Intn(8))
				case 1:
					_, err = f.columns.ReorderColumn(ctx, columns[rng.Intn(len(columns))], rng.Intn(3))
				default:
					var task *model.Task
					task, err = f.tasks.CreateTask(ctx, CreateTaskInput{
						ColumnID: columns[rng.Intn(len(columns))],
						Title:    "concurrent",
						Position: intPtr(rng.Intn(6)),
					})
					if err == nil {
						mu.Lock()
						ids = append(ids, task.ID)
						mu.Unlock()
					}
				}
				if err != nil {
					errs <- err
				}
			}
		}(int64(w + 1))
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("concurrent operation failed: %v", err)
	}

	f.columnOrder(t, board.ID)
	total := 0
	for _, c := range columns {
		total += len(f.taskOrder(t, c))
	}
	assert.Equal(t, len(ids), total)
}

func TestRandomColumnOperationsKeepPositionsContiguous(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	board := f.board(t)
	rng := rand.New(rand.NewSource(11))

	for step := 0; step < 60; step++ {
		order := f.columnOrder(t, board.ID)
		switch op := rng.Intn(3); {
		case op == 0 || len(order) < 2:
			var at *int
			if rng.Intn(2) == 0 {
				at = intPtr(rng.Intn(len(order) + 2))
			}
			_, err := f.columns.CreateColumn(ctx, board.ID, CreateColumnInput{Name: "c", Position: at})
			require.NoError(t, err)
		case op == 1:
			require.NoError(t, f.columns.DeleteColumn(ctx, board.ID, order[rng.Intn(len(order))]))
		default:
			_, err := f.columns.ReorderColumn(ctx, order[rng.Intn(len(order))], rng.Intn(len(order)))
			require.NoError(t, err)
		}
	}
	f.columnOrder(t, board.ID)
}

func TestOwnershipChecks(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	board := f.board(t)
	tasks := f.addTasks(t, board.Columns[0].ID, 1)
	ownership := NewOwnershipService(f.store)

	assert.NoError(t, ownership.CheckBoard(ctx, f.user.ID, board.ID))
	assert.NoError(t, ownership.CheckColumn(ctx, f.user.ID, board.Columns[0].ID))
	assert.NoError(t, ownership.CheckTask(ctx, f.user.ID, tasks[0]))

	stranger := uuid.NewString()
	assert.ErrorIs(t, ownership.CheckBoard(ctx, stranger, board.ID), apperrors.ErrForbidden)
	assert.ErrorIs(t, ownership.CheckColumn(ctx, stranger, board.Columns[0].ID), apperrors.ErrForbidden)
	assert.ErrorIs(t, ownership.CheckTask(ctx, stranger, tasks[0]), apperrors.ErrForbidden)

	assert.ErrorIs(t, ownership.CheckBoard(ctx, f.user.ID, "missing"), apperrors.ErrBoardNotFound)
	assert.ErrorIs(t, ownership.CheckTask(ctx, f.user.ID, "missing"), apperrors.ErrTaskNotFound)
}

func TestRepairBoardRenumbersPositions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	board := f.board(t)
	c := f.columnOrder(t, board.ID)
	tasks := f.addTasks(t, c[0], 3)

	require.NoError(t, f.store.Columns().Update(ctx, c[2], map[string]interface{}{"position": 9}))
	require.NoError(t, f.store.Tasks().Update(ctx, tasks[0], map[string]interface{}{"position": 5}))

	report, err := NewRepairService(f.store, zap.NewNop()).RepairAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Boards)
	assert.Equal(t, 3, report.Columns)
	assert.Equal(t, 4, report.Fixed)

	assert.Equal(t, c, f.columnOrder(t, board.ID))
	assert.Equal(t, []string{tasks[1], tasks[2], tasks[0]}, f.taskOrder(t, c[0]))
}

func TestRepairBoardRejectsUnknownBoard(t *testing.T) {
	f := newFixture(t)

	_, _, err := NewRepairService(f.store, zap.NewNop()).RepairBoard(context.Background(), "missing")
	assert.ErrorIs(t, err, apperrors.ErrBoardNotFound)
}

func TestParseDueDate(t *testing.T) {
	got, err := ParseDueDate(nil)
	require.NoError(t, err)
	assert.Nil(t, got)

	blank := "  "
	got, err = ParseDueDate(&blank)
	require.NoError(t, err)
	assert.Nil(t, got)

	stamp := "2026-01-02T15:04:05+02:00"
	got, err = ParseDueDate(&stamp)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 1, 2, 13, 4, 5, 0, time.UTC), *got)
}
