package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/khangha1908/TodoX/internal/model"
	"github.com/khangha1908/TodoX/internal/repository"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := repository.NewDB(dsn)
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	return db
}

func newTaskFixture(t *testing.T) (*TaskService, *CategoryService, *gorm.DB, *model.User) {
	t.Helper()
	db := newTestDB(t)
	user := &model.User{Username: "alice", Email: "alice@example.com", PasswordHash: "x"}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}

	taskRepo := repository.NewTaskRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	return NewTaskService(taskRepo, categoryRepo), NewCategoryService(categoryRepo, taskRepo), db, user
}

func backdate(t *testing.T, db *gorm.DB, task *model.Task, at time.Time) {
	t.Helper()
	if err := db.Model(task).Update("created_at", at).Error; err != nil {
		t.Fatalf("backdate task: %v", err)
	}
}

func TestBucketStart(t *testing.T) {
	wednesday := time.Date(2025, 3, 12, 15, 30, 0, 0, time.UTC)
	sunday := time.Date(2025, 3, 16, 9, 0, 0, 0, time.UTC)
	monday := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		filter string
		now    time.Time
		want   *time.Time
	}{
		{"today", FilterToday, wednesday, timePtr(time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC))},
		{"week on wednesday", FilterWeek, wednesday, &monday},
		{"week on sunday goes back six days", FilterWeek, sunday, &monday},
		{"week on monday", FilterWeek, monday.Add(8 * time.Hour), &monday},
		{"month", FilterMonth, wednesday, timePtr(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC))},
		{"all", FilterAll, wednesday, nil},
		{"unknown falls back to all", "yesterday", wednesday, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BucketStart(tt.filter, tt.now)
			switch {
			case tt.want == nil && got != nil:
				t.Fatalf("BucketStart(%q) = %v, want nil", tt.filter, got)
			case tt.want != nil && got == nil:
				t.Fatalf("BucketStart(%q) = nil, want %v", tt.filter, tt.want)
			case tt.want != nil && !got.Equal(*tt.want):
				t.Fatalf("BucketStart(%q) = %v, want %v", tt.filter, got, tt.want)
			}
		})
	}
}

func timePtr(t time.Time) *time.Time { return &t }

func TestListWeekBucket(t *testing.T) {
	svc, _, db, user := newTaskFixture(t)
	ctx := context.Background()

	inWeek, err := svc.Create(ctx, user.ID, TaskInput{Title: "tuesday task"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	backdate(t, db, inWeek, time.Date(2025, 3, 11, 10, 0, 0, 0, time.UTC))

	boundary, err := svc.Create(ctx, user.ID, TaskInput{Title: "monday midnight"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	backdate(t, db, boundary, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC))

	older, err := svc.Create(ctx, user.ID, TaskInput{Title: "previous friday"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	backdate(t, db, older, time.Date(2025, 3, 7, 12, 0, 0, 0, time.UTC))

	wednesday := time.Date(2025, 3, 12, 15, 0, 0, 0, time.UTC)
	result, err := svc.List(ctx, user.ID, ListInput{Filter: FilterWeek}, wednesday)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(result.Tasks) != 2 {
		t.Fatalf("week list on wednesday returned %d tasks, want 2", len(result.Tasks))
	}
	for _, task := range result.Tasks {
		if task.ID == older.ID {
			t.Fatalf("task from previous friday leaked into week bucket")
		}
	}

	// Sunday reaches back to the same Monday, six days, not one.
	sunday := time.Date(2025, 3, 16, 9, 0, 0, 0, time.UTC)
	result, err = svc.List(ctx, user.ID, ListInput{Filter: FilterWeek}, sunday)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(result.Tasks) != 2 {
		t.Fatalf("week list on sunday returned %d tasks, want 2", len(result.Tasks))
	}
}

func TestListCountsMatchPredicate(t *testing.T) {
	svc, catSvc, _, user := newTaskFixture(t)
	ctx := context.Background()

	category, err := catSvc.Create(ctx, user.ID, CategoryInput{Name: "work"})
	if err != nil {
		t.Fatalf("create category: %v", err)
	}

	if _, err := svc.Create(ctx, user.ID, TaskInput{Title: "in work", CategoryID: &category.ID}); err != nil {
		t.Fatalf("create: %v", err)
	}
	loose, err := svc.Create(ctx, user.ID, TaskInput{Title: "no category"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Update(ctx, user.ID, loose.ID, TaskPatch{
		Status: model.StatusComplete, SetStatus: true,
	}); err != nil {
		t.Fatalf("update: %v", err)
	}

	now := time.Now()

	result, err := svc.List(ctx, user.ID, ListInput{Filter: FilterAll, NoCategory: true}, now)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(result.Tasks) != 1 || result.Tasks[0].ID != loose.ID {
		t.Fatalf("none filter returned wrong tasks: %+v", result.Tasks)
	}
	if result.ActiveCount != 0 || result.CompleteCount != 1 {
		t.Fatalf("counts over none filter = %d/%d, want 0/1", result.ActiveCount, result.CompleteCount)
	}

	result, err = svc.List(ctx, user.ID, ListInput{Filter: FilterAll, CategoryID: &category.ID}, now)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(result.Tasks) != 1 {
		t.Fatalf("category filter returned %d tasks, want 1", len(result.Tasks))
	}
	if result.Tasks[0].Category == nil || result.Tasks[0].Category.Name != "work" {
		t.Fatalf("task category not populated: %+v", result.Tasks[0].Category)
	}
	if result.ActiveCount != 1 || result.CompleteCount != 0 {
		t.Fatalf("counts over category filter = %d/%d, want 1/0", result.ActiveCount, result.CompleteCount)
	}
}

func TestCreateRejectsForeignCategory(t *testing.T) {
	svc, _, db, user := newTaskFixture(t)
	ctx := context.Background()

	other := &model.User{Username: "bob", Email: "bob@example.com", PasswordHash: "x"}
	if err := db.Create(other).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	foreign := &model.Category{UserID: other.ID, Name: "theirs", Color: model.DefaultCategoryColor}
	if err := db.Create(foreign).Error; err != nil {
		t.Fatalf("create category: %v", err)
	}

	if _, err := svc.Create(ctx, user.ID, TaskInput{Title: "sneaky", CategoryID: &foreign.ID}); !errors.Is(err, ErrBadCategory) {
		t.Fatalf("create with foreign category: err = %v, want ErrBadCategory", err)
	}
}

func TestUpdatePartialFields(t *testing.T) {
	svc, _, _, user := newTaskFixture(t)
	ctx := context.Background()

	task, err := svc.Create(ctx, user.ID, TaskInput{Title: "write report", Description: "quarterly"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if task.Priority != model.PriorityMedium {
		t.Fatalf("default priority = %q, want medium", task.Priority)
	}

	done := time.Date(2025, 3, 12, 17, 0, 0, 0, time.UTC)
	updated, err := svc.Update(ctx, user.ID, task.ID, TaskPatch{
		Status: model.StatusComplete, SetStatus: true,
		CompletedAt: &done, SetDone: true,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Status != model.StatusComplete || updated.CompletedAt == nil || !updated.CompletedAt.Equal(done) {
		t.Fatalf("completion not recorded: status=%q completedAt=%v", updated.Status, updated.CompletedAt)
	}
	if updated.Title != "write report" || updated.Description != "quarterly" {
		t.Fatalf("unsupplied fields changed: %+v", updated)
	}

	// Reverting to active clears completedAt when the caller sends it as null.
	reverted, err := svc.Update(ctx, user.ID, task.ID, TaskPatch{
		Status: model.StatusActive, SetStatus: true,
		CompletedAt: nil, SetDone: true,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if reverted.Status != model.StatusActive || reverted.CompletedAt != nil {
		t.Fatalf("revert left completedAt=%v", reverted.CompletedAt)
	}
}

func TestDeleteTwice(t *testing.T) {
	svc, _, _, user := newTaskFixture(t)
	ctx := context.Background()

	task, err := svc.Create(ctx, user.ID, TaskInput{Title: "one shot"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	removed, err := svc.Delete(ctx, user.ID, task.ID)
	if err != nil {
		t.Fatalf("first delete: %v", err)
	}
	if removed.ID != task.ID {
		t.Fatalf("first delete returned task %d, want %d", removed.ID, task.ID)
	}

	if _, err := svc.Delete(ctx, user.ID, task.ID); !errors.Is(err, ErrTaskNotFound) {
		t.Fatalf("second delete: err = %v, want ErrTaskNotFound", err)
	}
}

func TestBulkOperationsScopedToOwner(t *testing.T) {
	svc, _, db, user := newTaskFixture(t)
	ctx := context.Background()

	other := &model.User{Username: "bob", Email: "bob@example.com", PasswordHash: "x"}
	if err := db.Create(other).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}

	mine1, err := svc.Create(ctx, user.ID, TaskInput{Title: "mine 1"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	mine2, err := svc.Create(ctx, user.ID, TaskInput{Title: "mine 2"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	theirs, err := svc.Create(ctx, other.ID, TaskInput{Title: "theirs"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	done := time.Now().UTC().Truncate(time.Second)
	count, err := svc.BulkUpdate(ctx, user.ID, []uint{mine1.ID, mine2.ID, theirs.ID}, BulkPatch{
		Status: model.StatusComplete, SetStatus: true,
		CompletedAt: &done, SetDone: true,
	})
	if err != nil {
		t.Fatalf("bulk update: %v", err)
	}
	if count != 2 {
		t.Fatalf("bulk update touched %d rows, want 2", count)
	}

	untouched, err := svc.taskRepo.FindByID(ctx, other.ID, theirs.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if untouched.Status != model.StatusActive || untouched.CompletedAt != nil {
		t.Fatalf("foreign task was modified: %+v", untouched)
	}

	deleted, err := svc.BulkDelete(ctx, user.ID, []uint{mine1.ID, mine2.ID, theirs.ID})
	if err != nil {
		t.Fatalf("bulk delete: %v", err)
	}
	if deleted != 2 {
		t.Fatalf("bulk delete removed %d rows, want 2", deleted)
	}

	if _, err := svc.BulkDelete(ctx, user.ID, nil); !errors.Is(err, ErrEmptyIDList) {
		t.Fatalf("empty bulk delete: err = %v, want ErrEmptyIDList", err)
	}
	if _, err := svc.BulkUpdate(ctx, user.ID, []uint{}, BulkPatch{}); !errors.Is(err, ErrEmptyIDList) {
		t.Fatalf("empty bulk update: err = %v, want ErrEmptyIDList", err)
	}
}
