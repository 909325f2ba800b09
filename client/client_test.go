package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/khangha1908/TodoX/internal/config"
	"github.com/khangha1908/TodoX/internal/repository"
	"github.com/khangha1908/TodoX/internal/server"
	"github.com/khangha1908/TodoX/internal/service"
)

func newTestAPI(t *testing.T) *Client {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := repository.NewDB(dsn)
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	userRepo := repository.NewUserRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	templateRepo := repository.NewTemplateRepository(db)

	cfg := config.Config{JWTSecret: "test-secret", TokenTTL: time.Hour}
	srv := server.New(cfg,
		service.NewAuthService(userRepo, cfg.JWTSecret, cfg.TokenTTL),
		service.NewCategoryService(categoryRepo, taskRepo),
		service.NewTaskService(taskRepo, categoryRepo),
		service.NewTemplateService(templateRepo, categoryRepo),
		service.NewReminderService(taskRepo, userRepo),
	)

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return New(ts.URL)
}

func TestClientFullFlow(t *testing.T) {
	c := newTestAPI(t)
	ctx := context.Background()

	auth, err := c.Register(ctx, "alice", "alice@example.com", "hunter2")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if auth.User.Username != "alice" || auth.Token == "" {
		t.Fatalf("register response = %+v", auth)
	}

	profile, err := c.Profile(ctx)
	if err != nil {
		t.Fatalf("profile: %v", err)
	}
	if profile.Email != "alice@example.com" {
		t.Fatalf("profile email = %q", profile.Email)
	}

	category, err := c.CreateCategory(ctx, CategoryInput{Name: "work", Color: "#ff0000"})
	if err != nil {
		t.Fatalf("create category: %v", err)
	}

	due := time.Now().Add(2 * time.Hour).UTC().Truncate(time.Second)
	task, err := c.CreateTask(ctx, TaskInput{
		Title:    "write report",
		Category: &category.ID,
		DueDate:  &due,
		Priority: "high",
	})
	if err != nil {
		t.Fatalf("create task: %v", err)
	}
	if task.Category == nil || task.Category.ID != category.ID {
		t.Fatalf("task category not populated: %+v", task.Category)
	}

	list, err := c.Tasks(ctx, "all", strconv.FormatUint(uint64(category.ID), 10))
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list.Tasks) != 1 || list.ActiveCount != 1 {
		t.Fatalf("list = %+v", list)
	}

	dueSoon, err := c.DueSoon(ctx)
	if err != nil {
		t.Fatalf("due soon: %v", err)
	}
	if len(dueSoon) != 1 || dueSoon[0].ID != task.ID {
		t.Fatalf("due soon = %+v", dueSoon)
	}

	updated, err := c.UpdateTask(ctx, task.ID, map[string]interface{}{
		"status":      "complete",
		"completedAt": time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("update task: %v", err)
	}
	if updated.Status != "complete" || updated.CompletedAt == nil {
		t.Fatalf("update result = %+v", updated)
	}

	removed, err := c.DeleteTask(ctx, task.ID)
	if err != nil {
		t.Fatalf("delete task: %v", err)
	}
	if removed.ID != task.ID {
		t.Fatalf("delete returned task %d", removed.ID)
	}

	if _, err := c.DeleteTask(ctx, task.ID); err == nil {
		t.Fatal("second delete succeeded, want 404")
	} else {
		var apiErr *APIError
		if !errors.As(err, &apiErr) || apiErr.Status != http.StatusNotFound {
			t.Fatalf("second delete err = %v, want 404 APIError", err)
		}
	}
}

func TestClientTemplateInstantiation(t *testing.T) {
	c := newTestAPI(t)
	ctx := context.Background()

	if _, err := c.Register(ctx, "alice", "alice@example.com", "hunter2"); err != nil {
		t.Fatalf("register: %v", err)
	}

	category, err := c.CreateCategory(ctx, CategoryInput{Name: "chores"})
	if err != nil {
		t.Fatalf("create category: %v", err)
	}

	due := time.Now().Add(72 * time.Hour).UTC().Truncate(time.Second)
	template, err := c.CreateTemplate(ctx, TemplateInput{
		Name:        "weekly cleanup",
		Title:       "clean the kitchen",
		Category:    &category.ID,
		DueDate:     &due,
		Priority:    "low",
		Description: "every saturday",
	})
	if err != nil {
		t.Fatalf("create template: %v", err)
	}

	// Instantiation is a local copy followed by an ordinary task create.
	task, err := c.CreateTask(ctx, NewTaskFromTemplate(*template))
	if err != nil {
		t.Fatalf("create task from template: %v", err)
	}
	if task.Title != template.Title || task.Priority != template.Priority || task.Description != template.Description {
		t.Fatalf("instantiated task %+v does not mirror template %+v", task, template)
	}
	if task.Category == nil || task.Category.ID != category.ID {
		t.Fatalf("instantiated task lost the category: %+v", task.Category)
	}
	if task.Status != "active" {
		t.Fatalf("instantiated task status = %q, want active", task.Status)
	}
}
