package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const sqliteTimeLayout = time.RFC3339Nano

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) (*SQLiteRepository, error) {
	if db == nil {
		return nil, errors.New("storage: nil db")
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	return &SQLiteRepository{db: db}, nil
}

func OpenSQLite(path string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	repo, err := NewSQLiteRepository(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return repo, nil
}

func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func (r *SQLiteRepository) DB() *sql.DB {
	return r.db
}

func (r *SQLiteRepository) CreateTask(ctx context.Context, in Task) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO tasks (id, name, tag_id, date, complete, sort_order, assignee_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		in.ID, in.Name, in.TagID, mustTime(in.Date), boolInt(in.Complete),
		in.SortOrder, in.AssigneeID, mustTime(in.CreatedAt),
	)
	return err
}

func (r *SQLiteRepository) GetTask(ctx context.Context, id string) (Task, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, tag_id, date, complete, sort_order, assignee_id, created_at
		FROM tasks WHERE id = ?`, id)
	task, err := scanTask(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Task{}, ErrNotFound
		}
		return Task{}, err
	}
	return task, nil
}

func (r *SQLiteRepository) UpdateTask(ctx context.Context, in Task) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE tasks
		SET name = ?, tag_id = ?, date = ?, complete = ?, sort_order = ?, assignee_id = ?
		WHERE id = ?`,
		in.Name, in.TagID, mustTime(in.Date), boolInt(in.Complete),
		in.SortOrder, in.AssigneeID, in.ID,
	)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

func (r *SQLiteRepository) DeleteTask(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

func (r *SQLiteRepository) ListTasks(ctx context.Context, filter TaskListFilter) ([]Task, error) {
	query := `SELECT id, name, tag_id, date, complete, sort_order, assignee_id, created_at FROM tasks`
	args := make([]any, 0, 3)
	if filter.TagID != "" {
		query += ` WHERE tag_id = ?`
		args = append(args, filter.TagID)
	}
	query += ` ORDER BY sort_order ASC`
	query += applyPagination(&args, filter.Limit, filter.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Task, 0)
	for rows.Next() {
		task, scanErr := scanTask(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		out = append(out, task)
	}
	return out, rows.Err()
}

// ReplaceSubtasks rewrites a task's checklist in one transaction. Subtasks
// cannot outlive their parent, so whole-list replacement keeps positions
// dense without diffing.
func (r *SQLiteRepository) ReplaceSubtasks(ctx context.Context, taskID string, subs []Subtask) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM subtasks WHERE task_id = ?`, taskID); err != nil {
		return err
	}
	for i, sub := range subs {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO subtasks (id, task_id, name, complete, position)
			VALUES (?, ?, ?, ?, ?)`,
			sub.ID, taskID, sub.Name, boolInt(sub.Complete), i,
		)
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *SQLiteRepository) ListSubtasks(ctx context.Context, taskID string) ([]Subtask, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, task_id, name, complete, position
		FROM subtasks WHERE task_id = ? ORDER BY position ASC`, taskID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Subtask, 0)
	for rows.Next() {
		var sub Subtask
		var complete int
		if err := rows.Scan(&sub.ID, &sub.TaskID, &sub.Name, &complete, &sub.Position); err != nil {
			return nil, err
		}
		sub.Complete = complete != 0
		out = append(out, sub)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) CreateTag(ctx context.Context, in Tag) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO tags (id, name, color, created_at)
		VALUES (?, ?, ?, ?)`,
		in.ID, in.Name, in.Color, mustTime(in.CreatedAt),
	)
	return err
}

func (r *SQLiteRepository) GetTag(ctx context.Context, id string) (Tag, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, color, created_at FROM tags WHERE id = ?`, id)
	tag, err := scanTag(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Tag{}, ErrNotFound
		}
		return Tag{}, err
	}
	return tag, nil
}

func (r *SQLiteRepository) UpdateTag(ctx context.Context, in Tag) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE tags SET name = ?, color = ? WHERE id = ?`,
		in.Name, in.Color, in.ID,
	)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

func (r *SQLiteRepository) DeleteTag(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tags WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

func (r *SQLiteRepository) ListTags(ctx context.Context, filter TagListFilter) ([]Tag, error) {
	query := `SELECT id, name, color, created_at FROM tags ORDER BY created_at ASC, id ASC`
	args := make([]any, 0, 2)
	query += applyPagination(&args, filter.Limit, filter.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Tag, 0)
	for rows.Next() {
		tag, scanErr := scanTag(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		out = append(out, tag)
	}
	return out, rows.Err()
}

// ReplaceFocus rewrites the persisted focus queue ordering wholesale; the
// queue is small and user-ordered, so positional rewrite beats diffing.
func (r *SQLiteRepository) ReplaceFocus(ctx context.Context, entries []FocusEntry) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM focus_queue`); err != nil {
		return err
	}
	for i, entry := range entries {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO focus_queue (task_id, position) VALUES (?, ?)`,
			entry.TaskID, i,
		)
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *SQLiteRepository) ListFocus(ctx context.Context) ([]FocusEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT task_id, position FROM focus_queue ORDER BY position ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]FocusEntry, 0)
	for rows.Next() {
		var entry FocusEntry
		if err := rows.Scan(&entry.TaskID, &entry.Position); err != nil {
			return nil, err
		}
		out = append(out, entry)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) LoadSnapshot(ctx context.Context) (Snapshot, error) {
	var snap Snapshot
	tasks, err := r.ListTasks(ctx, TaskListFilter{})
	if err != nil {
		return Snapshot{}, fmt.Errorf("load tasks: %w", err)
	}
	snap.Tasks = tasks
	for _, task := range tasks {
		subs, err := r.ListSubtasks(ctx, task.ID)
		if err != nil {
			return Snapshot{}, fmt.Errorf("load subtasks for %s: %w", task.ID, err)
		}
		snap.Subtasks = append(snap.Subtasks, subs...)
	}
	tags, err := r.ListTags(ctx, TagListFilter{})
	if err != nil {
		return Snapshot{}, fmt.Errorf("load tags: %w", err)
	}
	snap.Tags = tags
	focus, err := r.ListFocus(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("load focus queue: %w", err)
	}
	snap.Focus = focus
	return snap, nil
}

func mustTime(v time.Time) string {
	return v.UTC().Format(sqliteTimeLayout)
}

func parseRequiredTime(v string) (time.Time, error) {
	return time.Parse(sqliteTimeLayout, v)
}

func boolInt(v bool) int {
	if v {
		return 1
	}
	return 0
}

func applyPagination(args *[]any, limit, offset int) string {
	sql := ""
	if limit > 0 {
		sql += " LIMIT ?"
		*args = append(*args, limit)
	}
	if offset > 0 {
		sql += " OFFSET ?"
		*args = append(*args, offset)
	}
	return sql
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTask(s scanner) (Task, error) {
	var out Task
	var date string
	var complete int
	var created string
	if err := s.Scan(&out.ID, &out.Name, &out.TagID, &date, &complete, &out.SortOrder, &out.AssigneeID, &created); err != nil {
		return Task{}, err
	}
	parsedDate, err := parseRequiredTime(date)
	if err != nil {
		return Task{}, err
	}
	createdAt, err := parseRequiredTime(created)
	if err != nil {
		return Task{}, err
	}
	out.Date = parsedDate
	out.Complete = complete != 0
	out.CreatedAt = createdAt
	return out, nil
}

func scanTag(s scanner) (Tag, error) {
	var out Tag
	var created string
	if err := s.Scan(&out.ID, &out.Name, &out.Color, &created); err != nil {
		return Tag{}, err
	}
	createdAt, err := parseRequiredTime(created)
	if err != nil {
		return Tag{}, err
	}
	out.CreatedAt = createdAt
	return out, nil
}

func checkRowsAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
