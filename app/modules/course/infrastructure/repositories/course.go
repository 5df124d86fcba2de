package coursedb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Black-And-White-Club/frolf-stats/app/shared/dberr"
	"github.com/uptrace/bun"
)

// Impl implements the Repository interface using Bun ORM.
type Impl struct {
	db bun.IDB
}

// NewRepository creates a new course repository.
func NewRepository(db bun.IDB) Repository {
	return &Impl{db: db}
}

// resolveDB returns the provided db handle, falling back to the repository's
// default connection if db is nil.
func (r *Impl) resolveDB(db bun.IDB) bun.IDB {
	if db == nil {
		return r.db
	}
	return db
}

// ListCourses returns a page of courses with their layouts, ordered by id.
func (r *Impl) ListCourses(ctx context.Context, db bun.IDB, skip, limit int) ([]*Course, error) {
	db = r.resolveDB(db)
	var courses []*Course
	err := db.NewSelect().
		Model(&courses).
		Relation("Layouts").
		Order("c.id ASC").
		Offset(skip).
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}
	return courses, nil
}

// GetCourseByID retrieves a course and its layouts.
func (r *Impl) GetCourseByID(ctx context.Context, db bun.IDB, id int64) (*Course, error) {
	db = r.resolveDB(db)
	course := new(Course)
	err := db.NewSelect().
		Model(course).
		Relation("Layouts").
		Where("c.id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get course by id: %w", err)
	}
	return course, nil
}

// GetCourseByName retrieves a course by its unique name.
func (r *Impl) GetCourseByName(ctx context.Context, db bun.IDB, name string) (*Course, error) {
	db = r.resolveDB(db)
	course := new(Course)
	err := db.NewSelect().
		Model(course).
		Relation("Layouts").
		Where("c.name = ?", name).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get course by name: %w", err)
	}
	return course, nil
}

// CreateCourse inserts the course, then each layout and its holes. Callers
// wanting atomicity pass a transaction.
func (r *Impl) CreateCourse(ctx context.Context, db bun.IDB, course *Course) error {
	db = r.resolveDB(db)
	if _, err := db.NewInsert().Model(course).Returning("id").Exec(ctx); err != nil {
		if dberr.IsUniqueViolation(err) {
			return ErrDuplicateName
		}
		return fmt.Errorf("failed to insert course: %w", err)
	}

	for _, layout := range course.Layouts {
		layout.CourseID = course.ID
		if err := r.CreateLayout(ctx, db, layout); err != nil {
			return err
		}
	}
	return nil
}

// UpdateCourse overwrites every course column. Layouts are untouched.
func (r *Impl) UpdateCourse(ctx context.Context, db bun.IDB, course *Course) error {
	db = r.resolveDB(db)
	res, err := db.NewUpdate().
		Model(course).
		ExcludeColumn("id").
		WherePK().
		Exec(ctx)
	if err != nil {
		if dberr.IsUniqueViolation(err) {
			return ErrDuplicateName
		}
		return fmt.Errorf("failed to update course: %w", err)
	}
	return checkAffected(res, ErrNotFound)
}

// DeleteCourse removes a course; layouts and holes cascade.
func (r *Impl) DeleteCourse(ctx context.Context, db bun.IDB, id int64) error {
	db = r.resolveDB(db)
	res, err := db.NewDelete().
		Model((*Course)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete course: %w", err)
	}
	return checkAffected(res, ErrNotFound)
}

// ListLayouts returns a page of layouts plus the total layout count.
func (r *Impl) ListLayouts(ctx context.Context, db bun.IDB, skip, limit int) ([]*CourseLayout, int, error) {
	db = r.resolveDB(db)
	var layouts []*CourseLayout
	count, err := db.NewSelect().
		Model(&layouts).
		Order("cl.id ASC").
		Offset(skip).
		Limit(limit).
		ScanAndCount(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list course layouts: %w", err)
	}
	return layouts, count, nil
}

// ListLayoutsByCourse returns every layout of one course.
func (r *Impl) ListLayoutsByCourse(ctx context.Context, db bun.IDB, courseID int64) ([]*CourseLayout, error) {
	db = r.resolveDB(db)
	var layouts []*CourseLayout
	err := db.NewSelect().
		Model(&layouts).
		Where("cl.course_id = ?", courseID).
		Order("cl.id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list layouts for course: %w", err)
	}
	return layouts, nil
}

// GetLayoutByID retrieves a layout with its holes ordered by hole number.
func (r *Impl) GetLayoutByID(ctx context.Context, db bun.IDB, id int64) (*CourseLayout, error) {
	db = r.resolveDB(db)
	layout := new(CourseLayout)
	err := db.NewSelect().
		Model(layout).
		Relation("Holes", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Order("h.hole_number ASC")
		}).
		Where("cl.id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrLayoutNotFound
		}
		return nil, fmt.Errorf("failed to get course layout: %w", err)
	}
	return layout, nil
}

// CreateLayout inserts a layout and its holes.
func (r *Impl) CreateLayout(ctx context.Context, db bun.IDB, layout *CourseLayout) error {
	db = r.resolveDB(db)
	if _, err := db.NewInsert().Model(layout).Returning("id").Exec(ctx); err != nil {
		if dberr.IsForeignKeyViolation(err) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to insert course layout: %w", err)
	}

	if len(layout.Holes) == 0 {
		return nil
	}
	for _, h := range layout.Holes {
		h.LayoutID = layout.ID
	}
	if _, err := db.NewInsert().Model(&layout.Holes).Returning("id").Exec(ctx); err != nil {
		return fmt.Errorf("failed to insert holes: %w", err)
	}
	return nil
}

// DeleteLayout removes a layout; holes cascade.
func (r *Impl) DeleteLayout(ctx context.Context, db bun.IDB, id int64) error {
	db = r.resolveDB(db)
	res, err := db.NewDelete().
		Model((*CourseLayout)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete course layout: %w", err)
	}
	return checkAffected(res, ErrLayoutNotFound)
}

func checkAffected(res sql.Result, notFound error) error {
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return notFound
	}
	return nil
}
