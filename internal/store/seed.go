package store

import (
	"context"
	"database/sql"
)

// Reference-table helpers for seeding and tests.

func (s *sqliteStore) InsertDepartment(ctx context.Context, name string) (int64, error) {
	res, err := s.db.ExecContext(ctx, `INSERT INTO department(name) VALUES(?)`, name)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (s *sqliteStore) InsertCourse(ctx context.Context, name string, departmentID sql.NullInt64, level sql.NullInt64) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO course(name, department, level) VALUES(?,?,?)`,
		name, departmentID, level,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (s *sqliteStore) InsertRoom(ctx context.Context, name string) (int64, error) {
	res, err := s.db.ExecContext(ctx, `INSERT INTO room(name) VALUES(?)`, name)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}
