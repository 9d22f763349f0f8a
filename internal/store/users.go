package store

import (
	"context"
	"database/sql"

	"classbell/internal/domain"
)

type userRepo sqliteStore

func (r *userRepo) ActiveStudents(ctx context.Context, departmentID int64, level int) ([]domain.User, error) {
	return r.queryUsers(ctx, `
		SELECT u.id, u.name, u.role, ud.department_id, COALESCE(u.level, 0), u.status, COALESCE(u.push_token, '')
		FROM users u
		JOIN user_department ud ON ud.user_id = u.id
		WHERE u.role = 'student' AND u.status = 'ACTIVE'
		  AND ud.department_id = ? AND u.level = ?
		ORDER BY u.id`,
		departmentID, level,
	)
}

func (r *userRepo) ActiveLecturers(ctx context.Context, departmentID int64) ([]domain.User, error) {
	return r.queryUsers(ctx, `
		SELECT u.id, u.name, u.role, ud.department_id, COALESCE(u.level, 0), u.status, COALESCE(u.push_token, '')
		FROM users u
		JOIN user_department ud ON ud.user_id = u.id
		WHERE u.role = 'lecturer' AND u.status = 'ACTIVE'
		  AND ud.department_id = ?
		ORDER BY u.id`,
		departmentID,
	)
}

func (r *userRepo) ActiveCarryOver(ctx context.Context, courseID int64) ([]domain.User, error) {
	return r.queryUsers(ctx, `
		SELECT u.id, u.name, u.role, COALESCE(ud.department_id, 0), COALESCE(u.level, 0), u.status, COALESCE(u.push_token, '')
		FROM users u
		JOIN carry_over co ON co.user_id = u.id
		LEFT JOIN user_department ud ON ud.user_id = u.id
		WHERE co.course_id = ? AND u.status = 'ACTIVE'
		ORDER BY u.id`,
		courseID,
	)
}

func (r *userRepo) queryUsers(ctx context.Context, query string, args ...any) ([]domain.User, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.User
	for rows.Next() {
		var (
			u    domain.User
			role string
			stat string
		)
		if err := rows.Scan(&u.ID, &u.Name, &role, &u.DepartmentID, &u.Level, &stat, &u.PushToken); err != nil {
			return nil, err
		}
		u.Role = domain.Role(role)
		u.Status = domain.Status(stat)
		out = append(out, u)
	}
	return out, rows.Err()
}

// ---- write helpers (used by seeding and tests) ----

func (r *userRepo) InsertUser(ctx context.Context, u domain.User) (int64, error) {
	token := sql.NullString{String: u.PushToken, Valid: u.PushToken != ""}
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO users(name, role, level, status, push_token)
		VALUES(?,?,?,?,?)`,
		u.Name, string(u.Role), u.Level, string(u.Status), token,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *userRepo) AddDepartment(ctx context.Context, userID, departmentID int64) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO user_department(user_id, department_id) VALUES(?,?)`,
		userID, departmentID,
	)
	return err
}

func (r *userRepo) AddCarryOver(ctx context.Context, userID, courseID int64) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO carry_over(user_id, course_id) VALUES(?,?)`,
		userID, courseID,
	)
	return err
}
