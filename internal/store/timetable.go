package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"classbell/internal/domain"
)

type timetableRepo sqliteStore

func (r *timetableRepo) StartingBetween(ctx context.Context, day, from, to time.Time) ([]domain.TimetableEntry, error) {
	dayStr := day.In(r.loc).Format(dateLayout)
	fromStr := from.In(r.loc).Format(timeLayout)
	toStr := to.In(r.loc).Format(timeLayout)
	// A window reaching past midnight would wrap the time string and break
	// BETWEEN; entries after midnight carry tomorrow's date and are picked
	// up once the day rolls over.
	if to.In(r.loc).Format(dateLayout) != dayStr {
		toStr = "23:59:59"
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT t.id, t.label, t.course, c.name,
		       COALESCE(c.department, 0), COALESCE(c.level, 0),
		       COALESCE(r.name, ''), t.recurring,
		       t.date, t.time_start, t.time_end, COALESCE(t.created_by, 0)
		FROM timetable t
		JOIN course c ON t.course = c.id
		LEFT JOIN room r ON t.room = r.id
		WHERE t.date = ? AND t.time_start BETWEEN ? AND ?
		ORDER BY t.time_start, t.id`,
		dayStr, fromStr, toStr,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.TimetableEntry
	for rows.Next() {
		var (
			e          domain.TimetableEntry
			recurring  int
			date       string
			start, end string
		)
		if err := rows.Scan(
			&e.ID, &e.Label, &e.CourseID, &e.CourseName,
			&e.DepartmentID, &e.Level,
			&e.RoomName, &recurring,
			&date, &start, &end, &e.CreatedBy,
		); err != nil {
			return nil, err
		}
		e.Recurring = recurring != 0
		e.StartsAt, err = combineCivil(date, start, r.loc)
		if err != nil {
			return nil, fmt.Errorf("timetable %d: %w", e.ID, err)
		}
		e.EndsAt, err = combineCivil(date, end, r.loc)
		if err != nil {
			return nil, fmt.Errorf("timetable %d: %w", e.ID, err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *timetableRepo) RollForwardRecurring(ctx context.Context, day time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE timetable
		SET date = date(date, '+7 day')
		WHERE recurring = 1 AND date = ?`,
		day.In(r.loc).Format(dateLayout),
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// combineCivil joins a stored date and time-of-day into an instant in loc.
func combineCivil(date, tod string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(dateLayout+" "+timeLayout, date+" "+tod, loc)
	if err != nil {
		// Some writers store HH:MM without seconds.
		t2, err2 := time.ParseInLocation(dateLayout+" 15:04", date+" "+tod, loc)
		if err2 != nil {
			return time.Time{}, err
		}
		return t2, nil
	}
	return t, nil
}

// ---- write helpers (used by seeding and tests) ----

func (r *timetableRepo) InsertEntry(ctx context.Context, label string, courseID int64, roomID sql.NullInt64, day time.Time, start, end string, recurring bool, createdBy int64) (int64, error) {
	rec := 0
	if recurring {
		rec = 1
	}
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO timetable(label, course, room, date, time_start, time_end, recurring, created_by)
		VALUES(?,?,?,?,?,?,?,?)`,
		label, courseID, roomID, day.In(r.loc).Format(dateLayout), start, end, rec, createdBy,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *timetableRepo) EntryDate(ctx context.Context, id int64) (string, error) {
	var date string
	err := r.db.QueryRowContext(ctx, `SELECT date FROM timetable WHERE id = ?`, id).Scan(&date)
	return date, err
}
