package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/examtrack/backend/internal/domain/exam"
)

const dateLayout = "2006-01-02"

// SQLStore implements Store on top of database/sql. The same queries run on
// SQLite and Postgres; placeholders are rebound per driver.
type SQLStore struct {
	db     *sql.DB
	driver Driver
}

func NewSQLStore(db *sql.DB, driver Driver) *SQLStore {
	return &SQLStore{db: db, driver: driver}
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}

func (s *SQLStore) q(query string) string {
	return rebind(s.driver, query)
}

// withTx runs fn inside a transaction and commits when fn returns nil.
func (s *SQLStore) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

// ============================================================================
// Exams
// ============================================================================

const examColumns = `id, title, board, exam_date, total_questions, scoring_policy, kind,
    candidates, user_answers, preliminary_key, definitive_key, percentage, created_at`

func (s *SQLStore) SaveExam(ctx context.Context, e *exam.Exam) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, s.q(`INSERT INTO exams (`+examColumns+`)
            VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`),
			e.ID, e.Title, e.Board, e.Date.Format(dateLayout), e.TotalQuestions,
			string(e.Policy), string(e.Kind), nullInt(e.Candidates),
			e.UserAnswers, e.PreliminaryKey, e.DefinitiveKey,
			nullFloat(e.Percentage), e.CreatedAt.Unix(),
		)
		if err != nil {
			return err
		}
		if err := s.insertSubjects(ctx, tx, e.ID, e.Subjects); err != nil {
			return err
		}
		return s.insertResults(ctx, tx, e.ID, e.Results)
	})
}

func (s *SQLStore) GetExam(ctx context.Context, id string) (*exam.Exam, error) {
	row := s.db.QueryRowContext(ctx, s.q(`SELECT `+examColumns+` FROM exams WHERE id = ?`), id)
	e, err := scanExam(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := s.loadChildren(ctx, []*exam.Exam{e}); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *SQLStore) ListExams(ctx context.Context, opts ListOptions) ([]*exam.Exam, error) {
	var (
		where []string
		args  []any
	)
	if opts.Kind != "" {
		where = append(where, "kind = ?")
		args = append(args, string(opts.Kind))
	}
	if b := strings.TrimSpace(opts.Board); b != "" {
		where = append(where, "LOWER(board) = ?")
		args = append(args, strings.ToLower(b))
	}
	if opts.Year > 0 {
		where = append(where, "exam_date >= ? AND exam_date < ?")
		args = append(args, fmt.Sprintf("%04d-01-01", opts.Year), fmt.Sprintf("%04d-01-01", opts.Year+1))
	}

	query := `SELECT ` + examColumns + ` FROM exams`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY exam_date DESC, created_at DESC"

	rows, err := s.db.QueryContext(ctx, s.q(query), args...)
	if err != nil {
		return nil, err
	}

	exams := []*exam.Exam{}
	for rows.Next() {
		e, err := scanExam(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		exams = append(exams, e)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	// Release the connection before loading children; SQLite runs with a
	// single connection.
	rows.Close()

	if err := s.loadChildren(ctx, exams); err != nil {
		return nil, err
	}
	return exams, nil
}

// UpdateExam writes e's details. Stored results are cleared, and e's copy
// with them, when the subjects are replaced or any grading input changes.
func (s *SQLStore) UpdateExam(ctx context.Context, e *exam.Exam, replaceSubjects bool) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		var prev gradingInputs
		err := tx.QueryRowContext(ctx, s.q(`SELECT total_questions, user_answers, preliminary_key, definitive_key
            FROM exams WHERE id = ?`), e.ID).
			Scan(&prev.total, &prev.user, &prev.prelim, &prev.defin)
		if err == sql.ErrNoRows {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		result, err := tx.ExecContext(ctx, s.q(`UPDATE exams SET
            title = ?, board = ?, exam_date = ?, total_questions = ?, scoring_policy = ?,
            kind = ?, candidates = ?, user_answers = ?, preliminary_key = ?, definitive_key = ?
            WHERE id = ?`),
			e.Title, e.Board, e.Date.Format(dateLayout), e.TotalQuestions, string(e.Policy),
			string(e.Kind), nullInt(e.Candidates), e.UserAnswers, e.PreliminaryKey, e.DefinitiveKey,
			e.ID,
		)
		if err != nil {
			return err
		}
		if err := requireRow(result); err != nil {
			return err
		}

		if replaceSubjects {
			if _, err := tx.ExecContext(ctx, s.q("DELETE FROM subjects WHERE exam_id = ?"), e.ID); err != nil {
				return err
			}
			if err := s.insertSubjects(ctx, tx, e.ID, e.Subjects); err != nil {
				return err
			}
		}

		if !replaceSubjects && prev == inputsOf(e) {
			return nil
		}
		if err := s.clearGrading(ctx, tx, e.ID); err != nil {
			return err
		}
		e.Results = []exam.Result{}
		e.Percentage = nil
		return nil
	})
}

// gradingInputs are the stored columns a grading run reads.
type gradingInputs struct {
	total               int
	user, prelim, defin string
}

func inputsOf(e *exam.Exam) gradingInputs {
	return gradingInputs{
		total:  e.TotalQuestions,
		user:   e.UserAnswers,
		prelim: e.PreliminaryKey,
		defin:  e.DefinitiveKey,
	}
}

func (s *SQLStore) DeleteExam(ctx context.Context, id string) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, s.q("DELETE FROM results WHERE exam_id = ?"), id); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, s.q("DELETE FROM subjects WHERE exam_id = ?"), id); err != nil {
			return err
		}
		result, err := tx.ExecContext(ctx, s.q("DELETE FROM exams WHERE id = ?"), id)
		if err != nil {
			return err
		}
		return requireRow(result)
	})
}

// ============================================================================
// Grading
// ============================================================================

func (s *SQLStore) SaveGrading(ctx context.Context, examID string, results []exam.Result, percentage float64) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, s.q("UPDATE exams SET percentage = ? WHERE id = ?"), percentage, examID)
		if err != nil {
			return err
		}
		if err := requireRow(result); err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, s.q("DELETE FROM results WHERE exam_id = ?"), examID); err != nil {
			return err
		}
		return s.insertResults(ctx, tx, examID, results)
	})
}

// ============================================================================
// Helpers
// ============================================================================

func (s *SQLStore) clearGrading(ctx context.Context, tx *sql.Tx, examID string) error {
	if _, err := tx.ExecContext(ctx, s.q("DELETE FROM results WHERE exam_id = ?"), examID); err != nil {
		return err
	}
	_, err := tx.ExecContext(ctx, s.q("UPDATE exams SET percentage = NULL WHERE id = ?"), examID)
	return err
}

func (s *SQLStore) insertSubjects(ctx context.Context, tx *sql.Tx, examID string, subjects []exam.Subject) error {
	for i, sub := range subjects {
		_, err := tx.ExecContext(ctx, s.q(`INSERT INTO subjects
            (id, exam_id, name, question_count, start_question, end_question, position)
            VALUES (?, ?, ?, ?, ?, ?, ?)`),
			sub.ID, examID, sub.Name, sub.QuestionCount, sub.Start, sub.End, i,
		)
		if err != nil {
			return fmt.Errorf("insert subject %q: %w", sub.Name, err)
		}
	}
	return nil
}

func (s *SQLStore) insertResults(ctx context.Context, tx *sql.Tx, examID string, results []exam.Result) error {
	for i, r := range results {
		_, err := tx.ExecContext(ctx, s.q(`INSERT INTO results
            (exam_id, subject_name, correct, incorrect, blank, annulled, position)
            VALUES (?, ?, ?, ?, ?, ?, ?)`),
			examID, r.Subject, r.Correct, r.Incorrect, r.Blank, r.Annulled, i,
		)
		if err != nil {
			return fmt.Errorf("insert result %q: %w", r.Subject, err)
		}
	}
	return nil
}

// loadChildren fills Subjects and Results for every exam with two queries.
func (s *SQLStore) loadChildren(ctx context.Context, exams []*exam.Exam) error {
	if len(exams) == 0 {
		return nil
	}

	byID := make(map[string]*exam.Exam, len(exams))
	args := make([]any, len(exams))
	marks := make([]string, len(exams))
	for i, e := range exams {
		byID[e.ID] = e
		args[i] = e.ID
		marks[i] = "?"
	}
	in := "(" + strings.Join(marks, ", ") + ")"

	rows, err := s.db.QueryContext(ctx, s.q(`SELECT exam_id, id, name, question_count, start_question, end_question
        FROM subjects WHERE exam_id IN `+in+` ORDER BY exam_id, position`), args...)
	if err != nil {
		return err
	}
	for rows.Next() {
		var examID string
		var sub exam.Subject
		if err := rows.Scan(&examID, &sub.ID, &sub.Name, &sub.QuestionCount, &sub.Start, &sub.End); err != nil {
			rows.Close()
			return err
		}
		if e, ok := byID[examID]; ok {
			e.Subjects = append(e.Subjects, sub)
		}
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return err
	}
	rows.Close()

	rows, err = s.db.QueryContext(ctx, s.q(`SELECT exam_id, subject_name, correct, incorrect, blank, annulled
        FROM results WHERE exam_id IN `+in+` ORDER BY exam_id, position`), args...)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var examID string
		var r exam.Result
		if err := rows.Scan(&examID, &r.Subject, &r.Correct, &r.Incorrect, &r.Blank, &r.Annulled); err != nil {
			return err
		}
		if e, ok := byID[examID]; ok {
			e.Results = append(e.Results, r)
		}
	}
	return rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanExam(row scanner) (*exam.Exam, error) {
	var (
		e          exam.Exam
		date       string
		policy     string
		kind       string
		candidates sql.NullInt64
		percentage sql.NullFloat64
		createdAt  int64
	)
	err := row.Scan(
		&e.ID, &e.Title, &e.Board, &date, &e.TotalQuestions, &policy, &kind,
		&candidates, &e.UserAnswers, &e.PreliminaryKey, &e.DefinitiveKey, &percentage, &createdAt,
	)
	if err != nil {
		return nil, err
	}

	e.Date, err = time.Parse(dateLayout, date)
	if err != nil {
		return nil, fmt.Errorf("exam %s: bad date %q: %w", e.ID, date, err)
	}
	e.Policy = exam.ScoringPolicy(policy)
	e.Kind = exam.Kind(kind)
	if candidates.Valid {
		n := int(candidates.Int64)
		e.Candidates = &n
	}
	if percentage.Valid {
		p := percentage.Float64
		e.Percentage = &p
	}
	e.CreatedAt = time.Unix(createdAt, 0).UTC()
	e.Subjects = []exam.Subject{}
	e.Results = []exam.Result{}
	return &e, nil
}

func requireRow(result sql.Result) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func nullInt(n *int) sql.NullInt64 {
	if n == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*n), Valid: true}
}

func nullFloat(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}

var _ Store = (*SQLStore)(nil)
