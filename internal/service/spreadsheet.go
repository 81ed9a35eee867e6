package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"perpus-server/internal/models"
)

// Spreadsheet boundary. Imports read the first sheet of an .xlsx file, treat
// the first row as a header and replace the whole target collection; exports
// are flat tabular projections of the derived views and collections.

// ImportStudents replaces the student collection with one entity per data
// row (columns: name, class). Rows missing either column are skipped.
func (s *DefaultService) ImportStudents(ctx context.Context, r io.Reader) (int, error) {
	rows, err := readSheetRows(r)
	if err != nil {
		return 0, err
	}

	students := []models.Student{}
	for _, row := range rows {
		name := cellAt(row, 0)
		class := cellAt(row, 1)
		if name == "" || class == "" {
			continue
		}
		students = append(students, models.Student{
			ID:    uuid.New().String(),
			Name:  name,
			Class: class,
		})
	}

	err = s.store.Update(ctx, func(state *models.State) error {
		state.Students = students
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.logger.Info("students imported", zap.Int("count", len(students)))
	return len(students), nil
}

// ImportTeachers replaces the teacher collection (single name column).
func (s *DefaultService) ImportTeachers(ctx context.Context, r io.Reader) (int, error) {
	rows, err := readSheetRows(r)
	if err != nil {
		return 0, err
	}

	teachers := []models.Teacher{}
	for _, row := range rows {
		name := cellAt(row, 0)
		if name == "" {
			continue
		}
		teachers = append(teachers, models.Teacher{
			ID:   uuid.New().String(),
			Name: name,
		})
	}

	err = s.store.Update(ctx, func(state *models.State) error {
		state.Teachers = teachers
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.logger.Info("teachers imported", zap.Int("count", len(teachers)))
	return len(teachers), nil
}

// ImportSubjects replaces the subject collection (single name column).
func (s *DefaultService) ImportSubjects(ctx context.Context, r io.Reader) (int, error) {
	rows, err := readSheetRows(r)
	if err != nil {
		return 0, err
	}

	subjects := []models.Subject{}
	for _, row := range rows {
		name := cellAt(row, 0)
		if name == "" {
			continue
		}
		subjects = append(subjects, models.Subject{
			ID:   uuid.New().String(),
			Name: name,
		})
	}

	err = s.store.Update(ctx, func(state *models.State) error {
		state.Subjects = subjects
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.logger.Info("subjects imported", zap.Int("count", len(subjects)))
	return len(subjects), nil
}

func (s *DefaultService) ExportTopBorrowers() (*bytes.Buffer, string, error) {
	ranks := TopBorrowers(s.store.Snapshot(), 10)
	if len(ranks) == 0 {
		return nil, "", ErrNoExportData
	}

	rows := make([][]interface{}, 0, len(ranks))
	for _, r := range ranks {
		rows = append(rows, []interface{}{r.Student, r.Class, r.Count})
	}
	buf, err := writeSheet("Top Borrowers", []string{"Student Name", "Class", "Total Loans"}, rows)
	return buf, "top_borrowers_report.xlsx", err
}

func (s *DefaultService) ExportOverdue() (*bytes.Buffer, string, error) {
	overdue, _ := OverdueLoans(s.store.Snapshot(), time.Now())
	if len(overdue) == 0 {
		return nil, "", ErrNoExportData
	}

	rows := make([][]interface{}, 0, len(overdue))
	for _, t := range overdue {
		rows = append(rows, []interface{}{t.Student, t.Class, t.Book, t.DueDate})
	}
	buf, err := writeSheet("Overdue", []string{"Student Name", "Class", "Book", "Due Date"}, rows)
	return buf, "overdue_report.xlsx", err
}

// ExportActiveLoans is the general loan report: everything still borrowed.
func (s *DefaultService) ExportActiveLoans() (*bytes.Buffer, string, error) {
	return s.exportLoanReport(models.StatusBorrowed, "loan_report.xlsx")
}

// ExportReturns is the return report: everything already returned.
func (s *DefaultService) ExportReturns() (*bytes.Buffer, string, error) {
	return s.exportLoanReport(models.StatusReturned, "return_report.xlsx")
}

func (s *DefaultService) exportLoanReport(status models.TransactionStatus, filename string) (*bytes.Buffer, string, error) {
	state := s.store.Snapshot()

	var rows [][]interface{}
	for _, t := range state.Transactions {
		if t.Status != status {
			continue
		}
		deadline := t.DueDate
		if status == models.StatusReturned {
			deadline = t.ReturnDate
		}
		rows = append(rows, []interface{}{
			t.LoanDate, t.LoanTime, t.Student, t.Class, t.Book,
			strings.ToUpper(string(t.Status)), deadline,
		})
	}
	if len(rows) == 0 {
		return nil, "", ErrNoExportData
	}

	deadlineHeader := "Due Date"
	if status == models.StatusReturned {
		deadlineHeader = "Return Date"
	}
	headers := []string{"Loan Date", "Time", "Student", "Class", "Book", "Status", deadlineHeader}
	buf, err := writeSheet("Report", headers, rows)
	return buf, filename, err
}

func (s *DefaultService) ExportStudentHistory(student string) (*bytes.Buffer, string, error) {
	history := StudentHistory(s.store.Snapshot(), student)
	if len(history) == 0 {
		return nil, "", ErrNoExportData
	}

	rows := make([][]interface{}, 0, len(history))
	for _, h := range history {
		rows = append(rows, []interface{}{h.LoanDate, h.Book, h.Status, h.ReturnDate})
	}

	filename := fmt.Sprintf("history_%s.xlsx", strings.ReplaceAll(student, " ", "_"))
	buf, err := writeSheet("History", []string{"Loan Date", "Book Title", "Status", "Return Date"}, rows)
	return buf, filename, err
}

func (s *DefaultService) ExportClassVisits() (*bytes.Buffer, string, error) {
	visits := s.store.Snapshot().ClassVisits
	if len(visits) == 0 {
		return nil, "", ErrNoExportData
	}

	rows := make([][]interface{}, 0, len(visits))
	for _, v := range visits {
		rows = append(rows, []interface{}{v.Date, v.Class, v.Teacher, v.Subject, v.Hours})
	}
	buf, err := writeSheet("Class Visits", []string{"Date", "Class", "Teacher", "Subject", "Hours"}, rows)
	return buf, "class_visit_history.xlsx", err
}

func (s *DefaultService) ExportStudentVisits() (*bytes.Buffer, string, error) {
	visits := s.store.Snapshot().StudentVisits
	if len(visits) == 0 {
		return nil, "", ErrNoExportData
	}

	rows := make([][]interface{}, 0, len(visits))
	for _, v := range visits {
		rows = append(rows, []interface{}{v.Date, v.Time, v.Class, v.Student, v.Purpose})
	}
	buf, err := writeSheet("Student Visits", []string{"Date", "Time", "Class", "Student", "Purpose"}, rows)
	return buf, "student_visit_history.xlsx", err
}

// readSheetRows opens an .xlsx workbook, reads the first sheet and drops the
// header row.
func readSheetRows(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImport, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrInvalidImport
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImport, err)
	}
	if len(rows) <= 1 {
		return nil, nil
	}
	return rows[1:], nil
}

func cellAt(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// writeSheet builds a single-sheet workbook with a header row and returns it
// as a buffer ready to be sent as an attachment.
func writeSheet(sheet string, headers []string, rows [][]interface{}) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	for col, h := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, err
		}
	}
	for i, row := range rows {
		for col, value := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, err
			}
		}
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf, nil
}
