package service

import (
	"sort"
	"strings"
	"time"

	"perpus-server/internal/models"
)

// Derived views. Pure functions over a state snapshot, recomputed in full on
// every call; collections are bounded by one school's yearly data, so no
// caching or incremental maintenance.

const dateLayout = "2006-01-02"

// History status labels shown to the user and written to exports.
const (
	historyNotReturned = "NOT RETURNED"
	historyReturned    = "RETURNED"
)

// OverdueLoans returns every borrowed transaction whose due date is strictly
// before the start of today (date-only comparison), plus the count of
// distinct students among them. Unparseable due dates are never overdue.
func OverdueLoans(state *models.State, today time.Time) ([]models.Transaction, int) {
	day := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())

	var overdue []models.Transaction
	students := make(map[string]bool)
	for _, t := range state.Transactions {
		if t.Status != models.StatusBorrowed {
			continue
		}
		due, err := time.ParseInLocation(dateLayout, t.DueDate, today.Location())
		if err != nil {
			continue
		}
		if due.Before(day) {
			overdue = append(overdue, t)
			students[t.Student] = true
		}
	}
	return overdue, len(students)
}

// TopBorrowers counts transactions per student name across all statuses and
// returns the top n, descending by count. Ties order by student name
// ascending so the ranking is deterministic. The class label comes from the
// current student collection, "-" when the student is gone.
func TopBorrowers(state *models.State, n int) []models.BorrowerRank {
	counts := make(map[string]int)
	for _, t := range state.Transactions {
		counts[t.Student]++
	}

	classes := make(map[string]string, len(state.Students))
	for _, st := range state.Students {
		if _, ok := classes[st.Name]; !ok {
			classes[st.Name] = st.Class
		}
	}

	ranks := make([]models.BorrowerRank, 0, len(counts))
	for name, count := range counts {
		class, ok := classes[name]
		if !ok {
			class = "-"
		}
		ranks = append(ranks, models.BorrowerRank{Student: name, Class: class, Count: count})
	}

	sort.Slice(ranks, func(i, j int) bool {
		if ranks[i].Count != ranks[j].Count {
			return ranks[i].Count > ranks[j].Count
		}
		return ranks[i].Student < ranks[j].Student
	})

	if n > 0 && len(ranks) > n {
		ranks = ranks[:n]
	}
	return ranks
}

// ParticipationRate is the percentage of registered students that appear in
// any transaction. Zero when there are no students.
func ParticipationRate(state *models.State) float64 {
	if len(state.Students) == 0 {
		return 0
	}
	borrowers := make(map[string]bool)
	for _, t := range state.Transactions {
		borrowers[t.Student] = true
	}
	return float64(len(borrowers)) / float64(len(state.Students)) * 100
}

// StudentHistory reduces every transaction of one student to loan date, book
// title, status label and return date, in insertion order.
func StudentHistory(state *models.State, student string) []models.HistoryEntry {
	var history []models.HistoryEntry
	for _, t := range state.Transactions {
		if t.Student != student {
			continue
		}
		label := historyNotReturned
		if t.Returned() {
			label = historyReturned
		}
		history = append(history, models.HistoryEntry{
			LoanDate:   t.LoanDate,
			Book:       t.Book,
			Status:     label,
			ReturnDate: t.ReturnDate,
		})
	}
	return history
}

// ClassVisitHours totals the lesson-hour slots logged across all class
// visits (the hours field is a comma-joined label list) and counts the
// distinct class labels represented.
func ClassVisitHours(state *models.State) (totalHours, distinctClasses int) {
	classes := make(map[string]bool)
	for _, v := range state.ClassVisits {
		for _, label := range strings.Split(v.Hours, ",") {
			if strings.TrimSpace(label) != "" {
				totalHours++
			}
		}
		classes[v.Class] = true
	}
	return totalHours, len(classes)
}

// Dashboard assembles the landing-page aggregates from one snapshot.
func (s *DefaultService) Dashboard() *models.DashboardReport {
	state := s.store.Snapshot()

	activeLoans := 0
	returnedLoans := 0
	activeBorrowers := make(map[string]bool)
	for _, t := range state.Transactions {
		if t.Status == models.StatusBorrowed {
			activeLoans++
			activeBorrowers[t.Student] = true
		} else {
			returnedLoans++
		}
	}

	totalHours, distinctClasses := ClassVisitHours(state)
	overdue, overdueStudents := OverdueLoans(state, time.Now())

	return &models.DashboardReport{
		Status:                  "success",
		TotalStudents:           len(state.Students),
		TotalTeachers:           len(state.Teachers),
		ClassVisitHours:         totalHours,
		ClassVisitClasses:       distinctClasses,
		StudentVisits:           len(state.StudentVisits),
		ActiveLoans:             activeLoans,
		ActiveBorrowers:         len(activeBorrowers),
		ReturnedLoans:           returnedLoans,
		ParticipationRate:       ParticipationRate(state),
		TopBorrowers:            TopBorrowers(state, 10),
		OverdueTransactions:     overdue,
		OverdueDistinctStudents: overdueStudents,
	}
}

func (s *DefaultService) Overdue() *models.OverdueReport {
	overdue, students := OverdueLoans(s.store.Snapshot(), time.Now())
	return &models.OverdueReport{
		Status:           "success",
		Transactions:     overdue,
		DistinctStudents: students,
	}
}

func (s *DefaultService) RankTopBorrowers(limit int) []models.BorrowerRank {
	if limit <= 0 {
		limit = 10
	}
	return TopBorrowers(s.store.Snapshot(), limit)
}

func (s *DefaultService) HistoryForStudent(student string) []models.HistoryEntry {
	return StudentHistory(s.store.Snapshot(), student)
}
