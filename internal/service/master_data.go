package service

import (
	"context"

	"github.com/google/uuid"

	"perpus-server/internal/models"
)

// Master data operations. Each entity kind gets its own typed add/delete;
// deletes are by id and silently no-op when the id is already gone. Deleting
// a student or book never cascades to transactions or visit logs that copied
// its fields.

func (s *DefaultService) ListStudents() []models.Student {
	return s.store.Snapshot().Students
}

func (s *DefaultService) AddStudent(ctx context.Context, req models.AddStudentRequest) (*models.Student, error) {
	student := models.Student{
		ID:    uuid.New().String(),
		Name:  req.Name,
		Class: req.Class,
	}
	err := s.store.Update(ctx, func(state *models.State) error {
		state.Students = append(state.Students, student)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &student, nil
}

func (s *DefaultService) DeleteStudent(ctx context.Context, id string) error {
	return s.store.Update(ctx, func(state *models.State) error {
		state.Students = deleteByID(state.Students, id, func(st models.Student) string { return st.ID })
		return nil
	})
}

func (s *DefaultService) ListTeachers() []models.Teacher {
	return s.store.Snapshot().Teachers
}

func (s *DefaultService) AddTeacher(ctx context.Context, req models.AddTeacherRequest) (*models.Teacher, error) {
	teacher := models.Teacher{
		ID:   uuid.New().String(),
		Name: req.Name,
	}
	err := s.store.Update(ctx, func(state *models.State) error {
		state.Teachers = append(state.Teachers, teacher)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &teacher, nil
}

func (s *DefaultService) DeleteTeacher(ctx context.Context, id string) error {
	return s.store.Update(ctx, func(state *models.State) error {
		state.Teachers = deleteByID(state.Teachers, id, func(t models.Teacher) string { return t.ID })
		return nil
	})
}

func (s *DefaultService) ListSubjects() []models.Subject {
	return s.store.Snapshot().Subjects
}

func (s *DefaultService) AddSubject(ctx context.Context, req models.AddSubjectRequest) (*models.Subject, error) {
	subject := models.Subject{
		ID:   uuid.New().String(),
		Name: req.Name,
	}
	err := s.store.Update(ctx, func(state *models.State) error {
		state.Subjects = append(state.Subjects, subject)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &subject, nil
}

func (s *DefaultService) DeleteSubject(ctx context.Context, id string) error {
	return s.store.Update(ctx, func(state *models.State) error {
		state.Subjects = deleteByID(state.Subjects, id, func(sub models.Subject) string { return sub.ID })
		return nil
	})
}

func (s *DefaultService) ListLessonHours() []models.LessonHour {
	return s.store.Snapshot().LessonHours
}

func (s *DefaultService) AddLessonHour(ctx context.Context, req models.AddLessonHourRequest) (*models.LessonHour, error) {
	hour := models.LessonHour{
		ID:    uuid.New().String(),
		Label: req.Label,
	}
	err := s.store.Update(ctx, func(state *models.State) error {
		state.LessonHours = append(state.LessonHours, hour)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &hour, nil
}

func (s *DefaultService) DeleteLessonHour(ctx context.Context, id string) error {
	return s.store.Update(ctx, func(state *models.State) error {
		state.LessonHours = deleteByID(state.LessonHours, id, func(h models.LessonHour) string { return h.ID })
		return nil
	})
}

func (s *DefaultService) ListBooks() []models.Book {
	return s.store.Snapshot().Books
}

func (s *DefaultService) AddBook(ctx context.Context, req models.BookRequest) (*models.Book, error) {
	book := models.Book{
		ID:        uuid.New().String(),
		Kind:      req.Kind,
		Title:     req.Title,
		Author:    req.Author,
		Publisher: req.Publisher,
	}
	err := s.store.Update(ctx, func(state *models.State) error {
		state.Books = append(state.Books, book)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// UpdateBook replaces every field of the book in place. Transactions that
// copied the old fields keep them.
func (s *DefaultService) UpdateBook(ctx context.Context, id string, req models.BookRequest) (*models.Book, error) {
	var updated *models.Book
	err := s.store.Update(ctx, func(state *models.State) error {
		for i := range state.Books {
			if state.Books[i].ID == id {
				state.Books[i] = models.Book{
					ID:        id,
					Kind:      req.Kind,
					Title:     req.Title,
					Author:    req.Author,
					Publisher: req.Publisher,
				}
				b := state.Books[i]
				updated = &b
				return nil
			}
		}
		return ErrBookNotFound
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *DefaultService) DeleteBook(ctx context.Context, id string) error {
	return s.store.Update(ctx, func(state *models.State) error {
		state.Books = deleteByID(state.Books, id, func(b models.Book) string { return b.ID })
		return nil
	})
}

// deleteByID filters one entity out of a collection, keeping order.
func deleteByID[T any](items []T, id string, idOf func(T) string) []T {
	kept := items[:0]
	for _, item := range items {
		if idOf(item) != id {
			kept = append(kept, item)
		}
	}
	return kept
}
